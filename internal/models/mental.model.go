package models

import "time"

// MentalEntry records daily mood ratings, stressor flags, and journaling.
type MentalEntry struct {
	EntryModel
	MoodRating      *int `gorm:"type:int" json:"moodRating"`
	AnxietyLevel    *int `gorm:"type:int" json:"anxietyLevel"`
	DepressionLevel *int `gorm:"type:int" json:"depressionLevel"`

	FocusClarity     *int `gorm:"type:int" json:"focusClarity"`
	Motivation       *int `gorm:"type:int" json:"motivation"`
	SocialConnection *int `gorm:"type:int" json:"socialConnection"`

	MeditationMinutes *int  `gorm:"type:int" json:"meditationMinutes"`
	GratitudePractice *bool `json:"gratitudePractice"`
	TherapySession    *bool `json:"therapySession"`

	WorkStress         *bool `json:"workStress"`
	FinancialStress    *bool `json:"financialStress"`
	RelationshipStress *bool `json:"relationshipStress"`
	HealthStress       *bool `json:"healthStress"`

	Triggers         *string `gorm:"type:text" json:"triggers"`
	CopingStrategies *string `gorm:"type:text" json:"copingStrategies"`
	JournalEntry     *string `gorm:"type:text" json:"journalEntry"`
}

type TherapySessionRequest struct {
	Date         string  `json:"date"`
	Therapist    string  `json:"therapist"`
	SessionType  string  `json:"sessionType"`
	Notes        *string `json:"notes"`
	FollowUpDate *string `json:"followUpDate"`
}

type TherapySession struct {
	BaseModel
	UserID       string     `gorm:"type:varchar(64);not null;index" json:"userId"`
	User         *User      `gorm:"constraint:OnDelete:CASCADE"     json:"-"`
	Date         time.Time  `gorm:"not null"                        json:"date"`
	Therapist    string     `gorm:"type:varchar(100)"               json:"therapist"`
	SessionType  string     `gorm:"type:varchar(50)"                json:"sessionType"`
	Notes        *string    `gorm:"type:text"                       json:"notes"`
	FollowUpDate *time.Time `json:"followUpDate"`
}
