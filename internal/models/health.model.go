package models

import "time"

// HealthEntry records daily vitals and habits. Metric fields are pointers:
// a nil value means "not measured", which is distinct from zero.
type HealthEntry struct {
	EntryModel
	Weight                 *float64 `gorm:"type:real" json:"weight"`
	BloodPressureSystolic  *int     `gorm:"type:int"  json:"bloodPressureSystolic"`
	BloodPressureDiastolic *int     `gorm:"type:int"  json:"bloodPressureDiastolic"`
	HeartRate              *int     `gorm:"type:int"  json:"heartRate"`
	BodyTemperature        *float64 `gorm:"type:real" json:"bodyTemperature"`

	SleepDuration *float64 `gorm:"type:real" json:"sleepDuration"`
	SleepQuality  *int     `gorm:"type:int"  json:"sleepQuality"`

	EnergyLevel *int `gorm:"type:int" json:"energyLevel"`
	StressLevel *int `gorm:"type:int" json:"stressLevel"`

	WaterIntake        *float64 `gorm:"type:real" json:"waterIntake"`
	MealQuality        *int     `gorm:"type:int"  json:"mealQuality"`
	AlcoholConsumption *bool    `json:"alcoholConsumption"`
	Smoking            *bool    `json:"smoking"`

	Symptoms *string `gorm:"type:text" json:"symptoms"`
	Notes    *string `gorm:"type:text" json:"notes"`
}

type MedicationRequest struct {
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	Frequency string  `json:"frequency"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Notes     *string `json:"notes"`
}

type Medication struct {
	BaseModel
	UserID    string     `gorm:"type:varchar(64);not null;index" json:"userId"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE"     json:"-"`
	Name      string     `gorm:"type:varchar(100);not null"      json:"name"`
	Dosage    string     `gorm:"type:varchar(50)"                json:"dosage"`
	Frequency string     `gorm:"type:varchar(50)"                json:"frequency"`
	StartDate *time.Time `gorm:"type:date"                       json:"startDate"`
	EndDate   *time.Time `gorm:"type:date"                       json:"endDate"`
	Notes     *string    `gorm:"type:text"                       json:"notes"`
}
