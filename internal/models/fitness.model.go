package models

// FitnessEntry records daily activity counters and workout details.
type FitnessEntry struct {
	EntryModel
	Steps          *int     `gorm:"type:int"  json:"steps"`
	Distance       *float64 `gorm:"type:real" json:"distance"`
	ActiveMinutes  *int     `gorm:"type:int"  json:"activeMinutes"`
	CaloriesBurned *int     `gorm:"type:int"  json:"caloriesBurned"`

	WorkoutType      *string `gorm:"type:varchar(50);index" json:"workoutType"`
	WorkoutDuration  *int    `gorm:"type:int"               json:"workoutDuration"`
	WorkoutIntensity *int    `gorm:"type:int"               json:"workoutIntensity"`

	HeartRateAvg *int `gorm:"type:int" json:"heartRateAvg"`
	HeartRateMax *int `gorm:"type:int" json:"heartRateMax"`

	RecoveryScore *int `gorm:"type:int" json:"recoveryScore"`
	SorenessLevel *int `gorm:"type:int" json:"sorenessLevel"`

	WorkoutNotes *string `gorm:"type:text" json:"workoutNotes"`
}

type WorkoutPlan struct {
	BaseModel
	UserID      string           `gorm:"type:varchar(64);not null;index" json:"userId"`
	User        *User            `gorm:"constraint:OnDelete:CASCADE"     json:"-"`
	Name        string           `gorm:"type:varchar(100);not null"      json:"name"`
	Description *string          `gorm:"type:text"                       json:"description"`
	Workouts    []PlannedWorkout `gorm:"constraint:OnDelete:CASCADE"     json:"workouts"`
}

type PlannedWorkout struct {
	BaseModel
	PlanID      int        `gorm:"type:int;not null;index"     json:"planId"`
	DayOfWeek   int        `gorm:"type:int"                    json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	WorkoutType string     `gorm:"type:varchar(50)"            json:"workoutType"`
	Duration    *int       `gorm:"type:int"                    json:"duration"`
	Description *string    `gorm:"type:text"                   json:"description"`
	Exercises   []Exercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`
}

type WorkoutPlanRequest struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Workouts    []PlannedWorkoutRequest `json:"workouts"`
}

type PlannedWorkoutRequest struct {
	DayOfWeek   int               `json:"dayOfWeek"`
	WorkoutType string            `json:"workoutType"`
	Duration    *int              `json:"duration"`
	Description *string           `json:"description"`
	Exercises   []ExerciseRequest `json:"exercises"`
}

type ExerciseRequest struct {
	Name     string   `json:"name"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
	Duration *int     `json:"duration"`
	Notes    *string  `json:"notes"`
}

type Exercise struct {
	BaseModel
	WorkoutID int      `gorm:"type:int;not null;index"    json:"workoutId"`
	Name      string   `gorm:"type:varchar(100);not null" json:"name"`
	Sets      *int     `gorm:"type:int"                   json:"sets"`
	Reps      *int     `gorm:"type:int"                   json:"reps"`
	Weight    *float64 `gorm:"type:real"                  json:"weight"`
	Duration  *int     `gorm:"type:int"                   json:"duration"` // seconds, for timed exercises
	Notes     *string  `gorm:"type:text"                  json:"notes"`
}
