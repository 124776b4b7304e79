package seed

import (
	"time"

	"tracker/config"
	"tracker/internal/logger"
	. "tracker/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []User{
		{
			FirstName:   "Bob",
			LastName:    "Parsons",
			DisplayName: "Bob Parsons",
			Email:       stringPtr("bob.parsons@example.com"),
			Login:       "deadstyle",
			Password:    "password",
			IsAdmin:     true,
		}, {
			FirstName:   "Ada",
			LastName:    "Lovelace",
			DisplayName: "Ada Lovelace",
			Email:       stringPtr("ada.lovelace@example.com"),
			Login:       "ada",
			Password:    "password",
			IsAdmin:     false,
		},
	}

	for i, user := range users {
		var existingUser User
		if err := db.First(&existingUser, "login = ?", user.Login).Error; err == nil {
			users[i] = existingUser
			log.Info("User already exists", "login", user.Login)
			continue
		}
		log.Info("Seeding user", "login", user.Login)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "login", user.Login)
			continue
		}
		users[i] = user
	}

	if len(users) == 0 || users[0].ID == "" {
		return nil
	}

	return seedEntries(db, users[0].ID, log)
}

// seedEntries backfills a week of sample tracking data for the first user so
// the overview and analytics endpoints have something to show in development.
func seedEntries(db *gorm.DB, userID string, log logger.Logger) error {
	var count int64
	if err := db.Model(&HealthEntry{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return log.Err("failed to count health entries", err)
	}
	if count > 0 {
		log.Info("Entries already seeded")
		return nil
	}

	workoutTypes := []string{"running", "strength", "yoga", "cycling", "running", "strength", "walking"}

	for i := 0; i < 7; i++ {
		date := DateOnly(time.Now().UTC().AddDate(0, 0, -i))

		health := HealthEntry{
			EntryModel:    EntryModel{UserID: userID, Date: date},
			Weight:        floatPtr(82.5 - float64(i)*0.1),
			SleepDuration: floatPtr(6.5 + float64(i%3)*0.5),
			SleepQuality:  intPtr(5 + i%4),
			EnergyLevel:   intPtr(4 + i%5),
			StressLevel:   intPtr(3 + i%4),
			WaterIntake:   floatPtr(1.5 + float64(i%3)*0.5),
		}
		if err := db.Create(&health).Error; err != nil {
			log.Er("failed to seed health entry", err, "date", date)
		}

		mental := MentalEntry{
			EntryModel:        EntryModel{UserID: userID, Date: date},
			MoodRating:        intPtr(5 + i%4),
			AnxietyLevel:      intPtr(3 + i%3),
			MeditationMinutes: intPtr(10 * (i % 3)),
			GratitudePractice: boolPtr(i%2 == 0),
			WorkStress:        boolPtr(i%3 == 0),
		}
		if err := db.Create(&mental).Error; err != nil {
			log.Er("failed to seed mental entry", err, "date", date)
		}

		fitness := FitnessEntry{
			EntryModel:      EntryModel{UserID: userID, Date: date},
			Steps:           intPtr(6000 + i*800),
			Distance:        floatPtr(4.2 + float64(i)*0.3),
			ActiveMinutes:   intPtr(35 + i*5),
			CaloriesBurned:  intPtr(420 + i*30),
			WorkoutType:     stringPtr(workoutTypes[i]),
			WorkoutDuration: intPtr(30 + i*5),
		}
		if err := db.Create(&fitness).Error; err != nil {
			log.Er("failed to seed fitness entry", err, "date", date)
		}
	}

	log.Info("Seeded sample entries", "userID", userID)
	return nil
}
