package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "users.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	db := setupUserDB(t)

	user := User{
		Login:    "ada",
		Password: "correct horse battery staple",
	}
	require.NoError(t, db.Create(&user).Error)

	// IDs are assigned on the way in
	assert.NotEmpty(t, user.ID)

	// Plaintext never reaches storage
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.HashedPassword)
	assert.NotEqual(t, "correct horse battery staple", user.HashedPassword)

	var stored User
	require.NoError(t, db.First(&stored, "login = ?", "ada").Error)
	assert.True(t, stored.CheckPassword("correct horse battery staple"))
	assert.False(t, stored.CheckPassword("wrong"))
}

func TestUser_BeforeSave_KeepsExistingHash(t *testing.T) {
	db := setupUserDB(t)

	user := User{Login: "ada", Password: "first password"}
	require.NoError(t, db.Create(&user).Error)
	originalHash := user.HashedPassword

	// Saving without a pending plaintext leaves the hash alone
	user.DisplayName = "Ada Lovelace"
	require.NoError(t, db.Save(&user).Error)
	assert.Equal(t, originalHash, user.HashedPassword)

	// Setting a new plaintext replaces it
	user.Password = "second password"
	require.NoError(t, db.Save(&user).Error)
	assert.NotEqual(t, originalHash, user.HashedPassword)
	assert.True(t, user.CheckPassword("second password"))
}
