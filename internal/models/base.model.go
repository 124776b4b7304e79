package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseUUIDModel struct {
	ID        string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime"              json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"              json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"                       json:"deletedAt"`
}

func (b *BaseUUIDModel) BeforeSave(tx *gorm.DB) error {
	if b.ID == "" {
		uuidString, _ := uuid.NewV7()
		b.ID = uuidString.String()
	}
	return nil
}

type BaseModel struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"                    json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                    json:"updatedAt"`
}

// EntryModel is the shared shape of a daily tracking entry. One row per
// (owner, date) per domain table, enforced by the composite unique index.
// Entries are hard-deleted; a soft-delete tombstone would block the unique
// index for the same date.
type EntryModel struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement"                            json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:,composite:owner_date" json:"userId"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:,composite:owner_date"        json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                              json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                                              json:"updatedAt"`
}

func (e EntryModel) EntryID() int          { return e.ID }
func (e EntryModel) Owner() string         { return e.UserID }
func (e EntryModel) EntryDate() time.Time  { return e.Date }

// DateOnly normalizes a timestamp to its UTC calendar date so that equality
// against the stored date column is exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
