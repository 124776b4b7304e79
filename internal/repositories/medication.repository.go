package repositories

import (
	"context"
	"errors"
	"tracker/internal/database"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/services"

	"gorm.io/gorm"
)

type MedicationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*Medication, error)
	Create(ctx context.Context, medication *Medication) error
	Update(ctx context.Context, medication *Medication) error
	Delete(ctx context.Context, id int, userID string) error
}

type medicationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMedication(db database.DB) MedicationRepository {
	return &medicationRepository{
		db:  db,
		log: logger.New("medicationRepository"),
	}
}

func (r *medicationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *medicationRepository) ListByUser(ctx context.Context, userID string) ([]*Medication, error) {
	log := r.log.Function("ListByUser")

	var medications []*Medication
	err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&medications).Error
	if err != nil {
		return nil, log.Err("failed to list medications", err, "userID", userID)
	}

	return medications, nil
}

func (r *medicationRepository) Create(ctx context.Context, medication *Medication) error {
	if err := r.getDB(ctx).Create(medication).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to create medication", err, "userID", medication.UserID)
	}
	return nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *Medication) error {
	if err := r.getDB(ctx).Save(medication).Error; err != nil {
		return r.log.Function("Update").
			Err("failed to update medication", err, "id", medication.ID)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id int, userID string) error {
	log := r.log.Function("Delete")

	var medication Medication
	if err := r.getDB(ctx).First(&medication, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Join(ErrNotFound, err)
		}
		return log.Err("failed to get medication", err, "id", id)
	}

	if medication.UserID != userID {
		return log.Err("delete rejected for non-owner", ErrForbidden, "id", id, "userID", userID)
	}

	if err := r.getDB(ctx).Delete(&medication).Error; err != nil {
		return log.Err("failed to delete medication", err, "id", id)
	}

	return nil
}
