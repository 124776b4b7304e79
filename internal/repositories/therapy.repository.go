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

type TherapySessionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*TherapySession, error)
	Create(ctx context.Context, session *TherapySession) error
	Delete(ctx context.Context, id int, userID string) error
}

type therapySessionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTherapySession(db database.DB) TherapySessionRepository {
	return &therapySessionRepository{
		db:  db,
		log: logger.New("therapySessionRepository"),
	}
}

func (r *therapySessionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *therapySessionRepository) ListByUser(ctx context.Context, userID string) ([]*TherapySession, error) {
	log := r.log.Function("ListByUser")

	var sessions []*TherapySession
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&sessions).Error; err != nil {
		return nil, log.Err("failed to list therapy sessions", err, "userID", userID)
	}

	return sessions, nil
}

func (r *therapySessionRepository) Create(ctx context.Context, session *TherapySession) error {
	if err := r.getDB(ctx).Create(session).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to create therapy session", err, "userID", session.UserID)
	}
	return nil
}

func (r *therapySessionRepository) Delete(ctx context.Context, id int, userID string) error {
	log := r.log.Function("Delete")

	var session TherapySession
	if err := r.getDB(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Join(ErrNotFound, err)
		}
		return log.Err("failed to get therapy session", err, "id", id)
	}

	if session.UserID != userID {
		return log.Err("delete rejected for non-owner", ErrForbidden, "id", id, "userID", userID)
	}

	if err := r.getDB(ctx).Delete(&session).Error; err != nil {
		return log.Err("failed to delete therapy session", err, "id", id)
	}

	return nil
}
