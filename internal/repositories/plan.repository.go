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

type WorkoutPlanRepository interface {
	GetByUser(ctx context.Context, userID string) (*WorkoutPlan, error)
	GetByID(ctx context.Context, id int) (*WorkoutPlan, error)
	Create(ctx context.Context, plan *WorkoutPlan) error
	Update(ctx context.Context, plan *WorkoutPlan) error
	Delete(ctx context.Context, id int, userID string) error
	CreateWorkout(ctx context.Context, workout *PlannedWorkout) error
	CreateExercise(ctx context.Context, exercise *Exercise) error
}

type workoutPlanRepository struct {
	db  database.DB
	log logger.Logger
}

func NewWorkoutPlan(db database.DB) WorkoutPlanRepository {
	return &workoutPlanRepository{
		db:  db,
		log: logger.New("workoutPlanRepository"),
	}
}

func (r *workoutPlanRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *workoutPlanRepository) GetByUser(ctx context.Context, userID string) (*WorkoutPlan, error) {
	log := r.log.Function("GetByUser")

	var plan WorkoutPlan
	err := r.getDB(ctx).
		Preload("Workouts.Exercises").
		Preload("Workouts").
		First(&plan, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, log.Err("failed to get workout plan", err, "userID", userID)
	}

	return &plan, nil
}

func (r *workoutPlanRepository) GetByID(ctx context.Context, id int) (*WorkoutPlan, error) {
	log := r.log.Function("GetByID")

	var plan WorkoutPlan
	err := r.getDB(ctx).
		Preload("Workouts.Exercises").
		Preload("Workouts").
		First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, log.Err("failed to get workout plan by id", err, "id", id)
	}

	return &plan, nil
}

func (r *workoutPlanRepository) Create(ctx context.Context, plan *WorkoutPlan) error {
	if err := r.getDB(ctx).Create(plan).Error; err != nil {
		return r.log.Function("Create").Err("failed to create workout plan", err, "userID", plan.UserID)
	}
	return nil
}

func (r *workoutPlanRepository) Update(ctx context.Context, plan *WorkoutPlan) error {
	if err := r.getDB(ctx).Save(plan).Error; err != nil {
		return r.log.Function("Update").Err("failed to update workout plan", err, "planID", plan.ID)
	}
	return nil
}

func (r *workoutPlanRepository) Delete(ctx context.Context, id int, userID string) error {
	log := r.log.Function("Delete")

	plan, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if plan.UserID != userID {
		return log.Err("delete rejected for non-owner", ErrForbidden, "planID", id, "userID", userID)
	}

	if err := r.getDB(ctx).Select("Workouts.Exercises", "Workouts").Delete(plan).Error; err != nil {
		return log.Err("failed to delete workout plan", err, "planID", id)
	}

	return nil
}

func (r *workoutPlanRepository) CreateWorkout(ctx context.Context, workout *PlannedWorkout) error {
	if err := r.getDB(ctx).Create(workout).Error; err != nil {
		return r.log.Function("CreateWorkout").
			Err("failed to create planned workout", err, "planID", workout.PlanID)
	}
	return nil
}

func (r *workoutPlanRepository) CreateExercise(ctx context.Context, exercise *Exercise) error {
	if err := r.getDB(ctx).Create(exercise).Error; err != nil {
		return r.log.Function("CreateExercise").
			Err("failed to create exercise", err, "workoutID", exercise.WorkoutID)
	}
	return nil
}
