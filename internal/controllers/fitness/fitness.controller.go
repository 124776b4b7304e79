package fitnessController

import (
	"context"
	"errors"
	"tracker/internal/database"
	"tracker/internal/events"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/repositories"
	"tracker/internal/services"
	"tracker/internal/stats"
	"time"

	"github.com/google/uuid"
)

const (
	overviewWindow = 7
	analyticsDays  = 30
)

type FitnessController struct {
	entryRepo          repositories.EntryRepository[FitnessEntry]
	planRepo           repositories.WorkoutPlanRepository
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	db                 database.DB
	log                logger.Logger
}

func New(
	entryRepo repositories.EntryRepository[FitnessEntry],
	planRepo repositories.WorkoutPlanRepository,
	transactionService *services.TransactionService,
	eventBus *events.EventBus,
	db database.DB,
) *FitnessController {
	return &FitnessController{
		entryRepo:          entryRepo,
		planRepo:           planRepo,
		transactionService: transactionService,
		eventBus:           eventBus,
		db:                 db,
		log:                logger.New("FitnessController"),
	}
}

// WeeklyStats totals the current ISO week. Sums treat unrecorded values as
// zero, so an empty week reads as all zeroes rather than undefined.
type WeeklyStats struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	TotalDuration int     `json:"totalDuration"`
	TotalDistance float64 `json:"totalDistance"`
	TotalCalories int     `json:"totalCalories"`
	TotalSteps    int     `json:"totalSteps"`
}

type Overview struct {
	RecentEntries []*FitnessEntry `json:"recentEntries"`
	WeeklyStats   WeeklyStats     `json:"weeklyStats"`
	WorkoutPlan   *WorkoutPlan    `json:"workoutPlan"`
}

func (fc *FitnessController) GetOverview(ctx context.Context, userID string) (*Overview, error) {
	log := fc.log.Function("GetOverview")

	cacheKey := services.OverviewCacheKey(string(DomainFitness), userID)
	cache := database.NewCacheBuilder(fc.db.Cache.General, cacheKey).WithContext(ctx)

	var cached Overview
	if found, err := cache.Get(&cached); err == nil && found {
		return &cached, nil
	}

	recent, err := fc.entryRepo.ListRange(ctx, userID, repositories.ListOptions{Limit: overviewWindow})
	if err != nil {
		return nil, log.Err("failed to get recent entries", err, "userID", userID)
	}

	weekStart, weekEnd := stats.WeekWindow(time.Now().UTC())
	weekly, err := fc.entryRepo.ListRange(ctx, userID, repositories.ListOptions{
		StartDate: &weekStart,
		EndDate:   &weekEnd,
	})
	if err != nil {
		return nil, log.Err("failed to get weekly entries", err, "userID", userID)
	}

	overview := &Overview{
		RecentEntries: recent,
		WeeklyStats: WeeklyStats{
			TotalWorkouts: len(weekly),
			TotalDuration: stats.Sum(weekly, func(e *FitnessEntry) *int { return e.WorkoutDuration }),
			TotalDistance: stats.Sum(weekly, func(e *FitnessEntry) *float64 { return e.Distance }),
			TotalCalories: stats.Sum(weekly, func(e *FitnessEntry) *int { return e.CaloriesBurned }),
			TotalSteps:    stats.Sum(weekly, func(e *FitnessEntry) *int { return e.Steps }),
		},
	}

	plan, err := fc.planRepo.GetByUser(ctx, userID)
	if err == nil {
		overview.WorkoutPlan = plan
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Warn("failed to load workout plan", "userID", userID, "error", err)
	}

	if err := cache.WithStruct(overview).WithTTL(services.OverviewCacheTTL).Set(); err != nil {
		log.Warn("failed to cache overview", "userID", userID, "error", err)
	}

	return overview, nil
}

func (fc *FitnessController) Track(
	ctx context.Context,
	userID string,
	date time.Time,
	fields map[string]any,
) (*FitnessEntry, error) {
	entry, err := fc.entryRepo.Upsert(ctx, userID, date, fields)
	if err != nil {
		return nil, err
	}

	fc.publish(ctx, events.TypeEntrySaved, userID, entry.ID)

	return entry, nil
}

func (fc *FitnessController) History(
	ctx context.Context,
	userID string,
	opts repositories.ListOptions,
) ([]*FitnessEntry, int64, error) {
	entries, err := fc.entryRepo.ListRange(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := fc.entryRepo.CountRange(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (fc *FitnessController) GetEntry(ctx context.Context, userID string, id int) (*FitnessEntry, error) {
	entry, err := fc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		return nil, fc.log.Function("GetEntry").
			Err("entry access rejected for non-owner", repositories.ErrForbidden, "id", id, "userID", userID)
	}

	return entry, nil
}

func (fc *FitnessController) UpdateEntry(
	ctx context.Context,
	userID string,
	id int,
	fields map[string]any,
) (*FitnessEntry, error) {
	entry, err := fc.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return fc.Track(ctx, userID, entry.Date, fields)
}

func (fc *FitnessController) DeleteEntry(ctx context.Context, userID string, id int) error {
	if err := fc.entryRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	fc.publish(ctx, events.TypeEntryDeleted, userID, id)

	return nil
}

type Analytics struct {
	WorkoutsByType      map[string]int  `json:"workoutsByType"`
	CurrentWeekMinutes  int             `json:"currentWeekMinutes"`
	PreviousWeekMinutes int             `json:"previousWeekMinutes"`
	DailyActivities     []*FitnessEntry `json:"dailyActivities"`
}

// GetAnalytics summarizes the trailing thirty days: workout counts per type,
// this week's training minutes against last week's, and the daily series in
// ascending date order for charting.
func (fc *FitnessController) GetAnalytics(ctx context.Context, userID string) (*Analytics, error) {
	log := fc.log.Function("GetAnalytics")

	now := time.Now().UTC()
	start := DateOnly(now).AddDate(0, 0, -analyticsDays)

	entries, err := fc.entryRepo.ListRange(ctx, userID, repositories.ListOptions{StartDate: &start})
	if err != nil {
		return nil, log.Err("failed to get analytics entries", err, "userID", userID)
	}

	currentStart, currentEnd := stats.WeekWindow(now)
	previousStart, previousEnd := stats.WeekWindow(currentStart.AddDate(0, 0, -1))

	analytics := &Analytics{
		WorkoutsByType: stats.GroupCount(entries, func(e *FitnessEntry) *string { return e.WorkoutType }),
		CurrentWeekMinutes: stats.Sum(
			filterRange(entries, currentStart, currentEnd),
			func(e *FitnessEntry) *int { return e.WorkoutDuration },
		),
		PreviousWeekMinutes: stats.Sum(
			filterRange(entries, previousStart, previousEnd),
			func(e *FitnessEntry) *int { return e.WorkoutDuration },
		),
		DailyActivities: reverse(entries),
	}

	return analytics, nil
}

func filterRange(entries []*FitnessEntry, start, end time.Time) []*FitnessEntry {
	var out []*FitnessEntry
	for _, entry := range entries {
		if !entry.Date.Before(start) && !entry.Date.After(end) {
			out = append(out, entry)
		}
	}
	return out
}

func reverse(entries []*FitnessEntry) []*FitnessEntry {
	out := make([]*FitnessEntry, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}
	return out
}

func (fc *FitnessController) GetPlan(ctx context.Context, userID string) (*WorkoutPlan, error) {
	return fc.planRepo.GetByUser(ctx, userID)
}

// SavePlan creates or replaces the user's single workout plan together with
// its planned workouts and exercises in one transaction.
func (fc *FitnessController) SavePlan(
	ctx context.Context,
	userID string,
	req WorkoutPlanRequest,
) (*WorkoutPlan, error) {
	log := fc.log.Function("SavePlan")

	if req.Name == "" {
		return nil, log.Error("plan name is required", "userID", userID)
	}

	var planID int
	err := fc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		existing, err := fc.planRepo.GetByUser(txCtx, userID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if existing != nil {
			if err := fc.planRepo.Delete(txCtx, existing.ID, userID); err != nil {
				return err
			}
		}

		plan := &WorkoutPlan{
			UserID:      userID,
			Name:        req.Name,
			Description: req.Description,
		}
		if err := fc.planRepo.Create(txCtx, plan); err != nil {
			return err
		}
		planID = plan.ID

		for _, w := range req.Workouts {
			workout := &PlannedWorkout{
				PlanID:      plan.ID,
				DayOfWeek:   w.DayOfWeek,
				WorkoutType: w.WorkoutType,
				Duration:    w.Duration,
				Description: w.Description,
			}
			if err := fc.planRepo.CreateWorkout(txCtx, workout); err != nil {
				return err
			}

			for _, e := range w.Exercises {
				exercise := &Exercise{
					WorkoutID: workout.ID,
					Name:      e.Name,
					Sets:      e.Sets,
					Reps:      e.Reps,
					Weight:    e.Weight,
					Duration:  e.Duration,
					Notes:     e.Notes,
				}
				if err := fc.planRepo.CreateExercise(txCtx, exercise); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, log.Err("failed to save workout plan", err, "userID", userID)
	}

	fc.invalidateOverview(ctx, userID)

	return fc.planRepo.GetByID(ctx, planID)
}

func (fc *FitnessController) DeletePlan(ctx context.Context, userID string, id int) error {
	if err := fc.planRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	fc.invalidateOverview(ctx, userID)
	return nil
}

// invalidateOverview drops the cached overview after plan changes, which do
// not flow through the entry event bus.
func (fc *FitnessController) invalidateOverview(ctx context.Context, userID string) {
	key := services.OverviewCacheKey(string(DomainFitness), userID)
	if err := database.NewCacheBuilder(fc.db.Cache.General, key).WithContext(ctx).Delete(); err != nil {
		fc.log.Function("invalidateOverview").
			Warn("failed to invalidate overview cache", "userID", userID, "error", err)
	}
}

func (fc *FitnessController) publish(ctx context.Context, eventType, userID string, entryID int) {
	err := fc.eventBus.Publish(ctx, events.Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		UserID: userID,
		Domain: string(DomainFitness),
		Data:   map[string]any{"entryId": entryID},
	})
	if err != nil {
		fc.log.Function("publish").Warn("failed to publish entry event", "userID", userID, "error", err)
	}
}
