package mentalController

import (
	"context"
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

const overviewWindow = 7

type MentalController struct {
	entryRepo   repositories.EntryRepository[MentalEntry]
	therapyRepo repositories.TherapySessionRepository
	eventBus    *events.EventBus
	db          database.DB
	log         logger.Logger
}

func New(
	entryRepo repositories.EntryRepository[MentalEntry],
	therapyRepo repositories.TherapySessionRepository,
	eventBus *events.EventBus,
	db database.DB,
) *MentalController {
	return &MentalController{
		entryRepo:   entryRepo,
		therapyRepo: therapyRepo,
		eventBus:    eventBus,
		db:          db,
		log:         logger.New("MentalController"),
	}
}

type Averages struct {
	MoodRating      *float64 `json:"moodRating"`
	AnxietyLevel    *float64 `json:"anxietyLevel"`
	DepressionLevel *float64 `json:"depressionLevel"`
}

type Overview struct {
	RecentEntries  []*MentalEntry `json:"recentEntries"`
	Averages       Averages       `json:"averages"`
	StressorCounts map[string]int `json:"stressorCounts"`
	LastEntry      *MentalEntry   `json:"lastEntry"`
}

func (mc *MentalController) GetOverview(ctx context.Context, userID string) (*Overview, error) {
	log := mc.log.Function("GetOverview")

	cacheKey := services.OverviewCacheKey(string(DomainMental), userID)
	cache := database.NewCacheBuilder(mc.db.Cache.General, cacheKey).WithContext(ctx)

	var cached Overview
	if found, err := cache.Get(&cached); err == nil && found {
		return &cached, nil
	}

	entries, err := mc.entryRepo.ListRange(ctx, userID, repositories.ListOptions{Limit: overviewWindow})
	if err != nil {
		return nil, log.Err("failed to get recent entries", err, "userID", userID)
	}

	overview := &Overview{
		RecentEntries: entries,
		Averages: Averages{
			MoodRating:      stats.AverageInt(entries, func(e *MentalEntry) *int { return e.MoodRating }),
			AnxietyLevel:    stats.AverageInt(entries, func(e *MentalEntry) *int { return e.AnxietyLevel }),
			DepressionLevel: stats.AverageInt(entries, func(e *MentalEntry) *int { return e.DepressionLevel }),
		},
		StressorCounts: stressorCounts(entries),
	}

	if len(entries) > 0 {
		overview.LastEntry = entries[0]
	}

	if err := cache.WithStruct(overview).WithTTL(services.OverviewCacheTTL).Set(); err != nil {
		log.Warn("failed to cache overview", "userID", userID, "error", err)
	}

	return overview, nil
}

func stressorCounts(entries []*MentalEntry) map[string]int {
	counts := map[string]int{}
	for _, entry := range entries {
		for name, flag := range map[string]*bool{
			"work":         entry.WorkStress,
			"financial":    entry.FinancialStress,
			"relationship": entry.RelationshipStress,
			"health":       entry.HealthStress,
		} {
			if flag != nil && *flag {
				counts[name]++
			}
		}
	}
	return counts
}

func (mc *MentalController) Track(
	ctx context.Context,
	userID string,
	date time.Time,
	fields map[string]any,
) (*MentalEntry, error) {
	entry, err := mc.entryRepo.Upsert(ctx, userID, date, fields)
	if err != nil {
		return nil, err
	}

	mc.publish(ctx, events.TypeEntrySaved, userID, entry.ID)

	return entry, nil
}

func (mc *MentalController) History(
	ctx context.Context,
	userID string,
	opts repositories.ListOptions,
) ([]*MentalEntry, int64, error) {
	entries, err := mc.entryRepo.ListRange(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := mc.entryRepo.CountRange(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (mc *MentalController) GetEntry(ctx context.Context, userID string, id int) (*MentalEntry, error) {
	entry, err := mc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		return nil, mc.log.Function("GetEntry").
			Err("entry access rejected for non-owner", repositories.ErrForbidden, "id", id, "userID", userID)
	}

	return entry, nil
}

func (mc *MentalController) UpdateEntry(
	ctx context.Context,
	userID string,
	id int,
	fields map[string]any,
) (*MentalEntry, error) {
	entry, err := mc.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return mc.Track(ctx, userID, entry.Date, fields)
}

func (mc *MentalController) DeleteEntry(ctx context.Context, userID string, id int) error {
	if err := mc.entryRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	mc.publish(ctx, events.TypeEntryDeleted, userID, id)

	return nil
}

func (mc *MentalController) GetTherapySessions(ctx context.Context, userID string) ([]*TherapySession, error) {
	return mc.therapyRepo.ListByUser(ctx, userID)
}

func (mc *MentalController) AddTherapySession(
	ctx context.Context,
	userID string,
	session *TherapySession,
) error {
	log := mc.log.Function("AddTherapySession")

	if session.Date.IsZero() {
		return log.Error("session date is required", "userID", userID)
	}

	session.ID = 0
	session.UserID = userID

	return mc.therapyRepo.Create(ctx, session)
}

func (mc *MentalController) DeleteTherapySession(ctx context.Context, userID string, id int) error {
	return mc.therapyRepo.Delete(ctx, id, userID)
}

func (mc *MentalController) publish(ctx context.Context, eventType, userID string, entryID int) {
	err := mc.eventBus.Publish(ctx, events.Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		UserID: userID,
		Domain: string(DomainMental),
		Data:   map[string]any{"entryId": entryID},
	})
	if err != nil {
		mc.log.Function("publish").Warn("failed to publish entry event", "userID", userID, "error", err)
	}
}
