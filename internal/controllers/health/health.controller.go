package healthController

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

type HealthController struct {
	entryRepo      repositories.EntryRepository[HealthEntry]
	medicationRepo repositories.MedicationRepository
	eventBus       *events.EventBus
	db             database.DB
	log            logger.Logger
}

func New(
	entryRepo repositories.EntryRepository[HealthEntry],
	medicationRepo repositories.MedicationRepository,
	eventBus *events.EventBus,
	db database.DB,
) *HealthController {
	return &HealthController{
		entryRepo:      entryRepo,
		medicationRepo: medicationRepo,
		eventBus:       eventBus,
		db:             db,
		log:            logger.New("HealthController"),
	}
}

type Averages struct {
	SleepDuration *float64 `json:"sleepDuration"`
	EnergyLevel   *float64 `json:"energyLevel"`
	StressLevel   *float64 `json:"stressLevel"`
	WaterIntake   *float64 `json:"waterIntake"`
}

type Overview struct {
	RecentEntries []*HealthEntry `json:"recentEntries"`
	Averages      Averages       `json:"averages"`
	LastEntry     *HealthEntry   `json:"lastEntry"`
}

// GetOverview returns the most recent entries with trailing averages over
// them. Averages skip unrecorded values rather than counting them as zero.
func (hc *HealthController) GetOverview(ctx context.Context, userID string) (*Overview, error) {
	log := hc.log.Function("GetOverview")

	cacheKey := services.OverviewCacheKey(string(DomainHealth), userID)
	cache := database.NewCacheBuilder(hc.db.Cache.General, cacheKey).WithContext(ctx)

	var cached Overview
	if found, err := cache.Get(&cached); err == nil && found {
		return &cached, nil
	}

	entries, err := hc.entryRepo.ListRange(ctx, userID, repositories.ListOptions{Limit: overviewWindow})
	if err != nil {
		return nil, log.Err("failed to get recent entries", err, "userID", userID)
	}

	overview := &Overview{
		RecentEntries: entries,
		Averages: Averages{
			SleepDuration: stats.Average(entries, func(e *HealthEntry) *float64 { return e.SleepDuration }),
			EnergyLevel:   stats.AverageInt(entries, func(e *HealthEntry) *int { return e.EnergyLevel }),
			StressLevel:   stats.AverageInt(entries, func(e *HealthEntry) *int { return e.StressLevel }),
			WaterIntake:   stats.Average(entries, func(e *HealthEntry) *float64 { return e.WaterIntake }),
		},
	}

	if len(entries) > 0 {
		overview.LastEntry = entries[0]
	}

	if err := cache.WithStruct(overview).WithTTL(services.OverviewCacheTTL).Set(); err != nil {
		log.Warn("failed to cache overview", "userID", userID, "error", err)
	}

	return overview, nil
}

func (hc *HealthController) Track(
	ctx context.Context,
	userID string,
	date time.Time,
	fields map[string]any,
) (*HealthEntry, error) {
	entry, err := hc.entryRepo.Upsert(ctx, userID, date, fields)
	if err != nil {
		return nil, err
	}

	hc.publish(ctx, events.TypeEntrySaved, userID, entry.ID)

	return entry, nil
}

func (hc *HealthController) History(
	ctx context.Context,
	userID string,
	opts repositories.ListOptions,
) ([]*HealthEntry, int64, error) {
	entries, err := hc.entryRepo.ListRange(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := hc.entryRepo.CountRange(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (hc *HealthController) GetEntry(ctx context.Context, userID string, id int) (*HealthEntry, error) {
	entry, err := hc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.UserID != userID {
		return nil, hc.log.Function("GetEntry").
			Err("entry access rejected for non-owner", repositories.ErrForbidden, "id", id, "userID", userID)
	}

	return entry, nil
}

// UpdateEntry applies a partial update to an existing entry. The fields flow
// through the same upsert path as Track, keyed by the entry's own date.
func (hc *HealthController) UpdateEntry(
	ctx context.Context,
	userID string,
	id int,
	fields map[string]any,
) (*HealthEntry, error) {
	entry, err := hc.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	return hc.Track(ctx, userID, entry.Date, fields)
}

func (hc *HealthController) DeleteEntry(ctx context.Context, userID string, id int) error {
	if err := hc.entryRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	hc.publish(ctx, events.TypeEntryDeleted, userID, id)

	return nil
}

func (hc *HealthController) GetMedications(ctx context.Context, userID string) ([]*Medication, error) {
	return hc.medicationRepo.ListByUser(ctx, userID)
}

func (hc *HealthController) AddMedication(ctx context.Context, userID string, medication *Medication) error {
	log := hc.log.Function("AddMedication")

	if medication.Name == "" {
		return log.Error("medication name is required", "userID", userID)
	}

	medication.ID = 0
	medication.UserID = userID

	return hc.medicationRepo.Create(ctx, medication)
}

func (hc *HealthController) DeleteMedication(ctx context.Context, userID string, id int) error {
	return hc.medicationRepo.Delete(ctx, id, userID)
}

func (hc *HealthController) publish(ctx context.Context, eventType, userID string, entryID int) {
	err := hc.eventBus.Publish(ctx, events.Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		UserID: userID,
		Domain: string(DomainHealth),
		Data:   map[string]any{"entryId": entryID},
	})
	if err != nil {
		hc.log.Function("publish").Warn("failed to publish entry event", "userID", userID, "error", err)
	}
}
