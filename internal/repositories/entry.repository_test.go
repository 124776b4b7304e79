package repositories

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tracker/internal/database"
	. "tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupEntryDB(t *testing.T) database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "entries.db")
	gormDB, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// Serialize writers so concurrent upserts contend on the unique index
	// instead of on sqlite's file lock.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(&HealthEntry{}, &MentalEntry{}, &FitnessEntry{}))
	t.Cleanup(func() { _ = sqlDB.Close() })

	return database.DB{SQL: gormDB}
}

func healthRepo(t *testing.T) EntryRepository[HealthEntry] {
	t.Helper()
	schema, ok := SchemaFor(DomainHealth)
	require.True(t, ok)
	return NewEntryRepository[HealthEntry](setupEntryDB(t), schema)
}

func TestUpsert_CreatesThenMerges(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 14, 30, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": 82.5})
	require.NoError(t, err)
	require.NotNil(t, first.Weight)
	assert.Equal(t, 82.5, *first.Weight)
	assert.Nil(t, first.SleepDuration)

	second, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"sleep_duration": 7.5})
	require.NoError(t, err)

	// Same logical entry: merged fields, stable identity
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Weight)
	assert.Equal(t, 82.5, *second.Weight)
	require.NotNil(t, second.SleepDuration)
	assert.Equal(t, 7.5, *second.SleepDuration)

	count, err := repo.CountRange(ctx, "owner-1", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUpsert_TruncatesToCalendarDate(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()

	morning := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 4, 2, 22, 15, 0, 0, time.UTC)

	a, err := repo.Upsert(ctx, "owner-1", morning, map[string]any{"energy_level": 6})
	require.NoError(t, err)
	b, err := repo.Upsert(ctx, "owner-1", evening, map[string]any{"stress_level": 3})
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
}

func TestUpsert_SeparateOwnersSeparateRows(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	a, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": 80.0})
	require.NoError(t, err)
	b, err := repo.Upsert(ctx, "owner-2", day, map[string]any{"weight": 70.0})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpsert_NilClearsStoredValue(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": 82.5})
	require.NoError(t, err)

	entry, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": nil})
	require.NoError(t, err)
	assert.Nil(t, entry.Weight)
}

func TestUpsert_RejectsUnknownField(t *testing.T) {
	repo := healthRepo(t)

	_, err := repo.Upsert(context.Background(), "owner-1", time.Now(), map[string]any{"steps": 9000})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestUpsert_RejectsTypeMismatch(t *testing.T) {
	repo := healthRepo(t)

	_, err := repo.Upsert(context.Background(), "owner-1", time.Now(), map[string]any{"weight": "heavy"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestUpsert_RequiresOwner(t *testing.T) {
	repo := healthRepo(t)

	_, err := repo.Upsert(context.Background(), "", time.Now(), map[string]any{"weight": 80.0})
	assert.Error(t, err)
}

func TestUpsert_ConcurrentWritersOneRow(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Upsert(ctx, "owner-1", day, map[string]any{"energy_level": (i % 10) + 1})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "writer %d", i)
	}

	count, err := repo.CountRange(ctx, "owner-1", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := healthRepo(t)

	_, err := repo.GetByID(context.Background(), 12345)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NonOwnerRejected(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	entry, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": 82.5})
	require.NoError(t, err)

	err = repo.Delete(ctx, entry.ID, "owner-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)

	// The row survives the rejected delete
	kept, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, kept.ID)
}

func TestDelete_Owner(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	entry, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": 82.5})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, entry.ID, "owner-1"))

	_, err = repo.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRange_DateBoundsInclusive(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()

	for d := 1; d <= 5; d++ {
		_, err := repo.Upsert(ctx, "owner-1",
			time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC),
			map[string]any{"energy_level": d})
		require.NoError(t, err)
	}

	start := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)

	entries, err := repo.ListRange(ctx, "owner-1", ListOptions{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first
	assert.Equal(t, 4, entries[0].Date.Day())
	assert.Equal(t, 2, entries[2].Date.Day())
}

func TestListRange_Pagination(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()

	for d := 1; d <= 5; d++ {
		_, err := repo.Upsert(ctx, "owner-1",
			time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC),
			map[string]any{"energy_level": d})
		require.NoError(t, err)
	}

	page, err := repo.ListRange(ctx, "owner-1", ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].Date.Day())
	assert.Equal(t, 2, page[1].Date.Day())

	total, err := repo.CountRange(ctx, "owner-1", ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestListRange_ScopedToOwner(t *testing.T) {
	repo := healthRepo(t)
	ctx := context.Background()
	day := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.Upsert(ctx, "owner-1", day, map[string]any{"weight": 80.0})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "owner-2", day, map[string]any{"weight": 70.0})
	require.NoError(t, err)

	entries, err := repo.ListRange(ctx, "owner-1", ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "owner-1", entries[0].UserID)
}

func TestListRange_FilterOutsideSchemaRejected(t *testing.T) {
	repo := healthRepo(t)

	_, err := repo.ListRange(context.Background(), "owner-1", ListOptions{
		Filters: map[string]any{"hashed_password": "x"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestListRange_SchemaFilter(t *testing.T) {
	schema, ok := SchemaFor(DomainFitness)
	require.True(t, ok)
	repo := NewEntryRepository[FitnessEntry](setupEntryDB(t), schema)
	ctx := context.Background()

	types := []string{"running", "cycling", "running"}
	for d, workoutType := range types {
		_, err := repo.Upsert(ctx, "owner-1",
			time.Date(2024, 4, d+1, 0, 0, 0, 0, time.UTC),
			map[string]any{"workout_type": workoutType})
		require.NoError(t, err)
	}

	entries, err := repo.ListRange(ctx, "owner-1", ListOptions{
		Filters: map[string]any{"workout_type": "running"},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
