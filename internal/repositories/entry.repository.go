package repositories

import (
	"context"
	"errors"
	"tracker/internal/database"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/services"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ListOptions narrows a history query. Start/End are inclusive calendar
// dates; Filters are domain-specific column filters checked against the
// schema allowlist; Limit/Offset paginate (zero means no limit).
type ListOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
	Filters   map[string]any
	Limit     int
	Offset    int
}

// EntryRepository is the daily-entry store for one tracking domain. Upsert
// merges by (owner, date) and never produces a duplicate row; the composite
// unique index backs that up against concurrent writers.
type EntryRepository[T DailyEntry] interface {
	Upsert(ctx context.Context, ownerID string, date time.Time, fields map[string]any) (*T, error)
	GetByID(ctx context.Context, id int) (*T, error)
	ListRange(ctx context.Context, ownerID string, opts ListOptions) ([]*T, error)
	CountRange(ctx context.Context, ownerID string, opts ListOptions) (int64, error)
	Delete(ctx context.Context, id int, ownerID string) error
}

type entryRepository[T DailyEntry] struct {
	db     database.DB
	schema DomainSchema
	log    logger.Logger
}

func NewEntryRepository[T DailyEntry](db database.DB, schema DomainSchema) EntryRepository[T] {
	return &entryRepository[T]{
		db:     db,
		schema: schema,
		log:    logger.New("entryRepository").With("domain", string(schema.Domain)),
	}
}

func (r *entryRepository[T]) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *entryRepository[T]) Upsert(
	ctx context.Context,
	ownerID string,
	date time.Time,
	fields map[string]any,
) (*T, error) {
	log := r.log.Function("Upsert")

	if ownerID == "" {
		return nil, log.Error("owner ID is required")
	}

	clean, err := r.schema.Normalize(fields)
	if err != nil {
		return nil, log.Err("field data rejected by schema", errors.Join(ErrBadInput, err), "ownerID", ownerID)
	}

	day := DateOnly(date)

	entry, err := r.upsertOnce(ctx, ownerID, day, clean)
	if errors.Is(err, ErrConflict) {
		// Lost the insert race; the row exists now, so one retry resolves
		// to the update path.
		log.Warn("upsert lost insert race, retrying as update", "ownerID", ownerID, "date", day)
		entry, err = r.upsertOnce(ctx, ownerID, day, clean)
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *entryRepository[T]) upsertOnce(
	ctx context.Context,
	ownerID string,
	day time.Time,
	clean map[string]any,
) (*T, error) {
	log := r.log.Function("upsertOnce")
	db := r.getDB(ctx)

	var existing T
	err := db.Where("user_id = ? AND date = ?", ownerID, day).First(&existing).Error
	if err == nil {
		if len(clean) > 0 {
			if err := db.Model(&existing).Updates(clean).Error; err != nil {
				return nil, log.Err("failed to update entry", err, "ownerID", ownerID, "date", day)
			}
		}
		return r.reload(ctx, ownerID, day)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to look up entry", err, "ownerID", ownerID, "date", day)
	}

	now := time.Now().UTC()
	row := make(map[string]any, len(clean)+4)
	for k, v := range clean {
		row[k] = v
	}
	row["user_id"] = ownerID
	row["date"] = day
	row["created_at"] = now
	row["updated_at"] = now

	if err := db.Model(new(T)).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, log.Err("insert hit uniqueness constraint", errors.Join(ErrConflict, err),
				"ownerID", ownerID, "date", day)
		}
		return nil, log.Err("failed to create entry", err, "ownerID", ownerID, "date", day)
	}

	return r.reload(ctx, ownerID, day)
}

func (r *entryRepository[T]) reload(ctx context.Context, ownerID string, day time.Time) (*T, error) {
	var entry T
	if err := r.getDB(ctx).Where("user_id = ? AND date = ?", ownerID, day).First(&entry).Error; err != nil {
		return nil, r.log.Function("reload").
			Err("failed to reload entry after write", err, "ownerID", ownerID, "date", day)
	}
	return &entry, nil
}

func (r *entryRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	log := r.log.Function("GetByID")

	var entry T
	if err := r.getDB(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, log.Err("failed to get entry by id", err, "id", id)
	}

	return &entry, nil
}

func (r *entryRepository[T]) ListRange(
	ctx context.Context,
	ownerID string,
	opts ListOptions,
) ([]*T, error) {
	log := r.log.Function("ListRange")

	query, err := r.rangeQuery(ctx, ownerID, opts)
	if err != nil {
		return nil, err
	}

	query = query.Order("date DESC")
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var entries []*T
	if err := query.Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list entries", err, "ownerID", ownerID)
	}

	return entries, nil
}

func (r *entryRepository[T]) CountRange(
	ctx context.Context,
	ownerID string,
	opts ListOptions,
) (int64, error) {
	log := r.log.Function("CountRange")

	query, err := r.rangeQuery(ctx, ownerID, opts)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, log.Err("failed to count entries", err, "ownerID", ownerID)
	}

	return count, nil
}

func (r *entryRepository[T]) rangeQuery(
	ctx context.Context,
	ownerID string,
	opts ListOptions,
) (*gorm.DB, error) {
	log := r.log.Function("rangeQuery")

	if ownerID == "" {
		return nil, log.Error("owner ID is required")
	}

	query := r.getDB(ctx).Model(new(T)).Where("user_id = ?", ownerID)

	if opts.StartDate != nil {
		query = query.Where("date >= ?", DateOnly(*opts.StartDate))
	}
	if opts.EndDate != nil {
		query = query.Where("date <= ?", DateOnly(*opts.EndDate))
	}

	for column, value := range opts.Filters {
		if _, ok := r.schema.Fields[column]; !ok {
			return nil, log.Err("filter column not in domain schema", ErrBadInput, "column", column)
		}
		query = query.Where(column+" = ?", value)
	}

	return query, nil
}

func (r *entryRepository[T]) Delete(ctx context.Context, id int, ownerID string) error {
	log := r.log.Function("Delete")

	entry, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if (*entry).Owner() != ownerID {
		// Logged as forbidden for audit even though handlers may present it
		// as not-found to the caller.
		return log.Err("delete rejected for non-owner", ErrForbidden, "id", id, "ownerID", ownerID)
	}

	if err := r.getDB(ctx).Delete(entry).Error; err != nil {
		return log.Err("failed to delete entry", err, "id", id)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
