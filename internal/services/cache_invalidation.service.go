package services

import (
	"fmt"
	"time"

	"tracker/internal/database"
	"tracker/internal/events"
	"tracker/internal/logger"
)

// OverviewCacheTTL bounds staleness for cached overviews when an
// invalidation event is lost.
const OverviewCacheTTL = 5 * time.Minute

func OverviewCacheKey(domain, userID string) string {
	return fmt.Sprintf("overview:%s:%s", domain, userID)
}

// CacheInvalidationService drops cached per-domain overviews whenever an
// entry event for that owner comes over the bus, so reads after a write on
// any server instance see fresh numbers.
type CacheInvalidationService struct {
	db  database.DB
	log logger.Logger
}

func NewCacheInvalidationService(
	db database.DB,
	eventBus *events.EventBus,
) *CacheInvalidationService {
	service := &CacheInvalidationService{
		db:  db,
		log: logger.New("CacheInvalidationService"),
	}

	eventBus.Subscribe(service.handleEvent)

	return service
}

func (s *CacheInvalidationService) handleEvent(event events.Event) {
	switch event.Type {
	case events.TypeEntrySaved, events.TypeEntryDeleted:
	default:
		return
	}

	if event.UserID == "" || event.Domain == "" {
		return
	}

	key := OverviewCacheKey(event.Domain, event.UserID)
	if err := database.NewCacheBuilder(s.db.Cache.General, key).Delete(); err != nil {
		s.log.Function("handleEvent").
			Warn("failed to invalidate overview cache", "key", key, "error", err)
	}
}
