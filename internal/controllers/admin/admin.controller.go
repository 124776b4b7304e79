package adminController

import (
	"context"
	"errors"
	"tracker/config"
	"tracker/internal/events"
	"tracker/internal/logger"
	"time"

	. "tracker/internal/models"

	"github.com/google/uuid"
)

var ErrNotAdmin = errors.New("user is not an administrator")

type AdminController struct {
	Config   config.Config
	log      logger.Logger
	eventBus *events.EventBus
}

func New(
	eventBus *events.EventBus,
	config config.Config,
) *AdminController {
	return &AdminController{
		Config:   config,
		log:      logger.New("AdminController"),
		eventBus: eventBus,
	}
}

// SendBroadcast pushes a message to every connected user. Only admins may
// broadcast; the event carries no target user so the websocket layer fans
// it out to all clients.
func (c *AdminController) SendBroadcast(ctx context.Context, user User, message string) error {
	log := c.log.Function("SendBroadcast")

	if !user.IsAdmin {
		return log.Err("broadcast rejected", ErrNotAdmin, "userID", user.ID)
	}

	event := events.Event{
		ID:   uuid.New().String(),
		Type: events.TypeBroadcast,
		Data: map[string]any{
			"message": message,
			"from":    user.DisplayName,
		},
		Timestamp: time.Now().UTC(),
	}

	log.Info("Broadcasting admin message", "userID", user.ID)
	if err := c.eventBus.Publish(ctx, event); err != nil {
		return log.Err("failed to publish broadcast", err, "userID", user.ID)
	}

	return nil
}
