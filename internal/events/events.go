package events

import (
	"context"
	"encoding/json"
	"tracker/config"
	"tracker/internal/database"
	"tracker/internal/logger"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const eventChannel = "tracker:events"

const (
	TypeEntrySaved   = "entry.saved"
	TypeEntryDeleted = "entry.deleted"
	TypeBroadcast    = "broadcast"
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	UserID    string         `json:"userId,omitempty"`
	Domain    string         `json:"domain,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventBus publishes events through the valkey events database so every
// server instance sees every event, and fans them out to local subscribers.
type EventBus struct {
	client database.CacheClient
	log    logger.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	handlers []func(Event)
}

func New(client database.CacheClient, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &EventBus{
		client: client,
		log:    logger.New("events"),
		ctx:    ctx,
		cancel: cancel,
	}

	go bus.listen()

	return bus
}

func (b *EventBus) listen() {
	log := b.log.Function("listen")

	err := b.client.Receive(
		b.ctx,
		b.client.B().Subscribe().Channel(eventChannel).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "message", msg.Message)
				return
			}

			b.mu.RLock()
			handlers := make([]func(Event), len(b.handlers))
			copy(handlers, b.handlers)
			b.mu.RUnlock()

			for _, handler := range handlers {
				handler(event)
			}
		},
	)
	if err != nil && b.ctx.Err() == nil {
		log.Er("event subscription terminated", err)
	}
}

func (b *EventBus) Publish(ctx context.Context, event Event) error {
	log := b.log.Function("Publish")

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "type", event.Type)
	}

	cmd := b.client.B().Publish().Channel(eventChannel).Message(string(payload)).Build()
	if err := b.client.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish event", err, "type", event.Type)
	}

	return nil
}

// Subscribe registers a handler for every event on the bus. Handlers run on
// the subscription goroutine and must not block.
func (b *EventBus) Subscribe(handler func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *EventBus) Close() error {
	b.cancel()
	return nil
}
