package websockets

import (
	"tracker/config"
	"tracker/internal/database"
	"tracker/internal/events"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Manager fans bus events out to the owning user's open websocket
// connections so dashboards refresh when an entry is saved elsewhere.
type Manager struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	log      logger.Logger

	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]bool // keyed by user ID
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	manager := &Manager{
		db:       db,
		eventBus: eventBus,
		config:   config,
		log:      logger.New("websockets"),
		clients:  make(map[string]map[*websocket.Conn]bool),
	}

	eventBus.Subscribe(manager.dispatch)

	return manager, nil
}

// HandleWebSocket owns the connection for its lifetime. The auth middleware
// has already resolved the user before the upgrade.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	user, ok := c.Locals("user").(User)
	if !ok || user.ID == "" {
		log.ErMsg("websocket connection without authenticated user")
		_ = c.Close()
		return
	}

	m.register(user.ID, c)
	defer m.unregister(user.ID, c)

	log.Info("websocket connected", "userID", user.ID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}

	log.Info("websocket disconnected", "userID", user.ID)
}

func (m *Manager) register(userID string, c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.clients[userID] == nil {
		m.clients[userID] = make(map[*websocket.Conn]bool)
	}
	m.clients[userID][c] = true
}

func (m *Manager) unregister(userID string, c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients[userID], c)
	if len(m.clients[userID]) == 0 {
		delete(m.clients, userID)
	}
	_ = c.Close()
}

// dispatch runs on the event bus subscription goroutine; delivery is
// best-effort and a dead connection is dropped on the next read error.
func (m *Manager) dispatch(event events.Event) {
	log := m.log.Function("dispatch")

	m.mu.RLock()
	defer m.mu.RUnlock()

	var targets map[*websocket.Conn]bool
	if event.UserID != "" {
		targets = m.clients[event.UserID]
	}

	if event.Type == events.TypeBroadcast {
		for _, conns := range m.clients {
			for conn := range conns {
				if err := conn.WriteJSON(event); err != nil {
					log.Warn("failed to write broadcast event", "error", err)
				}
			}
		}
		return
	}

	for conn := range targets {
		if err := conn.WriteJSON(event); err != nil {
			log.Warn("failed to write event", "userID", event.UserID, "error", err)
		}
	}
}

// ConnectedUsers reports how many distinct users have an open connection.
func (m *Manager) ConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
