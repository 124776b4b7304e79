package middleware

import (
	"tracker/config"
	"tracker/internal/database"
	"tracker/internal/events"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

const SessionCookie = "session_id"

type Middleware struct {
	db       database.DB
	eventBus *events.EventBus
	config   config.Config
	userRepo repositories.UserRepository
	log      logger.Logger
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	userRepo repositories.UserRepository,
) Middleware {
	return Middleware{
		db:       db,
		eventBus: eventBus,
		config:   config,
		userRepo: userRepo,
		log:      logger.New("middleware"),
	}
}

// RequireAuth resolves the session cookie to a user and stores it in the
// request locals. Requests without a valid session get a 401.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	log := m.log.Function("RequireAuth")

	sessionID := c.Cookies(SessionCookie)
	if sessionID == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	var session SessionData
	found, err := database.NewCacheBuilder(m.db.Cache.Session, sessionID).
		WithContext(c.Context()).
		Get(&session)
	if err != nil {
		log.Er("failed to read session cache", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error"})
	}
	if !found {
		c.ClearCookie(SessionCookie)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "session expired"})
	}

	user, err := m.userRepo.GetByID(c.Context(), session.UserID)
	if err != nil || !user.IsActive {
		c.ClearCookie(SessionCookie)
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "session expired"})
	}

	c.Locals("user", *user)
	c.Locals("sessionID", sessionID)

	return c.Next()
}
