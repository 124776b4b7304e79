package handlers

import (
	"errors"
	"tracker/internal/app"
	userController "tracker/internal/controllers/users"
	"tracker/internal/handlers/middleware"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller *userController.UserController
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		controller: app.UserController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	users.Post("/register", h.register)
	users.Post("/login", h.login)

	users.Get("/", h.middleware.RequireAuth, h.getUser)
	users.Post("/logout", h.middleware.RequireAuth, h.logout)
	users.Put("/profile", h.middleware.RequireAuth, h.updateProfile)
	users.Put("/password", h.middleware.RequireAuth, h.changePassword)
}

func (h *UserHandler) register(c *fiber.Ctx) error {
	log := h.log.Function("register")

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse register request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse register request"})
	}

	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "password must be at least 8 characters"})
	}

	user, err := h.controller.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, userController.ErrLoginTaken) || errors.Is(err, userController.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to register"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	user, sessionID, err := h.controller.Login(c.Context(), loginRequest)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid login or password"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Expires:  time.Now().Add(h.controller.SessionTTL()),
		HTTPOnly: true,
		Secure:   h.controller.Config.CookieSecure,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) getUser(c *fiber.Ctx) error {
	user := c.Locals("user").(User)
	if user.ID == "" {
		h.log.Function("getUser").ErMsg("No user found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get user"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": user})
}

func (h *UserHandler) logout(c *fiber.Ctx) error {
	if sessionID, ok := c.Locals("sessionID").(string); ok {
		h.controller.Logout(c.Context(), sessionID)
	}
	c.ClearCookie(middleware.SessionCookie)

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	log := h.log.Function("updateProfile")
	user := c.Locals("user").(User)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse profile request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse profile request"})
	}

	updated, err := h.controller.UpdateProfile(c.Context(), user, req)
	if err != nil {
		if errors.Is(err, userController.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": updated})
}

func (h *UserHandler) changePassword(c *fiber.Ctx) error {
	log := h.log.Function("changePassword")
	user := c.Locals("user").(User)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse password request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse password request"})
	}

	if err := h.controller.ChangePassword(c.Context(), user, req); err != nil {
		if errors.Is(err, userController.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "current password is incorrect"})
		}
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to change password"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
