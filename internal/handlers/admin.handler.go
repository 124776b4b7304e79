package handlers

import (
	"errors"

	"tracker/internal/app"
	adminController "tracker/internal/controllers/admin"
	"tracker/internal/logger"
	. "tracker/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller *adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		controller: app.AdminController,
		Handler: Handler{
			log:        logger.New("handlers").File("admin_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAuth)
	admin.Post("/broadcast", h.broadcast)
}

func (h *AdminHandler) broadcast(c *fiber.Ctx) error {
	log := h.log.Function("broadcast")
	user := c.Locals("user").(User)

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse broadcast request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse broadcast request"})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "message is required"})
	}

	if err := h.controller.SendBroadcast(c.Context(), user, req.Message); err != nil {
		if errors.Is(err, adminController.ErrNotAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "error"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
