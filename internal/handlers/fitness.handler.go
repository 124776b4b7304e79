package handlers

import (
	"tracker/internal/app"
	fitnessController "tracker/internal/controllers/fitness"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FitnessHandler struct {
	Handler
	controller *fitnessController.FitnessController
	schema     DomainSchema
	dates      *utils.DateValidator
}

func NewFitnessHandler(app app.App, router fiber.Router) *FitnessHandler {
	log := logger.New("handlers").File("fitness_handler")
	schema, _ := SchemaFor(DomainFitness)
	return &FitnessHandler{
		controller: app.FitnessController,
		schema:     schema,
		dates:      utils.NewDateValidator(),
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *FitnessHandler) Register() {
	fitness := h.router.Group("/fitness", h.middleware.RequireAuth)
	fitness.Get("/overview", h.overview)
	fitness.Post("/entries", h.track)
	fitness.Get("/entries", h.history)
	fitness.Get("/entries/export", h.export)
	fitness.Get("/entries/:id", h.getEntry)
	fitness.Put("/entries/:id", h.updateEntry)
	fitness.Delete("/entries/:id", h.deleteEntry)
	fitness.Get("/analytics", h.analytics)
	fitness.Get("/plans", h.getPlan)
	fitness.Post("/plans", h.savePlan)
	fitness.Delete("/plans/:id", h.deletePlan)
}

func (h *FitnessHandler) overview(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	overview, err := h.controller.GetOverview(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("overview"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "overview": overview})
}

func (h *FitnessHandler) track(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	date, fields, err := parseEntryBody(c, h.dates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.schema.ValidateInput(fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	entry, err := h.controller.Track(c.Context(), user.ID, date, fields)
	if err != nil {
		return entryError(c, h.log.Function("track"), err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "entry": entry})
}

func (h *FitnessHandler) history(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	opts, page, err := parseListOptions(c, h.dates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if workoutType := c.Query("workout_type"); workoutType != "" {
		opts.Filters = map[string]any{"workout_type": workoutType}
	}

	entries, total, err := h.controller.History(c.Context(), user.ID, opts)
	if err != nil {
		return entryError(c, h.log.Function("history"), err)
	}

	return c.JSON(fiber.Map{
		"message": "success",
		"entries": entries,
		"total":   total,
		"page":    page,
		"perPage": opts.Limit,
	})
}

func (h *FitnessHandler) export(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	opts, _, err := parseListOptions(c, h.dates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	opts.Limit = 0
	opts.Offset = 0

	entries, _, err := h.controller.History(c.Context(), user.ID, opts)
	if err != nil {
		return entryError(c, h.log.Function("export"), err)
	}

	header := []string{
		"date", "steps", "distance", "active_minutes", "calories_burned",
		"workout_type", "workout_duration", "workout_intensity",
		"heart_rate_avg", "heart_rate_max", "recovery_score", "soreness_level",
		"workout_notes",
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			utils.CSVDate(e.Date),
			utils.CSVInt(e.Steps),
			utils.CSVFloat(e.Distance),
			utils.CSVInt(e.ActiveMinutes),
			utils.CSVInt(e.CaloriesBurned),
			utils.CSVString(e.WorkoutType),
			utils.CSVInt(e.WorkoutDuration),
			utils.CSVInt(e.WorkoutIntensity),
			utils.CSVInt(e.HeartRateAvg),
			utils.CSVInt(e.HeartRateMax),
			utils.CSVInt(e.RecoveryScore),
			utils.CSVInt(e.SorenessLevel),
			utils.CSVString(e.WorkoutNotes),
		})
	}

	return sendCSV(c, "fitness_entries.csv", header, rows)
}

func (h *FitnessHandler) getEntry(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid entry id"})
	}

	entry, err := h.controller.GetEntry(c.Context(), user.ID, id)
	if err != nil {
		return entryError(c, h.log.Function("getEntry"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "entry": entry})
}

func (h *FitnessHandler) updateEntry(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid entry id"})
	}

	_, fields, err := parseEntryBody(c, h.dates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.schema.ValidateInput(fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	entry, err := h.controller.UpdateEntry(c.Context(), user.ID, id, fields)
	if err != nil {
		return entryError(c, h.log.Function("updateEntry"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "entry": entry})
}

func (h *FitnessHandler) deleteEntry(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid entry id"})
	}

	if err := h.controller.DeleteEntry(c.Context(), user.ID, id); err != nil {
		return entryError(c, h.log.Function("deleteEntry"), err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *FitnessHandler) analytics(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	analytics, err := h.controller.GetAnalytics(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("analytics"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "analytics": analytics})
}

func (h *FitnessHandler) getPlan(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	plan, err := h.controller.GetPlan(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("getPlan"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "plan": plan})
}

func (h *FitnessHandler) savePlan(c *fiber.Ctx) error {
	log := h.log.Function("savePlan")
	user := c.Locals("user").(User)

	var req WorkoutPlanRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse plan request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse plan request"})
	}

	plan, err := h.controller.SavePlan(c.Context(), user.ID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to save plan"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "plan": plan})
}

func (h *FitnessHandler) deletePlan(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid plan id"})
	}

	if err := h.controller.DeletePlan(c.Context(), user.ID, id); err != nil {
		return entryError(c, h.log.Function("deletePlan"), err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
