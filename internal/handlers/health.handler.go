package handlers

import (
	"fmt"
	"time"

	"tracker/internal/app"
	healthController "tracker/internal/controllers/health"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	Handler
	controller *healthController.HealthController
	schema     DomainSchema
	dates      *utils.DateValidator
}

func NewHealthHandler(app app.App, router fiber.Router) *HealthHandler {
	log := logger.New("handlers").File("health_handler")
	schema, _ := SchemaFor(DomainHealth)
	return &HealthHandler{
		controller: app.HealthController,
		schema:     schema,
		dates:      utils.NewDateValidator(),
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *HealthHandler) Register() {
	health := h.router.Group("/health", h.middleware.RequireAuth)
	health.Get("/overview", h.overview)
	health.Post("/entries", h.track)
	health.Get("/entries", h.history)
	health.Get("/entries/export", h.export)
	health.Get("/entries/:id", h.getEntry)
	health.Put("/entries/:id", h.updateEntry)
	health.Delete("/entries/:id", h.deleteEntry)
	health.Get("/medications", h.medications)
	health.Post("/medications", h.addMedication)
	health.Delete("/medications/:id", h.deleteMedication)
}

func (h *HealthHandler) overview(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	overview, err := h.controller.GetOverview(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("overview"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "overview": overview})
}

func (h *HealthHandler) track(c *fiber.Ctx) error {
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

func (h *HealthHandler) history(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	opts, page, err := parseListOptions(c, h.dates)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
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

func (h *HealthHandler) export(c *fiber.Ctx) error {
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
		"date", "weight", "blood_pressure_systolic", "blood_pressure_diastolic",
		"heart_rate", "body_temperature", "sleep_duration", "sleep_quality",
		"energy_level", "stress_level", "water_intake", "meal_quality",
		"alcohol_consumption", "smoking", "symptoms", "notes",
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			utils.CSVDate(e.Date),
			utils.CSVFloat(e.Weight),
			utils.CSVInt(e.BloodPressureSystolic),
			utils.CSVInt(e.BloodPressureDiastolic),
			utils.CSVInt(e.HeartRate),
			utils.CSVFloat(e.BodyTemperature),
			utils.CSVFloat(e.SleepDuration),
			utils.CSVInt(e.SleepQuality),
			utils.CSVInt(e.EnergyLevel),
			utils.CSVInt(e.StressLevel),
			utils.CSVFloat(e.WaterIntake),
			utils.CSVInt(e.MealQuality),
			utils.CSVBool(e.AlcoholConsumption),
			utils.CSVBool(e.Smoking),
			utils.CSVString(e.Symptoms),
			utils.CSVString(e.Notes),
		})
	}

	return sendCSV(c, "health_entries.csv", header, rows)
}

func (h *HealthHandler) getEntry(c *fiber.Ctx) error {
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

func (h *HealthHandler) updateEntry(c *fiber.Ctx) error {
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

func (h *HealthHandler) deleteEntry(c *fiber.Ctx) error {
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

func (h *HealthHandler) medications(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	medications, err := h.controller.GetMedications(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("medications"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "medications": medications})
}

func (h *HealthHandler) addMedication(c *fiber.Ctx) error {
	log := h.log.Function("addMedication")
	user := c.Locals("user").(User)

	var req MedicationRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse medication request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse medication request"})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}

	medication := Medication{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Notes:     req.Notes,
	}
	for raw, target := range map[*string]**time.Time{
		req.StartDate: &medication.StartDate,
		req.EndDate:   &medication.EndDate,
	} {
		if raw == nil {
			continue
		}
		result := h.dates.ValidateAndConvert(*raw)
		if !result.IsValid {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": fmt.Sprintf("invalid date %q", *raw)})
		}
		parsed := result.ParsedTime
		*target = &parsed
	}

	if err := h.controller.AddMedication(c.Context(), user.ID, &medication); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to save medication"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "medication": medication})
}

func (h *HealthHandler) deleteMedication(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid medication id"})
	}

	if err := h.controller.DeleteMedication(c.Context(), user.ID, id); err != nil {
		return entryError(c, h.log.Function("deleteMedication"), err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
