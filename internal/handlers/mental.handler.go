package handlers

import (
	"fmt"

	"tracker/internal/app"
	mentalController "tracker/internal/controllers/mental"
	"tracker/internal/logger"
	. "tracker/internal/models"
	"tracker/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MentalHandler struct {
	Handler
	controller *mentalController.MentalController
	schema     DomainSchema
	dates      *utils.DateValidator
}

func NewMentalHandler(app app.App, router fiber.Router) *MentalHandler {
	log := logger.New("handlers").File("mental_handler")
	schema, _ := SchemaFor(DomainMental)
	return &MentalHandler{
		controller: app.MentalController,
		schema:     schema,
		dates:      utils.NewDateValidator(),
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MentalHandler) Register() {
	mental := h.router.Group("/mental", h.middleware.RequireAuth)
	mental.Get("/overview", h.overview)
	mental.Post("/entries", h.track)
	mental.Get("/entries", h.history)
	mental.Get("/entries/export", h.export)
	mental.Get("/entries/:id", h.getEntry)
	mental.Put("/entries/:id", h.updateEntry)
	mental.Delete("/entries/:id", h.deleteEntry)
	mental.Get("/sessions", h.sessions)
	mental.Post("/sessions", h.addSession)
	mental.Delete("/sessions/:id", h.deleteSession)
}

func (h *MentalHandler) overview(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	overview, err := h.controller.GetOverview(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("overview"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "overview": overview})
}

func (h *MentalHandler) track(c *fiber.Ctx) error {
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

func (h *MentalHandler) history(c *fiber.Ctx) error {
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

func (h *MentalHandler) export(c *fiber.Ctx) error {
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
		"date", "mood_rating", "anxiety_level", "depression_level",
		"focus_clarity", "motivation", "social_connection",
		"meditation_minutes", "gratitude_practice", "therapy_session",
		"work_stress", "financial_stress", "relationship_stress", "health_stress",
		"triggers", "coping_strategies", "journal_entry",
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			utils.CSVDate(e.Date),
			utils.CSVInt(e.MoodRating),
			utils.CSVInt(e.AnxietyLevel),
			utils.CSVInt(e.DepressionLevel),
			utils.CSVInt(e.FocusClarity),
			utils.CSVInt(e.Motivation),
			utils.CSVInt(e.SocialConnection),
			utils.CSVInt(e.MeditationMinutes),
			utils.CSVBool(e.GratitudePractice),
			utils.CSVBool(e.TherapySession),
			utils.CSVBool(e.WorkStress),
			utils.CSVBool(e.FinancialStress),
			utils.CSVBool(e.RelationshipStress),
			utils.CSVBool(e.HealthStress),
			utils.CSVString(e.Triggers),
			utils.CSVString(e.CopingStrategies),
			utils.CSVString(e.JournalEntry),
		})
	}

	return sendCSV(c, "mental_entries.csv", header, rows)
}

func (h *MentalHandler) getEntry(c *fiber.Ctx) error {
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

func (h *MentalHandler) updateEntry(c *fiber.Ctx) error {
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

func (h *MentalHandler) deleteEntry(c *fiber.Ctx) error {
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

func (h *MentalHandler) sessions(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	sessions, err := h.controller.GetTherapySessions(c.Context(), user.ID)
	if err != nil {
		return entryError(c, h.log.Function("sessions"), err)
	}

	return c.JSON(fiber.Map{"message": "success", "sessions": sessions})
}

func (h *MentalHandler) addSession(c *fiber.Ctx) error {
	log := h.log.Function("addSession")
	user := c.Locals("user").(User)

	var req TherapySessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Er("failed to parse session request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse session request"})
	}

	result := h.dates.ValidateAndConvert(req.Date)
	if !result.IsValid {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": fmt.Sprintf("invalid date %q", req.Date)})
	}

	session := TherapySession{
		Date:        result.ParsedTime,
		Therapist:   req.Therapist,
		SessionType: req.SessionType,
		Notes:       req.Notes,
	}
	if req.FollowUpDate != nil {
		followUp := h.dates.ValidateAndConvert(*req.FollowUpDate)
		if !followUp.IsValid {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": fmt.Sprintf("invalid date %q", *req.FollowUpDate)})
		}
		parsed := followUp.ParsedTime
		session.FollowUpDate = &parsed
	}

	if err := h.controller.AddTherapySession(c.Context(), user.ID, &session); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to save session"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "session": session})
}

func (h *MentalHandler) deleteSession(c *fiber.Ctx) error {
	user := c.Locals("user").(User)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid session id"})
	}

	if err := h.controller.DeleteTherapySession(c.Context(), user.ID, id); err != nil {
		return entryError(c, h.log.Function("deleteSession"), err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
