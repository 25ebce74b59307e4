package catalog

import (
	"errors"

	"catalog-sync/core/feed"
	"catalog-sync/core/logger"
	"catalog-sync/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service   *Service
	syncToken string
}

// NewHandler creates a new HTTP handler. syncToken, when non-empty, is the
// bearer credential required to trigger POST /sync (for unattended schedulers).
func NewHandler(service *Service, syncToken string) *Handler {
	return &Handler{service: service, syncToken: syncToken}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)

	group := app.Group("/properties")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
	group.Post("/:id/views", h.HandleIncrementViews)
}

type syncRequest struct {
	Mode string `json:"mode"`
}

// HandleSync triggers one catalog synchronization.
// @Summary Run catalog sync
// @Description Reconciles the catalog against the external feed and commits the result.
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body syncRequest true "Sync mode (merge or replace)"
// @Success 200 {object} map[string]interface{} "Sync counters"
// @Failure 500 {object} map[string]interface{} "Structured sync failure"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if h.syncToken != "" {
		if c.Get("Authorization") != "Bearer "+h.syncToken {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "unauthorized",
				"message": "missing or invalid sync credential",
			})
		}
	}

	var req syncRequest
	// An empty body is fine, it means the default mode.
	_ = c.BodyParser(&req)
	if req.Mode == "" {
		req.Mode = string(ModeMerge)
	}

	report, err := h.service.Sync(c.Context(), Mode(req.Mode))
	if err != nil {
		l.Error("Catalog sync failed", zap.String("mode", req.Mode), zap.Error(err))
		status, code := syncErrorCode(err)
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   code,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"total":            report.Total,
		"added":            report.Stats.Added,
		"updated":          report.Stats.Updated,
		"removed":          report.Stats.Removed,
		"totalFeedRecords": report.Stats.TotalFeedRecords,
		"message":          "catalog synchronized",
	})
}

// syncErrorCode maps a sync failure onto an HTTP status and a stable error code.
func syncErrorCode(err error) (int, string) {
	var feedUnavailable *feed.UnavailableError
	var feedParse *feed.ParseError
	var storeUnavailable *store.UnavailableError

	switch {
	case errors.Is(err, ErrInvalidMode):
		return fiber.StatusBadRequest, "invalid_mode"
	case errors.Is(err, feed.ErrMissingCredentials):
		return fiber.StatusInternalServerError, "configuration_error"
	case errors.As(err, &feedUnavailable):
		return fiber.StatusInternalServerError, "feed_unavailable"
	case errors.As(err, &feedParse):
		return fiber.StatusInternalServerError, "feed_parse_error"
	case errors.Is(err, ErrSyncConflict):
		return fiber.StatusInternalServerError, "sync_conflict"
	case errors.As(err, &storeUnavailable):
		return fiber.StatusInternalServerError, "store_unavailable"
	default:
		return fiber.StatusInternalServerError, "internal_error"
	}
}

// HandleList returns the whole catalog.
// @Summary List properties
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Property
// @Router /properties [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	properties, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(properties)
}

// HandleGet returns one property by id.
// @Summary Get property
// @Tags catalog
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	property, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(property)
}

// HandleCreate inserts a manual property.
// @Summary Create property
// @Tags catalog
// @Accept json
// @Produce json
// @Success 201 {object} models.Property
// @Router /properties [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var input PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	property, err := h.service.Create(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}

// HandleUpdate edits a property.
// @Summary Update property
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Router /properties/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var input PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	property, err := h.service.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(property)
}

// HandleDelete removes a property and its stored photos.
// @Summary Delete property
// @Tags catalog
// @Param id path string true "Property ID"
// @Success 204
// @Router /properties/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleIncrementViews bumps the view counter of a property.
// @Summary Increment property views
// @Tags catalog
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} map[string]int64
// @Router /properties/{id}/views [post]
func (h *Handler) HandleIncrementViews(c *fiber.Ctx) error {
	views, err := h.service.IncrementViews(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"view_count": views})
}

// fail renders a CRUD error as structured JSON. The body is always well-formed.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	l := logger.WithRayID(h.service.logger, c)

	switch {
	case errors.Is(err, ErrPropertyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, ErrTitleRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_input", "message": err.Error()})
	case errors.Is(err, ErrSyncConflict):
		l.Error("Catalog mutation exhausted its retry budget", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": err.Error()})
	default:
		l.Error("Catalog request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": err.Error()})
	}
}
