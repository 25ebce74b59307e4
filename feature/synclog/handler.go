package synclog

import (
	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync history.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/sync/history", h.HandleHistory)
}

// HandleHistory returns the most recent sync runs.
// @Summary Sync run history
// @Tags synclog
// @Produce json
// @Param limit query int false "Maximum number of runs to return"
// @Success 200 {array} models.SyncRun
// @Router /sync/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	runs, err := h.service.History(c.Context(), c.QueryInt("limit"))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to load sync history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
	return c.JSON(runs)
}
