package assets

import (
	"errors"
	"io"

	"catalog-sync/core/logger"
	"catalog-sync/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for property photos.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the photo routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/properties/:id/photos")
	group.Post("/", h.HandleUpload)
	group.Delete("/", h.HandleDelete)
}

// HandleUpload commits a multipart batch of photos for a property.
// @Summary Upload property photos
// @Description Validates and commits a batch of photos atomically. Invalid files are reported, valid ones land in one commit.
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Param photos formData file true "Photo files"
// @Success 200 {object} BatchResult
// @Failure 400 {object} map[string]string
// @Router /properties/{id}/photos [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	propertyID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_input", "message": "expected a multipart form"})
	}

	var uploads []Upload
	for _, header := range form.File["photos"] {
		file, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_input", "message": "unreadable file " + header.Filename})
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_input", "message": "unreadable file " + header.Filename})
		}
		uploads = append(uploads, Upload{Name: header.Filename, Content: content})
	}

	result, err := h.service.CommitPhotos(c.Context(), propertyID, uploads)
	if err != nil {
		return h.fail(c, l, result, err)
	}

	l.Info("Photo batch committed",
		zap.String("property_id", propertyID),
		zap.Int("applied", len(result.Applied)),
		zap.Int("rejected", len(result.Rejected)),
	)
	return c.JSON(result)
}

type deleteRequest struct {
	Paths []string `json:"paths"`
}

// HandleDelete removes stored photos from a property in one commit.
// @Summary Delete property photos
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param body body deleteRequest true "Stored photo paths to remove"
// @Success 200 {object} BatchResult
// @Router /properties/{id}/photos [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req deleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_input", "message": "invalid body"})
	}

	result, err := h.service.DeletePhotos(c.Context(), c.Params("id"), req.Paths)
	if err != nil {
		return h.fail(c, l, result, err)
	}
	return c.JSON(result)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, result *BatchResult, err error) error {
	switch {
	case errors.Is(err, ErrEmptyBatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_input", "message": err.Error()})
	case errors.Is(err, ErrAllRejected):
		body := fiber.Map{"error": "invalid_input", "message": err.Error()}
		if result != nil {
			body["rejected"] = result.Rejected
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, catalog.ErrPropertyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, ErrCommitConflict):
		l.Error("Photo batch exhausted its retry budget", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": err.Error()})
	default:
		l.Error("Photo batch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": err.Error()})
	}
}
