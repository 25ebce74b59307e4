package assets

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the assets service into the application.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the assets feature.
func NewFeature(service *Service, logger *zap.Logger) *Feature {
	return &Feature{service: service, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "assets"
}

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the photo routes.
func (f *Feature) Load(router fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(router)
	return nil
}

// Service exposes the underlying service for wiring (the catalog uses it to
// purge photos of deleted properties).
func (f *Feature) Service() *Service {
	return f.service
}
