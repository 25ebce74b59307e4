package synclog

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the sync history into the application. It is optional: with
// no database configured the feature simply stays disabled.
type Feature struct {
	service *Service
	logger  *zap.Logger
}

// NewFeature creates the synclog feature. service may be nil.
func NewFeature(service *Service, logger *zap.Logger) *Feature {
	return &Feature{service: service, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "synclog"
}

// IsEnabled reports whether a database was configured.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the history routes.
func (f *Feature) Load(router fiber.Router) error {
	NewHandler(f.service, f.logger).RegisterRoutes(router)
	return nil
}

// Service exposes the underlying service for wiring (the catalog records
// sync outcomes through it).
func (f *Feature) Service() *Service {
	return f.service
}
