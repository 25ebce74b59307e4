package synclog

import (
	"context"
	"fmt"
	"time"

	catalogmodels "catalog-sync/feature/catalog/models"
	"catalog-sync/feature/synclog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultHistoryLimit caps history queries when the caller asks for nothing
// specific.
const defaultHistoryLimit = 20

// maxHistoryLimit is the hard ceiling for one history page.
const maxHistoryLimit = 200

// Service records and serves the sync run history.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates the synclog service and migrates its table.
func NewService(db *gorm.DB, logger *zap.Logger) (*Service, error) {
	if err := db.AutoMigrate(&models.SyncRun{}); err != nil {
		return nil, fmt.Errorf("synclog: failed to migrate: %w", err)
	}
	return &Service{db: db, logger: logger}, nil
}

// RecordSync persists one sync attempt. It satisfies the catalog's recorder
// contract: failures are logged, never returned.
func (s *Service) RecordSync(ctx context.Context, report catalogmodels.SyncReport, success bool, message string, took time.Duration) {
	run := models.SyncRun{
		Mode:             report.Mode,
		Success:          success,
		Message:          message,
		Added:            report.Stats.Added,
		Updated:          report.Stats.Updated,
		Removed:          report.Stats.Removed,
		TotalFeedRecords: report.Stats.TotalFeedRecords,
		Total:            report.Total,
		DurationMs:       took.Milliseconds(),
		RanAt:            time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		s.logger.Warn("Failed to record sync run",
			zap.String("mode", run.Mode),
			zap.Bool("success", success),
			zap.Error(err),
		)
	}
}

// History returns the most recent sync runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var runs []models.SyncRun
	err := s.db.WithContext(ctx).
		Order("ran_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("synclog: failed to query history: %w", err)
	}
	return runs, nil
}
