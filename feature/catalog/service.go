package catalog

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/core/feed"
	"catalog-sync/core/store"
	"catalog-sync/feature/catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxWriteAttempts bounds the compare-and-swap retry loop for catalog writes.
const maxWriteAttempts = 3

// FeedSource supplies the current feed snapshot. *feed.Cache satisfies it.
type FeedSource interface {
	Records(ctx context.Context) ([]feed.Record, error)
}

// SyncRecorder receives the outcome of every sync attempt. Recording is a
// best-effort side effect: implementations are invoked after the sync result
// is already decided and must never influence it.
type SyncRecorder interface {
	RecordSync(ctx context.Context, report models.SyncReport, success bool, message string, took time.Duration)
}

// AssetRemover deletes the stored photo objects of a property. Implemented by
// the assets feature; nil disables photo cleanup on property deletion.
type AssetRemover interface {
	RemoveForProperty(ctx context.Context, propertyID string, photos []string) error
}

// Service coordinates feed fetch, reconciliation, slug dedup, and the
// compare-and-swap catalog write. It also carries the per-entity CRUD
// operations, which ride the same read-modify-write loop.
type Service struct {
	repo     *Repository
	feed     FeedSource
	engine   *Engine
	logger   *zap.Logger
	recorder SyncRecorder
	remover  AssetRemover
}

// NewService creates a catalog service. recorder and remover may be nil.
func NewService(repo *Repository, source FeedSource, logger *zap.Logger, recorder SyncRecorder, remover AssetRemover) *Service {
	return &Service{
		repo:     repo,
		feed:     source,
		engine:   NewEngine(),
		logger:   logger,
		recorder: recorder,
		remover:  remover,
	}
}

// SetAssetRemover installs the photo cleanup hook. The assets feature needs
// the catalog service first (to bind committed photos), so the reverse edge
// is wired after construction.
func (s *Service) SetAssetRemover(remover AssetRemover) {
	s.remover = remover
}

// Sync runs one full catalog synchronization in the given mode and returns
// the resulting counters.
//
// Feed and configuration failures abort before any write, leaving the catalog
// untouched. A version conflict on write triggers a re-read and a full
// re-reconciliation against the fresh state, up to maxWriteAttempts; beyond
// that the sync surfaces ErrSyncConflict. The write happens even when every
// counter is zero, because feed-owned fields may have changed without an
// add/remove signal.
func (s *Service) Sync(ctx context.Context, mode Mode) (*models.SyncReport, error) {
	start := time.Now()
	report, err := s.sync(ctx, mode)
	s.record(ctx, mode, report, err, time.Since(start))
	return report, err
}

func (s *Service) sync(ctx context.Context, mode Mode) (*models.SyncReport, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		records, err := s.feed.Records(ctx)
		if err != nil {
			return nil, err
		}

		snapshot, err := s.repo.Load(ctx)
		if err != nil {
			return nil, err
		}

		next, stats := s.engine.Reconcile(snapshot.Properties, records, mode)
		next = DedupeSlugs(next)

		_, err = s.repo.Save(ctx, next, snapshot.Version)
		if store.IsConflict(err) {
			s.logger.Warn("Catalog write lost the version race, re-reconciling",
				zap.Int("attempt", attempt),
				zap.String("mode", string(mode)),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("Catalog sync committed",
			zap.String("mode", string(mode)),
			zap.Int("added", stats.Added),
			zap.Int("updated", stats.Updated),
			zap.Int("removed", stats.Removed),
			zap.Int("feed_records", stats.TotalFeedRecords),
		)

		return &models.SyncReport{
			Mode:  string(mode),
			Total: len(next),
			Stats: stats,
		}, nil
	}

	return nil, ErrSyncConflict
}

// record invokes the optional sync recorder. It must never fail the sync.
func (s *Service) record(ctx context.Context, mode Mode, report *models.SyncReport, err error, took time.Duration) {
	if s.recorder == nil {
		return
	}

	success := err == nil
	message := "ok"
	if err != nil {
		message = err.Error()
	}
	if report == nil {
		report = &models.SyncReport{Mode: string(mode)}
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("Sync recorder panicked", zap.Any("panic", r))
		}
	}()
	s.recorder.RecordSync(ctx, *report, success, message, took)
}

// List returns the full catalog in stable order.
func (s *Service) List(ctx context.Context) ([]models.Property, error) {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Properties, nil
}

// Get returns one property by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Property, error) {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshot.Properties {
		if snapshot.Properties[i].ID == id {
			return &snapshot.Properties[i], nil
		}
	}
	return nil, ErrPropertyNotFound
}

// PropertyInput carries admin-editable fields. Nil fields are left unchanged
// on update; Title is mandatory on create.
type PropertyInput struct {
	Title           *string                 `json:"title"`
	PriceAmount     *int64                  `json:"price_amount"`
	Kind            *string                 `json:"kind"`
	Status          *string                 `json:"status"`
	Published       *bool                   `json:"published"`
	Address         *models.Address         `json:"address"`
	Characteristics *models.Characteristics `json:"characteristics"`
	Tags            *[]string               `json:"tags"`
	PhotoSelection  *models.PhotoSelection  `json:"photo_selection"`
}

func (in PropertyInput) apply(p *models.Property) {
	if in.Title != nil {
		p.Title = *in.Title
		p.Slug = Slugify(*in.Title)
	}
	if in.PriceAmount != nil {
		p.PriceAmount = *in.PriceAmount
	}
	if in.Kind != nil {
		p.Kind = *in.Kind
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Characteristics != nil {
		p.Characteristics = *in.Characteristics
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.PhotoSelection != nil {
		p.PhotoSelection = in.PhotoSelection
	}
}

// Create inserts a manual property.
func (s *Service) Create(ctx context.Context, input PropertyInput) (*models.Property, error) {
	if input.Title == nil || *input.Title == "" {
		return nil, ErrTitleRequired
	}

	now := s.engine.Now()
	property := models.Property{
		ID:        uuid.NewString(),
		Source:    models.SourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(&property)

	result, err := s.mutate(ctx, func(properties []models.Property) ([]models.Property, error) {
		return append(properties, property), nil
	})
	if err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].ID == property.ID {
			return &result[i], nil
		}
	}
	return &property, nil
}

// Update edits a property. Admin edits may touch any field of any source.
func (s *Service) Update(ctx context.Context, id string, input PropertyInput) (*models.Property, error) {
	var updated models.Property
	result, err := s.mutate(ctx, func(properties []models.Property) ([]models.Property, error) {
		for i := range properties {
			if properties[i].ID != id {
				continue
			}
			input.apply(&properties[i])
			properties[i].UpdatedAt = s.engine.Now()
			updated = properties[i]
			return properties, nil
		}
		return nil, ErrPropertyNotFound
	})
	if err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].ID == id {
			return &result[i], nil
		}
	}
	return &updated, nil
}

// Delete removes a property of any source and, best-effort, its stored photos.
func (s *Service) Delete(ctx context.Context, id string) error {
	var removed models.Property
	_, err := s.mutate(ctx, func(properties []models.Property) ([]models.Property, error) {
		for i := range properties {
			if properties[i].ID == id {
				removed = properties[i]
				return append(properties[:i:i], properties[i+1:]...), nil
			}
		}
		return nil, ErrPropertyNotFound
	})
	if err != nil {
		return err
	}

	if s.remover != nil {
		if err := s.remover.RemoveForProperty(ctx, id, removed.StoredPhotos); err != nil {
			s.logger.Warn("Failed to remove stored photos for deleted property",
				zap.String("property_id", id),
				zap.Error(err),
			)
		}
	}
	return nil
}

// IncrementViews bumps the locally owned view counter. The counter is
// monotonically non-decreasing and survives every reconciliation.
func (s *Service) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	_, err := s.mutate(ctx, func(properties []models.Property) ([]models.Property, error) {
		for i := range properties {
			if properties[i].ID == id {
				properties[i].ViewCount++
				views = properties[i].ViewCount
				return properties, nil
			}
		}
		return nil, ErrPropertyNotFound
	})
	return views, err
}

// AttachPhotos appends stored photo paths to a property, skipping paths it
// already carries.
func (s *Service) AttachPhotos(ctx context.Context, id string, paths []string) error {
	_, err := s.mutate(ctx, func(properties []models.Property) ([]models.Property, error) {
		for i := range properties {
			if properties[i].ID != id {
				continue
			}
			known := make(map[string]bool, len(properties[i].StoredPhotos))
			for _, p := range properties[i].StoredPhotos {
				known[p] = true
			}
			for _, p := range paths {
				if !known[p] {
					properties[i].StoredPhotos = append(properties[i].StoredPhotos, p)
				}
			}
			properties[i].UpdatedAt = s.engine.Now()
			return properties, nil
		}
		return nil, ErrPropertyNotFound
	})
	return err
}

// DetachPhotos drops stored photo paths from a property and clears any
// photo selection entries that pointed at them.
func (s *Service) DetachPhotos(ctx context.Context, id string, paths []string) error {
	gone := make(map[string]bool, len(paths))
	for _, p := range paths {
		gone[p] = true
	}

	_, err := s.mutate(ctx, func(properties []models.Property) ([]models.Property, error) {
		for i := range properties {
			if properties[i].ID != id {
				continue
			}
			kept := properties[i].StoredPhotos[:0:0]
			for _, p := range properties[i].StoredPhotos {
				if !gone[p] {
					kept = append(kept, p)
				}
			}
			properties[i].StoredPhotos = kept
			if sel := properties[i].PhotoSelection; sel != nil {
				if gone[sel.Primary] {
					sel.Primary = ""
				}
				secondary := sel.Secondary[:0:0]
				for _, p := range sel.Secondary {
					if !gone[p] {
						secondary = append(secondary, p)
					}
				}
				sel.Secondary = secondary
			}
			properties[i].UpdatedAt = s.engine.Now()
			return properties, nil
		}
		return nil, ErrPropertyNotFound
	})
	return err
}

// mutate runs one read-modify-write cycle under the store's compare-and-swap
// contract, retrying on version conflicts with a fresh read each time.
func (s *Service) mutate(ctx context.Context, fn func([]models.Property) ([]models.Property, error)) ([]models.Property, error) {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		snapshot, err := s.repo.Load(ctx)
		if err != nil {
			return nil, err
		}

		next, err := fn(snapshot.Properties)
		if err != nil {
			return nil, err
		}
		next = DedupeSlugs(next)

		_, err = s.repo.Save(ctx, next, snapshot.Version)
		if store.IsConflict(err) {
			s.logger.Warn("Catalog mutation lost the version race, retrying", zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, ErrSyncConflict
}
