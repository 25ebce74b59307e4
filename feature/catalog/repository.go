package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catalog-sync/core/store"
	"catalog-sync/feature/catalog/models"
)

// Repository persists the catalog as one JSON document at a fixed store path,
// guarded by the store's version token.
type Repository struct {
	client store.Client
	path   string
}

// NewRepository creates a repository over the given store client.
func NewRepository(client store.Client, path string) *Repository {
	return &Repository{client: client, path: path}
}

// Load reads the current catalog snapshot. A missing document is not an
// error: it yields an empty catalog with a zero version token, which the
// store accepts for a first write.
func (r *Repository) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	content, version, err := r.client.Read(ctx, r.path)
	if errors.Is(err, store.ErrNotFound) {
		return &models.CatalogSnapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read catalog document: %w", err)
	}

	var properties []models.Property
	if err := json.Unmarshal(content, &properties); err != nil {
		return nil, fmt.Errorf("catalog: corrupt catalog document: %w", err)
	}

	return &models.CatalogSnapshot{Properties: properties, Version: version}, nil
}

// Save writes the full catalog, presenting the version token from the read it
// is based on. A stale token surfaces as *store.ConflictError untouched, so
// callers can drive their retry loop off store.IsConflict.
func (r *Repository) Save(ctx context.Context, properties []models.Property, expected store.VersionToken) (store.VersionToken, error) {
	content, err := json.MarshalIndent(properties, "", "  ")
	if err != nil {
		return "", fmt.Errorf("catalog: failed to encode catalog document: %w", err)
	}
	return r.client.Write(ctx, r.path, content, expected)
}
