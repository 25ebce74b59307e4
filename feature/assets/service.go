package assets

import (
	"context"
	"fmt"
	"strings"

	"catalog-sync/core/store"

	"go.uber.org/zap"
)

// PhotoBinder links committed photo paths to a catalog entry. Implemented by
// the catalog service.
type PhotoBinder interface {
	AttachPhotos(ctx context.Context, id string, paths []string) error
	DetachPhotos(ctx context.Context, id string, paths []string) error
}

// BatchResult is the outcome of one photo batch. Applied paths were committed
// atomically; Rejected files never reached the store.
type BatchResult struct {
	Commit   store.CommitRef `json:"commit,omitempty"`
	Applied  []string        `json:"applied"`
	Rejected []Rejection     `json:"rejected,omitempty"`
}

// Service validates, commits, binds, and mirrors photo batches.
type Service struct {
	committer *Committer
	binder    PhotoBinder
	mirror    *Mirror
	logger    *zap.Logger
}

// NewService creates an assets service. mirror may be nil to disable object
// storage replication.
func NewService(committer *Committer, binder PhotoBinder, mirror *Mirror, logger *zap.Logger) *Service {
	return &Service{
		committer: committer,
		binder:    binder,
		mirror:    mirror,
		logger:    logger,
	}
}

// CommitPhotos validates the uploads and commits the accepted ones as a
// single atomic batch, then binds the new paths to the property.
//
// Invalid files are filtered out and reported, they never fail the rest of
// the batch. A store failure before the ref update aborts the whole batch
// with no visible effect.
func (s *Service) CommitPhotos(ctx context.Context, propertyID string, uploads []Upload) (*BatchResult, error) {
	if len(uploads) == 0 {
		return nil, ErrEmptyBatch
	}

	result := &BatchResult{}
	mutations := make([]Mutation, 0, len(uploads))
	for _, u := range uploads {
		ext, rejection := validate(u)
		if rejection != nil {
			result.Rejected = append(result.Rejected, *rejection)
			continue
		}
		mutations = append(mutations, Mutation{
			Path:    photoPath(propertyID, u, ext),
			Content: u.Content,
		})
	}
	if len(mutations) == 0 {
		return result, ErrAllRejected
	}

	message := fmt.Sprintf("photos: add %d to property %s", len(mutations), propertyID)
	committed, err := s.committer.Commit(ctx, mutations, message)
	if err != nil {
		return nil, err
	}
	result.Commit = committed.Commit
	result.Applied = committed.Applied

	if err := s.binder.AttachPhotos(ctx, propertyID, result.Applied); err != nil {
		// The objects are committed but unbound. Surface the error so the
		// caller can retry the binding, the paths are deterministic.
		return result, fmt.Errorf("assets: photos committed but not attached: %w", err)
	}

	if s.mirror != nil {
		s.mirror.Replicate(ctx, mutations)
	}
	return result, nil
}

// DeletePhotos removes stored photo paths in one atomic commit and detaches
// them from the property.
func (s *Service) DeletePhotos(ctx context.Context, propertyID string, paths []string) (*BatchResult, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyBatch
	}

	prefix := propertyPrefix(propertyID)
	result := &BatchResult{}
	mutations := make([]Mutation, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, prefix) {
			result.Rejected = append(result.Rejected, Rejection{Name: p, Reason: "path does not belong to this property"})
			continue
		}
		mutations = append(mutations, Mutation{Path: p, Delete: true})
	}
	if len(mutations) == 0 {
		return result, ErrAllRejected
	}

	message := fmt.Sprintf("photos: remove %d from property %s", len(mutations), propertyID)
	committed, err := s.committer.Commit(ctx, mutations, message)
	if err != nil {
		return nil, err
	}
	result.Commit = committed.Commit
	result.Applied = committed.Applied

	if err := s.binder.DetachPhotos(ctx, propertyID, result.Applied); err != nil {
		return result, fmt.Errorf("assets: photos removed but not detached: %w", err)
	}

	if s.mirror != nil {
		s.mirror.Replicate(ctx, mutations)
	}
	return result, nil
}

// RemoveForProperty deletes every stored photo of a property that is being
// removed from the catalog. The catalog entry is already gone, so there is
// nothing to detach.
func (s *Service) RemoveForProperty(ctx context.Context, propertyID string, photos []string) error {
	prefix := propertyPrefix(propertyID)
	mutations := make([]Mutation, 0, len(photos))
	for _, p := range photos {
		if strings.HasPrefix(p, prefix) {
			mutations = append(mutations, Mutation{Path: p, Delete: true})
		}
	}
	if len(mutations) == 0 {
		return nil
	}

	message := fmt.Sprintf("photos: purge property %s", propertyID)
	if _, err := s.committer.Commit(ctx, mutations, message); err != nil {
		return err
	}
	if s.mirror != nil {
		s.mirror.Replicate(ctx, mutations)
	}
	return nil
}

func propertyPrefix(propertyID string) string {
	return "properties/" + propertyID + "/"
}
