package assets

import (
	"bytes"
	"context"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Mirror replicates committed asset batches to object storage so a CDN can
// serve photos without touching the versioned store. Replication is
// best-effort: the commit is the source of truth and a failed mirror write
// never fails the batch.
type Mirror struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewMirror creates a mirror targeting the given bucket.
func NewMirror(client storage.Client, bucket string, logger *zap.Logger) *Mirror {
	return &Mirror{client: client, bucket: bucket, logger: logger}
}

// EnsureBucket creates the mirror bucket if it does not exist yet.
func (m *Mirror) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
}

// Replicate pushes the mutations of a committed batch to the bucket. Errors
// are logged and swallowed.
func (m *Mirror) Replicate(ctx context.Context, mutations []Mutation) {
	for _, mut := range mutations {
		if mut.Delete {
			err := m.client.RemoveObject(ctx, m.bucket, mut.Path, minio.RemoveObjectOptions{})
			if err != nil {
				m.logger.Warn("Failed to remove mirrored asset",
					zap.String("path", mut.Path),
					zap.Error(err),
				)
			}
			continue
		}

		_, err := m.client.PutObject(ctx, m.bucket, mut.Path,
			bytes.NewReader(mut.Content), int64(len(mut.Content)),
			minio.PutObjectOptions{},
		)
		if err != nil {
			m.logger.Warn("Failed to mirror asset",
				zap.String("path", mut.Path),
				zap.Error(err),
			)
		}
	}
}
