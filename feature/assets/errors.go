package assets

import "errors"

var (
	// ErrCommitConflict is returned when the store ref keeps advancing under
	// us and the bounded retry budget is exhausted.
	ErrCommitConflict = errors.New("asset commit conflict")

	// ErrEmptyBatch is returned when a photo upload carries no files.
	ErrEmptyBatch = errors.New("no files in batch")

	// ErrAllRejected is returned when validation filtered out every file in
	// the batch, so there is nothing to commit.
	ErrAllRejected = errors.New("all files in batch were rejected")
)
