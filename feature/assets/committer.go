package assets

import (
	"context"
	"fmt"

	"catalog-sync/core/store"

	"go.uber.org/zap"
)

// maxRefAttempts bounds the ref-update retry loop for batch commits.
const maxRefAttempts = 3

// Mutation is one entry of a batch asset commit: either new content for a
// path or a deletion marker.
type Mutation struct {
	Path    string
	Content []byte
	Delete  bool
}

// commitStage tracks progress through the store's object-graph protocol.
// Aborting at any stage before stageRefUpdated leaves no visible effect.
type commitStage int

const (
	stageBlobsCreated commitStage = iota + 1
	stageTreeBuilt
	stageCommitCreated
	stageRefUpdated
)

// CommitResult describes one successfully committed batch.
type CommitResult struct {
	Commit store.CommitRef `json:"commit"`
	// Applied lists every path included in the commit. The batch is atomic:
	// either all of them landed or the commit does not exist.
	Applied []string `json:"applied"`
}

// Committer turns a list of asset mutations into one atomic commit against
// the store's ref, using the blob -> tree -> commit -> ref protocol.
type Committer struct {
	client store.Client
	ref    string
	logger *zap.Logger
}

// NewCommitter creates a committer that moves the given ref.
func NewCommitter(client store.Client, ref string, logger *zap.Logger) *Committer {
	return &Committer{client: client, ref: ref, logger: logger}
}

// Commit applies all mutations as a single commit.
//
// Blobs are created first and reused across retries. The ref update is
// conditioned on the commit the tree was read from, so a concurrent writer
// surfaces as *store.ConflictError; the loop then re-reads and rebuilds the
// tree and commit on top of the new head, up to maxRefAttempts.
func (c *Committer) Commit(ctx context.Context, mutations []Mutation, message string) (*CommitResult, error) {
	if len(mutations) == 0 {
		return nil, fmt.Errorf("assets: empty mutation batch")
	}

	entries := make([]store.TreeEntry, 0, len(mutations))
	applied := make([]string, 0, len(mutations))
	for _, m := range mutations {
		if m.Delete {
			entries = append(entries, store.TreeEntry{Path: m.Path})
			applied = append(applied, m.Path)
			continue
		}
		blob, err := c.client.CreateBlob(ctx, m.Content)
		if err != nil {
			return nil, fmt.Errorf("assets: failed to create blob for %q: %w", m.Path, err)
		}
		entries = append(entries, store.TreeEntry{Path: m.Path, Blob: blob})
		applied = append(applied, m.Path)
	}
	stage := stageBlobsCreated

	for attempt := 1; attempt <= maxRefAttempts; attempt++ {
		head, err := c.client.GetRef(ctx, c.ref)
		if err != nil {
			return nil, fmt.Errorf("assets: failed to resolve ref %q: %w", c.ref, err)
		}
		baseTree, err := c.client.GetCommit(ctx, head)
		if err != nil {
			return nil, fmt.Errorf("assets: failed to read commit %q: %w", head, err)
		}

		tree, err := c.client.CreateTree(ctx, baseTree, entries)
		if err != nil {
			return nil, fmt.Errorf("assets: failed to build tree: %w", err)
		}
		stage = stageTreeBuilt

		commit, err := c.client.CreateCommit(ctx, tree, head, message)
		if err != nil {
			return nil, fmt.Errorf("assets: failed to create commit: %w", err)
		}
		stage = stageCommitCreated

		err = c.client.UpdateRef(ctx, c.ref, commit, head)
		if store.IsConflict(err) {
			c.logger.Warn("Asset commit lost the ref race, rebuilding on new head",
				zap.Int("attempt", attempt),
				zap.String("ref", c.ref),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assets: failed to update ref %q: %w", c.ref, err)
		}
		stage = stageRefUpdated

		c.logger.Info("Asset batch committed",
			zap.String("ref", c.ref),
			zap.String("commit", string(commit)),
			zap.Int("paths", len(applied)),
		)
		return &CommitResult{Commit: commit, Applied: applied}, nil
	}

	c.logger.Error("Asset commit abandoned after repeated ref conflicts",
		zap.String("ref", c.ref),
		zap.Int("stage", int(stage)),
	)
	return nil, fmt.Errorf("assets: ref %q kept moving: %w", c.ref, ErrCommitConflict)
}
