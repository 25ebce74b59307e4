// Package store provides the client for the remote versioned document store.
//
// The store is path-addressed: every object read returns an opaque version
// token, and every write must present the token observed at the most recent
// read. A mismatch means another writer committed in between and surfaces as
// a ConflictError; the store never locks and never merges.
//
// # Client Interface
//
// The Client interface abstracts the store's HTTP API, making it easy to mock
// store interactions for unit testing (see core/store/mocks).
//
// # Simple writes vs batch commits
//
// Write replaces exactly one object per call. A multi-file atomic change must
// go through the object-graph primitives instead, in order:
//
//	CreateBlob -> CreateTree -> CreateCommit -> UpdateRef
//
// Blobs must exist before the tree references them, the tree before the
// commit, and the ref update is last, conditioned on the expected parent
// commit so concurrent writers are detected. Aborting before UpdateRef leaves
// no visible effect.
//
// # Usage
//
//	client, err := store.NewClient(cfg)
//	content, version, err := client.Read(ctx, "data/properties.json")
//	newVersion, err := client.Write(ctx, "data/properties.json", updated, version)
package store
