// Package catalog implements the property catalog and its synchronization
// against the external feed.
//
// The catalog is a single JSON document in the remote versioned store. Every
// write presents the version token observed at the most recent read; the
// store rejects stale tokens, and that compare-and-swap contract is the only
// concurrency control in the system.
//
// # Reconciliation
//
// Engine.Reconcile computes the next catalog from the old one plus the
// normalized feed pull. Manual entries are invariant under reconciliation;
// feed-sourced entries (keyed by external id) are inserted, updated, or
// removed depending on the mode:
//
//   - merge: diff against the existing feed-sourced set.
//   - replace: rebuild the feed-sourced set from the pull alone.
//
// Locally owned fields (view count, photo selection, createdAt) survive every
// update. DedupeSlugs then enforces catalog-wide slug uniqueness.
//
// # Components
//
//   - Service: orchestrates fetch -> reconcile -> dedupe -> CAS write with a
//     bounded conflict retry loop, and carries the per-entity CRUD operations.
//   - Handler: exposes POST /sync and the /properties routes.
//   - Feature: registers the feature with the application loader.
package catalog
