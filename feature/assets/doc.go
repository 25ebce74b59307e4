// Package assets manages property photos in the versioned store.
//
// A photo batch becomes exactly one commit: blobs are created first, then a
// tree referencing them, then a commit, and finally the ref is advanced with
// a compare-and-swap on its previous head. Failures before the ref update
// leave no visible effect; a lost ref race is retried on the new head with
// the already-created blobs.
//
// Validation happens before anything touches the store. Files are sniffed
// for their real content type (jpeg, png, webp) and size-capped; rejected
// files are reported per path and never fail the rest of the batch.
//
// Committed batches are optionally replicated to object storage so a CDN
// can serve the photos. The mirror is best-effort, the store stays the
// source of truth.
package assets
