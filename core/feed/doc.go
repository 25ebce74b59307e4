// Package feed provides the client for the external property feed.
//
// The feed is fetched page by page (page/limit query parameters, bearer token
// header) and every raw listing is normalized into the fixed Record shape at
// this boundary. Downstream code never sees the feed's own field names, loose
// typing, or vocabulary: property types, statuses, and city names go through
// fixed mapping tables with documented fallbacks.
//
// # Failure modes
//
//   - Missing credentials fail fast with ErrMissingCredentials, before any
//     network call.
//   - A non-2xx response fails with *UnavailableError carrying the status and
//     a truncated body.
//   - A malformed payload fails with *ParseError.
//
// FetchAll is all-or-nothing: either the complete feed is returned or an
// error is, never a partial page set.
//
// # Caching
//
// Cache wraps a Client with a caller-owned TTL cache (singleflight guarded).
// The TTL is an explicit constructor parameter; there is no ambient
// process-level cache state.
package feed
