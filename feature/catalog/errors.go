package catalog

import "errors"

// ErrInvalidMode is returned when a sync is requested with an unknown mode.
var ErrInvalidMode = errors.New("catalog: invalid sync mode")

// ErrSyncConflict is returned when the retry budget is exhausted because the
// catalog kept changing underneath the sync. The catalog is left as the last
// concurrent writer committed it.
var ErrSyncConflict = errors.New("catalog: sync lost the version race repeatedly, giving up")

// ErrPropertyNotFound is returned by lookups and mutations targeting an
// unknown property id.
var ErrPropertyNotFound = errors.New("catalog: property not found")

// ErrTitleRequired is returned when creating a property without a title.
var ErrTitleRequired = errors.New("catalog: title is required")
