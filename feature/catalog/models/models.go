package models

import (
	"time"

	"catalog-sync/core/store"
)

// Property sources. Feed-sourced entries are owned by reconciliation (keyed by
// ExternalID); manual entries are never touched by it.
const (
	SourceManual = "manual"
	SourceFeed   = "feed"
)

// Address is the structured location of a property. City is stored in its
// canonical slug form.
type Address struct {
	City     string `json:"city"`
	District string `json:"district,omitempty"`
	Street   string `json:"street,omitempty"`
}

// Characteristics holds the physical attributes of a property.
type Characteristics struct {
	Bedrooms     int  `json:"bedrooms"`
	Bathrooms    int  `json:"bathrooms"`
	ParkingSpots int  `json:"parking_spots"`
	AreaM2       int  `json:"area_m2"`
	Pool         bool `json:"pool,omitempty"`
	Garden       bool `json:"garden,omitempty"`
	Furnished    bool `json:"furnished,omitempty"`
}

// PhotoSelection is a locally curated choice of photos, distinct from the
// feed's own photo list. It is never overwritten by reconciliation.
type PhotoSelection struct {
	Primary   string   `json:"primary"`
	Secondary []string `json:"secondary,omitempty"`
}

// Property is one catalog entry.
type Property struct {
	// ID is the stable catalog-local identity.
	ID string `json:"id"`
	// ExternalID is the feed's identity key; present only for feed-sourced entries.
	ExternalID string `json:"external_id,omitempty"`

	Title string `json:"title"`
	// Slug is unique across the whole catalog after every successful write.
	Slug   string `json:"slug"`
	Source string `json:"source"`

	Published bool `json:"published"`
	// PriceAmount is kept as an exact integer, never a float.
	PriceAmount int64  `json:"price_amount"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`

	Address         Address         `json:"address"`
	Characteristics Characteristics `json:"characteristics"`

	// Photos is the feed's own photo URL list, refreshed on every sync.
	Photos []string `json:"photos,omitempty"`
	// StoredPhotos lists photo paths committed to the versioned store. They
	// are owned locally and survive reconciliation.
	StoredPhotos   []string        `json:"stored_photos,omitempty"`
	PhotoSelection *PhotoSelection `json:"photo_selection,omitempty"`
	Tags           []string        `json:"tags,omitempty"`

	// ViewCount is owned locally and carried forward through every merge.
	ViewCount int64 `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsManual reports whether this entry was created by an admin rather than the feed.
func (p Property) IsManual() bool {
	return p.Source == SourceManual
}

// CatalogSnapshot is the whole catalog plus the version token observed when
// it was read. The token must accompany the next write.
type CatalogSnapshot struct {
	Properties []Property
	Version    store.VersionToken
}

// SyncStats are the counters returned by one reconciliation run.
type SyncStats struct {
	Added            int `json:"added"`
	Updated          int `json:"updated"`
	Removed          int `json:"removed"`
	TotalFeedRecords int `json:"total_feed_records"`
}

// SyncReport is the full outcome of one sync invocation.
type SyncReport struct {
	Mode  string    `json:"mode"`
	Total int       `json:"total"`
	Stats SyncStats `json:"stats"`
}
