package catalog

import (
	"time"

	"catalog-sync/core/feed"
	"catalog-sync/feature/catalog/models"

	"github.com/google/uuid"
)

// Mode selects how reconciliation treats feed-sourced entries missing from
// the latest pull.
type Mode string

const (
	// ModeMerge diffs the latest pull against the existing feed-sourced set:
	// new keys insert, known keys update, absent keys are removed.
	ModeMerge Mode = "merge"
	// ModeReplace rebuilds the feed-sourced set entirely from the latest
	// pull, so no stale feed entry can survive skipped syncs.
	ModeReplace Mode = "replace"
)

// Valid reports whether m is a recognized reconciliation mode.
func (m Mode) Valid() bool {
	return m == ModeMerge || m == ModeReplace
}

// Engine computes the next catalog state from the previous one and a feed pull.
//
// The engine is pure given its clock and id generator, which exist as fields
// only so tests can pin them.
type Engine struct {
	// Now supplies timestamps for created/updated entries.
	Now func() time.Time
	// NewID mints ids for inserted entries.
	NewID func() string
}

// NewEngine creates an engine with the real clock and uuid ids.
func NewEngine() *Engine {
	return &Engine{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Reconcile produces the next catalog from the old one and the normalized
// feed records.
//
// Manual entries are set aside untouched for the entire operation; only
// feed-sourced entries (keyed by ExternalID) are inserted, updated, or
// removed. Feed-owned attributes are taken from the record on update while
// locally owned ones (view count, photo selection, createdAt, publication
// when the feed does not assert one) are carried forward from the existing
// entry. The result still needs DedupeSlugs before it is written.
func (e *Engine) Reconcile(old []models.Property, records []feed.Record, mode Mode) ([]models.Property, models.SyncStats) {
	now := e.Now()
	stats := models.SyncStats{TotalFeedRecords: len(records)}

	var manual []models.Property
	existing := make(map[string]models.Property)
	var feedOrder []string
	for _, p := range old {
		if p.IsManual() {
			manual = append(manual, p)
			continue
		}
		existing[p.ExternalID] = p
		feedOrder = append(feedOrder, p.ExternalID)
	}

	// Replace mode rebuilds from the pull alone: the prior feed-sourced set
	// is treated as empty going into the insert/update pass. The removed
	// counter still reports the diff so both modes log comparably.
	if mode == ModeReplace {
		for _, key := range feedOrder {
			if !recordPresent(records, key) {
				stats.Removed++
			}
		}
	}

	seen := make(map[string]struct{}, len(records))
	var next []models.Property
	for _, record := range records {
		if record.ExternalID == "" {
			continue
		}
		if _, dup := seen[record.ExternalID]; dup {
			continue
		}
		seen[record.ExternalID] = struct{}{}

		prior, known := existing[record.ExternalID]
		if mode == ModeReplace {
			known = false
		}

		if !known {
			next = append(next, e.insert(record, now))
			stats.Added++
			continue
		}
		next = append(next, e.update(prior, record, now))
		stats.Updated++
	}

	if mode == ModeMerge {
		for _, key := range feedOrder {
			if _, present := seen[key]; !present {
				stats.Removed++
			}
		}
	}

	return append(manual, next...), stats
}

// insert builds a brand-new feed-sourced entry.
func (e *Engine) insert(record feed.Record, now time.Time) models.Property {
	published := true
	if record.Published != nil {
		published = *record.Published
	}

	return models.Property{
		ID:          e.NewID(),
		ExternalID:  record.ExternalID,
		Title:       record.Title,
		Slug:        Slugify(record.Title),
		Source:      models.SourceFeed,
		Published:   published,
		PriceAmount: record.PriceAmount,
		Kind:        record.Kind,
		Status:      record.Status,
		Address: models.Address{
			City:     record.City,
			District: record.District,
			Street:   record.Street,
		},
		Characteristics: models.Characteristics{
			Bedrooms:     record.Bedrooms,
			Bathrooms:    record.Bathrooms,
			ParkingSpots: record.ParkingSpots,
			AreaM2:       record.AreaM2,
			Pool:         record.Pool,
			Garden:       record.Garden,
			Furnished:    record.Furnished,
		},
		Photos:    record.Photos,
		Tags:      record.Tags,
		ViewCount: 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// update refreshes the feed-owned attributes of an existing entry and carries
// the locally owned ones forward unconditionally.
func (e *Engine) update(prior models.Property, record feed.Record, now time.Time) models.Property {
	next := prior

	next.Title = record.Title
	next.Slug = Slugify(record.Title)
	next.PriceAmount = record.PriceAmount
	next.Kind = record.Kind
	next.Status = record.Status
	next.Address = models.Address{
		City:     record.City,
		District: record.District,
		Street:   record.Street,
	}
	next.Characteristics = models.Characteristics{
		Bedrooms:     record.Bedrooms,
		Bathrooms:    record.Bathrooms,
		ParkingSpots: record.ParkingSpots,
		AreaM2:       record.AreaM2,
		Pool:         record.Pool,
		Garden:       record.Garden,
		Furnished:    record.Furnished,
	}
	next.Photos = record.Photos
	next.Tags = record.Tags

	// Publication defaults to the existing value unless the feed asserts one.
	if record.Published != nil {
		next.Published = *record.Published
	}

	// Locally owned: ViewCount, StoredPhotos, PhotoSelection, CreatedAt stay
	// as they are.
	next.UpdatedAt = now
	return next
}

func recordPresent(records []feed.Record, key string) bool {
	for _, r := range records {
		if r.ExternalID == key {
			return true
		}
	}
	return false
}
