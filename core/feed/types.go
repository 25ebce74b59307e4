package feed

// Record is the normalized representation of a single external feed listing.
//
// It is produced by the client at the fetch boundary and is the only feed
// shape the rest of the application sees. Records are short-lived: they are
// consumed by catalog reconciliation and never persisted as-is.
type Record struct {
	// ExternalID is the feed's identity key for the listing.
	ExternalID string

	Title       string
	Kind        string
	Status      string
	PriceAmount int64

	// Published is nil when the feed does not assert a publication state,
	// in which case reconciliation keeps the existing local value.
	Published *bool

	City     string
	District string
	Street   string

	Bedrooms     int
	Bathrooms    int
	ParkingSpots int
	AreaM2       int

	Pool      bool
	Garden    bool
	Furnished bool

	Photos []string
	Tags   []string
}
