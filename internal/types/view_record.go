package types

// ViewRecord is a per-listing view-count document from the event store.
// ListingID is a weak reference: the listing it names may no longer exist.
type ViewRecord struct {
	ListingID string `json:"listing_id"`
	Views     int64  `json:"views"`
}
