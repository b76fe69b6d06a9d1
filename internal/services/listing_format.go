package services

import (
	"github.com/google/uuid"

	"github.com/casafind/casafind-backend/internal/normalization"
	"github.com/casafind/casafind-backend/internal/types"
)

// ListingResponse is the canonical wire shape every listing leaves the API
// in: title-cased city, fixed two-decimal price string, the resolved agent
// name when the join found one, and a provenance tag naming the backend
// that produced the record.
type ListingResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	City      string    `json:"city"`
	Price     string    `json:"price"`
	Bedrooms  int       `json:"bedrooms"`
	AgentID   uuid.UUID `json:"agentId"`
	AgentName *string   `json:"agentName"`
	Source    string    `json:"source"`
}

type ListingFormatter struct {
	source string
}

func NewListingFormatter(source string) *ListingFormatter {
	return &ListingFormatter{source: source}
}

// Format is a pure transform of a stored listing. It only ever reads the
// stored (lower-cased) city, so formatting the same record twice yields
// identical output.
func (f *ListingFormatter) Format(listing *types.Listing) ListingResponse {
	resp := ListingResponse{
		ID:       listing.ID,
		Title:    listing.Title,
		City:     normalization.CityForDisplay(listing.City),
		Price:    normalization.PriceForDisplay(listing.Price),
		Bedrooms: listing.Bedrooms,
		AgentID:  listing.AgentID,
		Source:   f.source,
	}
	if listing.Agent != nil {
		name := listing.Agent.Name
		resp.AgentName = &name
	}
	return resp
}

func (f *ListingFormatter) FormatAll(listings []*types.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		out = append(out, f.Format(listing))
	}
	return out
}
