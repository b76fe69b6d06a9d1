package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casafind/casafind-backend/internal/apierr"
	"github.com/casafind/casafind-backend/internal/services"
	"github.com/casafind/casafind-backend/internal/types"
)

type fakeListingService struct {
	created  *services.CreateListingInput
	response services.ListingResponse
	err      error
}

func (f *fakeListingService) Create(ctx context.Context, input services.CreateListingInput) (services.ListingResponse, error) {
	f.created = &input
	return f.response, f.err
}

func (f *fakeListingService) GetByID(ctx context.Context, id uuid.UUID) (services.ListingResponse, error) {
	return f.response, f.err
}

func (f *fakeListingService) List(ctx context.Context) ([]services.ListingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []services.ListingResponse{f.response}, nil
}

func (f *fakeListingService) Update(ctx context.Context, id uuid.UUID, input services.UpdateListingInput) (services.ListingResponse, error) {
	return f.response, f.err
}

func (f *fakeListingService) Delete(ctx context.Context, id uuid.UUID) error {
	return f.err
}

func (f *fakeListingService) TrackView(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func listingTestRouter(svc services.ListingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewListingHandler(svc)
	router.POST("/api/listings", h.Create)
	router.GET("/api/listings/:id", h.GetByID)
	router.DELETE("/api/listings/:id", h.Delete)
	return router
}

func TestListingHandler_CreateReturns201(t *testing.T) {
	name := "Alice"
	svc := &fakeListingService{response: services.ListingResponse{
		ID:        uuid.New(),
		Title:     "Flat",
		City:      "Lisbon",
		Price:     "450000.00",
		Bedrooms:  2,
		AgentID:   uuid.New(),
		AgentName: &name,
		Source:    "go",
	}}
	router := listingTestRouter(svc)

	body := fmt.Sprintf(`{"title":"Flat","city":"LISBON","price":450000,"bedrooms":2,"agentId":%q}`, svc.response.AgentID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data services.ListingResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.City != "Lisbon" || resp.Data.Price != "450000.00" || resp.Data.Source != "go" {
		t.Fatalf("unexpected response shape: %+v", resp.Data)
	}
	if svc.created == nil || svc.created.City != "LISBON" {
		t.Fatalf("expected raw city passed through to service, got %+v", svc.created)
	}
}

func TestListingHandler_CreateValidation(t *testing.T) {
	router := listingTestRouter(&fakeListingService{})

	cases := []string{
		`{}`,
		`{"title":"Flat","city":"Lisbon","price":450000,"bedrooms":0,"agentId":"` + uuid.NewString() + `"}`,
		`{"title":"Flat","city":"Lisbon","price":-1,"bedrooms":2,"agentId":"` + uuid.NewString() + `"}`,
		`{"title":"Flat","city":"Lisbon","price":450000,"bedrooms":2,"agentId":"not-a-uuid"}`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestListingHandler_NotFoundPropagates(t *testing.T) {
	svc := &fakeListingService{err: apierr.New(http.StatusNotFound, "listing_not_found", fmt.Errorf("listing missing"))}
	router := listingTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/listings/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if envelope.Error.Code != "listing_not_found" {
		t.Fatalf("expected listing_not_found code, got %q", envelope.Error.Code)
	}
}

func TestListingHandler_BadPathID(t *testing.T) {
	router := listingTestRouter(&fakeListingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/listings/42", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-uuid id, got %d", w.Code)
	}
}

type fakeStatsService struct {
	stats []types.AgentStatSummary
	err   error
}

func (f *fakeStatsService) ComputeActiveAgentStats(ctx context.Context) ([]types.AgentStatSummary, error) {
	return f.stats, f.err
}

func TestStatsHandler_ActiveAgents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := &fakeStatsService{stats: []types.AgentStatSummary{
		{Agent: "B", Listings: 1, TotalViews: 20},
		{Agent: "C", Listings: 1, TotalViews: 10},
		{Agent: "A", Listings: 1, TotalViews: 5},
	}}
	router.GET("/api/stats/active-agents", NewStatsHandler(svc).ActiveAgents)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats/active-agents", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data []types.AgentStatSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 3 || resp.Data[0].Agent != "B" || resp.Data[2].Agent != "A" {
		t.Fatalf("expected ordered stats passthrough, got %+v", resp.Data)
	}
}

func TestStatsHandler_FailureIsSingleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := &fakeStatsService{err: apierr.New(http.StatusInternalServerError, "stats_unavailable", fmt.Errorf("redis down"))}
	router.GET("/api/stats/active-agents", NewStatsHandler(svc).ActiveAgents)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats/active-agents", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if envelope.Error.Code != "stats_unavailable" {
		t.Fatalf("expected stats_unavailable, got %q", envelope.Error.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthcheck", HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("expected ok, got %d %q", w.Code, w.Body.String())
	}
}
