package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casafind/casafind-backend/internal/apierr"
	redisclient "github.com/casafind/casafind-backend/internal/clients/redis"
	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/normalization"
	"github.com/casafind/casafind-backend/internal/repos"
	"github.com/casafind/casafind-backend/internal/types"
)

type CreateListingInput struct {
	Title    string
	City     string
	Price    float64
	Bedrooms int
	AgentID  uuid.UUID
}

type UpdateListingInput struct {
	Title    *string
	City     *string
	Price    *float64
	Bedrooms *int
	AgentID  *uuid.UUID
}

type ListingService interface {
	Create(ctx context.Context, input CreateListingInput) (ListingResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (ListingResponse, error)
	List(ctx context.Context) ([]ListingResponse, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateListingInput) (ListingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TrackView(ctx context.Context, id uuid.UUID) (int64, error)
}

type listingService struct {
	db          *gorm.DB
	log         *logger.Logger
	listingRepo repos.ListingRepo
	agentRepo   repos.AgentRepo
	viewStore   redisclient.ViewStore
	formatter   *ListingFormatter
}

func NewListingService(db *gorm.DB, log *logger.Logger, listingRepo repos.ListingRepo, agentRepo repos.AgentRepo, viewStore redisclient.ViewStore, formatter *ListingFormatter) ListingService {
	serviceLog := log.With("service", "ListingService")
	return &listingService{
		db:          db,
		log:         serviceLog,
		listingRepo: listingRepo,
		agentRepo:   agentRepo,
		viewStore:   viewStore,
		formatter:   formatter,
	}
}

func (ls *listingService) Create(ctx context.Context, input CreateListingInput) (ListingResponse, error) {
	var created *types.Listing
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ls.agentRepo.Exists(ctx, tx, input.AgentID)
		if err != nil {
			return fmt.Errorf("checking agent: %w", err)
		}
		if !exists {
			return apierr.New(http.StatusNotFound, "agent_not_found", fmt.Errorf("agent %s does not exist", input.AgentID))
		}

		listing := &types.Listing{
			ID:       uuid.New(),
			Title:    input.Title,
			City:     normalization.CityForStorage(input.City),
			Price:    input.Price,
			Bedrooms: input.Bedrooms,
			AgentID:  input.AgentID,
		}
		if _, err := ls.listingRepo.Create(ctx, tx, listing); err != nil {
			return fmt.Errorf("creating listing: %w", err)
		}

		// Reload with the agent joined so the response carries the name.
		created, err = ls.listingRepo.GetByID(ctx, tx, listing.ID, true)
		if err != nil {
			return fmt.Errorf("reloading listing: %w", err)
		}
		return nil
	}); err != nil {
		ls.log.Warn("Create listing failed", "error", err)
		return ListingResponse{}, asAPIError(err, "listing_create_failed")
	}
	return ls.formatter.Format(created), nil
}

func (ls *listingService) GetByID(ctx context.Context, id uuid.UUID) (ListingResponse, error) {
	listing, err := ls.listingRepo.GetByID(ctx, nil, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ListingResponse{}, apierr.New(http.StatusNotFound, "listing_not_found", fmt.Errorf("listing %s does not exist", id))
		}
		ls.log.Warn("Get listing failed", "error", err)
		return ListingResponse{}, apierr.New(http.StatusInternalServerError, "listing_fetch_failed", err)
	}
	return ls.formatter.Format(listing), nil
}

func (ls *listingService) List(ctx context.Context) ([]ListingResponse, error) {
	listings, err := ls.listingRepo.List(ctx, nil, true)
	if err != nil {
		ls.log.Warn("List listings failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "listing_fetch_failed", err)
	}
	return ls.formatter.FormatAll(listings), nil
}

func (ls *listingService) Update(ctx context.Context, id uuid.UUID, input UpdateListingInput) (ListingResponse, error) {
	var updated *types.Listing
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ls.listingRepo.GetByID(ctx, tx, id, false); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.New(http.StatusNotFound, "listing_not_found", fmt.Errorf("listing %s does not exist", id))
			}
			return fmt.Errorf("fetching listing: %w", err)
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.City != nil {
			updates["city"] = normalization.CityForStorage(*input.City)
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Bedrooms != nil {
			updates["bedrooms"] = *input.Bedrooms
		}
		if input.AgentID != nil {
			exists, err := ls.agentRepo.Exists(ctx, tx, *input.AgentID)
			if err != nil {
				return fmt.Errorf("checking agent: %w", err)
			}
			if !exists {
				return apierr.New(http.StatusNotFound, "agent_not_found", fmt.Errorf("agent %s does not exist", *input.AgentID))
			}
			updates["agent_id"] = *input.AgentID
		}

		if len(updates) > 0 {
			if _, err := ls.listingRepo.Update(ctx, tx, id, updates); err != nil {
				return fmt.Errorf("updating listing: %w", err)
			}
		}

		var err error
		updated, err = ls.listingRepo.GetByID(ctx, tx, id, true)
		if err != nil {
			return fmt.Errorf("reloading listing: %w", err)
		}
		return nil
	}); err != nil {
		ls.log.Warn("Update listing failed", "error", err)
		return ListingResponse{}, asAPIError(err, "listing_update_failed")
	}
	return ls.formatter.Format(updated), nil
}

func (ls *listingService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := ls.listingRepo.Delete(ctx, nil, id)
	if err != nil {
		ls.log.Warn("Delete listing failed", "error", err)
		return apierr.New(http.StatusInternalServerError, "listing_delete_failed", err)
	}
	if rows == 0 {
		return apierr.New(http.StatusNotFound, "listing_not_found", fmt.Errorf("listing %s does not exist", id))
	}
	return nil
}

func (ls *listingService) TrackView(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := ls.listingRepo.GetByID(ctx, nil, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apierr.New(http.StatusNotFound, "listing_not_found", fmt.Errorf("listing %s does not exist", id))
		}
		ls.log.Warn("Track view failed", "error", err)
		return 0, apierr.New(http.StatusInternalServerError, "listing_fetch_failed", err)
	}
	views, err := ls.viewStore.Increment(ctx, id.String())
	if err != nil {
		ls.log.Warn("Track view failed", "error", err)
		return 0, apierr.New(http.StatusInternalServerError, "view_store_failed", err)
	}
	return views, nil
}

// asAPIError keeps an already-classified error as is and wraps everything
// else as an internal failure with the given code.
func asAPIError(err error, code string) error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return apierr.New(http.StatusInternalServerError, code, err)
}
