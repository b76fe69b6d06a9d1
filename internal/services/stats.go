package services

import (
	"context"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/casafind/casafind-backend/internal/apierr"
	redisclient "github.com/casafind/casafind-backend/internal/clients/redis"
	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/repos"
	"github.com/casafind/casafind-backend/internal/types"
)

// An agent only counts as active on listings priced strictly above this.
const activeAgentPriceThreshold = 300000

const unknownAgentLabel = "Unknown Agent"

type StatsService interface {
	ComputeActiveAgentStats(ctx context.Context) ([]types.AgentStatSummary, error)
}

type statsService struct {
	log         *logger.Logger
	listingRepo repos.ListingRepo
	agentRepo   repos.AgentRepo
	viewStore   redisclient.ViewStore
}

func NewStatsService(log *logger.Logger, listingRepo repos.ListingRepo, agentRepo repos.AgentRepo, viewStore redisclient.ViewStore) StatsService {
	serviceLog := log.With("service", "StatsService")
	return &statsService{
		log:         serviceLog,
		listingRepo: listingRepo,
		agentRepo:   agentRepo,
		viewStore:   viewStore,
	}
}

type agentGroup struct {
	agentID    uuid.UUID
	rows       int64
	totalViews int64
}

// ComputeActiveAgentStats joins the view-count documents against the
// relational listings and rolls the qualifying rows up per agent.
//
// The two stores are read as independent snapshots with no transaction
// spanning them, so a listing created or deleted between the two reads may
// be inconsistently reflected. That staleness window is part of the
// contract, not a defect.
//
// Grouping counts qualifying view-record rows, not distinct listings: a
// listing with several view documents contributes once per document.
func (ss *statsService) ComputeActiveAgentStats(ctx context.Context) ([]types.AgentStatSummary, error) {
	var (
		viewRecords []types.ViewRecord
		listings    []*types.Listing
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		viewRecords, err = ss.viewStore.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		listings, err = ss.listingRepo.List(gctx, nil, false)
		return err
	})
	if err := g.Wait(); err != nil {
		ss.log.Warn("Active agent stats snapshot failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "stats_unavailable", err)
	}

	listingByID := make(map[string]*types.Listing, len(listings))
	for _, listing := range listings {
		listingByID[listing.ID.String()] = listing
	}

	// Left join and filter. A view record whose listing is gone has no
	// resolvable price, which can never exceed the threshold, so it drops
	// out here rather than erroring.
	groupByAgent := make(map[uuid.UUID]*agentGroup)
	var groupOrder []uuid.UUID
	for _, record := range viewRecords {
		listing, ok := listingByID[record.ListingID]
		if !ok {
			continue
		}
		if listing.Price <= activeAgentPriceThreshold {
			continue
		}
		group, ok := groupByAgent[listing.AgentID]
		if !ok {
			group = &agentGroup{agentID: listing.AgentID}
			groupByAgent[listing.AgentID] = group
			groupOrder = append(groupOrder, listing.AgentID)
		}
		group.rows++
		group.totalViews += record.Views
	}

	agents, err := ss.agentRepo.GetByIDs(ctx, nil, groupOrder)
	if err != nil {
		ss.log.Warn("Active agent stats name join failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "stats_unavailable", err)
	}
	nameByID := make(map[uuid.UUID]string, len(agents))
	for _, agent := range agents {
		nameByID[agent.ID] = agent.Name
	}

	summaries := make([]types.AgentStatSummary, 0, len(groupOrder))
	for _, id := range groupOrder {
		group := groupByAgent[id]
		name, ok := nameByID[id]
		if !ok {
			name = unknownAgentLabel
		}
		summaries = append(summaries, types.AgentStatSummary{
			Agent:      name,
			Listings:   group.rows,
			TotalViews: group.totalViews,
		})
	}

	// Descending by views; ties keep first-seen group order.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalViews > summaries[j].TotalViews
	})
	return summaries, nil
}
