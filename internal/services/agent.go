package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casafind/casafind-backend/internal/apierr"
	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/repos"
	"github.com/casafind/casafind-backend/internal/types"
)

type CreateAgentInput struct {
	Name  string
	Email string
}

type UpdateAgentInput struct {
	Name  *string
	Email *string
}

type AgentService interface {
	Create(ctx context.Context, input CreateAgentInput) (*types.Agent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Agent, error)
	List(ctx context.Context) ([]*types.Agent, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateAgentInput) (*types.Agent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type agentService struct {
	db        *gorm.DB
	log       *logger.Logger
	agentRepo repos.AgentRepo
}

func NewAgentService(db *gorm.DB, log *logger.Logger, agentRepo repos.AgentRepo) AgentService {
	serviceLog := log.With("service", "AgentService")
	return &agentService{db: db, log: serviceLog, agentRepo: agentRepo}
}

func (as *agentService) Create(ctx context.Context, input CreateAgentInput) (*types.Agent, error) {
	var created *types.Agent
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := as.agentRepo.EmailExists(ctx, tx, input.Email)
		if err != nil {
			return fmt.Errorf("checking email: %w", err)
		}
		if taken {
			return apierr.New(http.StatusConflict, "agent_email_taken", fmt.Errorf("email %q already registered", input.Email))
		}

		agent := &types.Agent{
			ID:    uuid.New(),
			Name:  input.Name,
			Email: input.Email,
		}
		created, err = as.agentRepo.Create(ctx, tx, agent)
		if err != nil {
			return fmt.Errorf("creating agent: %w", err)
		}
		return nil
	}); err != nil {
		as.log.Warn("Create agent failed", "error", err)
		return nil, asAPIError(err, "agent_create_failed")
	}
	return created, nil
}

func (as *agentService) GetByID(ctx context.Context, id uuid.UUID) (*types.Agent, error) {
	agent, err := as.agentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "agent_not_found", fmt.Errorf("agent %s does not exist", id))
		}
		as.log.Warn("Get agent failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "agent_fetch_failed", err)
	}
	return agent, nil
}

func (as *agentService) List(ctx context.Context) ([]*types.Agent, error) {
	agents, err := as.agentRepo.List(ctx, nil)
	if err != nil {
		as.log.Warn("List agents failed", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "agent_fetch_failed", err)
	}
	return agents, nil
}

func (as *agentService) Update(ctx context.Context, id uuid.UUID, input UpdateAgentInput) (*types.Agent, error) {
	var updated *types.Agent
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := as.agentRepo.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.New(http.StatusNotFound, "agent_not_found", fmt.Errorf("agent %s does not exist", id))
			}
			return fmt.Errorf("fetching agent: %w", err)
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Email != nil && *input.Email != current.Email {
			taken, err := as.agentRepo.EmailExists(ctx, tx, *input.Email)
			if err != nil {
				return fmt.Errorf("checking email: %w", err)
			}
			if taken {
				return apierr.New(http.StatusConflict, "agent_email_taken", fmt.Errorf("email %q already registered", *input.Email))
			}
			updates["email"] = *input.Email
		}

		if len(updates) > 0 {
			if _, err := as.agentRepo.Update(ctx, tx, id, updates); err != nil {
				return fmt.Errorf("updating agent: %w", err)
			}
		}

		updated, err = as.agentRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("reloading agent: %w", err)
		}
		return nil
	}); err != nil {
		as.log.Warn("Update agent failed", "error", err)
		return nil, asAPIError(err, "agent_update_failed")
	}
	return updated, nil
}

func (as *agentService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := as.agentRepo.Delete(ctx, nil, id)
	if err != nil {
		as.log.Warn("Delete agent failed", "error", err)
		return apierr.New(http.StatusInternalServerError, "agent_delete_failed", err)
	}
	if rows == 0 {
		return apierr.New(http.StatusNotFound, "agent_not_found", fmt.Errorf("agent %s does not exist", id))
	}
	return nil
}
