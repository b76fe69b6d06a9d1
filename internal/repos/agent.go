package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/types"
)

type AgentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, agent *types.Agent) (*types.Agent, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Agent, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Agent, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Agent, error)
	Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type agentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgentRepo(db *gorm.DB, baseLog *logger.Logger) AgentRepo {
	repoLog := baseLog.With("repo", "AgentRepo")
	return &agentRepo{db: db, log: repoLog}
}

func (ar *agentRepo) Create(ctx context.Context, tx *gorm.DB, agent *types.Agent) (*types.Agent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(agent).Error; err != nil {
		return nil, err
	}
	return agent, nil
}

func (ar *agentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Agent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Agent
	if err := transaction.WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *agentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Agent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Agent
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *agentRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Agent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Agent
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *agentRepo) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Agent{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *agentRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Agent{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *agentRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Agent{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (ar *agentRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Agent{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
