package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/types"
)

type ListingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, listing *types.Listing) (*types.Listing, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, withAgent bool) (*types.Listing, error)
	List(ctx context.Context, tx *gorm.DB, withAgent bool) ([]*types.Listing, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error)
}

type listingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewListingRepo(db *gorm.DB, baseLog *logger.Logger) ListingRepo {
	repoLog := baseLog.With("repo", "ListingRepo")
	return &listingRepo{db: db, log: repoLog}
}

func (lr *listingRepo) Create(ctx context.Context, tx *gorm.DB, listing *types.Listing) (*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

func (lr *listingRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, withAgent bool) (*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	query := transaction.WithContext(ctx)
	if withAgent {
		query = query.Preload("Agent")
	}

	var result types.Listing
	if err := query.First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (lr *listingRepo) List(ctx context.Context, tx *gorm.DB, withAgent bool) ([]*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	query := transaction.WithContext(ctx)
	if withAgent {
		query = query.Preload("Agent")
	}

	var results []*types.Listing
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *listingRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Listing{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (lr *listingRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Listing{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
