package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/rei-naissance/Huggle-Bundler/business/recommender"
	"github.com/rei-naissance/Huggle-Bundler/domain"

	"gorm.io/gorm"
)

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{
		DB: db,
	}
}

func (r *StoreRepository) FindBySellerID(ctx context.Context, sellerID string) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	var store domain.Store

	err := r.DB.WithContext(ctx).Where("seller_id = ?", sellerID).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, recommender.ErrUnknownSeller
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}
