package postgres

import (
	"context"
	"fmt"

	"github.com/rei-naissance/Huggle-Bundler/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// FindActiveByStore returns a store's active products. NULL is_active counts
// as active, matching the upstream inventory contract.
func (r *ProductRepository) FindActiveByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("is_active = ? OR is_active IS NULL", true).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}
