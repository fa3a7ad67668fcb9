package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/rei-naissance/Huggle-Bundler/business/bundles"
	"github.com/rei-naissance/Huggle-Bundler/domain"

	"gorm.io/gorm"
)

type BundleRepository struct {
	DB *gorm.DB
}

func NewBundleRepository(db *gorm.DB) *BundleRepository {
	return &BundleRepository{
		DB: db,
	}
}

func (r *BundleRepository) Create(ctx context.Context, bundle *domain.Bundle) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(bundle).Error; err != nil {
		// Concurrent saves can still hit uq_bundle_store_signature even
		// after the service's existence pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return bundles.ErrDuplicateBundle
		}
		return fmt.Errorf("failed to create bundle: %w", err)
	}

	return nil
}

func (r *BundleRepository) FindByID(ctx context.Context, id string) (domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bundle{}, fmt.Errorf("context error: %w", err)
	}

	var bundle domain.Bundle

	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&bundle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Bundle{}, bundles.ErrBundleNotFound
		}
		return domain.Bundle{}, fmt.Errorf("failed to find bundle: %w", err)
	}

	return bundle, nil
}

func (r *BundleRepository) FindAllBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var found []domain.Bundle
	err := r.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bundles: %w", err)
	}

	return found, nil
}

func (r *BundleRepository) ExistsForSignature(ctx context.Context, storeID, signature string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Bundle{}).
		Where("store_id = ? AND signature = ?", storeID, signature).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check bundle signature: %w", err)
	}

	return count > 0, nil
}
