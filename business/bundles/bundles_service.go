package bundles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rei-naissance/Huggle-Bundler/business/recommender"
	"github.com/rei-naissance/Huggle-Bundler/domain"
	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
	"github.com/rei-naissance/Huggle-Bundler/pkg/metrics"
)

var (
	ErrBundleNotFound  = errors.New("bundle not found")
	ErrDuplicateBundle = errors.New("bundle with the same products already exists")
	ErrNoProducts      = errors.New("bundle requires at least one product")
)

// BundleRepository contract interface
type BundleRepository interface {
	Create(ctx context.Context, bundle *domain.Bundle) error
	FindByID(ctx context.Context, id string) (domain.Bundle, error)
	FindAllBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Bundle, error)
	ExistsForSignature(ctx context.Context, storeID, signature string) (bool, error)
}

type StoreRepository interface {
	FindBySellerID(ctx context.Context, sellerID string) (domain.Store, error)
}

// Recommender is the enriched recommendation path consumed by the
// recommend-and-save flow.
type Recommender interface {
	RecommendEnriched(ctx context.Context, sellerID string, numBundles int) ([]domain.BundleCandidate, error)
}

type BundlesService struct {
	bundleRepo  BundleRepository
	storeRepo   StoreRepository
	recommender Recommender
}

func NewBundlesService(bundleRepo BundleRepository, storeRepo StoreRepository, recommender Recommender) *BundlesService {
	return &BundlesService{
		bundleRepo:  bundleRepo,
		storeRepo:   storeRepo,
		recommender: recommender,
	}
}

// Save persists an accepted candidate as a new immutable bundle. Saving two
// candidates with the same product set in one store is rejected with
// ErrDuplicateBundle; logically distinct candidates always produce distinct
// bundles.
func (s *BundlesService) Save(ctx context.Context, candidate domain.BundleCandidate, sellerID string) (*domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(candidate.Products) == 0 {
		logger.Error("Invalid bundle data: no products")
		return nil, ErrNoProducts
	}

	storeID := candidate.StoreID
	if storeID == "" {
		store, err := s.storeRepo.FindBySellerID(ctx, sellerID)
		if err != nil {
			if errors.Is(err, recommender.ErrUnknownSeller) {
				return nil, recommender.ErrUnknownSeller
			}
			logger.Error("failed to resolve store for seller", "seller_id", sellerID, "error", err)
			return nil, fmt.Errorf("failed to resolve store: %w", err)
		}
		storeID = store.ID
	}

	signature, err := ComputeSignature(candidate.ProductIDs())
	if err != nil {
		return nil, ErrNoProducts
	}

	exists, err := s.bundleRepo.ExistsForSignature(ctx, storeID, signature)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate bundle: %w", err)
	}
	if exists {
		return nil, ErrDuplicateBundle
	}

	productsJSON, err := json.Marshal(candidate.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bundle products: %w", err)
	}

	now := time.Now()
	bundle := &domain.Bundle{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		StoreID:       storeID,
		Signature:     signature,
		Name:          candidate.Name,
		Description:   candidate.Description,
		Products:      productsJSON,
		Price:         candidate.Price,
		OriginalPrice: candidate.OriginalPrice,
		Stock:         candidate.Stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bundleRepo.Create(ctx, bundle); err != nil {
		logger.Error("failed to create bundle", "store_id", storeID, "error", err)
		return nil, err
	}

	metrics.BundlesSaved.Inc()
	logger.Info("bundle saved", "bundle_id", bundle.ID, "store_id", storeID)

	return bundle, nil
}

// RecommendAndSave runs the enriched recommendation path and persists every
// returned candidate. Candidates whose product set is already bundled are
// skipped; any other persistence failure aborts with a hard error so no
// half-saved batch is reported as success.
func (s *BundlesService) RecommendAndSave(ctx context.Context, sellerID string, numBundles int) ([]domain.Bundle, error) {
	candidates, err := s.recommender.RecommendEnriched(ctx, sellerID, numBundles)
	if err != nil {
		return nil, err
	}

	saved := make([]domain.Bundle, 0, len(candidates))
	for _, c := range candidates {
		bundle, err := s.Save(ctx, c, sellerID)
		if err != nil {
			if errors.Is(err, ErrDuplicateBundle) {
				logger.Info("skipping duplicate bundle", "name", c.Name)
				continue
			}
			return nil, err
		}
		saved = append(saved, *bundle)
	}

	return saved, nil
}

func (s *BundlesService) GetBundleByID(ctx context.Context, id string) (*domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if id == "" {
		logger.Error("invalid bundle id")
		return nil, ErrBundleNotFound
	}

	bundle, err := s.bundleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &bundle, nil
}

func (s *BundlesService) GetBundlesBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	bundlesFound, err := s.bundleRepo.FindAllBySeller(ctx, sellerID, limit, offset)
	if err != nil {
		logger.Error("failed to find bundles for seller", "seller_id", sellerID, "error", err)
		return nil, err
	}

	return bundlesFound, nil
}
