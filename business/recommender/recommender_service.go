package recommender

import (
	"context"
	"errors"
	"fmt"

	"github.com/rei-naissance/Huggle-Bundler/domain"
	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
)

var ErrUnknownSeller = errors.New("unknown seller id")

// StoreRepository resolves a seller to their store. A seller with no store
// must be reported as ErrUnknownSeller; any other error is treated as an
// infrastructure failure.
type StoreRepository interface {
	FindBySellerID(ctx context.Context, sellerID string) (domain.Store, error)
}

// ProductRepository is the read-only product source.
type ProductRepository interface {
	FindActiveByStore(ctx context.Context, storeID string) ([]domain.Product, error)
}

// TextGenerator produces replacement bundle copy from an AI provider. Any
// error, including "not configured", makes the caller keep the template.
type TextGenerator interface {
	GenerateBundleCopy(ctx context.Context, nameHint string, productNames []string, stock int) (name string, description string, err error)
}

// CandidateCache is an optional short-TTL cache for rule-based results.
type CandidateCache interface {
	Get(ctx context.Context, storeID string, numBundles int) ([]domain.BundleCandidate, error)
	Set(ctx context.Context, storeID string, numBundles int, candidates []domain.BundleCandidate) error
}

type RecommenderService struct {
	storeRepo   StoreRepository
	productRepo ProductRepository
	textGen     TextGenerator
	cache       CandidateCache
	pricing     Pricing
}

// NewRecommenderService wires the engine. textGen and cache may be nil; a nil
// textGen behaves like an unconfigured provider and a nil cache disables
// caching.
func NewRecommenderService(
	storeRepo StoreRepository,
	productRepo ProductRepository,
	textGen TextGenerator,
	cache CandidateCache,
	pricing Pricing,
) *RecommenderService {
	return &RecommenderService{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		textGen:     textGen,
		cache:       cache,
		pricing:     pricing,
	}
}

// Recommend runs the rule-based path: resolve the seller's store, group its
// active products by category urgency and compose one templated candidate per
// group. A seller with zero eligible products gets an empty result, not an
// error.
func (s *RecommenderService) Recommend(ctx context.Context, sellerID string, numBundles int) ([]domain.BundleCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if sellerID == "" {
		return nil, ErrUnknownSeller
	}

	store, err := s.storeRepo.FindBySellerID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, ErrUnknownSeller) {
			return nil, ErrUnknownSeller
		}
		logger.Error("failed to resolve store for seller", "seller_id", sellerID, "error", err)
		return nil, fmt.Errorf("failed to resolve store: %w", err)
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, store.ID, numBundles)
		if err != nil {
			logger.Warn("recommendation cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	products, err := s.productRepo.FindActiveByStore(ctx, store.ID)
	if err != nil {
		logger.Error("failed to load products for store", "store_id", store.ID, "error", err)
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	groups := GroupByUrgency(products, numBundles)

	candidates := make([]domain.BundleCandidate, 0, len(groups))
	for _, g := range groups {
		candidate := Compose(g, s.pricing)
		candidate.StoreID = store.ID
		candidates = append(candidates, candidate)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, store.ID, numBundles, candidates); err != nil {
			logger.Warn("recommendation cache write failed", "error", err)
		}
	}

	return candidates, nil
}

// RecommendEnriched runs the rule-based path and then overlays AI copy on
// each candidate, falling back to the template on any enrichment failure.
func (s *RecommenderService) RecommendEnriched(ctx context.Context, sellerID string, numBundles int) ([]domain.BundleCandidate, error) {
	candidates, err := s.Recommend(ctx, sellerID, numBundles)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i] = s.enrichCandidate(ctx, candidates[i])
	}

	return candidates, nil
}
