//go:build !integration

package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/rei-naissance/Huggle-Bundler/domain"
)

type fakeStoreRepo struct {
	stores map[string]domain.Store
	err    error
}

func (f *fakeStoreRepo) FindBySellerID(ctx context.Context, sellerID string) (domain.Store, error) {
	if f.err != nil {
		return domain.Store{}, f.err
	}
	store, ok := f.stores[sellerID]
	if !ok {
		return domain.Store{}, ErrUnknownSeller
	}
	return store, nil
}

type fakeProductRepo struct {
	products map[string][]domain.Product
	err      error
	calls    int
}

func (f *fakeProductRepo) FindActiveByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products[storeID], nil
}

type fakeTextGen struct {
	name  string
	desc  string
	err   error
	calls int
}

func (f *fakeTextGen) GenerateBundleCopy(ctx context.Context, nameHint string, productNames []string, stock int) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.name, f.desc, nil
}

type fakeCache struct {
	data map[string][]domain.BundleCandidate
	sets int
}

func cacheTestKey(storeID string, n int) string {
	return storeID + string(rune('0'+n))
}

func (f *fakeCache) Get(ctx context.Context, storeID string, numBundles int) ([]domain.BundleCandidate, error) {
	return f.data[cacheTestKey(storeID, numBundles)], nil
}

func (f *fakeCache) Set(ctx context.Context, storeID string, numBundles int, candidates []domain.BundleCandidate) error {
	f.sets++
	f.data[cacheTestKey(storeID, numBundles)] = candidates
	return nil
}

func newTestService(products []domain.Product, textGen TextGenerator, cache CandidateCache) (*RecommenderService, *fakeProductRepo) {
	storeRepo := &fakeStoreRepo{stores: map[string]domain.Store{
		"seller-1": {ID: "store-1", SellerID: "seller-1"},
	}}
	productRepo := &fakeProductRepo{products: map[string][]domain.Product{
		"store-1": products,
	}}
	return NewRecommenderService(storeRepo, productRepo, textGen, cache, Pricing{}), productRepo
}

func TestRecommend_UnknownSeller(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil)

	_, err := svc.Recommend(context.Background(), "nobody", 3)
	if !errors.Is(err, ErrUnknownSeller) {
		t.Errorf("expected ErrUnknownSeller, got %v", err)
	}

	_, err = svc.Recommend(context.Background(), "", 3)
	if !errors.Is(err, ErrUnknownSeller) {
		t.Errorf("empty seller id should be ErrUnknownSeller, got %v", err)
	}
}

func TestRecommend_StoreLookupOutageIsNotUnknownSeller(t *testing.T) {
	outage := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	storeRepo := &fakeStoreRepo{err: outage}
	productRepo := &fakeProductRepo{}
	svc := NewRecommenderService(storeRepo, productRepo, nil, nil, Pricing{})

	_, err := svc.Recommend(context.Background(), "seller-1", 3)
	if errors.Is(err, ErrUnknownSeller) {
		t.Fatalf("infrastructure failure must not be reported as ErrUnknownSeller, got %v", err)
	}
	if !errors.Is(err, outage) {
		t.Errorf("expected the lookup failure to propagate wrapped, got %v", err)
	}
}

func TestRecommend_NoProductsIsEmptyNotError(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil)

	candidates, err := svc.Recommend(context.Background(), "seller-1", 3)
	if err != nil {
		t.Fatalf("zero products must not be an error, got %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected empty result, got %d candidates", len(candidates))
	}
}

func TestRecommend_CandidatesCarryStoreAndOrder(t *testing.T) {
	products := []domain.Product{
		{ID: "C", Name: "Baguette", ProductType: "Bakery", Price: 3, Stock: 5},
		{ID: "B", Name: "Yogurt", ProductType: "Dairy", Price: 1.75, Stock: 3, ExpiresOn: expiresIn(5)},
		{ID: "A", Name: "Milk", ProductType: "Dairy", Price: 2.5, Stock: 8, ExpiresOn: expiresIn(2)},
	}
	svc, _ := newTestService(products, nil, nil)

	candidates, err := svc.Recommend(context.Background(), "seller-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Name != "Dairy Bundle (2 items)" || candidates[1].Name != "Bakery Bundle (1 items)" {
		t.Errorf("candidate order/names wrong: %q, %q", candidates[0].Name, candidates[1].Name)
	}
	for _, c := range candidates {
		if c.StoreID != "store-1" {
			t.Errorf("candidate %q missing store id", c.Name)
		}
		if c.Enrichment != nil {
			t.Errorf("rule-based path must not carry enrichment metadata")
		}
	}
}

func TestRecommend_UsesCache(t *testing.T) {
	products := []domain.Product{
		{ID: "A", Name: "Milk", ProductType: "Dairy", Stock: 1, ExpiresOn: expiresIn(2)},
	}
	cache := &fakeCache{data: map[string][]domain.BundleCandidate{}}
	svc, productRepo := newTestService(products, nil, cache)

	if _, err := svc.Recommend(context.Background(), "seller-1", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Recommend(context.Background(), "seller-1", 1); err != nil {
		t.Fatal(err)
	}

	if productRepo.calls != 1 {
		t.Errorf("second request should be served from cache, product repo called %d times", productRepo.calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected one cache write, got %d", cache.sets)
	}
}

func TestRecommend_CancelledContext(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Recommend(ctx, "seller-1", 1); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
