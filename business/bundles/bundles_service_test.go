//go:build !integration

package bundles

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rei-naissance/Huggle-Bundler/business/recommender"
	"github.com/rei-naissance/Huggle-Bundler/domain"
)

type fakeBundleRepo struct {
	created   []domain.Bundle
	createErr error
}

func (f *fakeBundleRepo) Create(ctx context.Context, bundle *domain.Bundle) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *bundle)
	return nil
}

func (f *fakeBundleRepo) FindByID(ctx context.Context, id string) (domain.Bundle, error) {
	for _, b := range f.created {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Bundle{}, ErrBundleNotFound
}

func (f *fakeBundleRepo) FindAllBySeller(ctx context.Context, sellerID string, limit, offset int) ([]domain.Bundle, error) {
	var out []domain.Bundle
	for _, b := range f.created {
		if b.SellerID == sellerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBundleRepo) ExistsForSignature(ctx context.Context, storeID, signature string) (bool, error) {
	for _, b := range f.created {
		if b.StoreID == storeID && b.Signature == signature {
			return true, nil
		}
	}
	return false, nil
}

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
		return domain.Store{}, recommender.ErrUnknownSeller
	}
	return store, nil
}

type fakeRecommender struct {
	candidates []domain.BundleCandidate
	err        error
}

func (f *fakeRecommender) RecommendEnriched(ctx context.Context, sellerID string, numBundles int) ([]domain.BundleCandidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func testCandidate(storeID string, ids ...string) domain.BundleCandidate {
	members := make([]domain.BundleProduct, 0, len(ids))
	for _, id := range ids {
		members = append(members, domain.BundleProduct{ID: id, Name: "Item " + id, Price: 2, Stock: 4})
	}
	return domain.BundleCandidate{
		StoreID:       storeID,
		Category:      "Dairy",
		Name:          "Dairy Bundle (2 items)",
		Description:   "Includes things.",
		Products:      members,
		Price:         4,
		OriginalPrice: 4,
		Stock:         4,
	}
}

func newTestBundlesService(reco Recommender) (*BundlesService, *fakeBundleRepo) {
	repo := &fakeBundleRepo{}
	stores := &fakeStoreRepo{stores: map[string]domain.Store{
		"seller-1": {ID: "store-1", SellerID: "seller-1"},
	}}
	return NewBundlesService(repo, stores, reco), repo
}

func TestSave_AssignsIdentityAndTimestamps(t *testing.T) {
	svc, repo := newTestBundlesService(nil)

	bundle, err := svc.Save(context.Background(), testCandidate("store-1", "p1", "p2"), "seller-1")
	if err != nil {
		t.Fatal(err)
	}

	if bundle.ID == "" {
		t.Error("saved bundle has no identity")
	}
	if bundle.CreatedAt.IsZero() || bundle.UpdatedAt.IsZero() {
		t.Error("saved bundle has no timestamps")
	}
	if !ValidSignature(bundle.Signature) {
		t.Errorf("saved bundle signature %q invalid", bundle.Signature)
	}
	if bundle.SellerID != "seller-1" || bundle.StoreID != "store-1" {
		t.Errorf("scoping wrong: seller=%q store=%q", bundle.SellerID, bundle.StoreID)
	}

	var members []domain.BundleProduct
	if err := json.Unmarshal(bundle.Products, &members); err != nil {
		t.Fatalf("products column is not valid json: %v", err)
	}
	if len(members) != 2 || members[0].ID != "p1" {
		t.Errorf("member snapshot wrong: %+v", members)
	}
	if len(repo.created) != 1 {
		t.Errorf("expected exactly one persisted bundle, got %d", len(repo.created))
	}
}

func TestSave_ResolvesStoreFromSeller(t *testing.T) {
	svc, _ := newTestBundlesService(nil)

	candidate := testCandidate("", "p1", "p2")
	bundle, err := svc.Save(context.Background(), candidate, "seller-1")
	if err != nil {
		t.Fatal(err)
	}
	if bundle.StoreID != "store-1" {
		t.Errorf("store not resolved from seller, got %q", bundle.StoreID)
	}
}

func TestSave_UnknownSeller(t *testing.T) {
	svc, repo := newTestBundlesService(nil)

	_, err := svc.Save(context.Background(), testCandidate("", "p1", "p2"), "nobody")
	if !errors.Is(err, recommender.ErrUnknownSeller) {
		t.Fatalf("expected ErrUnknownSeller, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("nothing should be persisted, got %d bundles", len(repo.created))
	}
}

func TestSave_StoreLookupOutageIsNotUnknownSeller(t *testing.T) {
	outage := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	stores := &fakeStoreRepo{err: outage}
	svc := NewBundlesService(&fakeBundleRepo{}, stores, nil)

	_, err := svc.Save(context.Background(), testCandidate("", "p1", "p2"), "seller-1")
	if errors.Is(err, recommender.ErrUnknownSeller) {
		t.Fatalf("infrastructure failure must not be reported as ErrUnknownSeller, got %v", err)
	}
	if !errors.Is(err, outage) {
		t.Errorf("expected the lookup failure to propagate wrapped, got %v", err)
	}
}

func TestSave_RejectsEmptyCandidate(t *testing.T) {
	svc, _ := newTestBundlesService(nil)

	_, err := svc.Save(context.Background(), domain.BundleCandidate{StoreID: "store-1"}, "seller-1")
	if !errors.Is(err, ErrNoProducts) {
		t.Errorf("expected ErrNoProducts, got %v", err)
	}
}

func TestSave_DuplicateProductSet(t *testing.T) {
	svc, _ := newTestBundlesService(nil)

	if _, err := svc.Save(context.Background(), testCandidate("store-1", "p1", "p2"), "seller-1"); err != nil {
		t.Fatal(err)
	}

	// Same set, different order: same signature, so the save is rejected.
	_, err := svc.Save(context.Background(), testCandidate("store-1", "p2", "p1"), "seller-1")
	if !errors.Is(err, ErrDuplicateBundle) {
		t.Errorf("expected ErrDuplicateBundle, got %v", err)
	}

	// A distinct set is a distinct bundle.
	if _, err := svc.Save(context.Background(), testCandidate("store-1", "p1", "p3"), "seller-1"); err != nil {
		t.Errorf("distinct candidate should save, got %v", err)
	}
}

func TestRecommendAndSave_SkipsDuplicatesPersistsRest(t *testing.T) {
	reco := &fakeRecommender{candidates: []domain.BundleCandidate{
		testCandidate("store-1", "p1", "p2"),
		testCandidate("store-1", "p2", "p1"), // duplicate of the first
		testCandidate("store-1", "p3", "p4"),
	}}
	svc, repo := newTestBundlesService(reco)

	saved, err := svc.RecommendAndSave(context.Background(), "seller-1", 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(saved) != 2 {
		t.Fatalf("expected 2 saved bundles (duplicate skipped), got %d", len(saved))
	}
	if len(repo.created) != 2 {
		t.Errorf("repository holds %d bundles, want 2", len(repo.created))
	}
}

func TestRecommendAndSave_PersistenceFailureIsHardError(t *testing.T) {
	reco := &fakeRecommender{candidates: []domain.BundleCandidate{
		testCandidate("store-1", "p1", "p2"),
	}}
	svc, repo := newTestBundlesService(reco)
	repo.createErr = errors.New("store unavailable")

	if _, err := svc.RecommendAndSave(context.Background(), "seller-1", 1); err == nil {
		t.Error("persistence failure must surface as a hard error")
	}
	if len(repo.created) != 0 {
		t.Errorf("no partial bundle may remain, found %d", len(repo.created))
	}
}

func TestGetBundleByID(t *testing.T) {
	svc, _ := newTestBundlesService(nil)

	saved, err := svc.Save(context.Background(), testCandidate("store-1", "p1", "p2"), "seller-1")
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetBundleByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != saved.ID {
		t.Errorf("got bundle %q, want %q", got.ID, saved.ID)
	}

	if _, err := svc.GetBundleByID(context.Background(), "missing"); !errors.Is(err, ErrBundleNotFound) {
		t.Errorf("expected ErrBundleNotFound, got %v", err)
	}
	if _, err := svc.GetBundleByID(context.Background(), ""); !errors.Is(err, ErrBundleNotFound) {
		t.Errorf("blank id should be ErrBundleNotFound, got %v", err)
	}
}

func TestGetBundlesBySeller(t *testing.T) {
	svc, _ := newTestBundlesService(nil)

	if _, err := svc.Save(context.Background(), testCandidate("store-1", "p1", "p2"), "seller-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(context.Background(), testCandidate("store-1", "p3", "p4"), "seller-1"); err != nil {
		t.Fatal(err)
	}

	found, err := svc.GetBundlesBySeller(context.Background(), "seller-1", 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 2 {
		t.Errorf("expected 2 bundles for seller, got %d", len(found))
	}

	none, err := svc.GetBundlesBySeller(context.Background(), "seller-2", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no bundles for other seller, got %d", len(none))
	}
}
