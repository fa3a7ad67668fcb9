package recommender

import (
	"sort"

	"github.com/rei-naissance/Huggle-Bundler/domain"
)

// Group is one category partition with its members in urgency order.
type Group struct {
	Category string
	Products []domain.Product
}

// expiryBefore orders two products by urgency: earlier expiry first, products
// without any expiry always last, low stock breaks ties.
func expiryBefore(a, b domain.Product) bool {
	switch {
	case a.HasExpiry() && !b.HasExpiry():
		return true
	case !a.HasExpiry() && b.HasExpiry():
		return false
	case a.HasExpiry() && b.HasExpiry() && !a.ExpiresOn.Equal(*b.ExpiresOn):
		return a.ExpiresOn.Before(*b.ExpiresOn)
	}
	if a.Stock != b.Stock {
		return a.Stock < b.Stock
	}
	return a.ID < b.ID
}

// GroupByUrgency partitions products by resolved category, orders each
// partition by expiry urgency and returns the min(k, partitions) most urgent
// groups, most urgent category first. It never produces an empty group and
// never errors: an empty product set or non-positive k yields no groups, and
// rows without a product id are dropped rather than failing the batch.
func GroupByUrgency(products []domain.Product, k int) []Group {
	if k <= 0 || len(products) == 0 {
		return nil
	}

	buckets := make(map[string][]domain.Product)
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		category := ResolveCategory(p)
		buckets[category] = append(buckets[category], p)
	}
	if len(buckets) == 0 {
		return nil
	}

	groups := make([]Group, 0, len(buckets))
	for category, items := range buckets {
		sort.SliceStable(items, func(i, j int) bool {
			return expiryBefore(items[i], items[j])
		})
		groups = append(groups, Group{Category: category, Products: items})
	}

	// Rank partitions by their most urgent member; partitions with no finite
	// expiry at all sink to the end. Category name keeps the order stable.
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Products[0], groups[j].Products[0]
		switch {
		case a.HasExpiry() && !b.HasExpiry():
			return true
		case !a.HasExpiry() && b.HasExpiry():
			return false
		case a.HasExpiry() && b.HasExpiry() && !a.ExpiresOn.Equal(*b.ExpiresOn):
			return a.ExpiresOn.Before(*b.ExpiresOn)
		}
		return groups[i].Category < groups[j].Category
	})

	if len(groups) > k {
		groups = groups[:k]
	}

	return groups
}
