package recommender

import (
	"fmt"
	"strings"

	"github.com/rei-naissance/Huggle-Bundler/domain"
)

// Compose turns one ranked group into a bundle candidate. Name and
// description are derived purely from the category label, the member count
// and the nearest expiry, so this path always works with zero external
// dependencies and is idempotent for identical input.
func Compose(g Group, pricing Pricing) domain.BundleCandidate {
	members := make([]domain.BundleProduct, 0, len(g.Products))
	names := make([]string, 0, len(g.Products))
	stock := 0

	for i, p := range g.Products {
		members = append(members, domain.BundleProduct{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			ExpiresOn: p.ExpiresOn,
		})
		names = append(names, p.Name)
		if i == 0 || p.Stock < stock {
			stock = p.Stock
		}
	}

	name := fmt.Sprintf("%s Bundle (%d items)", g.Category, len(members))

	description := fmt.Sprintf("Includes %s.", oxfordJoin(names))
	// Members are sorted by urgency, so the first finite expiry is the nearest.
	if len(g.Products) > 0 && g.Products[0].HasExpiry() {
		description += fmt.Sprintf(" Best before %s.", g.Products[0].ExpiresOn.Format("Jan 2, 2006"))
	}

	price, original := pricing.BundlePrice(members)

	return domain.BundleCandidate{
		Category:      g.Category,
		Name:          name,
		Description:   description,
		Products:      members,
		Price:         price,
		OriginalPrice: original,
		Stock:         stock,
	}
}

// oxfordJoin renders "a", "a and b" or "a, b, and c".
func oxfordJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}
