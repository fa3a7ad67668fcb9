package recommender

import (
	"math"

	"github.com/rei-naissance/Huggle-Bundler/domain"
)

// Size-based discount percentages, applied only when the pricing policy is
// explicitly enabled. Without a policy the bundle price is plain additive.
var sizeDiscounts = map[int]float64{
	2: 5.0,
	3: 10.0,
	4: 15.0,
	5: 20.0,
}

type Pricing struct {
	SizeDiscounts bool
}

func (p Pricing) discountPercent(n int) float64 {
	if !p.SizeDiscounts || n < 2 {
		return 0
	}
	if pct, ok := sizeDiscounts[n]; ok {
		return pct
	}
	if n >= 5 {
		return sizeDiscounts[5]
	}
	return 0
}

// BundlePrice returns the bundle price and the undiscounted total for a set
// of members. Both are rounded to cents.
func (p Pricing) BundlePrice(members []domain.BundleProduct) (price, original float64) {
	for _, m := range members {
		original += m.Price
	}
	original = round2(original)

	pct := p.discountPercent(len(members))
	if pct <= 0 {
		return original, original
	}

	price = round2(original * (1 - pct/100))
	return price, original
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
