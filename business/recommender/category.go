package recommender

import (
	"encoding/json"
	"strings"

	"github.com/rei-naissance/Huggle-Bundler/domain"
)

// FallbackCategory labels products that carry neither a product type nor tags.
const FallbackCategory = "Misc"

// ResolveCategory picks the grouping label for a product. Resolution order:
// explicit product type, then the first tag, then FallbackCategory.
func ResolveCategory(p domain.Product) string {
	if t := strings.TrimSpace(p.ProductType); t != "" {
		return t
	}
	if tags := ParseTags(p.Tags); len(tags) > 0 {
		return tags[0]
	}
	return FallbackCategory
}

// ParseTags accepts either a JSON array string or a comma-separated list and
// returns the trimmed, non-empty tags.
func ParseTags(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			out := make([]string, 0, len(arr))
			for _, t := range arr {
				if t = strings.TrimSpace(t); t != "" {
					out = append(out, t)
				}
			}
			return out
		}
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
