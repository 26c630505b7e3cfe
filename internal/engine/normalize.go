package engine

import (
	"strings"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

// NormalizeIngredients splits comma-separated text into trimmed,
// non-empty ingredients, keeping their order. Duplicates are kept.
func NormalizeIngredients(raw string) domain.IngredientList {
	parts := strings.Split(raw, ",")
	out := make(domain.IngredientList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
