package input

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

type mealRule struct {
	regex *regexp.Regexp
	meal  domain.MealTime
}

var mealRules = []mealRule{
	{regexp.MustCompile(`(?i)^(아침|조식|breakfast|morning|b)$`), domain.MealBreakfast},
	{regexp.MustCompile(`(?i)^(점심|중식|lunch|noon|l)$`), domain.MealLunch},
	{regexp.MustCompile(`(?i)^(저녁|석식|dinner|supper|evening|d)$`), domain.MealDinner},
}

// ParseMealTime maps a Korean label or English name to a MealTime.
// Matching is case-insensitive and ignores surrounding space.
func ParseMealTime(s string) (domain.MealTime, error) {
	trimmed := strings.TrimSpace(s)
	for _, rule := range mealRules {
		if rule.regex.MatchString(trimmed) {
			return rule.meal, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidMealTime, s)
}
