package domain

// MealTime is the meal the suggestions are for. Exactly one is selected
// at any time; the zero value is not a valid selection.
type MealTime string

const (
	MealBreakfast MealTime = "아침"
	MealLunch     MealTime = "점심"
	MealDinner    MealTime = "저녁"
)

// DefaultMealTime is the selection a new session starts with.
const DefaultMealTime = MealBreakfast

// MealTimes returns the meal times in display order.
func MealTimes() []MealTime {
	return []MealTime{MealBreakfast, MealLunch, MealDinner}
}

// IsValid reports whether m is a member of the closed set.
func (m MealTime) IsValid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	default:
		return false
	}
}

// English returns the English name of the meal time.
func (m MealTime) English() string {
	switch m {
	case MealBreakfast:
		return "breakfast"
	case MealLunch:
		return "lunch"
	case MealDinner:
		return "dinner"
	default:
		return "unknown"
	}
}

// Cycle returns the meal time delta positions away in display order,
// wrapping at both ends. An invalid m cycles from the default.
func (m MealTime) Cycle(delta int) MealTime {
	all := MealTimes()
	idx := 0
	for i, mt := range all {
		if mt == m {
			idx = i
			break
		}
	}
	n := len(all)
	idx = ((idx+delta)%n + n) % n
	return all[idx]
}
