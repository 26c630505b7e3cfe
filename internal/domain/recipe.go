// Package domain defines the core types and interfaces for the recipe
// suggester. All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Recipe is one suggestion returned by the generation service.
// Every field is required; a response missing any of them is malformed.
// Strings must be non-empty and so must every ingredient and step.
type Recipe struct {
	ID            string     `json:"id" yaml:"id" validate:"required"`
	Name          string     `json:"name" yaml:"name" validate:"required"`
	Description   string     `json:"description" yaml:"description" validate:"required"`
	Ingredients   []string   `json:"ingredients" yaml:"ingredients" validate:"required,dive,required"`
	Instructions  []string   `json:"instructions" yaml:"instructions" validate:"required,dive,required"`
	EstimatedTime string     `json:"estimatedTime" yaml:"estimatedTime" validate:"required"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,difficulty"`
}

// Difficulty is the closed set of recipe difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "쉬움"
	DifficultyMedium Difficulty = "보통"
	DifficultyHard   Difficulty = "어려움"
)

// Difficulties returns every difficulty level, easiest first.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// IsValid reports whether d is one of the three known levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// IngredientList is the normalized, ordered list of user ingredients.
// Not deduplicated.
type IngredientList []string

// String joins the ingredients the way they are embedded in prompts.
func (l IngredientList) String() string {
	return strings.Join(l, ", ")
}
