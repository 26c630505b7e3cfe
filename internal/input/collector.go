// Package input owns the raw user input: the free-text ingredient field
// and the meal-time selection.
package input

import (
	"sync"

	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/logger"
)

// Snapshot is the collected input at one instant.
type Snapshot struct {
	Ingredients string
	MealTime    domain.MealTime
}

// Collector holds the current input. Edits are accepted at any time,
// including while a generation is running; they never affect a request
// already taken from a Snapshot. Safe for concurrent use.
type Collector struct {
	mu          sync.RWMutex
	ingredients string
	meal        domain.MealTime
	log         *logger.Logger
}

// NewCollector returns a collector with empty text and the default meal
// time selected.
func NewCollector(log *logger.Logger) *Collector {
	return &Collector{meal: domain.DefaultMealTime, log: log}
}

// SetIngredients replaces the ingredient text as typed. No normalization.
func (c *Collector) SetIngredients(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingredients = text
}

// Ingredients returns the ingredient text as typed.
func (c *Collector) Ingredients() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ingredients
}

// SetMealTime selects m. Values outside the closed set are rejected and
// the selection is left unchanged.
func (c *Collector) SetMealTime(m domain.MealTime) error {
	if !m.IsValid() {
		return domain.ErrInvalidMealTime
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meal = m
	c.log.Debug("meal time set to %s", m.English())
	return nil
}

// MealTime returns the selected meal time.
func (c *Collector) MealTime() domain.MealTime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.meal
}

// Cycle moves the selection delta positions, wrapping, and returns the new
// selection.
func (c *Collector) Cycle(delta int) domain.MealTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meal = c.meal.Cycle(delta)
	c.log.Debug("meal time cycled to %s", c.meal.English())
	return c.meal
}

// Snapshot returns both values read under one lock.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{Ingredients: c.ingredients, MealTime: c.meal}
}
