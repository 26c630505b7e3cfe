// Package engine implements the request orchestrator: it turns collected
// input into a generation request and maps the outcome onto the session's
// GenerationState.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/logger"
	"github.com/hammamikhairi/geminichef/internal/recipe"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 60 * time.Second

// Option configures the engine.
type Option func(*Engine)

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithRecipeCount sets how many recipes each prompt asks for.
func WithRecipeCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.recipeCount = n
		}
	}
}

// Engine orchestrates recipe generation. It depends only on interfaces and
// is fully testable with fakes.
type Engine struct {
	service     domain.GenerationService
	store       domain.StateStore
	log         *logger.Logger
	timeout     time.Duration
	recipeCount int

	mu       sync.Mutex
	seq      uint64
	inFlight context.CancelFunc
}

// New creates an engine with the given dependencies and options.
func New(service domain.GenerationService, store domain.StateStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		service:     service,
		store:       store,
		log:         log,
		timeout:     DefaultTimeout,
		recipeCount: recipe.DefaultCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current generation state.
func (e *Engine) State(ctx context.Context) (domain.GenerationState, error) {
	return e.store.Load(ctx)
}

// Generate runs one generation for the raw ingredient text and meal time.
//
// Blank input returns a *domain.Failure of KindValidation and leaves the
// state untouched. Otherwise the state moves to loading, the service is
// called, and the terminal state (recipes or a fixed error message) is
// committed. Generation failures end up in the state, not in the returned
// error; a non-nil error other than validation means the store failed.
//
// A newer call supersedes an older one: the older call's context is
// cancelled and its result is discarded.
func (e *Engine) Generate(ctx context.Context, raw string, meal domain.MealTime) error {
	if strings.TrimSpace(raw) == "" {
		return domain.NewValidationError(domain.ErrEmptyIngredients)
	}
	if !meal.IsValid() {
		return domain.NewValidationError(fmt.Errorf("%w: %q", domain.ErrInvalidMealTime, string(meal)))
	}

	ingredients := NormalizeIngredients(raw)
	if len(ingredients) == 0 {
		// Only separators, e.g. " , ,".
		return domain.NewValidationError(domain.ErrEmptyIngredients)
	}

	token, callCtx, release, err := e.begin(ctx)
	if err != nil {
		return err
	}
	defer release()

	log := e.log.With("request_id", newRequestID(), "token", token)
	log.Info("generating %d recipes for %s from %d ingredients", e.recipeCount, meal.English(), len(ingredients))

	start := time.Now()
	recipes, failure := e.invoke(callCtx, ingredients, meal, log)

	var next domain.GenerationState
	if failure != nil {
		log.Warn("generation failed after %s: kind=%s: %v", time.Since(start).Round(time.Millisecond), failure.Kind, failure.Err)
		next = domain.Fail(token, failure.Message())
	} else {
		log.Info("generated %d recipes in %s", len(recipes), time.Since(start).Round(time.Millisecond))
		next = domain.Succeed(token, recipes)
	}

	ok, err := e.store.CompareAndSave(ctx, next)
	if err != nil {
		return fmt.Errorf("committing state: %w", err)
	}
	if !ok {
		log.Info("discarding stale result, a newer generation is in progress")
	}
	return nil
}

// begin takes the next token, cancels the call it supersedes and stores
// the loading state. The returned release func must be called when the
// call is done.
func (e *Engine) begin(ctx context.Context) (uint64, context.Context, func(), error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight != nil {
		e.inFlight()
		e.inFlight = nil
	}

	e.seq++
	token := e.seq

	// Saved under the lock so loading states land in token order.
	if err := e.store.Save(ctx, domain.Begin(token)); err != nil {
		return 0, nil, nil, fmt.Errorf("saving loading state: %w", err)
	}

	callCtx, cancel := context.WithCancel(ctx)
	if e.timeout > 0 {
		var cancelTimeout context.CancelFunc
		callCtx, cancelTimeout = context.WithTimeout(callCtx, e.timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}
	e.inFlight = cancel

	release := func() {
		e.mu.Lock()
		if e.seq == token {
			e.inFlight = nil
		}
		e.mu.Unlock()
		cancel()
	}
	return token, callCtx, release, nil
}

// invoke calls the service and decodes the answer. A nil *Failure means
// recipes is a validated batch, possibly empty.
func (e *Engine) invoke(ctx context.Context, ingredients domain.IngredientList, meal domain.MealTime, log *logger.Logger) ([]domain.Recipe, *domain.Failure) {
	prompt := recipe.BuildPrompt(ingredients, meal, e.recipeCount)
	log.Debug("prompt: %s", prompt)

	text, err := e.service.GenerateContent(ctx, prompt, recipe.ResponseSchema())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("no answer within %s: %w", e.timeout, err)
		}
		return nil, domain.NewTransportError(err)
	}

	recipes, err := recipe.Decode(text)
	if err != nil {
		log.Debug("rejected response (%d bytes): %s", len(text), truncate(text, 500))
		return nil, domain.NewFormatError(err)
	}

	if len(recipes) != e.recipeCount {
		log.Warn("asked for %d recipes, got %d", e.recipeCount, len(recipes))
	}
	if dups := recipe.DuplicateIDs(recipes); len(dups) > 0 {
		log.Warn("duplicate recipe ids in response: %s", strings.Join(dups, ", "))
	}
	return recipes, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
