package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so diagnostics match the payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return domain.Difficulty(fl.Field().String()).IsValid()
	})
	return v
}

// batch wraps a response so the whole array validates in one call.
type batch struct {
	Recipes []domain.Recipe `json:"recipes" validate:"dive"`
}

// Decode parses the service's text response and validates every recipe.
// It is all or nothing: one bad element rejects the whole batch. An empty
// array is a valid, empty batch; a top-level null is not.
func Decode(text string) ([]domain.Recipe, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, domain.ErrEmptyResponse
	}

	dec := json.NewDecoder(strings.NewReader(text))
	var recipes []domain.Recipe
	if err := dec.Decode(&recipes); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode recipes: trailing data after array")
	}
	if recipes == nil {
		return nil, domain.ErrNullResponse
	}

	if err := Validate(recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Validate checks every recipe against the contract.
func Validate(recipes []domain.Recipe) error {
	if err := validate.Struct(batch{Recipes: recipes}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("invalid recipes: %s", describe(verrs))
		}
		return fmt.Errorf("invalid recipes: %w", err)
	}
	return nil
}

// DuplicateIDs returns the IDs that occur more than once in the batch.
func DuplicateIDs(recipes []domain.Recipe) []string {
	seen := make(map[string]int, len(recipes))
	var dups []string
	for _, r := range recipes {
		seen[r.ID]++
		if seen[r.ID] == 2 {
			dups = append(dups, r.ID)
		}
	}
	return dups
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "batch.recipes[0].difficulty"; drop the wrapper.
		ns := strings.TrimPrefix(fe.Namespace(), "batch.")
		parts = append(parts, fmt.Sprintf("%s failed %q", ns, fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence line.
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return ""
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
