package domain

import "context"

// GenerationService turns a prompt into structured text. Implementations
// can call a hosted model or serve canned data; the core treats them as
// opaque and validates whatever they return.
type GenerationService interface {
	GenerateContent(ctx context.Context, prompt string, schema *Schema) (string, error)
}

// StateStore holds the single GenerationState record for a session.
// Implementations replace the state wholesale; they never merge.
type StateStore interface {
	Load(ctx context.Context) (GenerationState, error)
	Save(ctx context.Context, state GenerationState) error
	// CompareAndSave replaces the stored state only when the stored
	// token equals state.Token. It reports whether the write happened.
	CompareAndSave(ctx context.Context, state GenerationState) (bool, error)
}
