package domain

// GenerationState is the orchestrator's state. It is a value: every
// transition returns a new state and the previous one is never mutated.
//
// Invariants: Loading and a non-empty Error are never both set, and
// Recipes is empty whenever Error is set or a generation has just begun.
type GenerationState struct {
	Loading bool
	Recipes []Recipe
	Error   string

	// Token identifies the generation that produced this state.
	// The initial state carries token 0.
	Token uint64
}

// InitialState is the state at session start.
func InitialState() GenerationState {
	return GenerationState{}
}

// Begin returns the loading state for the generation identified by token.
func Begin(token uint64) GenerationState {
	return GenerationState{Loading: true, Token: token}
}

// Succeed returns the terminal success state. The recipes are copied so
// later changes to the caller's slice cannot leak into the state.
func Succeed(token uint64, recipes []Recipe) GenerationState {
	out := make([]Recipe, len(recipes))
	copy(out, recipes)
	return GenerationState{Recipes: out, Token: token}
}

// Fail returns the terminal error state carrying a user-facing message.
func Fail(token uint64, message string) GenerationState {
	return GenerationState{Error: message, Token: token}
}

// HasError reports whether an error message is set.
func (s GenerationState) HasError() bool { return s.Error != "" }

// IsTerminal reports whether the state is not loading.
func (s GenerationState) IsTerminal() bool { return !s.Loading }
