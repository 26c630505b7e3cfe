package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	recipes := []Recipe{{ID: "r1", Name: "계란말이"}}

	tests := []struct {
		name        string
		state       GenerationState
		wantLoading bool
		wantError   bool
		wantRecipes int
	}{
		{"initial", InitialState(), false, false, 0},
		{"begin", Begin(1), true, false, 0},
		{"succeed", Succeed(1, recipes), false, false, 1},
		{"fail", Fail(1, MsgGenerationFailed), false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLoading, tt.state.Loading)
			assert.Equal(t, tt.wantError, tt.state.HasError())
			assert.Len(t, tt.state.Recipes, tt.wantRecipes)
			assert.False(t, tt.state.Loading && tt.state.HasError(), "loading and error set together")
		})
	}
}

func TestSucceedCopiesRecipes(t *testing.T) {
	recipes := []Recipe{{ID: "r1"}, {ID: "r2"}}
	st := Succeed(3, recipes)

	recipes[0].ID = "changed"
	assert.Equal(t, "r1", st.Recipes[0].ID)
	assert.Equal(t, uint64(3), st.Token)
}

func TestMealTimeCycle(t *testing.T) {
	assert.Equal(t, MealLunch, MealBreakfast.Cycle(1))
	assert.Equal(t, MealDinner, MealBreakfast.Cycle(-1))
	assert.Equal(t, MealBreakfast, MealDinner.Cycle(1))
	assert.Equal(t, MealDinner, MealDinner.Cycle(3))
	assert.Equal(t, MealLunch, MealTime("").Cycle(1))
	assert.True(t, DefaultMealTime.IsValid())
	assert.False(t, MealTime("brunch").IsValid())
}

func TestDifficultyIsValid(t *testing.T) {
	for _, d := range Difficulties() {
		assert.True(t, d.IsValid(), d)
	}
	assert.False(t, Difficulty("easy").IsValid())
	assert.False(t, Difficulty("").IsValid())
}

func TestFailureKind(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("generate: %w", NewTransportError(cause))

	require.Equal(t, KindTransport, KindOf(err))
	assert.ErrorIs(t, err, cause)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, MsgGenerationFailed, f.Message())
	assert.NotContains(t, f.Message(), "connection refused")

	assert.Equal(t, MsgEmptyIngredients, NewValidationError(ErrEmptyIngredients).Message())
	assert.Equal(t, MsgInvalidMealTime, NewValidationError(fmt.Errorf("%w: %q", ErrInvalidMealTime, "brunch")).Message())
	assert.Equal(t, KindFormat, KindOf(NewFormatError(ErrEmptyResponse)))
	assert.Equal(t, FailureKind(0), KindOf(cause))
}

func TestIngredientListString(t *testing.T) {
	assert.Equal(t, "달걀, 대파, 두부", IngredientList{"달걀", "대파", "두부"}.String())
	assert.Equal(t, "", IngredientList(nil).String())
}
