package engine

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/logger"
	"github.com/hammamikhairi/geminichef/internal/recipe"
	"github.com/hammamikhairi/geminichef/internal/storage"
)

// fakeService records every call and answers through respond.
type fakeService struct {
	mu      sync.Mutex
	prompts []string
	schemas []*domain.Schema
	respond func(ctx context.Context, call int) (string, error)
}

func (f *fakeService) GenerateContent(ctx context.Context, prompt string, schema *domain.Schema) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	call := len(f.prompts)
	f.mu.Unlock()
	return f.respond(ctx, call)
}

func (f *fakeService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func answer(text string, err error) func(context.Context, int) (string, error) {
	return func(context.Context, int) (string, error) { return text, err }
}

func setupEngine(t *testing.T, svc *fakeService, opts ...Option) (*Engine, *storage.MemoryStore, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewMemoryStore(log)
	return New(svc, store, log, opts...), store, context.Background()
}

func testRecipes(ids ...string) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Recipe{
			ID:            id,
			Name:          "요리 " + id,
			Description:   "설명",
			Ingredients:   []string{"달걀", "대파"},
			Instructions:  []string{"썬다", "볶는다"},
			EstimatedTime: "20분",
			Difficulty:    domain.DifficultyMedium,
		})
	}
	return out
}

func batchJSON(t *testing.T, recipes []domain.Recipe) string {
	t.Helper()
	b, err := json.Marshal(recipes)
	require.NoError(t, err)
	return string(b)
}

func TestGenerateBlankInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n ", " , ,, "} {
		t.Run(raw, func(t *testing.T) {
			svc := &fakeService{respond: answer("[]", nil)}
			eng, store, ctx := setupEngine(t, svc)

			err := eng.Generate(ctx, raw, domain.MealBreakfast)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			assert.ErrorIs(t, err, domain.ErrEmptyIngredients)

			var f *domain.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, domain.MsgEmptyIngredients, f.Message())

			assert.Zero(t, svc.calls(), "service must not be called")
			st, _ := store.Load(ctx)
			assert.Equal(t, domain.InitialState(), st, "state must not change")
		})
	}
}

func TestGenerateBlankInputKeepsPreviousResult(t *testing.T) {
	want := testRecipes("a", "b", "c")
	svc := &fakeService{respond: answer(batchJSON(t, want), nil)}
	eng, store, ctx := setupEngine(t, svc)

	require.NoError(t, eng.Generate(ctx, "달걀", domain.MealLunch))
	before, _ := store.Load(ctx)

	require.Error(t, eng.Generate(ctx, "  ", domain.MealLunch))
	after, _ := store.Load(ctx)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, svc.calls())
}

func TestGenerateInvalidMealTime(t *testing.T) {
	svc := &fakeService{respond: answer("[]", nil)}
	eng, store, ctx := setupEngine(t, svc)

	err := eng.Generate(ctx, "달걀", domain.MealTime("brunch"))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrInvalidMealTime)
	assert.Zero(t, svc.calls())

	st, _ := store.Load(ctx)
	assert.Equal(t, domain.InitialState(), st)
}

func TestNormalizeIngredients(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.IngredientList
	}{
		{"달걀, 대파,, 두부 ", domain.IngredientList{"달걀", "대파", "두부"}},
		{"김치", domain.IngredientList{"김치"}},
		{" 양파 ,양파", domain.IngredientList{"양파", "양파"}},
		{",,", domain.IngredientList{}},
		{"돼지고기 앞다리살 , 감자", domain.IngredientList{"돼지고기 앞다리살", "감자"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIngredients(tt.raw))
		})
	}
}

func TestGeneratePromptCarriesInput(t *testing.T) {
	svc := &fakeService{respond: answer(batchJSON(t, testRecipes("a")), nil)}
	eng, _, ctx := setupEngine(t, svc, WithRecipeCount(5))

	require.NoError(t, eng.Generate(ctx, "달걀, 대파,, 두부 ", domain.MealDinner))
	require.Equal(t, 1, svc.calls())
	assert.Contains(t, svc.prompts[0], "달걀, 대파, 두부")
	assert.Contains(t, svc.prompts[0], "저녁")
	assert.Contains(t, svc.prompts[0], "5가지")
	require.NotNil(t, svc.schemas[0])
	assert.Equal(t, domain.TypeArray, svc.schemas[0].Type)
}

func TestGenerateLoadingWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	want := testRecipes("a", "b", "c")
	body := batchJSON(t, want)

	svc := &fakeService{respond: func(ctx context.Context, call int) (string, error) {
		close(started)
		<-release
		return body, nil
	}}
	eng, store, ctx := setupEngine(t, svc)

	// Leave a previous error in place to check the eager clear.
	require.NoError(t, store.Save(ctx, domain.Fail(0, domain.MsgGenerationFailed)))

	done := make(chan error, 1)
	go func() { done <- eng.Generate(ctx, "달걀", domain.MealBreakfast) }()

	<-started
	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, st.Loading)
	assert.False(t, st.HasError())
	assert.Empty(t, st.Recipes)

	close(release)
	require.NoError(t, <-done)

	st, _ = store.Load(ctx)
	assert.False(t, st.Loading)
	assert.Equal(t, want, st.Recipes)
}

func TestGenerateSuccess(t *testing.T) {
	want := testRecipes("r1", "r2", "r3")
	svc := &fakeService{respond: answer(batchJSON(t, want), nil)}
	eng, store, ctx := setupEngine(t, svc)

	require.NoError(t, eng.Generate(ctx, "달걀, 대파", domain.MealBreakfast))

	st, _ := store.Load(ctx)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, want, st.Recipes, "recipes in response order")
}

func TestGenerateCountMismatchAccepted(t *testing.T) {
	want := testRecipes("only")
	svc := &fakeService{respond: answer(batchJSON(t, want), nil)}
	eng, store, ctx := setupEngine(t, svc)

	require.NoError(t, eng.Generate(ctx, "달걀", domain.MealBreakfast))
	st, _ := store.Load(ctx)
	assert.Equal(t, want, st.Recipes)
}

func TestGenerateEmptyArrayIsEmptySuccess(t *testing.T) {
	svc := &fakeService{respond: answer("[]", nil)}
	eng, store, ctx := setupEngine(t, svc)

	// A previous batch must not survive an empty answer.
	require.NoError(t, store.Save(ctx, domain.Succeed(0, testRecipes("old"))))

	require.NoError(t, eng.Generate(ctx, "달걀", domain.MealBreakfast))

	st, _ := store.Load(ctx)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Empty(t, st.Recipes)
}

func TestGenerateFailures(t *testing.T) {
	missingField := `[{"id":"r1","name":"x","ingredients":["a"],"instructions":["b"],"estimatedTime":"5분","difficulty":"쉬움"}]`

	tests := []struct {
		name    string
		respond func(context.Context, int) (string, error)
	}{
		{"transport error", answer("", errors.New("connection refused"))},
		{"empty body", answer("", nil)},
		{"invalid json", answer("{not json", nil)},
		{"null body", answer("null", nil)},
		{"missing field", answer(missingField, nil)},
		{"bad difficulty", answer(`[{"id":"r1","name":"x","description":"d","ingredients":["a"],"instructions":["b"],"estimatedTime":"5분","difficulty":"매우 쉬움"}]`, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{respond: tt.respond}
			eng, store, ctx := setupEngine(t, svc)

			// Failures are reported through state, not the return value.
			require.NoError(t, eng.Generate(ctx, "달걀", domain.MealBreakfast))

			st, _ := store.Load(ctx)
			assert.False(t, st.Loading)
			assert.Empty(t, st.Recipes)
			assert.Equal(t, domain.MsgGenerationFailed, st.Error)
		})
	}
}

func TestGenerateFailureClearsPreviousRecipes(t *testing.T) {
	good := batchJSON(t, testRecipes("a", "b", "c"))
	svc := &fakeService{respond: func(_ context.Context, call int) (string, error) {
		if call == 1 {
			return good, nil
		}
		return "", errors.New("boom")
	}}
	eng, store, ctx := setupEngine(t, svc)

	require.NoError(t, eng.Generate(ctx, "달걀", domain.MealBreakfast))
	require.NoError(t, eng.Generate(ctx, "달걀", domain.MealBreakfast))

	st, _ := store.Load(ctx)
	assert.Empty(t, st.Recipes)
	assert.Equal(t, domain.MsgGenerationFailed, st.Error)
}

func TestGenerateTimeout(t *testing.T) {
	svc := &fakeService{respond: func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	eng, store, ctx := setupEngine(t, svc, WithTimeout(20*time.Millisecond))

	require.NoError(t, eng.Generate(ctx, "달걀", domain.MealBreakfast))
	st, _ := store.Load(ctx)
	assert.False(t, st.Loading)
	assert.Equal(t, domain.MsgGenerationFailed, st.Error)
}

func TestGenerateIdempotentShape(t *testing.T) {
	tests := []struct {
		name    string
		respond func(context.Context, int) (string, error)
	}{
		{"success", answer(batchJSON(t, testRecipes("a", "b", "c")), nil)},
		{"failure", answer("", errors.New("down"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{respond: tt.respond}
			eng, store, ctx := setupEngine(t, svc)

			require.NoError(t, eng.Generate(ctx, "달걀, 대파", domain.MealLunch))
			first, _ := store.Load(ctx)
			require.NoError(t, eng.Generate(ctx, "달걀, 대파", domain.MealLunch))
			second, _ := store.Load(ctx)

			assert.Equal(t, first.Loading, second.Loading)
			assert.Equal(t, first.Error, second.Error)
			assert.Equal(t, first.Recipes, second.Recipes)
			assert.Greater(t, second.Token, first.Token)
		})
	}
}

func TestGenerateDiscardsStaleResult(t *testing.T) {
	oldStarted := make(chan struct{})
	releaseOld := make(chan struct{})
	oldRecipes := testRecipes("old")
	newRecipes := testRecipes("new1", "new2")
	oldBody, newBody := batchJSON(t, oldRecipes), batchJSON(t, newRecipes)

	var oldCtxErr error
	svc := &fakeService{respond: func(ctx context.Context, call int) (string, error) {
		if call == 1 {
			close(oldStarted)
			<-releaseOld
			oldCtxErr = ctx.Err()
			// Answer anyway, as a slow server would.
			return oldBody, nil
		}
		return newBody, nil
	}}
	eng, store, ctx := setupEngine(t, svc)

	done := make(chan error, 1)
	go func() { done <- eng.Generate(ctx, "달걀", domain.MealBreakfast) }()
	<-oldStarted

	require.NoError(t, eng.Generate(ctx, "두부", domain.MealDinner))
	close(releaseOld)
	require.NoError(t, <-done)

	st, _ := store.Load(ctx)
	assert.False(t, st.Loading)
	assert.Equal(t, newRecipes, st.Recipes, "last request wins")
	assert.Equal(t, uint64(2), st.Token)
	assert.ErrorIs(t, oldCtxErr, context.Canceled, "superseded call is cancelled")
}

func TestGenerateWithSampleService(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	sample := recipe.NewSampleService(log)
	store := storage.NewMemoryStore(log)
	eng := New(sample, store, log)
	ctx := context.Background()

	require.NoError(t, eng.Generate(ctx, "달걀, 대파, 두부", domain.MealDinner))
	st, err := eng.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample.Recipes(), st.Recipes)
}
