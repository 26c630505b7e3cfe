package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

func sampleRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID: "a", Name: "대파 계란말이", Description: "기본 반찬",
			Ingredients:   []string{"달걀", "대파", "소금"},
			Instructions:  []string{"달걀을 푼다", "대파를 썬다", "돌돌 만다"},
			EstimatedTime: "15분", Difficulty: domain.DifficultyEasy,
		},
		{
			ID: "b", Name: "두부조림", Description: "밥반찬",
			Ingredients:   []string{"두부", "간장"},
			Instructions:  []string{"부친다", "졸인다"},
			EstimatedTime: "25분", Difficulty: domain.DifficultyHard,
		},
	}
}

func TestClassify(t *testing.T) {
	recipes := sampleRecipes()

	tests := []struct {
		name  string
		state domain.GenerationState
		want  Presentation
	}{
		{"initial", domain.InitialState(), PresentEmpty},
		{"loading", domain.Begin(1), PresentLoading},
		{"failed", domain.Fail(1, domain.MsgGenerationFailed), PresentError},
		{"succeeded", domain.Succeed(1, recipes), PresentRecipes},
		{"succeeded empty", domain.Succeed(1, nil), PresentEmpty},
		// Not reachable through the orchestrator, but error still wins.
		{"error and recipes", domain.GenerationState{Error: "x", Recipes: recipes}, PresentError},
		{"error and loading", domain.GenerationState{Error: "x", Loading: true}, PresentError},
		{"loading and recipes", domain.GenerationState{Loading: true, Recipes: recipes}, PresentLoading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.state))
		})
	}
}

func TestRenderErrorPriority(t *testing.T) {
	st := domain.GenerationState{Error: domain.MsgGenerationFailed, Recipes: sampleRecipes()}
	out := Render(st, 100)

	assert.Contains(t, out, domain.MsgGenerationFailed)
	assert.NotContains(t, out, "대파 계란말이")
	assert.NotContains(t, out, "조리 순서")
}

func TestRenderEmpty(t *testing.T) {
	out := Render(domain.InitialState(), 100)
	assert.Contains(t, out, EmptyTitle)
}

func TestRenderLoading(t *testing.T) {
	out := Render(domain.Begin(3), 100)
	assert.Contains(t, out, "░")
	assert.NotContains(t, out, EmptyTitle)
}

func TestRenderRecipesInOrder(t *testing.T) {
	out := Render(domain.Succeed(1, sampleRecipes()), 100)

	assert.Contains(t, out, "2가지")
	first := strings.Index(out, "대파 계란말이")
	second := strings.Index(out, "두부조림")
	assert.True(t, first >= 0 && second > first, "cards follow array order")
}

func TestRenderRecipeCard(t *testing.T) {
	r := sampleRecipes()[0]
	out := RenderRecipe(r, 100)

	for _, want := range []string{r.Name, string(r.Difficulty), r.Description, "15분", "3개 재료", "필요한 재료", "조리 순서", "달걀", "소금"} {
		assert.Contains(t, out, want)
	}

	// Steps are numbered and keep their order.
	s1 := strings.Index(out, "1.")
	s2 := strings.Index(out, "2.")
	s3 := strings.Index(out, "3.")
	assert.True(t, s1 >= 0 && s1 < s2 && s2 < s3)
	assert.Less(t, strings.Index(out, "달걀을 푼다"), strings.Index(out, "돌돌 만다"))
}

func TestRenderNarrowWidth(t *testing.T) {
	// Below the minimum the renderer clamps instead of failing.
	out := Render(domain.Succeed(1, sampleRecipes()), 5)
	assert.Contains(t, out, "두부조림")
}

func TestChipsWrap(t *testing.T) {
	out := chips([]string{"달걀", "대파", "두부", "양파", "감자", "당근"}, 20)
	assert.Greater(t, strings.Count(out, "\n"), 0)
	for _, c := range []string{"달걀", "당근"} {
		assert.Contains(t, out, c)
	}
	assert.Empty(t, chips(nil, 20))
}

func TestRenderBanner(t *testing.T) {
	out := RenderBanner(200)
	assert.Contains(t, out, "냉장고 파먹기 AI 레시피")
	assert.True(t, strings.HasPrefix(out, " "), "centred")
}
