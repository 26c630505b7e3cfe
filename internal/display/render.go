package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

// Texts shown by the renderer.
const (
	EmptyTitle  = "어떤 요리를 만들어볼까요?"
	EmptyHint   = "재료를 입력하고 Enter를 눌러보세요. Gemini AI가 맛있는 레시피를 제안해 드립니다."
	LoadingText = "AI 요리사 생각 중..."
	skeletonN   = 3
	minWidth    = 30
)

// Presentation is one of the mutually exclusive ways a state renders.
type Presentation int

const (
	PresentEmpty Presentation = iota
	PresentLoading
	PresentError
	PresentRecipes
)

// String returns a human-readable presentation name.
func (p Presentation) String() string {
	switch p {
	case PresentLoading:
		return "loading"
	case PresentError:
		return "error"
	case PresentRecipes:
		return "recipes"
	default:
		return "empty"
	}
}

// Classify picks the presentation for st. An error wins over everything,
// then loading, then the empty prompt; recipes render only otherwise.
func Classify(st domain.GenerationState) Presentation {
	switch {
	case st.HasError():
		return PresentError
	case st.Loading:
		return PresentLoading
	case len(st.Recipes) == 0:
		return PresentEmpty
	default:
		return PresentRecipes
	}
}

// Render projects st onto a block of terminal text at most width columns
// wide. It has no side effects.
func Render(st domain.GenerationState, width int) string {
	if width < minWidth {
		width = minWidth
	}
	switch Classify(st) {
	case PresentError:
		return renderError(st.Error, width)
	case PresentLoading:
		return renderSkeletons(width)
	case PresentEmpty:
		return renderEmpty(width)
	default:
		return renderRecipes(st.Recipes, width)
	}
}

func renderError(msg string, width int) string {
	return errorStyle.Width(width - 2).Render("⚠ " + msg)
}

func renderEmpty(width int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		secondaryStyle.Render("🍽"),
		"",
		sectionStyle.Render(EmptyTitle),
		secondaryStyle.Render(EmptyHint),
	)
	return emptyStyle.Width(width - 2).Render(body)
}

func renderSkeletons(width int) string {
	inner := width - 6
	bar := func(w int) string {
		if w < 1 {
			w = 1
		}
		return skeletonStyle.Render(strings.Repeat("░", w))
	}

	cards := make([]string, 0, skeletonN)
	for i := 0; i < skeletonN; i++ {
		body := strings.Join([]string{
			bar(inner / 3),
			bar(inner),
			bar(inner * 2 / 3),
			bar(10) + "  " + bar(10),
		}, "\n")
		cards = append(cards, cardStyle.Width(width-2).Render(body))
	}
	return strings.Join(cards, "\n")
}

func renderRecipes(recipes []domain.Recipe, width int) string {
	heading := titleStyle.Render(fmt.Sprintf("%d가지", len(recipes))) + sectionStyle.Render(" 맞춤 레시피")

	parts := make([]string, 0, len(recipes)+1)
	parts = append(parts, heading)
	for _, r := range recipes {
		parts = append(parts, RenderRecipe(r, width))
	}
	return strings.Join(parts, "\n")
}

// RenderRecipe renders one recipe card: name and difficulty badge,
// description, time and ingredient count, ingredient chips, then the
// numbered steps in order.
func RenderRecipe(r domain.Recipe, width int) string {
	if width < minWidth {
		width = minWidth
	}
	inner := width - 6 // border + padding

	header := recipeNameStyle.Render(r.Name) + "  " + badge(r.Difficulty)
	meta := secondaryStyle.Render(fmt.Sprintf("⏱ %s   🍴 %d개 재료", r.EstimatedTime, len(r.Ingredients)))

	lines := []string{
		header,
		primaryStyle.Width(inner).Render(r.Description),
		meta,
		"",
		sectionStyle.Render("필요한 재료"),
		chips(r.Ingredients, inner),
		"",
		sectionStyle.Render("조리 순서"),
	}
	for i, step := range r.Instructions {
		num := stepNumStyle.Render(fmt.Sprintf("%d.", i+1))
		numW := lipgloss.Width(num) + 1
		text := primaryStyle.Width(inner - numW).Render(step)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, num, " ", text))
	}

	return cardStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func badge(d domain.Difficulty) string {
	st, ok := badgeStyles[d]
	if !ok {
		st = badgeBase
	}
	return st.Render(string(d))
}

// chips lays the ingredients out left to right, wrapping at width.
func chips(items []string, width int) string {
	var (
		rows []string
		row  string
	)
	for _, it := range items {
		c := chipStyle.Render(it)
		switch {
		case row == "":
			row = c
		case lipgloss.Width(row)+1+lipgloss.Width(c) > width:
			rows = append(rows, row)
			row = c
		default:
			row += " " + c
		}
	}
	if row != "" {
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
