package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/geminichef/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	accent = lipgloss.Color("#fb923c")

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Primary text, light zinc.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(accent)

	mealActiveStyle = lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#18181b")).
			Bold(true).
			Padding(0, 2)

	mealIdleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#a1a1aa")).
			Padding(0, 2)

	buttonStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	buttonBusyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// ── Results ──

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Padding(0, 2)

	emptyStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Padding(1, 2).
			Align(lipgloss.Center)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fca5a5")).
			Foreground(lipgloss.Color("#fca5a5")).
			Padding(0, 1)

	recipeNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f4f5")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4e7")).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#a1a1aa")).
			Padding(0, 1)

	stepNumStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	skeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3f3f46"))

	badgeBase = lipgloss.NewStyle().Padding(0, 1)

	badgeStyles = map[domain.Difficulty]lipgloss.Style{
		domain.DifficultyEasy:   badgeBase.Background(lipgloss.Color("#14532d")).Foreground(lipgloss.Color("#bbf7d0")),
		domain.DifficultyMedium: badgeBase.Background(lipgloss.Color("#1e3a8a")).Foreground(lipgloss.Color("#bfdbfe")),
		domain.DifficultyHard:   badgeBase.Background(lipgloss.Color("#7c2d12")).Foreground(lipgloss.Color("#fed7aa")),
	}
)
