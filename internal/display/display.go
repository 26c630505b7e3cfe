// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type owns the ingredient field, the meal-time selector and a
// scrollable result area. Generation runs in a Bubble Tea command; state
// changes arrive from the store's subscription channel and are rendered
// with [Render].
package display

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/geminichef/internal/domain"
	"github.com/hammamikhairi/geminichef/internal/input"
	"github.com/hammamikhairi/geminichef/internal/logger"
)

// Generator runs one generation. *engine.Engine satisfies it.
type Generator interface {
	Generate(ctx context.Context, raw string, meal domain.MealTime) error
}

// StateSource exposes the generation state and its changes.
// *storage.MemoryStore satisfies it.
type StateSource interface {
	Load(ctx context.Context) (domain.GenerationState, error)
	Subscribe(ctx context.Context) <-chan domain.GenerationState
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea. Call [NewUI] then
// [UI.Run] (blocking).
type UI struct {
	gen       Generator
	states    StateSource
	collector *input.Collector
	log       *logger.Logger
}

// NewUI creates the display. Call Run() to start.
func NewUI(gen Generator, states StateSource, collector *input.Collector, log *logger.Logger) *UI {
	return &UI{gen: gen, states: states, collector: collector, log: log}
}

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := u.states.Load(ctx)
	if err != nil {
		return err
	}

	m := newModel(ctx, u.gen, u.states.Subscribe(ctx), u.collector, u.log)
	m.state = st

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctx       context.Context
	gen       Generator
	states    <-chan domain.GenerationState
	collector *input.Collector
	log       *logger.Logger

	input   textinput.Model
	spinner spinner.Model
	results viewport.Model

	state  domain.GenerationState
	notice string
	width  int
	height int
	ready  bool
}

// Messages.
type (
	stateMsg    domain.GenerationState
	generateMsg struct{ err error }
)

func newModel(ctx context.Context, gen Generator, states <-chan domain.GenerationState, collector *input.Collector, log *logger.Logger) model {
	ti := textinput.New()
	// Plain-text prompt so the textinput width math stays correct.
	ti.Prompt = "재료> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = primaryStyle
	ti.Placeholder = "예: 달걀, 대파, 두부, 양파 (쉼표로 구분)"
	ti.PlaceholderStyle = secondaryStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.CharLimit = 500
	ti.Width = 60
	ti.SetValue(collector.Ingredients())
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(accent)),
	)

	return model{
		ctx:       ctx,
		gen:       gen,
		states:    states,
		collector: collector,
		log:       log,
		input:     ti,
		spinner:   sp,
		results:   viewport.New(80, 20),
		width:     80,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForState(m.states),
		tea.SetWindowTitle("Gemini 쉐프"),
	)
}

// waitForState delivers the next state change as a message.
func waitForState(ch <-chan domain.GenerationState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func (m model) generate(raw string, meal domain.MealTime) tea.Cmd {
	return func() tea.Msg {
		return generateMsg{err: m.gen.Generate(m.ctx, raw, meal)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.state.IsTerminal() {
				return m, nil
			}
			snap := m.collector.Snapshot()
			m.notice = ""
			return m, m.generate(snap.Ingredients, snap.MealTime)
		case tea.KeyTab, tea.KeyCtrlRight:
			m.collector.Cycle(1)
			return m, nil
		case tea.KeyShiftTab, tea.KeyCtrlLeft:
			m.collector.Cycle(-1)
			return m, nil
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		const promptLen = 6
		if msg.Width > promptLen+2 {
			m.input.Width = msg.Width - promptLen - 2
		}
		m.ready = true
		m.layout()
		return m, nil

	case stateMsg:
		m.state = domain.GenerationState(msg)
		m.refresh()
		return m, waitForState(m.states)

	case generateMsg:
		if domain.KindOf(msg.err) == domain.KindValidation {
			var f *domain.Failure
			errors.As(msg.err, &f)
			m.notice = f.Message()
		} else if msg.err != nil {
			m.log.Error("generate: %v", msg.err)
			m.notice = domain.MsgGenerationFailed
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.collector.SetIngredients(m.input.Value())
	return m, cmd
}

// layout sizes the result area to whatever the header leaves free.
func (m *model) layout() {
	h := m.height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
	if h < 3 {
		h = 3
	}
	m.results.Width = m.width
	m.results.Height = h
	m.refresh()
}

func (m *model) refresh() {
	m.results.SetContent(Render(m.state, m.width))
	if m.state.Loading {
		m.results.GotoTop()
	}
}

func (m model) View() string {
	if !m.ready {
		return "\n  " + LoadingText
	}
	return m.header() + "\n" + m.results.View() + "\n" + m.footer()
}

func (m model) header() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Gemini 쉐프"))
	b.WriteString(secondaryStyle.Render("  냉장고 파먹기 AI 레시피"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("재료 입력"))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("식사 시간"))
	b.WriteString("  ")
	b.WriteString(mealSelector(m.collector.MealTime()))
	b.WriteString("\n\n")

	if m.state.Loading {
		b.WriteString(m.spinner.View() + " " + buttonBusyStyle.Render(LoadingText))
	} else {
		b.WriteString(buttonStyle.Render("⏎ 레시피 추천받기"))
	}
	b.WriteByte('\n')
	b.WriteString(noticeStyle.Render(m.notice))
	b.WriteByte('\n')
	return b.String()
}

func (m model) footer() string {
	return secondaryStyle.Render("enter 추천 · tab 식사 시간 · ↑/↓ 스크롤 · esc 종료")
}

func mealSelector(selected domain.MealTime) string {
	parts := make([]string, 0, len(domain.MealTimes()))
	for _, mt := range domain.MealTimes() {
		if mt == selected {
			parts = append(parts, mealActiveStyle.Render(string(mt)))
		} else {
			parts = append(parts, mealIdleStyle.Render(string(mt)))
		}
	}
	return strings.Join(parts, " ")
}
