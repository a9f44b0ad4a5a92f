// Package tui is the interactive todo list view. It owns no business
// logic: every state change goes through board.Update and every remote
// call is a board.Command run as a tea.Cmd.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/board"
	"github.com/idilsaglam/todo/internal/itemsvc"
	"github.com/idilsaglam/todo/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// rows outside the list: title, blank, input box (3), failure, help, panel border (2)
	chromeHeight = 9
)

type focusArea int

const (
	focusInput focusArea = iota
	focusButton
)

// eventMsg carries a board event through the Bubble Tea loop.
type eventMsg struct{ ev board.Event }

// Model implements tea.Model on top of board.State.
type Model struct {
	state board.State

	svc    itemsvc.Service
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger

	list  list.Model
	input textinput.Model
	help  help.Model
	keys  keyMap
	focus focusArea

	width, height int
}

// New builds an unmounted view. Mounting happens in Init.
func New(ctx context.Context, svc itemsvc.Service, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)

	l := list.New(nil, itemDelegate{}, defaultWidth-4, defaultHeight-chromeHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	l.Styles.PaginationStyle = ui.Current().Muted

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Add new item"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return Model{
		svc:    svc,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		list:   l,
		input:  ti,
		help:   help.New(),
		keys:   defaultKeys(),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// State returns the view state the model renders from.
func (m Model) State() board.State { return m.state }

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return eventMsg{board.Mounted{}} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m.dispatch(msg.ev)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m, _ = m.dispatchModel(board.Unmounted{})
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusInput {
			m.focus = focusButton
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(board.SubmitRequested{})

	case m.focus == focusButton && key.Matches(msg, m.keys.Press):
		return m.dispatch(board.SubmitRequested{})

	case key.Matches(msg, m.keys.Dismiss):
		return m.dispatch(board.FailureDismissed{})

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Page):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if m.focus != focusInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.state.Draft {
		var next tea.Cmd
		m, next = m.dispatchModel(board.DraftChanged{Text: v})
		cmd = tea.Batch(cmd, next)
	}
	return m, cmd
}

func (m Model) dispatch(ev board.Event) (tea.Model, tea.Cmd) {
	return m.dispatchModel(ev)
}

// dispatchModel runs ev through the reducer, mirrors the result into the
// widgets and schedules the resulting commands.
func (m Model) dispatchModel(ev board.Event) (Model, tea.Cmd) {
	prev := m.state
	var cmds []board.Command
	m.state, cmds = board.Update(m.state, ev)

	if !sameItems(m.state, prev) {
		m.list.SetItems(toListItems(m.state.Items))
	}
	if m.input.Value() != m.state.Draft {
		m.input.SetValue(m.state.Draft)
	}
	if f := m.state.Failure; f != nil && f != prev.Failure {
		m.logger.Warn("remote operation failed", "op", f.Op, "kind", f.Kind, "err", f.Message)
	}
	return m, m.exec(cmds)
}

func (m Model) exec(cmds []board.Command) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	batch := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		ctx, svc := m.ctx, m.svc
		batch = append(batch, func() tea.Msg {
			return eventMsg{board.Execute(ctx, svc, c)}
		})
	}
	return tea.Batch(batch...)
}

func sameItems(a, b board.State) bool {
	if len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	return true
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 16
	m.help.Width = w
}

func (m Model) View() string {
	t := ui.Current()

	body := m.list.View()
	if m.state.Loading() {
		body = t.Muted.Render("Loading items…")
	}

	button := t.Button.Render("Add Item")
	if m.focus == focusButton {
		button = t.ButtonFocused.Render("Add Item")
	}
	inputBox := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", button))

	status := ""
	if f := m.state.Failure; f != nil {
		status = t.Error.Render(fmt.Sprintf("%s %s failed (%s): %s", t.SymFail, f.Op, f.Kind, f.Message))
	} else if m.state.Creating > 0 {
		status = t.Pending.Render("Adding…")
	}

	return ui.PanelString(lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("Todo List"),
		body,
		inputBox,
		status,
		m.help.View(m.keys),
	))
}

// Run starts the interactive view and blocks until the user quits.
// In-flight requests are canceled on exit.
func Run(ctx context.Context, svc itemsvc.Service, logger *log.Logger) error {
	m := New(ctx, svc, logger)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
