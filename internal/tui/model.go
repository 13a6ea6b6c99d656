package tui

import (
	"context"
	"strings"

	"github.com/bornholm/scoops/pkg/view"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerHeight is the number of lines taken by the title, the search
// input and the blank line below them.
const headerHeight = 3

// stateChangedMsg carries a state snapshot emitted by the controller.
type stateChangedMsg struct {
	state view.State
}

// operationDoneMsg signals the completion of a search or toggle. Errors
// are already logged by the controller.
type operationDoneMsg struct {
	err error
}

// Model is the bubbletea model of the shop browser.
type Model struct {
	ctx        context.Context
	controller *view.Controller
	changes    <-chan view.State

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	styles   Styles

	state       view.State
	initialCity string
	selected    int
	width       int
	height      int
}

// NewModel creates the browser model. The controller must have been
// created with the callback side of changes.
func NewModel(ctx context.Context, controller *view.Controller, changes <-chan view.State, city string) Model {
	input := textinput.New()
	input.Prompt = view.SearchLabel + ": "
	input.Placeholder = view.SearchPlaceholder
	input.SetValue(city)
	input.CharLimit = 128
	input.Width = 40

	s := spinner.New(spinner.WithSpinner(spinner.Dot))

	vp := viewport.New(80, 20)

	m := Model{
		ctx:         ctx,
		controller:  controller,
		changes:     changes,
		input:       input,
		spinner:     s,
		viewport:    vp,
		help:        help.New(),
		keys:        defaultKeyMap(),
		styles:      DefaultStyles(),
		state:       controller.Snapshot(),
		initialCity: city,
		selected:    -1,
		width:       80,
		height:      24,
	}

	m.refresh()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForChange(),
		m.search(m.initialCity),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-1)
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-2)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case stateChangedMsg:
		m.setState(msg.state)
		return m, m.waitForChange()

	case operationDoneMsg:
		m.setState(m.controller.Snapshot())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state.Loading {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Search):
			cmd := m.input.Focus()
			return m, cmd

		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.selected < 0 || m.selected >= len(m.state.Shops) {
				return m, nil
			}
			return m, m.toggle(m.state.Shops[m.selected].ID)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		m.input.Blur()
		return m, m.search(m.input.Value())

	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("🍦 scoops"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return sb.String()
}

// State returns the last state snapshot received by the model.
func (m Model) State() view.State {
	return m.state
}

// Selected returns the index of the highlighted shop card.
func (m Model) Selected() int {
	return m.selected
}

func (m *Model) setState(state view.State) {
	m.state = state

	switch {
	case len(state.Shops) == 0:
		m.selected = -1
	case m.selected < 0:
		m.selected = 0
	case m.selected >= len(state.Shops):
		m.selected = len(state.Shops) - 1
	}

	m.refresh()
}

func (m *Model) moveSelection(delta int) {
	if len(m.state.Shops) == 0 {
		return
	}

	m.selected = min(max(m.selected+delta, 0), len(m.state.Shops)-1)
	m.refresh()
	m.scrollToSelected()
}

func (m *Model) renderOptions() RenderOptions {
	return RenderOptions{
		Width:    m.width,
		Selected: m.selected,
		Spinner:  m.spinner.View(),
		Styles:   m.styles,
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(Render(m.state, m.renderOptions()))
}

// scrollToSelected keeps the highlighted card inside the viewport.
func (m *Model) scrollToSelected() {
	if m.selected < 0 || m.state.Loading {
		return
	}

	cards := RenderCards(m.state, m.renderOptions())
	if m.selected >= len(cards) {
		return
	}

	top := 0
	for _, c := range cards[:m.selected] {
		top += lipgloss.Height(c)
	}
	bottom := top + lipgloss.Height(cards[m.selected])

	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(max(top, bottom-m.viewport.Height))
	}
}

func (m Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		state, ok := <-changes
		if !ok {
			return nil
		}
		return stateChangedMsg{state: state}
	}
}

func (m Model) search(city string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return operationDoneMsg{err: controller.Search(ctx, city)}
	}
}

func (m Model) toggle(shopID string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return operationDoneMsg{err: controller.ToggleExpand(ctx, shopID)}
	}
}

var _ tea.Model = Model{}
