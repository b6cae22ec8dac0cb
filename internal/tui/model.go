package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"signin/internal/domain"
	"signin/internal/flow"
)

type field int

const (
	fieldEmail field = iota
	fieldPassword
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(10)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spinnerChars = []string{"|", "/", "-", "\\"}
)

// stateMsg carries a state published by the controller.
type stateMsg domain.FlowState

// closedMsg reports that the controller's subscription ended.
type closedMsg struct{}

// Model is the bubbletea model of the sign-in form.
type Model struct {
	ctrl   *flow.Controller
	states <-chan domain.FlowState

	state domain.FlowState
	focus field
	tick  int
	// Done is set once the form has signed in successfully.
	done bool
}

// New returns a form bound to ctrl. The caller owns ctrl and disposes it
// after the program exits.
func New(ctrl *flow.Controller) Model {
	states, _ := ctrl.Subscribe(16)
	return Model{ctrl: ctrl, states: states, state: ctrl.State()}
}

// SignedIn reports whether the form ended with a successful sign-in.
func (m Model) SignedIn() bool { return m.done }

func (m Model) Init() tea.Cmd { return m.waitForState() }

func (m Model) waitForState() tea.Cmd {
	ch := m.states
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return stateMsg(st)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = domain.FlowState(msg)
		m.tick++
		if m.state.Lifecycle == domain.LifecycleLoaded {
			m.done = true
			return m, tea.Quit
		}
		return m, m.waitForState()
	case closedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focus = 1 - m.focus
		return m, nil
	case tea.KeyEnter:
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			return m, nil
		}
		_ = m.ctrl.Dispatch(flow.SubmitRequested{})
		return m, nil
	case tea.KeyBackspace:
		m.edit(func(s string) string {
			r := []rune(s)
			if len(r) == 0 {
				return s
			}
			return string(r[:len(r)-1])
		})
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.edit(func(s string) string { return s + text })
		return m, nil
	}
	return m, nil
}

// edit applies fn to the focused field and dispatches the change. The
// displayed value is updated when the controller publishes it.
func (m Model) edit(fn func(string) string) {
	switch m.focus {
	case fieldEmail:
		_ = m.ctrl.Dispatch(flow.EmailChanged{Value: fn(m.ctrl.State().Email)})
	case fieldPassword:
		_ = m.ctrl.Dispatch(flow.PasswordChanged{Value: fn(m.ctrl.State().Password)})
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n")
	b.WriteString(m.row(fieldEmail, "Email", m.state.Email))
	b.WriteString("\n")
	b.WriteString(m.row(fieldPassword, "Password", strings.Repeat("*", len([]rune(m.state.Password)))))
	b.WriteString("\n\n")

	switch m.state.Lifecycle {
	case domain.LifecycleLoading:
		b.WriteString(spinnerChars[m.tick%len(spinnerChars)] + " Signing in...")
	case domain.LifecycleLoaded:
		b.WriteString(okStyle.Render("Signed in."))
	case domain.LifecycleError:
		b.WriteString(errorStyle.Render(m.state.Message))
	default:
		b.WriteString(mutedStyle.Render("enter: next/submit  tab: switch field  esc: quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(f field, label, value string) string {
	cursor := " "
	style := lipgloss.NewStyle()
	if m.focus == f {
		cursor = ">"
		style = focusStyle
	}
	return style.Render(cursor+" "+labelStyle.Render(label)) + value
}
