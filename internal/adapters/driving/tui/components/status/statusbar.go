// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StateFetching State = "fetching"
	StateError    State = "error"
)

// Bar displays the signed-in user, the API rate limit and short
// keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	user      string
	rateLimit domain.RateLimit
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:    s,
		keymap:    km,
		state:     StateReady,
		rateLimit: domain.UnknownRateLimit(),
		width:     80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods.
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state and message.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateFetching:
		return s.styles.Muted.Render("Fetching repository data...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateReady:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
		return s.styles.Muted.Render("Ready")
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders the user, rate limit and keybinding hints.
func (s *Bar) renderRight() string {
	parts := make([]string, 0, 3)
	if s.user != "" {
		parts = append(parts, s.user)
	}
	parts = append(parts, fmt.Sprintf("API: %s", s.rateLimit))

	hints := make([]string, 0, 3)
	for _, b := range s.keymap.ShortHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	parts = append(parts, strings.Join(hints, " | "))

	return s.styles.Muted.Render(strings.Join(parts, "  ·  "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetUser sets the signed-in user login.
func (s *Bar) SetUser(login string) {
	s.user = login
}

// SetRateLimit sets the rate limit counters to display.
func (s *Bar) SetRateLimit(rl domain.RateLimit) {
	s.rateLimit = rl
}

// RateLimit returns the displayed rate limit.
func (s *Bar) RateLimit() domain.RateLimit {
	return s.rateLimit
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
