// Package login provides the token entry view component for the TUI.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
)

// View is the token entry view shown when no session is active.
type View struct {
	styles  *styles.Styles
	session driving.SessionService

	input      textinput.Model
	validating bool
	err        error
	width      int
	height     int
}

// NewView creates a new login view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "GitHub personal access token"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 255
	ti.Width = 50
	ti.Focus()

	return &View{
		styles:  s,
		session: session,
		input:   ti,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !v.validating {
			token := strings.TrimSpace(v.input.Value())
			if token == "" {
				return v, nil
			}
			v.validating = true
			v.err = nil
			return v, v.login(token)
		}

	case messages.LoginCompleted:
		v.validating = false
		if msg.Err != nil {
			v.err = msg.Err
			v.input.Reset()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// login returns a command that validates the token and starts a session.
func (v *View) login(token string) tea.Cmd {
	return func() tea.Msg {
		session, err := v.session.Login(context.Background(), token)
		return messages.LoginCompleted{Session: session, Err: err}
	}
}

// View renders the login view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("repoviz"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Visualize any GitHub repository from your terminal."))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Normal.Render("Enter a personal access token to begin:"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")

	if v.validating {
		b.WriteString(v.styles.Muted.Render("Validating token..."))
		b.WriteString("\n")
	} else if v.err != nil {
		b.WriteString(v.styles.Error.Render("Login failed: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] sign in  [ctrl+c] quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Validating reports whether a login attempt is in flight.
func (v *View) Validating() bool {
	return v.validating
}

// Err returns the last login error.
func (v *View) Err() error {
	return v.err
}
