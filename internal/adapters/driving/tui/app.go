package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/views/login"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// loginView is the token entry view.
	loginView *login.View

	// dashboardView is the main repository dashboard.
	dashboardView *dashboard.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		loginView:     login.NewView(s, ports.Session),
		dashboardView: dashboard.NewView(s, ports.Session, ports.Visualizer, ports.Content, ports.Assistant),
		currentView:   messages.ViewLogin,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("repoviz - Repository Visualizer"),
		a.resumeSession(),
	)
}

// resumeSession returns a command that revalidates a stored token.
func (a *App) resumeSession() tea.Cmd {
	return func() tea.Msg {
		session, err := a.ports.Session.Resume(a.ctx)
		return messages.SessionResumed{Session: session, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.loginView.SetDimensions(msg.Width, msg.Height)
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewLogin:
			a.loginView, cmd = a.loginView.Update(msg)
		case messages.ViewDashboard:
			a.dashboardView, cmd = a.dashboardView.Update(msg)
		}
		return a, cmd

	case messages.SessionResumed:
		if msg.Err != nil || msg.Session == nil {
			// No stored token, or it was rejected; stay on login.
			a.currentView = messages.ViewLogin
			return a, a.loginView.Init()
		}
		a.currentView = messages.ViewDashboard
		a.dashboardView.SetUser(msg.Session.User.Login)
		return a, a.dashboardView.Init()

	case messages.LoginCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.loginView, cmd = a.loginView.Update(msg)
			return a, cmd
		}
		a.currentView = messages.ViewDashboard
		a.dashboardView.SetUser(msg.Session.User.Login)
		return a, a.dashboardView.Init()

	case messages.LoggedOut:
		a.currentView = messages.ViewLogin
		return a, a.loginView.Init()

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLogin:
		return a.loginView.View()
	case messages.ViewDashboard:
		return a.dashboardView.View()
	default:
		return a.loginView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.loginView.SetDimensions(width, height)
	a.dashboardView.SetDimensions(width, height)
}
