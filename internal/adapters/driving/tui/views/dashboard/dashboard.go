// Package dashboard provides the main repository view for the TUI: the
// URL input, the tab bar, and the files/insights/assistant tabs.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/views/assistant"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/views/filetree"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/views/fileviewer"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/views/insights"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
)

// View is the main dashboard shown after login.
type View struct {
	styles     *styles.Styles
	session    driving.SessionService
	visualizer driving.VisualizerService

	urlInput   textinput.Model
	urlFocused bool
	lastURL    string
	loading    bool

	activeTab messages.TabType

	treeView      *filetree.View
	insightsView  *insights.View
	assistantView *assistant.View
	viewerView    *fileviewer.View
	showViewer    bool

	statusBar *status.Bar

	width  int
	height int
}

// NewView creates a new dashboard view.
func NewView(
	s *styles.Styles,
	session driving.SessionService,
	visualizer driving.VisualizerService,
	content driving.ContentService,
	assistantSvc driving.AssistantService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ui := textinput.New()
	ui.Placeholder = "https://github.com/owner/repo"
	ui.CharLimit = 512
	ui.Width = 60
	ui.Focus()

	return &View{
		styles:        s,
		session:       session,
		visualizer:    visualizer,
		urlInput:      ui,
		urlFocused:    true,
		treeView:      filetree.NewView(s),
		insightsView:  insights.NewView(s),
		assistantView: assistant.NewView(s, assistantSvc),
		viewerView:    fileviewer.NewView(s, content),
		statusBar:     status.NewBar(s, keymap.DefaultKeyMap()),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// SetUser records the signed-in user in the status bar.
func (v *View) SetUser(login string) {
	v.statusBar.SetUser(login)
}

// Update handles messages for the dashboard.
//
//nolint:gocognit,gocyclo // central tab router
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.statusBar.SetWidth(msg.Width)
		contentHeight := msg.Height - 6
		v.treeView.SetDimensions(msg.Width, contentHeight)
		v.insightsView.SetDimensions(msg.Width, contentHeight)
		v.assistantView.SetDimensions(msg.Width, contentHeight)
		v.viewerView.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SnapshotLoaded:
		v.loading = false
		v.statusBar.SetRateLimit(v.session.RateLimit())
		if msg.Err != nil {
			v.statusBar.SetState(status.StateError)
			v.statusBar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusBar.SetState(status.StateReady)
		v.statusBar.SetMessage(fmt.Sprintf("%s  ★ %d", msg.Snapshot.Details.FullName, msg.Snapshot.Details.Stars))
		v.urlFocused = false
		v.urlInput.Blur()
		v.treeView.SetSnapshot(msg.Snapshot)
		v.insightsView.SetSnapshot(msg.Snapshot)
		return v, v.assistantView.SetSnapshot(msg.Snapshot)

	case messages.RefreshRequested:
		if v.lastURL == "" || v.loading {
			return v, nil
		}
		return v, v.visualize(v.lastURL)

	case messages.FileSelected:
		v.showViewer = true
		return v, v.viewerView.SetFile(v.session.Snapshot(), msg.Path)

	case messages.FileContentLoaded:
		v.viewerView, cmd = v.viewerView.Update(msg)
		v.statusBar.SetRateLimit(v.session.RateLimit())
		return v, cmd

	case messages.ViewerClosed:
		v.showViewer = false
		return v, nil

	case messages.AssistantKeySaved, messages.AssistantReplied:
		v.assistantView, cmd = v.assistantView.Update(msg)
		return v, cmd
	}

	return v, nil
}

// handleKeyMsg routes key presses to the URL input, the viewer overlay,
// or the active tab.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	var cmd tea.Cmd

	if v.showViewer {
		v.viewerView, cmd = v.viewerView.Update(msg)
		return v, cmd
	}

	if msg.String() == "ctrl+l" {
		return v, v.logout()
	}

	if v.urlFocused {
		switch msg.String() {
		case "enter":
			url := strings.TrimSpace(v.urlInput.Value())
			if url == "" || v.loading {
				return v, nil
			}
			return v, v.visualize(url)
		case "esc":
			if v.session.Snapshot() != nil {
				v.urlFocused = false
				v.urlInput.Blur()
			}
			return v, nil
		}
		v.urlInput, cmd = v.urlInput.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case "u":
		v.urlFocused = true
		return v, v.urlInput.Focus()
	case "tab":
		return v.switchTab(1)
	case "shift+tab":
		return v.switchTab(-1)
	}

	switch v.activeTab {
	case messages.TabFiles:
		v.treeView, cmd = v.treeView.Update(msg)
	case messages.TabInsights:
		v.insightsView, cmd = v.insightsView.Update(msg)
	case messages.TabAssistant:
		v.assistantView, cmd = v.assistantView.Update(msg)
	}
	return v, cmd
}

// switchTab cycles the active tab by delta.
func (v *View) switchTab(delta int) (*View, tea.Cmd) {
	tabs := 3
	v.activeTab = messages.TabType((int(v.activeTab) + delta + tabs) % tabs)
	return v, func() tea.Msg {
		return messages.TabChanged{Tab: v.activeTab}
	}
}

// logout returns a command that destroys the session; the app drops
// back to the login view on LoggedOut.
func (v *View) logout() tea.Cmd {
	return func() tea.Msg {
		return messages.LoggedOut{Err: v.session.Logout()}
	}
}

// visualize returns a command that fetches the repository and publishes
// the resulting snapshot.
func (v *View) visualize(url string) tea.Cmd {
	v.loading = true
	v.lastURL = url
	v.statusBar.SetState(status.StateFetching)
	return func() tea.Msg {
		snap, err := v.visualizer.Visualize(context.Background(), url)
		return messages.SnapshotLoaded{Snapshot: snap, Err: err}
	}
}

// View renders the dashboard.
func (v *View) View() string {
	if v.showViewer {
		return v.viewerView.View() + "\n" + v.statusBar.View()
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("repoviz "))
	b.WriteString(v.styles.InputField.Render(v.urlInput.View()))
	b.WriteString("\n")
	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Fetching repository data..."))
		b.WriteString("\n")
	} else if v.session.Snapshot() == nil {
		b.WriteString(v.styles.Muted.Render("Enter a repository URL and press enter."))
		b.WriteString("\n")
	} else {
		switch v.activeTab {
		case messages.TabFiles:
			b.WriteString(v.treeView.View())
		case messages.TabInsights:
			b.WriteString(v.insightsView.View())
		case messages.TabAssistant:
			b.WriteString(v.assistantView.View())
		}
	}

	b.WriteString("\n")
	b.WriteString(v.statusBar.View())
	return b.String()
}

// renderTabs renders the tab bar.
func (v *View) renderTabs() string {
	labels := []struct {
		tab  messages.TabType
		name string
	}{
		{messages.TabFiles, "Files"},
		{messages.TabInsights, "Insights"},
		{messages.TabAssistant, "Assistant"},
	}

	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.tab == v.activeTab {
			parts = append(parts, v.styles.ActiveTab.Render(l.name))
		} else {
			parts = append(parts, v.styles.InactiveTab.Render(l.name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusBar.SetWidth(width)
}

// ActiveTab returns the active tab, for tests.
func (v *View) ActiveTab() messages.TabType {
	return v.activeTab
}

// Loading reports whether a fetch is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// LastURL returns the most recently submitted repository URL.
func (v *View) LastURL() string {
	return v.lastURL
}

// ViewerOpen reports whether the file content overlay is shown.
func (v *View) ViewerOpen() bool {
	return v.showViewer
}
