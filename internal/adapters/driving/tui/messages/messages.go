// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// ViewType identifies which top-level view is currently active.
type ViewType int

const (
	// ViewLogin is the token entry view.
	ViewLogin ViewType = iota
	// ViewDashboard is the main repository dashboard.
	ViewDashboard
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// TabType identifies a dashboard tab.
type TabType int

const (
	// TabFiles is the file tree explorer tab.
	TabFiles TabType = iota
	// TabInsights is the repository insights tab.
	TabInsights
	// TabAssistant is the AI assistant tab.
	TabAssistant
)

// String returns the string representation of the tab type.
func (t TabType) String() string {
	switch t {
	case TabFiles:
		return "files"
	case TabInsights:
		return "insights"
	case TabAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// SessionResumed carries the result of restoring a stored session at startup.
type SessionResumed struct {
	Session *domain.Session
	Err     error
}

// LoginCompleted carries the result of a token validation attempt.
type LoginCompleted struct {
	Session *domain.Session
	Err     error
}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// SnapshotLoaded carries a fetched repository snapshot.
type SnapshotLoaded struct {
	Snapshot *domain.RepositorySnapshot
	Err      error
}

// RefreshRequested asks for the current repository to be fetched again.
type RefreshRequested struct{}

// TabChanged is sent when the active dashboard tab changes.
type TabChanged struct {
	Tab TabType
}

// FileSelected signals a blob was chosen in the file tree.
type FileSelected struct {
	Path string
}

// FileContentLoaded carries resolved file content for the viewer.
// Generation is the viewer's own request sequence; a response stamped
// with an older sequence than the viewer's latest request is dropped.
type FileContentLoaded struct {
	Path       string
	Content    string
	Generation uint64
}

// ViewerClosed signals the file content overlay was dismissed.
type ViewerClosed struct{}

// AssistantKeySaved carries the result of validating and storing an
// assistant API key.
type AssistantKeySaved struct {
	Err error
}

// AssistantReplied carries the assistant's reply to a question.
type AssistantReplied struct {
	Reply domain.ChatMessage
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// ViewChanged is sent when navigating between top-level views.
type ViewChanged struct {
	View ViewType
}

// Quit signals the application should exit.
type Quit struct{}
