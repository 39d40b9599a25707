// Package tui provides the interactive terminal interface for repoviz.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session owns login, logout and the current snapshot.
	Session driving.SessionService

	// Visualizer fetches repositories into snapshots.
	Visualizer driving.VisualizerService

	// Content resolves single-file content on demand.
	Content driving.ContentService

	// Assistant orchestrates the chat assistant.
	Assistant driving.AssistantService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	session driving.SessionService,
	visualizer driving.VisualizerService,
	content driving.ContentService,
	assistant driving.AssistantService,
) *Ports {
	return &Ports{
		Session:    session,
		Visualizer: visualizer,
		Content:    content,
		Assistant:  assistant,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Visualizer == nil {
		return ErrMissingVisualizerService
	}
	if p.Content == nil {
		return ErrMissingContentService
	}
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	return nil
}
