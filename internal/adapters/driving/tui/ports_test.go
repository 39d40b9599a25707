package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoviz-cli/internal/core/services"
)

func validPorts() *Ports {
	session := services.NewSessionService(nil, nil)
	content := services.NewContentService(session)
	return NewPorts(
		session,
		services.NewVisualizerService(session),
		content,
		services.NewAssistantService(nil, nil, content),
	)
}

func TestPortsValidate(t *testing.T) {
	assert.NoError(t, validPorts().Validate())
}

func TestPortsValidateMissing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Ports)
		want   error
	}{
		{name: "session", mutate: func(p *Ports) { p.Session = nil }, want: ErrMissingSessionService},
		{name: "visualizer", mutate: func(p *Ports) { p.Visualizer = nil }, want: ErrMissingVisualizerService},
		{name: "content", mutate: func(p *Ports) { p.Content = nil }, want: ErrMissingContentService},
		{name: "assistant", mutate: func(p *Ports) { p.Assistant = nil }, want: ErrMissingAssistantService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports := validPorts()
			tt.mutate(ports)
			assert.ErrorIs(t, ports.Validate(), tt.want)
		})
	}
}

func TestNewAppInvalidPorts(t *testing.T) {
	_, err := NewApp(&Ports{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSessionService)
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(validPorts())
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	app.SetDimensions(120, 40)
	assert.True(t, app.Ready())
}
