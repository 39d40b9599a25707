package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTypeString(t *testing.T) {
	assert.Equal(t, "login", ViewLogin.String())
	assert.Equal(t, "dashboard", ViewDashboard.String())
	assert.Equal(t, "unknown", ViewType(99).String())
}

func TestTabTypeString(t *testing.T) {
	assert.Equal(t, "files", TabFiles.String())
	assert.Equal(t, "insights", TabInsights.String())
	assert.Equal(t, "assistant", TabAssistant.String())
	assert.Equal(t, "unknown", TabType(99).String())
}
