package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

func TestBarDefaults(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	view := bar.View()
	assert.Contains(t, view, "Ready")
	assert.Contains(t, view, "N/A / N/A")
}

func TestBarShowsUserAndRateLimit(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetUser("octocat")
	bar.SetRateLimit(domain.RateLimit{Limit: 5000, Remaining: 4321})
	bar.SetWidth(120)

	view := bar.View()
	assert.Contains(t, view, "octocat")
	assert.Contains(t, view, "4321 / 5000")
}

func TestBarErrorState(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("fetch failed")

	assert.Contains(t, bar.View(), "Error: fetch failed")
}

func TestBarFetchingState(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateFetching)

	assert.Contains(t, bar.View(), "Fetching repository data...")
}

func TestBarClear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}
