package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

func responseWithHeaders(limit, remaining, reset string) *http.Response {
	h := http.Header{}
	if limit != "" {
		h.Set(HeaderRateLimit, limit)
	}
	if remaining != "" {
		h.Set(HeaderRateRemaining, remaining)
	}
	if reset != "" {
		h.Set(HeaderRateReset, reset)
	}
	return &http.Response{Header: h}
}

func TestRateLimiterStartsUnknown(t *testing.T) {
	rl := NewRateLimiter()

	snap := rl.Snapshot()
	assert.Equal(t, domain.RateLimitUnknown, snap.Limit)
	assert.Equal(t, domain.RateLimitUnknown, snap.Remaining)
	assert.Equal(t, "N/A / N/A", snap.String())
}

func TestRateLimiterUpdateFromResponse(t *testing.T) {
	rl := NewRateLimiter()
	reset := time.Now().Add(30 * time.Minute).Unix()

	rl.UpdateFromResponse(responseWithHeaders("5000", "4321", strconv.FormatInt(reset, 10)))

	assert.Equal(t, 5000, rl.Limit())
	assert.Equal(t, 4321, rl.Remaining())
	assert.Equal(t, time.Unix(reset, 0), rl.ResetTime())
	assert.Equal(t, "4321 / 5000", rl.Snapshot().String())
}

func TestRateLimiterIgnoresAbsentHeaders(t *testing.T) {
	rl := NewRateLimiter()
	rl.UpdateFromResponse(responseWithHeaders("5000", "4321", ""))

	// A later response without headers leaves the state untouched.
	rl.UpdateFromResponse(&http.Response{Header: http.Header{}})

	assert.Equal(t, 5000, rl.Limit())
	assert.Equal(t, 4321, rl.Remaining())
}

func TestRateLimiterIgnoresMalformedHeaders(t *testing.T) {
	rl := NewRateLimiter()
	rl.UpdateFromResponse(responseWithHeaders("not-a-number", "also-bad", "nope"))

	assert.Equal(t, domain.RateLimitUnknown, rl.Limit())
	assert.Equal(t, domain.RateLimitUnknown, rl.Remaining())
}

func TestRateLimiterNilResponse(t *testing.T) {
	rl := NewRateLimiter()
	rl.UpdateFromResponse(nil)

	assert.Equal(t, domain.RateLimitUnknown, rl.Limit())
}

func TestRateLimiterWaitUnknownState(t *testing.T) {
	// With counters unknown, Wait must not block on the reactive path.
	rl := NewRateLimiter()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, rl.Wait(ctx))
}

func TestRateLimiterWaitContextCancelled(t *testing.T) {
	rl := NewRateLimiter()
	// Drain the single bucket token so the next Wait has to block.
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, rl.Wait(ctx))
}
