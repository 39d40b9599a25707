// Package github implements the source-control API gateway over the
// GitHub REST API. It wraps go-github with bearer-token auth, surfaces
// rate-limit headers, and normalizes error responses into a single
// failure type. There is no retry policy: every failure is terminal
// for its operation.
package github
