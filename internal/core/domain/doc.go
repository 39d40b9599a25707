// Package domain contains the core business entities for repoviz.
// It has no dependencies on adapters or external services, keeping the
// snapshot model, tree building, and insights aggregation pure and
// independently testable.
package domain
