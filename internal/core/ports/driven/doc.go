// Package driven defines the outbound port interfaces the core depends
// on: the source-control gateway, the assistant model, and the
// credentials store. Adapters implement these interfaces.
package driven
