// Package viz shapes hierarchy data for rendering: a radial tree
// layout (pure geometry, no force physics) and SVG exports of the
// radial tree and commit activity chart.
package viz
