// Package file provides file-based persistence for the two session
// credentials, stored as TOML in the repoviz config directory.
package file
