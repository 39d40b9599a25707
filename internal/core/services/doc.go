// Package services implements the core application services behind the
// driving ports: session lifecycle, snapshot aggregation, file content
// resolution, and the assistant bridge.
package services
