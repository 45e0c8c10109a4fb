// Package driving defines the inbound port interfaces: the operations
// the core exposes to its drivers (the CLI sync command and the HTTP
// API serving the web front end).
package driving
