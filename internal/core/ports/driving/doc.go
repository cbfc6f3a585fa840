// Package driving defines interfaces that external actors (UI, CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Lookup and search methods never return errors: a missing record, an
// unreachable host or malformed input all resolve to a benign default
// (zero value, false, empty string or empty slice).
//
// Implementations of these interfaces live in internal/core/services.
package driving
