// Package cache provides TransientCache implementations for the host's
// expiring aggregates.
//
// Values are encoded with msgpack, so any value the caller stores can be
// decoded into a matching pointer on Get. Three backends are available:
//
//   - Memory: an in-process gocache with a background janitor
//   - Redis: a shared cache for several processes using the same host
//   - Noop: disables caching, every Get misses
package cache
