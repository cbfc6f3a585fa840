// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them. Together they describe the host e-commerce data layer:
// the entity query functions, the single-row accessors and the transient
// cache the host provides.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CustomerStore, OrderStore, AdjustmentStore, DownloadStore: entity "get many" queries
//   - NoteStore, LogStore: notes and log entries attached to other entities
//   - RecordStore: attribute view of any entity by type and ID
//   - MetaStore: per-entity key/value metadata
//   - RowStore: single-row existence checks
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TransientCache: Without it, aggregate lookups are recomputed on every call.
//   - ExtensionProbe: Without it, every extension reports inactive.
//   - CartStore: Without it, the cart is always empty.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
