// Package sqlite provides a SQLite-backed host data layer.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. One database connection serves every
// host port:
//
//   - CustomerStore, OrderStore, AdjustmentStore, NoteStore, LogStore, DownloadStore
//   - MetaStore and RecordStore for the two-tier field lookup
//   - RowStore for existence checks
//   - ExtensionProbe, CartStore and DatasetImporter
//
// # Schema
//
// Tables follow the host layout described by the schema package and are created
// through versioned migrations in the migrations/ directory. Query arguments are
// bound as parameters; table, column and sort names are checked against the
// schema before they are written into SQL.
//
// # Data Location
//
// By default, the database is stored at ~/.eddkit/data/eddkit.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
