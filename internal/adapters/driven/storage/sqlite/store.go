package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/schema"
	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

// Ensure Store implements the shared host interfaces.
var (
	_ driven.Host            = (*Store)(nil)
	_ driven.MetaStore       = (*Store)(nil)
	_ driven.RecordStore     = (*Store)(nil)
	_ driven.RowStore        = (*Store)(nil)
	_ driven.ExtensionProbe  = (*Store)(nil)
	_ driven.CartStore       = (*Store)(nil)
	_ driven.DatasetImporter = (*Store)(nil)
)

// Store is a SQLite-backed host data layer. Entity stores are exposed
// through wrapper types sharing one connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the host database in dataDir.
// If dataDir is empty, defaults to ~/.eddkit/data/eddkit.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".eddkit", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "eddkit.db")

	// WAL lets readers proceed while an import is writing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CustomerStore returns a CustomerStore backed by this store.
func (s *Store) CustomerStore() driven.CustomerStore {
	return &customerStore{store: s}
}

// OrderStore returns an OrderStore backed by this store.
func (s *Store) OrderStore() driven.OrderStore {
	return &orderStore{store: s}
}

// AdjustmentStore returns an AdjustmentStore backed by this store.
func (s *Store) AdjustmentStore() driven.AdjustmentStore {
	return &adjustmentStore{store: s}
}

// NoteStore returns a NoteStore backed by this store.
func (s *Store) NoteStore() driven.NoteStore {
	return &noteStore{store: s}
}

// LogStore returns a LogStore backed by this store.
func (s *Store) LogStore() driven.LogStore {
	return &logStore{store: s}
}

// DownloadStore returns a DownloadStore backed by this store.
func (s *Store) DownloadStore() driven.DownloadStore {
	return &downloadStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_host_tables.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// GetMeta returns a metadata value.
func (s *Store) GetMeta(ctx context.Context, entity domain.EntityType, id int64, key string) (string, error) {
	table, ok := schema.ForEntity(entity)
	if !ok {
		return "", domain.ErrUnsupportedType
	}
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT meta_value FROM "+table.Meta+" WHERE object_id = ? AND meta_key = ? ORDER BY meta_id LIMIT 1",
		id, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("reading %s: %w", table.Meta, err)
	}
	return value, nil
}

// Record returns the attribute view of an entity.
func (s *Store) Record(ctx context.Context, entity domain.EntityType, id int64) (domain.Record, error) {
	switch entity {
	case domain.EntityCustomer:
		return record(s.CustomerStore().Get(ctx, id))
	case domain.EntityOrder:
		return record(s.OrderStore().Get(ctx, id))
	case domain.EntityOrderItem:
		return record(s.OrderStore().GetItem(ctx, id))
	case domain.EntityAdjustment:
		return record(s.AdjustmentStore().Get(ctx, id))
	case domain.EntityNote:
		return record(s.NoteStore().Get(ctx, id))
	case domain.EntityLog:
		return record(s.LogStore().Get(ctx, id))
	case domain.EntityDownload:
		return record(s.DownloadStore().Get(ctx, id))
	default:
		return nil, domain.ErrUnsupportedType
	}
}

// recorder is any entity with an attribute view.
type recorder interface {
	Record() domain.Record
}

func record[T recorder](v T, err error) (domain.Record, error) {
	if err != nil {
		return nil, err
	}
	return v.Record(), nil
}

// RowExists reports whether a row with column = id exists in table. Table
// and column names are checked against the known schema before they reach
// the query.
func (s *Store) RowExists(ctx context.Context, table, column string, id int64) (bool, error) {
	t, ok := schema.ForName(table)
	if !ok || !t.HasColumn(column) {
		return false, fmt.Errorf("%s.%s: %w", table, column, domain.ErrInvalidArgument)
	}
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM "+t.Name+" WHERE "+column+" = ?)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", t.Name, err)
	}
	return exists, nil
}

// IsActive reports whether a plugin slug is active.
func (s *Store) IsActive(ctx context.Context, slug string) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx, "SELECT active FROM plugins WHERE slug = ?", slug).Scan(&active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("reading plugin %s: %w", slug, err)
	}
	return active, nil
}

// SetPluginActive activates or deactivates a plugin slug.
func (s *Store) SetPluginActive(ctx context.Context, slug string, active bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plugins (slug, active) VALUES (?, ?)
		ON CONFLICT(slug) DO UPDATE SET active = excluded.active
	`, slug, active)
	if err != nil {
		return fmt.Errorf("saving plugin %s: %w", slug, err)
	}
	return nil
}

// Contents returns the cart items in cart order.
func (s *Store) Contents(ctx context.Context) ([]domain.CartItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT download_id, price_id, quantity, item_price FROM cart_items ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying cart: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		var priceID sql.NullInt64
		if err := rows.Scan(&item.DownloadID, &priceID, &item.Quantity, &item.ItemPrice); err != nil {
			return nil, fmt.Errorf("scanning cart item: %w", err)
		}
		item.PriceID = int64Ptr(priceID)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart: %w", err)
	}
	return items, nil
}

// selectList returns the comma separated columns of a table.
func selectList(t schema.Table) string {
	return strings.Join(t.Columns, ", ")
}

// buildQuery turns host query arguments into a SELECT over t. Argument
// values are bound as parameters; orderby and order are checked against the
// table schema since they cannot be.
func buildQuery(t schema.Table, args domain.QueryArgs) (string, []any, error) {
	orderBy := args.Get(domain.ArgOrderBy)
	if orderBy == "" {
		orderBy = "id"
	}
	if !t.HasColumn(orderBy) {
		return "", nil, fmt.Errorf("orderby %q on %s: %w", orderBy, t.Name, domain.ErrInvalidArgument)
	}
	order := domain.SortAsc
	if v := args.Get(domain.ArgOrder); v != "" {
		order = domain.ParseSortOrder(v)
		if !order.IsValid() {
			return "", nil, fmt.Errorf("order %q: %w", v, domain.ErrInvalidArgument)
		}
	}

	var where []string
	var params []any

	for _, key := range schema.FilterKeys() {
		column := schema.Filters[key]
		values := domain.ArgStrings(args, key)
		if len(values) == 0 || !t.HasColumn(column) {
			continue
		}
		marks := make([]string, len(values))
		for i, v := range values {
			marks[i] = "?"
			params = append(params, html.UnescapeString(v))
		}
		expr := column
		if slices.Contains(schema.CaseInsensitive, column) {
			expr += " COLLATE NOCASE"
		}
		where = append(where, expr+" IN ("+strings.Join(marks, ", ")+")")
	}

	if domain.ArgBool(args, domain.ArgExcludeBundles) && t.HasColumn("product_type") {
		where = append(where, "product_type != ?")
		params = append(params, domain.ProductTypeBundle)
	}

	terms := args[domain.ArgSearchTerms]
	if len(terms) == 0 {
		if v := args.Get(domain.ArgSearch); v != "" {
			terms = []string{v}
		}
	}
	for _, term := range terms {
		if len(t.Search) == 0 {
			break
		}
		like := "%" + escapeLike(html.UnescapeString(term)) + "%"
		alts := make([]string, len(t.Search))
		for i, column := range t.Search {
			alts[i] = column + ` LIKE ? ESCAPE '\'`
			params = append(params, like)
		}
		where = append(where, "("+strings.Join(alts, " OR ")+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + selectList(t) + " FROM " + t.Name)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	fmt.Fprintf(&b, " ORDER BY %s COLLATE NOCASE %s, id ASC", orderBy, order)

	number := domain.ArgInt(args, domain.ArgNumber, -1)
	offset := domain.ArgInt(args, domain.ArgOffset, 0)
	if number > 0 || offset > 0 {
		if number <= 0 {
			number = -1
		}
		b.WriteString(" LIMIT ?")
		params = append(params, number)
		if offset > 0 {
			b.WriteString(" OFFSET ?")
			params = append(params, offset)
		}
	}

	return b.String(), params, nil
}

// escapeLike escapes LIKE wildcards so a term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryRows runs a query and scans every row.
func queryRows[T any](ctx context.Context, db *sql.DB, what, query string, params []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", what, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", what, err)
	}
	return out, nil
}

// getRow reads one row by ID, mapping sql.ErrNoRows to domain.ErrNotFound.
func getRow[T any](ctx context.Context, db *sql.DB, t schema.Table, id int64, scan func(scanner) (T, error)) (*T, error) {
	row := db.QueryRowContext(ctx, "SELECT "+selectList(t)+" FROM "+t.Name+" WHERE id = ?", id)
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning %s: %w", t.Name, err)
	}
	return &v, nil
}

// queryTable runs buildQuery against t.
func queryTable[T any](ctx context.Context, db *sql.DB, t schema.Table, args domain.QueryArgs, scan func(scanner) (T, error)) ([]T, error) {
	query, params, err := buildQuery(t, args)
	if err != nil {
		return nil, err
	}
	return queryRows(ctx, db, t.Name, query, params, scan)
}

func mustTable(entity domain.EntityType) schema.Table {
	t, ok := schema.ForEntity(entity)
	if !ok {
		panic(fmt.Sprintf("sqlite: no table for %s", entity))
	}
	return t
}
