package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/schema"
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

// Ensure Host implements the shared host interfaces.
var (
	_ driven.Host            = (*Host)(nil)
	_ driven.MetaStore       = (*Host)(nil)
	_ driven.RecordStore     = (*Host)(nil)
	_ driven.RowStore        = (*Host)(nil)
	_ driven.ExtensionProbe  = (*Host)(nil)
	_ driven.CartStore       = (*Host)(nil)
	_ driven.DatasetImporter = (*Host)(nil)
)

type metaKey struct {
	entity domain.EntityType
	id     int64
	key    string
}

// Host is an in-memory implementation of the host data layer.
// It backs tests and demos; entity stores are exposed through wrapper types.
type Host struct {
	mu          sync.RWMutex
	fuzzy       bool
	customers   map[int64]domain.Customer
	orders      map[int64]domain.Order
	items       map[int64]domain.OrderItem
	adjustments map[int64]domain.Adjustment
	notes       map[int64]domain.Note
	logs        map[int64]domain.Log
	downloads   map[int64]domain.Download
	meta        map[metaKey]string
	plugins     map[string]bool
	cart        []domain.CartItem
}

// Option configures a Host.
type Option func(*Host)

// WithFuzzySearch makes free-text search match characters in order rather
// than as a contiguous substring, so "jsmth" finds "John Smith".
func WithFuzzySearch() Option {
	return func(h *Host) {
		h.fuzzy = true
	}
}

// NewHost creates an empty in-memory host.
func NewHost(opts ...Option) *Host {
	h := &Host{
		customers:   make(map[int64]domain.Customer),
		orders:      make(map[int64]domain.Order),
		items:       make(map[int64]domain.OrderItem),
		adjustments: make(map[int64]domain.Adjustment),
		notes:       make(map[int64]domain.Note),
		logs:        make(map[int64]domain.Log),
		downloads:   make(map[int64]domain.Download),
		meta:        make(map[metaKey]string),
		plugins:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CustomerStore returns a CustomerStore backed by this host.
func (h *Host) CustomerStore() driven.CustomerStore {
	return &customerStore{host: h}
}

// OrderStore returns an OrderStore backed by this host.
func (h *Host) OrderStore() driven.OrderStore {
	return &orderStore{host: h}
}

// AdjustmentStore returns an AdjustmentStore backed by this host.
func (h *Host) AdjustmentStore() driven.AdjustmentStore {
	return &adjustmentStore{host: h}
}

// NoteStore returns a NoteStore backed by this host.
func (h *Host) NoteStore() driven.NoteStore {
	return &noteStore{host: h}
}

// LogStore returns a LogStore backed by this host.
func (h *Host) LogStore() driven.LogStore {
	return &logStore{host: h}
}

// DownloadStore returns a DownloadStore backed by this host.
func (h *Host) DownloadStore() driven.DownloadStore {
	return &downloadStore{host: h}
}

// Import loads a dataset, replacing records with the same ID.
// Order items nested in orders are stored against their order.
func (h *Host) Import(_ context.Context, data *domain.Dataset) error {
	if data == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range data.Customers {
		h.customers[c.ID] = c
	}
	for _, o := range data.Orders {
		for _, item := range o.Items {
			item.OrderID = o.ID
			h.items[item.ID] = item
		}
		o.Items = nil
		h.orders[o.ID] = o
	}
	for _, a := range data.Adjustments {
		h.adjustments[a.ID] = a
	}
	for _, n := range data.Notes {
		h.notes[n.ID] = n
	}
	for _, l := range data.Logs {
		h.logs[l.ID] = l
	}
	for _, d := range data.Downloads {
		h.downloads[d.ID] = d
	}
	for _, m := range data.Meta {
		if !m.Entity.IsValid() {
			return fmt.Errorf("meta %q for %s %d: %w", m.Key, m.Entity, m.ID, domain.ErrUnsupportedType)
		}
		h.meta[metaKey{entity: m.Entity, id: m.ID, key: m.Key}] = m.Value
	}
	for _, p := range data.ActivePlugins {
		h.plugins[p] = true
	}
	if data.Cart != nil {
		h.cart = slices.Clone(data.Cart)
	}
	return nil
}

// SetMeta stores a metadata value.
func (h *Host) SetMeta(entity domain.EntityType, id int64, key, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.meta[metaKey{entity: entity, id: id, key: key}] = value
}

// SetPluginActive activates or deactivates a plugin slug.
func (h *Host) SetPluginActive(slug string, active bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if active {
		h.plugins[slug] = true
		return
	}
	delete(h.plugins, slug)
}

// GetMeta returns a metadata value.
func (h *Host) GetMeta(_ context.Context, entity domain.EntityType, id int64, key string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.meta[metaKey{entity: entity, id: id, key: key}]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

// Record returns the attribute view of an entity.
func (h *Host) Record(_ context.Context, entity domain.EntityType, id int64) (domain.Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rec, ok, err := h.recordLocked(entity, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (h *Host) recordLocked(entity domain.EntityType, id int64) (domain.Record, bool, error) {
	switch entity {
	case domain.EntityCustomer:
		v, ok := h.customers[id]
		return v.Record(), ok, nil
	case domain.EntityOrder:
		v, ok := h.orders[id]
		return v.Record(), ok, nil
	case domain.EntityOrderItem:
		v, ok := h.items[id]
		return v.Record(), ok, nil
	case domain.EntityAdjustment:
		v, ok := h.adjustments[id]
		return v.Record(), ok, nil
	case domain.EntityNote:
		v, ok := h.notes[id]
		return v.Record(), ok, nil
	case domain.EntityLog:
		v, ok := h.logs[id]
		return v.Record(), ok, nil
	case domain.EntityDownload:
		v, ok := h.downloads[id]
		return v.Record(), ok, nil
	default:
		return nil, false, domain.ErrUnsupportedType
	}
}

// RowExists reports whether a row with column = id exists in table.
func (h *Host) RowExists(_ context.Context, table, column string, id int64) (bool, error) {
	t, ok := schema.ForName(table)
	if !ok || !t.HasColumn(column) {
		return false, fmt.Errorf("%s.%s: %w", table, column, domain.ErrInvalidArgument)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if column == "id" {
		_, found, err := h.recordLocked(t.Entity, id)
		return found, err
	}
	want := strconv.FormatInt(id, 10)
	for _, rec := range h.recordsLocked(t.Entity) {
		if stringValue(rec[column]) == want {
			return true, nil
		}
	}
	return false, nil
}

func (h *Host) recordsLocked(entity domain.EntityType) []domain.Record {
	var out []domain.Record
	switch entity {
	case domain.EntityCustomer:
		for _, v := range h.customers {
			out = append(out, v.Record())
		}
	case domain.EntityOrder:
		for _, v := range h.orders {
			out = append(out, v.Record())
		}
	case domain.EntityOrderItem:
		for _, v := range h.items {
			out = append(out, v.Record())
		}
	case domain.EntityAdjustment:
		for _, v := range h.adjustments {
			out = append(out, v.Record())
		}
	case domain.EntityNote:
		for _, v := range h.notes {
			out = append(out, v.Record())
		}
	case domain.EntityLog:
		for _, v := range h.logs {
			out = append(out, v.Record())
		}
	case domain.EntityDownload:
		for _, v := range h.downloads {
			out = append(out, v.Record())
		}
	}
	return out
}

// IsActive reports whether a plugin slug is active.
func (h *Host) IsActive(_ context.Context, slug string) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.plugins[slug], nil
}

// Contents returns the cart items.
func (h *Host) Contents(_ context.Context) ([]domain.CartItem, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.cart), nil
}

// sortedValues returns map values in ascending key order.
func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

// ==================== Customer Store ====================

type customerStore struct {
	host *Host
}

var _ driven.CustomerStore = (*customerStore)(nil)

func (s *customerStore) Get(_ context.Context, id int64) (*domain.Customer, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	c, ok := s.host.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *customerStore) Query(_ context.Context, args domain.QueryArgs) ([]domain.Customer, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	table, _ := schema.ForEntity(domain.EntityCustomer)
	return runQuery(sortedValues(s.host.customers), table, (*domain.Customer).Record, args, s.host.fuzzy)
}

// ==================== Order Store ====================

type orderStore struct {
	host *Host
}

var _ driven.OrderStore = (*orderStore)(nil)

func (s *orderStore) Get(_ context.Context, id int64) (*domain.Order, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	o, ok := s.host.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (s *orderStore) Query(_ context.Context, args domain.QueryArgs) ([]domain.Order, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	table, _ := schema.ForEntity(domain.EntityOrder)
	return runQuery(sortedValues(s.host.orders), table, (*domain.Order).Record, args, s.host.fuzzy)
}

func (s *orderStore) Items(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	items := []domain.OrderItem{}
	for _, item := range sortedValues(s.host.items) {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CartIndex < items[j].CartIndex
	})
	return items, nil
}

func (s *orderStore) GetItem(_ context.Context, id int64) (*domain.OrderItem, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	item, ok := s.host.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (s *orderStore) Distinct(_ context.Context, column string) ([]string, error) {
	if !slices.Contains(schema.DistinctOrderColumns, column) {
		return nil, fmt.Errorf("distinct %q: %w", column, domain.ErrInvalidArgument)
	}
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	seen := make(map[string]bool)
	values := []string{}
	for _, o := range s.host.orders {
		v := stringValue(o.Record()[column])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	slices.Sort(values)
	return values, nil
}

// ==================== Adjustment Store ====================

type adjustmentStore struct {
	host *Host
}

var _ driven.AdjustmentStore = (*adjustmentStore)(nil)

func (s *adjustmentStore) Get(_ context.Context, id int64) (*domain.Adjustment, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	a, ok := s.host.adjustments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (s *adjustmentStore) Query(_ context.Context, args domain.QueryArgs) ([]domain.Adjustment, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	table, _ := schema.ForEntity(domain.EntityAdjustment)
	return runQuery(sortedValues(s.host.adjustments), table, (*domain.Adjustment).Record, args, s.host.fuzzy)
}

func (s *adjustmentStore) ByCode(_ context.Context, code string) (*domain.Adjustment, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	for _, a := range sortedValues(s.host.adjustments) {
		if a.Type == domain.AdjustmentTypeDiscount && strings.EqualFold(a.Code, code) {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ==================== Note and Log Stores ====================

type noteStore struct {
	host *Host
}

var _ driven.NoteStore = (*noteStore)(nil)

func (s *noteStore) Get(_ context.Context, id int64) (*domain.Note, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	n, ok := s.host.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (s *noteStore) Query(_ context.Context, args domain.QueryArgs) ([]domain.Note, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	table, _ := schema.ForEntity(domain.EntityNote)
	return runQuery(sortedValues(s.host.notes), table, (*domain.Note).Record, args, s.host.fuzzy)
}

type logStore struct {
	host *Host
}

var _ driven.LogStore = (*logStore)(nil)

func (s *logStore) Get(_ context.Context, id int64) (*domain.Log, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	l, ok := s.host.logs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (s *logStore) Query(_ context.Context, args domain.QueryArgs) ([]domain.Log, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	table, _ := schema.ForEntity(domain.EntityLog)
	return runQuery(sortedValues(s.host.logs), table, (*domain.Log).Record, args, s.host.fuzzy)
}

// ==================== Download Store ====================

type downloadStore struct {
	host *Host
}

var _ driven.DownloadStore = (*downloadStore)(nil)

func (s *downloadStore) Get(_ context.Context, id int64) (*domain.Download, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	d, ok := s.host.downloads[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (s *downloadStore) Query(_ context.Context, args domain.QueryArgs) ([]domain.Download, error) {
	s.host.mu.RLock()
	defer s.host.mu.RUnlock()
	table, _ := schema.ForEntity(domain.EntityDownload)
	return runQuery(sortedValues(s.host.downloads), table, (*domain.Download).Record, args, s.host.fuzzy)
}
