package services

import (
	"context"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/google/go-querystring/query"
	"github.com/scylladb/go-set/strset"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure the search helpers implement the interfaces.
var (
	_ driving.DiscountSearch = (*DiscountSearch)(nil)
	_ driving.CustomerSearch = (*CustomerSearch)(nil)
	_ driving.DownloadSearch = (*DownloadSearch)(nil)
)

// DefaultPageSize is the page size of every search helper.
const DefaultPageSize = 30

// searchDefaults is encoded into the default query arguments.
type searchDefaults struct {
	Status         []string `url:"status,omitempty"`
	Number         int      `url:"number"`
	OrderBy        string   `url:"orderby,omitempty"`
	Order          string   `url:"order,omitempty"`
	Type           string   `url:"type,omitempty"`
	ExcludeBundles *bool    `url:"exclude_bundles,omitempty"`
}

// classifier turns a trimmed search term into query arguments.
// Returning false means the term cannot match anything.
type classifier func(term string, args domain.QueryArgs) bool

// SearchQuery holds the defaults of a search box helper and runs lookups
// against one host query function.
type SearchQuery[T any] struct {
	name     string
	query    func(ctx context.Context, args domain.QueryArgs) ([]T, error)
	classify classifier
	format   func([]T) []domain.OptionPair
	// entityType is sent as the "type" argument when set.
	entityType string

	mu     sync.RWMutex
	config domain.SearchConfig
}

// SetStatus replaces the status filter, keeping the first occurrence of
// each status.
func (q *SearchQuery[T]) SetStatus(statuses []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.config.Statuses = uniqueStatuses(statuses)
}

// SetNumber sets the page size. Values are passed to the host unvalidated.
func (q *SearchQuery[T]) SetNumber(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.config.Number = n
}

// SetOrderBy sets the sort field.
func (q *SearchQuery[T]) SetOrderBy(field string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.config.OrderBy = field
}

// SetOrder sets the sort direction.
func (q *SearchQuery[T]) SetOrder(order domain.SortOrder) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.config.Order = order
}

// Config returns a copy of the current defaults.
func (q *SearchQuery[T]) Config() domain.SearchConfig {
	q.mu.RLock()
	defer q.mu.RUnlock()
	cfg := q.config
	cfg.Statuses = append([]string(nil), q.config.Statuses...)
	return cfg
}

// Results runs the search and formats the records as option pairs.
func (q *SearchQuery[T]) Results(ctx context.Context, search string, extra domain.QueryArgs) []domain.OptionPair {
	return q.format(q.RawResults(ctx, search, extra))
}

// RawResults runs the search and returns the host records unchanged.
// Host failures are logged and yield an empty slice.
func (q *SearchQuery[T]) RawResults(ctx context.Context, search string, extra domain.QueryArgs) []T {
	logger.Section(q.name + " search")

	args, ok := q.args(search, extra)
	if !ok {
		logger.Debug("Term %q has no searchable tokens", search)
		return []T{}
	}
	logger.Debug("Query args: %s", args.Encode())

	records, err := q.query(ctx, args)
	if err != nil {
		logger.Warn("%s search for %q failed: %v", q.name, search, err)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	logger.Debug("Found %d %s", len(records), q.name)
	return records
}

// args builds the host query arguments for a search term.
func (q *SearchQuery[T]) args(search string, extra domain.QueryArgs) (domain.QueryArgs, bool) {
	cfg := q.Config()

	defaults, err := query.Values(q.defaults(cfg))
	if err != nil {
		// Only reachable through a programming error in searchDefaults.
		logger.Warn("encoding %s defaults: %v", q.name, err)
		defaults = domain.QueryArgs{}
	}
	args := domain.MergeArgs(defaults, extra)

	term := strings.TrimSpace(search)
	if term == "" {
		return args, true
	}
	if q.classify == nil {
		args.Set(domain.ArgSearch, html.EscapeString(term))
		return args, true
	}
	return args, q.classify(term, args)
}

func (q *SearchQuery[T]) defaults(cfg domain.SearchConfig) searchDefaults {
	d := searchDefaults{
		Status:  cfg.Statuses,
		Number:  cfg.Number,
		OrderBy: cfg.OrderBy,
		Order:   string(cfg.Order),
		Type:    q.entityType,
	}
	if cfg.ExcludeBundles != nil {
		exclude := *cfg.ExcludeBundles
		d.ExcludeBundles = &exclude
	}
	return d
}

// uniqueStatuses drops empty and repeated statuses, keeping order.
func uniqueStatuses(statuses []string) []string {
	seen := strset.New()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		s = strings.TrimSpace(s)
		if s == "" || seen.Has(s) {
			continue
		}
		seen.Add(s)
		out = append(out, s)
	}
	return out
}

// setFreeText stores the tokens as both the joined search string and the
// individual search terms.
func setFreeText(args domain.QueryArgs, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = html.EscapeString(t)
	}
	args.Set(domain.ArgSearch, strings.Join(escaped, " "))
	args[domain.ArgSearchTerms] = escaped
	return true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ==================== Discounts ====================

// DiscountSearch searches discount codes. The term is not classified: it is
// passed to the host as a free-text filter on name and code.
type DiscountSearch struct {
	*SearchQuery[domain.Adjustment]
}

// NewDiscountSearch creates a discount search with active discounts sorted
// by name.
func NewDiscountSearch(store driven.AdjustmentStore) *DiscountSearch {
	return &DiscountSearch{&SearchQuery[domain.Adjustment]{
		name:       "discount",
		query:      store.Query,
		format:     domain.DiscountOptions,
		entityType: domain.AdjustmentTypeDiscount,
		config: domain.SearchConfig{
			Statuses: []string{domain.AdjustmentStatusActive},
			Number:   DefaultPageSize,
			OrderBy:  "name",
			Order:    domain.SortAsc,
		},
	}}
}

// ==================== Customers ====================

// CustomerSearch searches customers by email, ID, user ID or name.
type CustomerSearch struct {
	*SearchQuery[domain.Customer]
}

// NewCustomerSearch creates a customer search with active customers sorted
// by name.
func NewCustomerSearch(store driven.CustomerStore) *CustomerSearch {
	return &CustomerSearch{&SearchQuery[domain.Customer]{
		name:     "customer",
		query:    store.Query,
		classify: classifyCustomerTerm,
		format:   domain.CustomerOptions,
		config: domain.SearchConfig{
			Statuses: []string{"active"},
			Number:   DefaultPageSize,
			OrderBy:  "name",
			Order:    domain.SortAsc,
		},
	}}
}

func classifyCustomerTerm(term string, args domain.QueryArgs) bool {
	parsed := domain.ParseTerm(term)
	switch parsed.Kind {
	case domain.TermEmail:
		args.Set(domain.ArgEmail, html.EscapeString(parsed.Email))
	case domain.TermExact:
		args.Set(domain.ArgID, formatID(parsed.ID))
	case domain.TermByPrefix:
		if parsed.PrefixKind == domain.PrefixUser {
			args.Set(domain.ArgUserID, formatID(parsed.ID))
		} else {
			args.Set(domain.ArgID, formatID(parsed.ID))
		}
	default:
		return setFreeText(args, parsed.Tokens)
	}
	return true
}

// ==================== Downloads ====================

// DownloadSearch searches downloads by ID, author or title.
type DownloadSearch struct {
	*SearchQuery[domain.Download]
}

// NewDownloadSearch creates a download search over published downloads
// sorted by title. Bundles are included until SetExcludeBundles(true).
func NewDownloadSearch(store driven.DownloadStore) *DownloadSearch {
	exclude := false
	return &DownloadSearch{&SearchQuery[domain.Download]{
		name:     "download",
		query:    store.Query,
		classify: classifyDownloadTerm,
		format:   domain.DownloadOptions,
		config: domain.SearchConfig{
			Statuses:       []string{"publish"},
			Number:         DefaultPageSize,
			OrderBy:        "title",
			Order:          domain.SortAsc,
			ExcludeBundles: &exclude,
		},
	}}
}

// SetExcludeBundles excludes bundle products from results.
func (s *DownloadSearch) SetExcludeBundles(exclude bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.ExcludeBundles = &exclude
}

func classifyDownloadTerm(term string, args domain.QueryArgs) bool {
	parsed := domain.ParseTerm(term)
	switch parsed.Kind {
	case domain.TermEmail:
		args.Set(domain.ArgSearch, html.EscapeString(parsed.Email))
	case domain.TermExact:
		args.Set(domain.ArgID, formatID(parsed.ID))
	case domain.TermByPrefix:
		if parsed.PrefixKind == domain.PrefixUser {
			args.Set(domain.ArgAuthor, formatID(parsed.ID))
		} else {
			args.Set(domain.ArgID, formatID(parsed.ID))
		}
	default:
		return setFreeText(args, parsed.Tokens)
	}
	return true
}
