package memory

import (
	"fmt"
	"html"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/schema"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// matchedRow pairs a row with its attribute view for sorting.
type matchedRow[T any] struct {
	value  T
	record domain.Record
}

// runQuery applies the host query arguments to rows: filters, free-text
// search, sort and paging. Rows must already be in ID order so ties keep a
// stable order.
func runQuery[T any](
	rows []T,
	table schema.Table,
	record func(*T) domain.Record,
	args domain.QueryArgs,
	fuzzyMatch bool,
) ([]T, error) {
	orderBy := args.Get(domain.ArgOrderBy)
	if orderBy == "" {
		orderBy = "id"
	}
	if !table.HasColumn(orderBy) {
		return nil, fmt.Errorf("orderby %q on %s: %w", orderBy, table.Name, domain.ErrInvalidArgument)
	}

	order := domain.SortAsc
	if v := args.Get(domain.ArgOrder); v != "" {
		order = domain.ParseSortOrder(v)
		if !order.IsValid() {
			return nil, fmt.Errorf("order %q: %w", v, domain.ErrInvalidArgument)
		}
	}

	var matched []matchedRow[T]
	for i := range rows {
		rec := record(&rows[i])
		if matches(rec, table, args, fuzzyMatch) {
			matched = append(matched, matchedRow[T]{value: rows[i], record: rec})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		c := compareValues(matched[i].record[orderBy], matched[j].record[orderBy])
		if order == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})

	offset := domain.ArgInt(args, domain.ArgOffset, 0)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []T{}, nil
	}
	matched = matched[offset:]

	if number := domain.ArgInt(args, domain.ArgNumber, -1); number > 0 && number < len(matched) {
		matched = matched[:number]
	}

	result := make([]T, len(matched))
	for i, m := range matched {
		result[i] = m.value
	}
	return result, nil
}

// matches reports whether a record satisfies every filter argument.
func matches(rec domain.Record, table schema.Table, args domain.QueryArgs, fuzzyMatch bool) bool {
	for key, column := range schema.Filters {
		values := domain.ArgStrings(args, key)
		if len(values) == 0 || !table.HasColumn(column) {
			continue
		}
		if !matchesAny(rec[column], values, slices.Contains(schema.CaseInsensitive, column)) {
			return false
		}
	}

	if domain.ArgBool(args, domain.ArgExcludeBundles) && rec["product_type"] == domain.ProductTypeBundle {
		return false
	}

	terms := args[domain.ArgSearchTerms]
	if len(terms) == 0 {
		if s := args.Get(domain.ArgSearch); s != "" {
			terms = []string{s}
		}
	}
	for _, term := range terms {
		if !matchesSearch(rec, table.Search, html.UnescapeString(term), fuzzyMatch) {
			return false
		}
	}
	return true
}

func matchesAny(value any, wanted []string, foldCase bool) bool {
	got := stringValue(value)
	for _, w := range wanted {
		w = html.UnescapeString(w)
		if got == w || (foldCase && strings.EqualFold(got, w)) {
			return true
		}
	}
	return false
}

// matchesSearch reports whether term appears in any searchable column.
func matchesSearch(rec domain.Record, columns []string, term string, fuzzyMatch bool) bool {
	needle := strings.ToLower(term)
	for _, c := range columns {
		hay := stringValue(rec[c])
		if fuzzyMatch {
			if fuzzy.MatchFold(term, hay) {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

// compareValues orders attribute values. Nil sorts first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	return strings.Compare(strings.ToLower(stringValue(a)), strings.ToLower(stringValue(b)))
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
