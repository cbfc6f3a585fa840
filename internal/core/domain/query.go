package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryArgs is the argument mapping handed to the host's "get many" queries.
// Multi-valued keys (such as status) hold one entry per value.
type QueryArgs = url.Values

// Query argument keys set by the search helpers.
const (
	ArgStatus         = "status"
	ArgNumber         = "number"
	ArgOffset         = "offset"
	ArgOrderBy        = "orderby"
	ArgOrder          = "order"
	ArgSearch         = "search"
	ArgSearchTerms    = "search_terms"
	ArgID             = "id"
	ArgUserID         = "user_id"
	ArgEmail          = "email"
	ArgType           = "type"
	ArgExcludeBundles = "exclude_bundles"
	ArgAuthor         = "author"
	ArgCustomerID     = "customer_id"
	ArgCode           = "code"
	ArgObjectID       = "object_id"
	ArgObjectType     = "object_type"
)

// SortOrder is the sort direction of a query.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder uppercases s. It does not validate: unknown directions are
// passed through to the host, which rejects them.
func ParseSortOrder(s string) SortOrder {
	return SortOrder(strings.ToUpper(strings.TrimSpace(s)))
}

// IsValid returns true for ASC and DESC.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// SearchConfig holds the defaults a search helper applies to every call.
type SearchConfig struct {
	// Statuses filters results by status, in the order given.
	Statuses []string

	// Number is the page size.
	Number int

	// OrderBy is the sort field.
	OrderBy string

	// Order is the sort direction.
	Order SortOrder

	// ExcludeBundles drops bundle products. Nil for entity types that
	// have no bundles.
	ExcludeBundles *bool
}

// MergeArgs returns a copy of defaults overlaid with extra.
// Keys present in extra replace the default values entirely.
func MergeArgs(defaults, extra QueryArgs) QueryArgs {
	out := make(QueryArgs, len(defaults)+len(extra))
	for k, v := range defaults {
		out[k] = append([]string(nil), v...)
	}
	for k, v := range extra {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ArgInt reads an integer argument, returning def when absent or malformed.
func ArgInt(args QueryArgs, key string, def int) int {
	v := args.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// ArgInt64 reads an int64 argument. The boolean is false when absent or malformed.
func ArgInt64(args QueryArgs, key string) (int64, bool) {
	v := args.Get(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ArgBool reads a boolean argument ("1", "true", "yes" are true).
func ArgBool(args QueryArgs, key string) bool {
	switch strings.ToLower(args.Get(key)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// ArgStrings returns the non-empty values of a multi-valued argument.
// Comma separated values are split, so "active,inactive" equals two entries.
func ArgStrings(args QueryArgs, key string) []string {
	var out []string
	for _, v := range args[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseArgs parses "key=value" pairs into QueryArgs. Repeated keys accumulate.
func ParseArgs(pairs []string) (QueryArgs, error) {
	args := make(QueryArgs)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, ErrInvalidInput
		}
		args.Add(key, value)
	}
	return args, nil
}
