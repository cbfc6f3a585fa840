// Package schema describes the host tables shared by the storage adapters:
// which columns exist, which query arguments filter them and which columns
// a free-text search looks at. Both the SQLite and the in-memory host use it
// so they accept exactly the same arguments.
package schema

import (
	"slices"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// Table describes one entity table and its metadata table.
type Table struct {
	Entity  domain.EntityType
	Name    string
	Columns []string

	// Search lists the columns matched by the search argument.
	Search []string

	// Meta is the key/value metadata table keyed by object_id.
	Meta string
}

// HasColumn reports whether the table has the column.
func (t Table) HasColumn(column string) bool {
	return slices.Contains(t.Columns, column)
}

var tables = []Table{
	{
		Entity:  domain.EntityCustomer,
		Name:    "edd_customers",
		Columns: []string{"id", "user_id", "email", "name", "status", "purchase_value", "purchase_count", "date_created"},
		Search:  []string{"name", "email"},
		Meta:    "edd_customermeta",
	},
	{
		Entity: domain.EntityOrder,
		Name:   "edd_orders",
		Columns: []string{"id", "parent", "order_number", "status", "type", "user_id", "customer_id", "email", "ip",
			"gateway", "mode", "currency", "payment_key", "subtotal", "discount", "tax", "total",
			"date_created", "date_completed"},
		Search: []string{"email", "order_number"},
		Meta:   "edd_ordermeta",
	},
	{
		Entity: domain.EntityOrderItem,
		Name:   "edd_order_items",
		Columns: []string{"id", "order_id", "product_id", "product_name", "price_id", "cart_index", "type", "status",
			"quantity", "amount", "subtotal", "discount", "tax", "total"},
		Search: []string{"product_name"},
		Meta:   "edd_order_itemmeta",
	},
	{
		Entity: domain.EntityAdjustment,
		Name:   "edd_adjustments",
		Columns: []string{"id", "parent", "name", "code", "status", "type", "scope", "amount_type", "amount",
			"description", "max_uses", "use_count", "once_per_customer", "min_charge_amount", "start_date", "end_date"},
		Search: []string{"name", "code"},
		Meta:   "edd_adjustmentmeta",
	},
	{
		Entity:  domain.EntityNote,
		Name:    "edd_notes",
		Columns: []string{"id", "object_id", "object_type", "user_id", "content", "date_created"},
		Search:  []string{"content"},
		Meta:    "edd_notemeta",
	},
	{
		Entity:  domain.EntityLog,
		Name:    "edd_logs",
		Columns: []string{"id", "object_id", "object_type", "user_id", "type", "title", "content", "date_created"},
		Search:  []string{"title", "content"},
		Meta:    "edd_logmeta",
	},
	{
		Entity:  domain.EntityDownload,
		Name:    "edd_downloads",
		Columns: []string{"id", "title", "status", "author", "product_type", "price"},
		Search:  []string{"title"},
		Meta:    "edd_downloadmeta",
	},
}

// ForEntity returns the table of an entity type.
func ForEntity(entity domain.EntityType) (Table, bool) {
	for _, t := range tables {
		if t.Entity == entity {
			return t, true
		}
	}
	return Table{}, false
}

// ForName returns the table with the given name.
func ForName(name string) (Table, bool) {
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Tables returns every entity table.
func Tables() []Table {
	return slices.Clone(tables)
}

// Filters maps query argument keys to the column they filter on.
// An argument is ignored for tables lacking the column.
var Filters = map[string]string{
	domain.ArgStatus:     "status",
	domain.ArgID:         "id",
	domain.ArgUserID:     "user_id",
	domain.ArgEmail:      "email",
	domain.ArgType:       "type",
	domain.ArgAuthor:     "author",
	domain.ArgCustomerID: "customer_id",
	domain.ArgCode:       "code",
	domain.ArgObjectID:   "object_id",
	domain.ArgObjectType: "object_type",
	"order_id":           "order_id",
	"product_id":         "product_id",
	"currency":           "currency",
	"gateway":            "gateway",
}

// CaseInsensitive lists the columns compared without regard to case.
var CaseInsensitive = []string{"email", "code"}

// DistinctOrderColumns are the order columns that may be aggregated.
var DistinctOrderColumns = []string{"currency", "gateway", "mode", "status"}

// FilterKeys returns the Filters keys in a stable order.
func FilterKeys() []string {
	keys := make([]string, 0, len(Filters))
	for k := range Filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
