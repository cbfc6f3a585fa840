package domain

import "time"

// EntityType names a host record type addressed by integer ID.
type EntityType string

// Known entity types.
const (
	EntityCustomer   EntityType = "customer"
	EntityOrder      EntityType = "order"
	EntityOrderItem  EntityType = "order_item"
	EntityAdjustment EntityType = "adjustment"
	EntityNote       EntityType = "note"
	EntityLog        EntityType = "log"
	EntityDownload   EntityType = "download"
)

// AllEntityTypes returns every known entity type.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityCustomer,
		EntityOrder,
		EntityOrderItem,
		EntityAdjustment,
		EntityNote,
		EntityLog,
		EntityDownload,
	}
}

// IsValid returns true if the entity type is known.
func (e EntityType) IsValid() bool {
	for _, t := range AllEntityTypes() {
		if t == e {
			return true
		}
	}
	return false
}

// Table returns the host table holding rows of this entity type.
// Returns an empty string for unknown types.
func (e EntityType) Table() string {
	switch e {
	case EntityCustomer:
		return "edd_customers"
	case EntityOrder:
		return "edd_orders"
	case EntityOrderItem:
		return "edd_order_items"
	case EntityAdjustment:
		return "edd_adjustments"
	case EntityNote:
		return "edd_notes"
	case EntityLog:
		return "edd_logs"
	case EntityDownload:
		return "edd_downloads"
	default:
		return ""
	}
}

// ParseEntityType converts a user supplied name into an EntityType.
// Accepts the plural form and "discount" as an alias for adjustments.
func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "customer", "customers":
		return EntityCustomer, nil
	case "order", "orders", "payment", "payments":
		return EntityOrder, nil
	case "order_item", "order_items", "item", "items":
		return EntityOrderItem, nil
	case "adjustment", "adjustments", "discount", "discounts":
		return EntityAdjustment, nil
	case "note", "notes":
		return EntityNote, nil
	case "log", "logs":
		return EntityLog, nil
	case "download", "downloads", "product", "products":
		return EntityDownload, nil
	default:
		return "", ErrUnsupportedType
	}
}

// Record is the attribute view of an entity, keyed by column name.
// A key that is present with a non-nil value counts as "set", even when the
// value is falsy.
type Record map[string]any

// Lookup returns the attribute value if it is present and non-nil.
func (r Record) Lookup(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// timeOrNil keeps unset timestamps out of a Record.
func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
