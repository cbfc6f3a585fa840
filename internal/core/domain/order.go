package domain

import (
	"fmt"
	"time"
)

// Order statuses known to the host.
const (
	OrderStatusPending           = "pending"
	OrderStatusProcessing        = "processing"
	OrderStatusComplete          = "complete"
	OrderStatusRefunded          = "refunded"
	OrderStatusPartiallyRefunded = "partially_refunded"
	OrderStatusFailed            = "failed"
	OrderStatusAbandoned         = "abandoned"
	OrderStatusRevoked           = "revoked"
	OrderStatusOnHold            = "on_hold"
	OrderStatusEditsInProgress   = "edits_in_progress"
	OrderStatusRenewal           = "edd_subscription"
	OrderStatusPublish           = "publish" // pre-3.0 alias of complete
)

// OrderStatusLabels maps order statuses to their display labels.
var OrderStatusLabels = map[string]string{
	OrderStatusPending:           "Pending",
	OrderStatusProcessing:        "Processing",
	OrderStatusComplete:          "Completed",
	OrderStatusRefunded:          "Refunded",
	OrderStatusPartiallyRefunded: "Partially Refunded",
	OrderStatusFailed:            "Failed",
	OrderStatusAbandoned:         "Abandoned",
	OrderStatusRevoked:           "Revoked",
	OrderStatusOnHold:            "On Hold",
	OrderStatusEditsInProgress:   "Edits In Progress",
	OrderStatusRenewal:           "Renewal",
}

// CompleteOrderStatuses are the statuses that count as a paid order.
var CompleteOrderStatuses = []string{
	OrderStatusComplete,
	OrderStatusPartiallyRefunded,
	OrderStatusRevoked,
	OrderStatusRenewal,
	OrderStatusPublish,
}

// Order is a host order record.
type Order struct {
	ID            int64       `yaml:"id"`
	ParentID      int64       `yaml:"parent"`
	OrderNumber   string      `yaml:"order_number"`
	Status        string      `yaml:"status"`
	Type          string      `yaml:"type"`
	UserID        int64       `yaml:"user_id"`
	CustomerID    int64       `yaml:"customer_id"`
	Email         string      `yaml:"email"`
	IP            string      `yaml:"ip"`
	Gateway       string      `yaml:"gateway"`
	Mode          string      `yaml:"mode"`
	Currency      string      `yaml:"currency"`
	PaymentKey    string      `yaml:"payment_key"`
	Subtotal      float64     `yaml:"subtotal"`
	Discount      float64     `yaml:"discount"`
	Tax           float64     `yaml:"tax"`
	Total         float64     `yaml:"total"`
	DateCreated   time.Time   `yaml:"date_created"`
	DateCompleted time.Time   `yaml:"date_completed"`
	Items         []OrderItem `yaml:"items,omitempty"`
}

// Number returns the order number, falling back to the ID.
func (o *Order) Number() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return fmt.Sprintf("%d", o.ID)
}

// IsComplete returns true if the order status counts as paid.
func (o *Order) IsComplete() bool {
	for _, s := range CompleteOrderStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// Record returns the attribute view of the order.
func (o *Order) Record() Record {
	return Record{
		"id":             o.ID,
		"parent":         o.ParentID,
		"order_number":   o.OrderNumber,
		"status":         o.Status,
		"type":           o.Type,
		"user_id":        o.UserID,
		"customer_id":    o.CustomerID,
		"email":          o.Email,
		"ip":             o.IP,
		"gateway":        o.Gateway,
		"mode":           o.Mode,
		"currency":       o.Currency,
		"payment_key":    o.PaymentKey,
		"subtotal":       o.Subtotal,
		"discount":       o.Discount,
		"tax":            o.Tax,
		"total":          o.Total,
		"date_created":   timeOrNil(o.DateCreated),
		"date_completed": timeOrNil(o.DateCompleted),
	}
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID          int64   `yaml:"id"`
	OrderID     int64   `yaml:"order_id"`
	ProductID   int64   `yaml:"product_id"`
	ProductName string  `yaml:"product_name"`
	PriceID     *int64  `yaml:"price_id,omitempty"`
	CartIndex   int     `yaml:"cart_index"`
	Type        string  `yaml:"type"`
	Status      string  `yaml:"status"`
	Quantity    int     `yaml:"quantity"`
	Amount      float64 `yaml:"amount"`
	Subtotal    float64 `yaml:"subtotal"`
	Discount    float64 `yaml:"discount"`
	Tax         float64 `yaml:"tax"`
	Total       float64 `yaml:"total"`
}

// Record returns the attribute view of the order item.
func (i *OrderItem) Record() Record {
	var priceID any
	if i.PriceID != nil {
		priceID = *i.PriceID
	}
	return Record{
		"id":           i.ID,
		"order_id":     i.OrderID,
		"product_id":   i.ProductID,
		"product_name": i.ProductName,
		"price_id":     priceID,
		"cart_index":   i.CartIndex,
		"type":         i.Type,
		"status":       i.Status,
		"quantity":     i.Quantity,
		"amount":       i.Amount,
		"subtotal":     i.Subtotal,
		"discount":     i.Discount,
		"tax":          i.Tax,
		"total":        i.Total,
	}
}
