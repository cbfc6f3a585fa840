package domain

import (
	"fmt"
	"time"
)

// Customer is a host customer record.
type Customer struct {
	ID            int64     `yaml:"id"`
	UserID        int64     `yaml:"user_id"`
	Email         string    `yaml:"email"`
	Name          string    `yaml:"name"`
	Status        string    `yaml:"status"`
	PurchaseValue float64   `yaml:"purchase_value"`
	PurchaseCount int       `yaml:"purchase_count"`
	DateCreated   time.Time `yaml:"date_created"`
}

// DisplayName returns the customer name, falling back to the email address.
func (c *Customer) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}

// Label returns the "Name (email)" form used by selection widgets.
func (c *Customer) Label() string {
	if c.Name == "" || c.Email == "" {
		return c.DisplayName()
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Email)
}

// Record returns the attribute view of the customer.
func (c *Customer) Record() Record {
	return Record{
		"id":             c.ID,
		"user_id":        c.UserID,
		"email":          c.Email,
		"name":           c.Name,
		"status":         c.Status,
		"purchase_value": c.PurchaseValue,
		"purchase_count": c.PurchaseCount,
		"date_created":   timeOrNil(c.DateCreated),
	}
}
