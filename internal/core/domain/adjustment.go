package domain

import (
	"fmt"
	"time"
)

// Adjustment types. Discounts are the only type exposed through search.
const (
	AdjustmentTypeDiscount = "discount"
	AdjustmentTypeFee      = "fee"
	AdjustmentTypeTaxRate  = "tax_rate"
)

// Discount amount types.
const (
	AmountTypePercent = "percent"
	AmountTypeFlat    = "flat"
)

// Adjustment statuses.
const (
	AdjustmentStatusActive   = "active"
	AdjustmentStatusInactive = "inactive"
	AdjustmentStatusExpired  = "expired"
	AdjustmentStatusArchived = "archived"
)

// Adjustment is a host adjustment record (discount code, fee, or tax rate).
type Adjustment struct {
	ID              int64     `yaml:"id"`
	ParentID        int64     `yaml:"parent"`
	Name            string    `yaml:"name"`
	Code            string    `yaml:"code"`
	Status          string    `yaml:"status"`
	Type            string    `yaml:"type"`
	Scope           string    `yaml:"scope"`
	AmountType      string    `yaml:"amount_type"`
	Amount          float64   `yaml:"amount"`
	Description     string    `yaml:"description"`
	MaxUses         int       `yaml:"max_uses"`
	UseCount        int       `yaml:"use_count"`
	OncePerCustomer bool      `yaml:"once_per_customer"`
	MinChargeAmount float64   `yaml:"min_charge_amount"`
	StartDate       time.Time `yaml:"start_date"`
	EndDate         time.Time `yaml:"end_date"`
}

// Label returns the "Name (CODE)" form used by selection widgets.
func (a *Adjustment) Label() string {
	if a.Code == "" {
		return a.Name
	}
	if a.Name == "" {
		return a.Code
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}

// IsPercent returns true if the amount is a percentage.
func (a *Adjustment) IsPercent() bool {
	return a.AmountType == AmountTypePercent
}

// IsStarted returns true if the adjustment has no start date or it has passed.
func (a *Adjustment) IsStarted(now time.Time) bool {
	return a.StartDate.IsZero() || !now.Before(a.StartDate)
}

// IsExpired returns true if the adjustment has an end date in the past.
func (a *Adjustment) IsExpired(now time.Time) bool {
	return !a.EndDate.IsZero() && now.After(a.EndDate)
}

// IsMaxedOut returns true if the use limit has been reached.
func (a *Adjustment) IsMaxedOut() bool {
	return a.MaxUses > 0 && a.UseCount >= a.MaxUses
}

// Record returns the attribute view of the adjustment.
func (a *Adjustment) Record() Record {
	return Record{
		"id":                a.ID,
		"parent":            a.ParentID,
		"name":              a.Name,
		"code":              a.Code,
		"status":            a.Status,
		"type":              a.Type,
		"scope":             a.Scope,
		"amount_type":       a.AmountType,
		"amount":            a.Amount,
		"description":       a.Description,
		"max_uses":          a.MaxUses,
		"use_count":         a.UseCount,
		"once_per_customer": a.OncePerCustomer,
		"min_charge_amount": a.MinChargeAmount,
		"start_date":        timeOrNil(a.StartDate),
		"end_date":          timeOrNil(a.EndDate),
	}
}
