package domain

import "strconv"

// Product types.
const (
	ProductTypeDefault = "default"
	ProductTypeBundle  = "bundle"
	ProductTypeService = "service"
)

// PriceOption is one variable price of a download.
type PriceOption struct {
	Index  int64   `yaml:"index"`
	Name   string  `yaml:"name"`
	Amount float64 `yaml:"amount"`
}

// Download is a host product record.
type Download struct {
	ID              int64         `yaml:"id"`
	Title           string        `yaml:"title"`
	Status          string        `yaml:"status"`
	AuthorID        int64         `yaml:"author"`
	ProductType     string        `yaml:"product_type"`
	Price           float64       `yaml:"price"`
	VariablePrices  []PriceOption `yaml:"variable_prices,omitempty"`
	BundledProducts []int64       `yaml:"bundled_products,omitempty"`
}

// IsBundle returns true if the download is a bundle of other downloads.
func (d *Download) IsBundle() bool {
	return d.ProductType == ProductTypeBundle
}

// HasVariablePrices returns true if the download sells price options.
func (d *Download) HasVariablePrices() bool {
	return len(d.VariablePrices) > 0
}

// PriceOption returns the variable price with the given index.
func (d *Download) PriceOption(index int64) (PriceOption, bool) {
	for _, p := range d.VariablePrices {
		if p.Index == index {
			return p, true
		}
	}
	return PriceOption{}, false
}

// Record returns the attribute view of the download.
func (d *Download) Record() Record {
	productType := d.ProductType
	if productType == "" {
		productType = ProductTypeDefault
	}
	return Record{
		"id":           d.ID,
		"title":        d.Title,
		"status":       d.Status,
		"author":       d.AuthorID,
		"product_type": productType,
		"price":        d.Price,
	}
}

// ProductMetaKey returns the metadata key for a download field, suffixed with
// the price ID when the value belongs to a single variable price.
func ProductMetaKey(key string, priceID *int64) string {
	if priceID == nil {
		return key
	}
	return key + "_" + strconv.FormatInt(*priceID, 10)
}
