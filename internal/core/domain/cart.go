package domain

// CartItem is one line of the current shopping session's cart.
type CartItem struct {
	DownloadID int64   `yaml:"download_id"`
	PriceID    *int64  `yaml:"price_id,omitempty"`
	Quantity   int     `yaml:"quantity"`
	ItemPrice  float64 `yaml:"item_price"`
}

// Matches returns true if the item is for the download and, when priceID is
// non-nil, for that price option.
func (c CartItem) Matches(downloadID int64, priceID *int64) bool {
	if c.DownloadID != downloadID {
		return false
	}
	if priceID == nil {
		return true
	}
	return c.PriceID != nil && *c.PriceID == *priceID
}

// Subtotal returns price times quantity. A zero quantity counts as one.
func (c CartItem) Subtotal() float64 {
	q := c.Quantity
	if q <= 0 {
		q = 1
	}
	return c.ItemPrice * float64(q)
}
