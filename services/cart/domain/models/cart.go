package models

import "time"

// Line is one cart entry: a product, an optional size, and a quantity.
// At most one Line exists per (ProductID, Size) pair.
type Line struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size,omitempty"` // empty for products without size tracking
	Quantity  int    `json:"quantity"`
}

// RemovedLine is the snapshot of the most recently removed line, kept long
// enough for the presentation layer's undo window. The full line is captured
// so undo restores it exactly.
type RemovedLine struct {
	Line      Line
	RemovedAt time.Time
}

// Cart is the aggregate root for one shopper's cart. Lines preserve
// insertion order. IsOpen drives the cart panel; Removed is the pending
// undo record, nil when none is pending.
type Cart struct {
	Lines   []Line
	IsOpen  bool
	Removed *RemovedLine
}

// FindLine returns the index of the line matching (productID, size),
// or -1 when absent.
func (c Cart) FindLine(productID, size string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID && l.Size == size {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity sums the quantities across all lines.
func (c Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}
