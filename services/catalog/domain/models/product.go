package models

// Product is the immutable catalog aggregate. Instances are produced by the
// feed transform and are read-only everywhere else; the cart references them
// by ID and never mutates them.
type Product struct {
	ID               string
	Name             string
	Description      string
	ImageURL         string
	AdditionalImages []string

	// Price is in minor currency units.
	Price int64

	Category   string
	Collection string // empty when the product belongs to no collection
	IsNew      bool

	// SizeStock maps a size label ("17", "M") to available unit count.
	// An empty map means the product is not size-tracked and has no
	// stock ceiling.
	SizeStock map[string]int
}

// SizeTracked reports whether stock is subdivided by size label.
func (p Product) SizeTracked() bool {
	return len(p.SizeStock) > 0
}

// StockFor returns the available units for the given size and whether that
// number is bounded. Unbounded (not size-tracked) products report ok=false.
// A size label absent from the stock map counts as zero stock.
func (p Product) StockFor(size string) (avail int, bounded bool) {
	if !p.SizeTracked() {
		return 0, false
	}
	return p.SizeStock[size], true
}

// Purchasable reports whether the product can be added to a cart at all:
// either it is not size-tracked, or at least one size has stock.
func (p Product) Purchasable() bool {
	if !p.SizeTracked() {
		return true
	}
	for _, n := range p.SizeStock {
		if n > 0 {
			return true
		}
	}
	return false
}
