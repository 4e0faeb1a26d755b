// Package services contains the pure cart transition function. Every cart
// mutation is a Command applied through Apply; commands carry the stock view
// they need so the function does no lookups and reads no clock. All
// transitions are total: invalid requests resolve to no-ops, never errors.
package services

import (
	"time"

	"github.com/ghuser/atelier/services/cart/domain/models"
)

// StockView is the per-size availability of one product at command time.
// An empty (or nil) view means the product is not size-tracked and has no
// stock ceiling; a size label absent from a non-empty view counts as zero.
type StockView map[string]int

// Bounded reports whether the view imposes a stock ceiling.
func (v StockView) Bounded() bool {
	return len(v) > 0
}

// Available returns the stock ceiling for size. Only meaningful when Bounded.
func (v StockView) Available(size string) int {
	return v[size]
}

// Command is one cart mutation. The concrete variants below form a closed
// set consumed by Apply.
type Command interface {
	isCartCommand()
}

// AddItem adds one unit of (ProductID, Size). An existing line increments,
// capped at stock; a new line requires stock for at least one unit.
type AddItem struct {
	ProductID string
	Size      string
	Stock     StockView
	At        time.Time
}

// SetQuantity sets the quantity of an existing line, clamped to
// [1, stock]. Quantity below 1 is equivalent to RemoveItem.
type SetQuantity struct {
	ProductID string
	Size      string
	Quantity  int
	Stock     StockView
	At        time.Time
}

// RemoveItem deletes a line and records it for undo.
type RemoveItem struct {
	ProductID string
	Size      string
	At        time.Time
}

// UndoRemove restores the pending removed line, clamped to current stock.
type UndoRemove struct {
	Stock StockView
}

// DismissRemoved discards the pending removed line without restoring it.
type DismissRemoved struct{}

// ToggleOpen flips the cart panel visibility.
type ToggleOpen struct{}

func (AddItem) isCartCommand()        {}
func (SetQuantity) isCartCommand()    {}
func (RemoveItem) isCartCommand()     {}
func (UndoRemove) isCartCommand()     {}
func (DismissRemoved) isCartCommand() {}
func (ToggleOpen) isCartCommand()     {}

// Apply is the cart transition function. It never mutates the input cart;
// the returned cart shares no line storage with it.
func Apply(cart models.Cart, cmd Command) models.Cart {
	switch c := cmd.(type) {
	case AddItem:
		return applyAdd(cart, c)
	case SetQuantity:
		return applySetQuantity(cart, c)
	case RemoveItem:
		return applyRemove(cart, c)
	case UndoRemove:
		return applyUndo(cart, c)
	case DismissRemoved:
		out := clone(cart)
		out.Removed = nil
		return out
	case ToggleOpen:
		out := clone(cart)
		out.IsOpen = !out.IsOpen
		return out
	default:
		return clone(cart)
	}
}

func applyAdd(cart models.Cart, c AddItem) models.Cart {
	out := clone(cart)

	if i := out.FindLine(c.ProductID, c.Size); i >= 0 {
		next := out.Lines[i].Quantity + 1
		if c.Stock.Bounded() {
			if cap := c.Stock.Available(c.Size); next > cap {
				next = cap
			}
		}
		if next > out.Lines[i].Quantity {
			out.Lines[i].Quantity = next
		}
		// The targeted line is in the cart either way; show it.
		out.IsOpen = true
		return out
	}

	if c.Stock.Bounded() && c.Stock.Available(c.Size) < 1 {
		// Nothing to sell in this size; silent no-op, panel stays as-is.
		return out
	}

	out.Lines = append(out.Lines, models.Line{ProductID: c.ProductID, Size: c.Size, Quantity: 1})
	out.IsOpen = true
	return out
}

func applySetQuantity(cart models.Cart, c SetQuantity) models.Cart {
	if c.Quantity < 1 {
		return applyRemove(cart, RemoveItem{ProductID: c.ProductID, Size: c.Size, At: c.At})
	}

	out := clone(cart)
	i := out.FindLine(c.ProductID, c.Size)
	if i < 0 {
		return out
	}

	q := c.Quantity
	if c.Stock.Bounded() {
		if cap := c.Stock.Available(c.Size); q > cap {
			q = cap
		}
	}
	if q < 1 {
		// Stock collapsed to zero underneath an existing line.
		return applyRemove(cart, RemoveItem{ProductID: c.ProductID, Size: c.Size, At: c.At})
	}
	out.Lines[i].Quantity = q
	return out
}

func applyRemove(cart models.Cart, c RemoveItem) models.Cart {
	out := clone(cart)
	i := out.FindLine(c.ProductID, c.Size)
	if i < 0 {
		// Unknown line: no removal, and the pending undo record survives.
		return out
	}

	removed := out.Lines[i]
	out.Lines = append(out.Lines[:i], out.Lines[i+1:]...)
	// A new removal overwrites any pending record; the prior one is gone.
	out.Removed = &models.RemovedLine{Line: removed, RemovedAt: c.At}

	if out.IsEmpty() {
		// Removing the last item closes the panel so the shopper is not
		// left staring at an empty drawer.
		out.IsOpen = false
	}
	return out
}

func applyUndo(cart models.Cart, c UndoRemove) models.Cart {
	out := clone(cart)
	if out.Removed == nil {
		return out
	}

	restored := out.Removed.Line
	out.Removed = nil

	q := restored.Quantity
	if i := out.FindLine(restored.ProductID, restored.Size); i >= 0 {
		// The shopper re-added the item during the undo window; merge.
		q += out.Lines[i].Quantity
		if c.Stock.Bounded() {
			if cap := c.Stock.Available(restored.Size); q > cap {
				q = cap
			}
		}
		if q > 0 {
			out.Lines[i].Quantity = q
		}
		return out
	}

	if c.Stock.Bounded() {
		if cap := c.Stock.Available(restored.Size); q > cap {
			q = cap
		}
	}
	if q < 1 {
		// Stock vanished since removal; nothing to restore.
		return out
	}

	restored.Quantity = q
	out.Lines = append(out.Lines, restored)
	return out
}

// clone copies cart so Apply can stay side-effect free. The Removed pointer
// is shared intentionally: RemovedLine values are never mutated in place.
func clone(cart models.Cart) models.Cart {
	lines := make([]models.Line, len(cart.Lines))
	copy(lines, cart.Lines)
	return models.Cart{Lines: lines, IsOpen: cart.IsOpen, Removed: cart.Removed}
}
