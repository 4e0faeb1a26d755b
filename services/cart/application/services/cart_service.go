package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/atelier/pkg/events"
	"github.com/ghuser/atelier/pkg/logger"
	domainevents "github.com/ghuser/atelier/services/cart/domain/events"
	"github.com/ghuser/atelier/services/cart/domain/models"
	"github.com/ghuser/atelier/services/cart/domain/repositories"
	domainsvcs "github.com/ghuser/atelier/services/cart/domain/services"
	catalogmodels "github.com/ghuser/atelier/services/catalog/domain/models"
)

// ProductLookup is the slice of the catalog the cart needs: current stock
// and price for one product. Absence is not an error; the cart treats an
// unknown product as a no-op.
type ProductLookup interface {
	Lookup(ctx context.Context, productID string) (catalogmodels.Product, bool)
}

// CartView is the cart plus its derived total, shaped for the API layer.
type CartView struct {
	Lines      []models.Line       `json:"lines"`
	IsOpen     bool                `json:"is_open"`
	Removed    *models.RemovedLine `json:"removed,omitempty"`
	TotalPrice int64               `json:"total_price"`
}

// CartService drives a shopper's cart through the pure transition function.
// Only lines are persisted, on a fire-and-forget basis, so a storage outage
// never blocks shopping. Panel visibility and the pending undo record are
// ephemeral: the client holds them between requests and echoes them back on
// the operations that need them.
type CartService struct {
	repo    repositories.CartRepository
	catalog ProductLookup
	bus     *events.EventBus
	log     logger.Logger
}

// NewCartService returns a CartService. bus may be nil.
func NewCartService(repo repositories.CartRepository, catalog ProductLookup, bus *events.EventBus, log logger.Logger) *CartService {
	return &CartService{repo: repo, catalog: catalog, bus: bus, log: log}
}

// Get loads the shopper's cart with its derived total. Panel state and
// undo records are not persisted, so a freshly loaded cart is closed with
// no pending removal.
func (s *CartService) Get(ctx context.Context, shopperID string) CartView {
	cart := models.Cart{Lines: s.repo.Load(ctx, shopperID)}
	return s.view(ctx, cart)
}

// AddItem adds one unit of (productID, size) to the cart. Unknown products
// are a no-op: the cart never invents catalog entries.
func (s *CartService) AddItem(ctx context.Context, shopperID, productID, size string) CartView {
	product, ok := s.catalog.Lookup(ctx, productID)
	if !ok {
		s.log.WarnContext(ctx, "add to cart for unknown product ignored",
			"shopper_id", shopperID, "product_id", productID)
		return s.Get(ctx, shopperID)
	}

	cart := models.Cart{Lines: s.repo.Load(ctx, shopperID)}
	next := domainsvcs.Apply(cart, domainsvcs.AddItem{
		ProductID: productID,
		Size:      size,
		Stock:     stockView(product),
		At:        time.Now().UTC(),
	})

	if i := next.FindLine(productID, size); i >= 0 && linesChanged(cart.Lines, next.Lines) {
		s.publishLineAdded(ctx, shopperID, next.Lines[i])
	}
	s.persist(ctx, shopperID, cart, next)
	return s.view(ctx, next)
}

// SetQuantity sets the quantity of an existing line, clamped to stock.
// A quantity below one removes the line.
func (s *CartService) SetQuantity(ctx context.Context, shopperID, productID, size string, quantity int) CartView {
	cart := models.Cart{Lines: s.repo.Load(ctx, shopperID)}

	stock := domainsvcs.StockView{}
	if product, ok := s.catalog.Lookup(ctx, productID); ok {
		stock = stockView(product)
	}

	next := domainsvcs.Apply(cart, domainsvcs.SetQuantity{
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
		Stock:     stock,
		At:        time.Now().UTC(),
	})

	if next.Removed != nil && cart.FindLine(productID, size) >= 0 && next.FindLine(productID, size) < 0 {
		s.publishLineRemoved(ctx, shopperID, next.Removed.Line)
	}
	s.persist(ctx, shopperID, cart, next)
	return s.view(ctx, next)
}

// RemoveItem deletes a line. The removed line is reported back so the
// presentation layer can offer undo within its window.
func (s *CartService) RemoveItem(ctx context.Context, shopperID, productID, size string) CartView {
	cart := models.Cart{Lines: s.repo.Load(ctx, shopperID)}
	next := domainsvcs.Apply(cart, domainsvcs.RemoveItem{
		ProductID: productID,
		Size:      size,
		At:        time.Now().UTC(),
	})

	if next.Removed != nil && len(next.Lines) < len(cart.Lines) {
		s.publishLineRemoved(ctx, shopperID, next.Removed.Line)
	}
	s.persist(ctx, shopperID, cart, next)
	return s.view(ctx, next)
}

// UndoRemove restores the given removed line, clamped to current stock.
// The removed record travels with the client between requests because undo
// state is session-scoped, not persisted.
func (s *CartService) UndoRemove(ctx context.Context, shopperID string, removed models.RemovedLine) CartView {
	cart := models.Cart{
		Lines:   s.repo.Load(ctx, shopperID),
		Removed: &removed,
	}

	stock := domainsvcs.StockView{}
	if product, ok := s.catalog.Lookup(ctx, removed.Line.ProductID); ok {
		stock = stockView(product)
	}

	next := domainsvcs.Apply(cart, domainsvcs.UndoRemove{Stock: stock})
	s.persist(ctx, shopperID, cart, next)
	return s.view(ctx, next)
}

// DismissRemoved discards the given removed record without restoring it.
// Undo is final after this.
func (s *CartService) DismissRemoved(ctx context.Context, shopperID string, removed models.RemovedLine) CartView {
	cart := models.Cart{
		Lines:   s.repo.Load(ctx, shopperID),
		Removed: &removed,
	}
	next := domainsvcs.Apply(cart, domainsvcs.DismissRemoved{})
	return s.view(ctx, next)
}

// ToggleOpen flips the panel from the client-reported state. Visibility is
// never persisted; the response tells the client what to render.
func (s *CartService) ToggleOpen(ctx context.Context, shopperID string, isOpen bool) CartView {
	cart := models.Cart{
		Lines:  s.repo.Load(ctx, shopperID),
		IsOpen: isOpen,
	}
	next := domainsvcs.Apply(cart, domainsvcs.ToggleOpen{})
	return s.view(ctx, next)
}

// persist writes the next cart's lines when they changed. Failures are
// logged and swallowed: the in-flight response already carries the new
// state, and the next successful write repairs the record.
func (s *CartService) persist(ctx context.Context, shopperID string, prev, next models.Cart) {
	if !linesChanged(prev.Lines, next.Lines) {
		return
	}
	if err := s.repo.Save(ctx, shopperID, next.Lines); err != nil {
		s.log.WarnContext(ctx, "cart save failed", "shopper_id", shopperID, "error", err)
	}
}

func (s *CartService) view(ctx context.Context, cart models.Cart) CartView {
	total := domainsvcs.TotalPrice(cart, func(productID string) (int64, bool) {
		product, ok := s.catalog.Lookup(ctx, productID)
		if !ok {
			return 0, false
		}
		return product.Price, true
	})
	lines := cart.Lines
	if lines == nil {
		lines = []models.Line{}
	}
	return CartView{Lines: lines, IsOpen: cart.IsOpen, Removed: cart.Removed, TotalPrice: total}
}

func (s *CartService) publishLineAdded(ctx context.Context, shopperID string, line models.Line) {
	if s.bus == nil {
		return
	}
	evt := domainevents.LineAddedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ShopperID:  shopperID,
		ProductID:  line.ProductID,
		Size:       line.Size,
		Quantity:   line.Quantity,
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, domainevents.TopicLineAdded, evt)
}

func (s *CartService) publishLineRemoved(ctx context.Context, shopperID string, line models.Line) {
	if s.bus == nil {
		return
	}
	evt := domainevents.LineRemovedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ShopperID:  shopperID,
		ProductID:  line.ProductID,
		Size:       line.Size,
		Quantity:   line.Quantity,
		OccurredAt: time.Now().UTC(),
	}
	s.publish(ctx, domainevents.TopicLineRemoved, evt)
}

func (s *CartService) publish(ctx context.Context, topic string, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, fmt.Sprintf("encode %s event", topic), "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.bus.Publish(ctx, topic, msg); err != nil {
		s.log.WarnContext(ctx, "publish cart event failed", "topic", topic, "error", err)
	}
}

// stockView projects a catalog product's per-size stock into the shape the
// transition function consumes. Untracked products project to an empty view.
func stockView(p catalogmodels.Product) domainsvcs.StockView {
	if len(p.SizeStock) == 0 {
		return domainsvcs.StockView{}
	}
	view := make(domainsvcs.StockView, len(p.SizeStock))
	for size, n := range p.SizeStock {
		view[size] = n
	}
	return view
}

func linesChanged(prev, next []models.Line) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if prev[i] != next[i] {
			return true
		}
	}
	return false
}
