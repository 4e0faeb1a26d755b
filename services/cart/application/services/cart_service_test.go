package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/pkg/logger"
	"github.com/ghuser/atelier/services/cart/domain/models"
	catalogmodels "github.com/ghuser/atelier/services/catalog/domain/models"
)

// fakeRepo is an in-memory CartRepository.
type fakeRepo struct {
	records map[string][]models.Line
	saveErr error
	saves   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string][]models.Line{}}
}

func (f *fakeRepo) Load(_ context.Context, shopperID string) []models.Line {
	lines, ok := f.records[shopperID]
	if !ok {
		return []models.Line{}
	}
	out := make([]models.Line, len(lines))
	copy(out, lines)
	return out
}

func (f *fakeRepo) Save(_ context.Context, shopperID string, lines []models.Line) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records[shopperID] = lines
	return nil
}

// fakeLookup serves products from a fixed map.
type fakeLookup struct {
	products map[string]catalogmodels.Product
}

func (f *fakeLookup) Lookup(_ context.Context, productID string) (catalogmodels.Product, bool) {
	p, ok := f.products[productID]
	return p, ok
}

func testLogger() *config.Config { return &config.Config{LogLevel: "error"} }

func newTestService(repo *fakeRepo, products map[string]catalogmodels.Product) *CartService {
	return NewCartService(repo, &fakeLookup{products: products}, nil, logger.New(testLogger()))
}

var testProducts = map[string]catalogmodels.Product{
	"ring-a": {
		ID:        "ring-a",
		Name:      "Aurora Ring",
		Price:     12500,
		SizeStock: map[string]int{"7": 2, "8": 0},
	},
	"chain-b": {
		ID:        "chain-b",
		Name:      "Luna Chain",
		Price:     4000,
		SizeStock: map[string]int{},
	},
}

const shopper = "11111111-1111-1111-1111-111111111111"

func TestCartService_AddItem(t *testing.T) {
	t.Run("adds and persists", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)

		view := svc.AddItem(context.Background(), shopper, "ring-a", "7")

		want := []models.Line{{ProductID: "ring-a", Size: "7", Quantity: 1}}
		if !reflect.DeepEqual(view.Lines, want) {
			t.Fatalf("expected %v, got %v", want, view.Lines)
		}
		if !view.IsOpen {
			t.Fatal("expected panel open after add")
		}
		if !reflect.DeepEqual(repo.records[shopper], want) {
			t.Fatalf("expected persisted %v, got %v", want, repo.records[shopper])
		}
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)

		view := svc.AddItem(context.Background(), shopper, "ghost", "")

		if len(view.Lines) != 0 {
			t.Fatalf("expected empty cart, got %v", view.Lines)
		}
		if repo.saves != 0 {
			t.Fatalf("no-op must not write, got %d saves", repo.saves)
		}
	})

	t.Run("clamps at stock and skips the redundant write", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)
		ctx := context.Background()

		svc.AddItem(ctx, shopper, "ring-a", "7")
		svc.AddItem(ctx, shopper, "ring-a", "7")
		savesBefore := repo.saves
		view := svc.AddItem(ctx, shopper, "ring-a", "7") // clamped

		if view.Lines[0].Quantity != 2 {
			t.Fatalf("expected clamp at 2, got %d", view.Lines[0].Quantity)
		}
		if repo.saves != savesBefore {
			t.Fatal("clamped add must not rewrite an unchanged record")
		}
	})

	t.Run("save failure does not surface", func(t *testing.T) {
		repo := newFakeRepo()
		repo.saveErr = errors.New("redis down")
		svc := newTestService(repo, testProducts)

		view := svc.AddItem(context.Background(), shopper, "chain-b", "")

		if len(view.Lines) != 1 {
			t.Fatalf("expected the response to carry the new state, got %v", view.Lines)
		}
	})

	t.Run("computes the derived total", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)
		ctx := context.Background()

		svc.AddItem(ctx, shopper, "ring-a", "7")
		svc.AddItem(ctx, shopper, "ring-a", "7")
		view := svc.AddItem(ctx, shopper, "chain-b", "")

		if view.TotalPrice != 2*12500+4000 {
			t.Fatalf("expected total 29000, got %d", view.TotalPrice)
		}
	})
}

func TestCartService_SetQuantity(t *testing.T) {
	t.Run("clamps to stock", func(t *testing.T) {
		repo := newFakeRepo()
		repo.records[shopper] = []models.Line{{ProductID: "ring-a", Size: "7", Quantity: 1}}
		svc := newTestService(repo, testProducts)

		view := svc.SetQuantity(context.Background(), shopper, "ring-a", "7", 99)

		if view.Lines[0].Quantity != 2 {
			t.Fatalf("expected clamp to 2, got %d", view.Lines[0].Quantity)
		}
	})

	t.Run("zero removes and reports the record", func(t *testing.T) {
		repo := newFakeRepo()
		repo.records[shopper] = []models.Line{{ProductID: "ring-a", Size: "7", Quantity: 2}}
		svc := newTestService(repo, testProducts)

		view := svc.SetQuantity(context.Background(), shopper, "ring-a", "7", 0)

		if len(view.Lines) != 0 {
			t.Fatalf("expected empty cart, got %v", view.Lines)
		}
		if view.Removed == nil || view.Removed.Line.Quantity != 2 {
			t.Fatalf("expected removed record, got %+v", view.Removed)
		}
		if len(repo.records[shopper]) != 0 {
			t.Fatalf("expected persisted empty lines, got %v", repo.records[shopper])
		}
	})

	t.Run("stale line for vanished product is removable", func(t *testing.T) {
		repo := newFakeRepo()
		repo.records[shopper] = []models.Line{{ProductID: "discontinued", Quantity: 1}}
		svc := newTestService(repo, testProducts)

		view := svc.SetQuantity(context.Background(), shopper, "discontinued", "", 0)

		if len(view.Lines) != 0 {
			t.Fatalf("expected stale line removed, got %v", view.Lines)
		}
	})
}

func TestCartService_RemoveAndUndo(t *testing.T) {
	removedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("remove then undo round-trips", func(t *testing.T) {
		repo := newFakeRepo()
		repo.records[shopper] = []models.Line{{ProductID: "chain-b", Quantity: 3}}
		svc := newTestService(repo, testProducts)
		ctx := context.Background()

		view := svc.RemoveItem(ctx, shopper, "chain-b", "")
		if len(view.Lines) != 0 || view.Removed == nil {
			t.Fatalf("expected empty cart with record, got %+v", view)
		}

		restored := svc.UndoRemove(ctx, shopper, *view.Removed)
		want := []models.Line{{ProductID: "chain-b", Quantity: 3}}
		if !reflect.DeepEqual(restored.Lines, want) {
			t.Fatalf("expected %v, got %v", want, restored.Lines)
		}
		if !reflect.DeepEqual(repo.records[shopper], want) {
			t.Fatalf("expected persisted restore, got %v", repo.records[shopper])
		}
	})

	t.Run("undo clamps to current stock", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)

		removed := models.RemovedLine{
			Line:      models.Line{ProductID: "ring-a", Size: "7", Quantity: 5},
			RemovedAt: removedAt,
		}
		view := svc.UndoRemove(context.Background(), shopper, removed)

		if view.Lines[0].Quantity != 2 {
			t.Fatalf("expected clamp to 2, got %d", view.Lines[0].Quantity)
		}
	})

	t.Run("dismiss clears without restoring", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)

		removed := models.RemovedLine{
			Line:      models.Line{ProductID: "ring-a", Size: "7", Quantity: 1},
			RemovedAt: removedAt,
		}
		view := svc.DismissRemoved(context.Background(), shopper, removed)

		if view.Removed != nil {
			t.Fatal("expected record cleared")
		}
		if len(view.Lines) != 0 {
			t.Fatalf("dismiss must not restore, got %v", view.Lines)
		}
	})

	t.Run("remove unknown line is a no-op", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)

		view := svc.RemoveItem(context.Background(), shopper, "ghost", "")
		if view.Removed != nil {
			t.Fatalf("expected no record, got %+v", view.Removed)
		}
		if repo.saves != 0 {
			t.Fatal("no-op must not write")
		}
	})
}

func TestCartService_GetAndToggle(t *testing.T) {
	t.Run("get returns persisted lines closed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.records[shopper] = []models.Line{{ProductID: "ring-a", Size: "7", Quantity: 2}}
		svc := newTestService(repo, testProducts)

		view := svc.Get(context.Background(), shopper)

		if view.IsOpen {
			t.Fatal("freshly loaded cart must be closed")
		}
		if view.TotalPrice != 25000 {
			t.Fatalf("expected total 25000, got %d", view.TotalPrice)
		}
	})

	t.Run("stale product contributes zero to the total", func(t *testing.T) {
		repo := newFakeRepo()
		repo.records[shopper] = []models.Line{
			{ProductID: "ring-a", Size: "7", Quantity: 1},
			{ProductID: "discontinued", Quantity: 4},
		}
		svc := newTestService(repo, testProducts)

		view := svc.Get(context.Background(), shopper)
		if view.TotalPrice != 12500 {
			t.Fatalf("expected total 12500, got %d", view.TotalPrice)
		}
	})

	t.Run("toggle flips the reported state", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, testProducts)
		ctx := context.Background()

		if view := svc.ToggleOpen(ctx, shopper, false); !view.IsOpen {
			t.Fatal("expected open")
		}
		if view := svc.ToggleOpen(ctx, shopper, true); view.IsOpen {
			t.Fatal("expected closed")
		}
	})
}
