package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/pkg/logger"
)

// fakeRepo is an in-memory WishlistRepository.
type fakeRepo struct {
	sets     map[string]map[string]bool
	writeErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sets: map[string]map[string]bool{}}
}

func (f *fakeRepo) Add(_ context.Context, shopperID, productID string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.sets[shopperID] == nil {
		f.sets[shopperID] = map[string]bool{}
	}
	f.sets[shopperID][productID] = true
	return nil
}

func (f *fakeRepo) Remove(_ context.Context, shopperID, productID string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	delete(f.sets[shopperID], productID)
	return nil
}

func (f *fakeRepo) Contains(_ context.Context, shopperID, productID string) bool {
	return f.sets[shopperID][productID]
}

func (f *fakeRepo) List(_ context.Context, shopperID string) []string {
	ids := make([]string, 0, len(f.sets[shopperID]))
	for id := range f.sets[shopperID] {
		ids = append(ids, id)
	}
	return ids
}

func newTestService(repo *fakeRepo) *WishlistService {
	return NewWishlistService(repo, logger.New(&config.Config{LogLevel: "error"}))
}

const shopper = "22222222-2222-2222-2222-222222222222"

func TestWishlistService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("first toggle adds", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		if !svc.Toggle(ctx, shopper, "ring-a") {
			t.Fatal("expected wishlisted after first toggle")
		}
		if !svc.Contains(ctx, shopper, "ring-a") {
			t.Fatal("expected membership")
		}
	})

	t.Run("second toggle removes", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		svc.Toggle(ctx, shopper, "ring-a")
		if svc.Toggle(ctx, shopper, "ring-a") {
			t.Fatal("expected removed after second toggle")
		}
		if svc.Contains(ctx, shopper, "ring-a") {
			t.Fatal("expected membership gone")
		}
	})

	t.Run("toggles are independent per product", func(t *testing.T) {
		svc := newTestService(newFakeRepo())
		svc.Toggle(ctx, shopper, "ring-a")
		svc.Toggle(ctx, shopper, "chain-b")
		svc.Toggle(ctx, shopper, "ring-a")

		if svc.Contains(ctx, shopper, "ring-a") {
			t.Fatal("ring-a should be toggled off")
		}
		if !svc.Contains(ctx, shopper, "chain-b") {
			t.Fatal("chain-b should remain wishlisted")
		}
	})

	t.Run("write failure leaves membership unchanged", func(t *testing.T) {
		repo := newFakeRepo()
		repo.writeErr = errors.New("redis down")
		svc := newTestService(repo)

		if svc.Toggle(ctx, shopper, "ring-a") {
			t.Fatal("failed add must report not-wishlisted")
		}
	})
}

func TestWishlistService_List(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepo())

	if got := svc.List(ctx, shopper); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	svc.Toggle(ctx, shopper, "c")
	svc.Toggle(ctx, shopper, "a")
	svc.Toggle(ctx, shopper, "b")

	want := []string{"a", "b", "c"}
	if got := svc.List(ctx, shopper); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sorted %v, got %v", want, got)
	}
}
