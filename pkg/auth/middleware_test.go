package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/pkg/logger"
)

// memStore is an in-memory sessions.Store for middleware tests.
// Sessions are keyed by a fixed cookie value; Save records the last session.
type memStore struct {
	saved    *sessions.Session
	existing map[any]any
	saveErr  error
}

func (m *memStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return m.New(r, name)
}

func (m *memStore) New(r *http.Request, name string) (*sessions.Session, error) {
	s := sessions.NewSession(m, name)
	s.Options = &sessions.Options{Path: "/", MaxAge: 86400}
	s.IsNew = true
	if m.existing != nil {
		s.Values = m.existing
		s.IsNew = false
	}
	return s, nil
}

func (m *memStore) Save(r *http.Request, w http.ResponseWriter, s *sessions.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = s
	return nil
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestWithShopper_MintsNewIdentity(t *testing.T) {
	store := &memStore{}
	var seen uuid.UUID

	h := WithShopper(store, testLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := ShopperIDFromCtx(r.Context())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", http.NoBody)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == uuid.Nil {
		t.Fatal("expected a minted shopper ID")
	}
	if store.saved == nil {
		t.Fatal("expected session to be saved")
	}
	if store.saved.Values[sessionShopperIDKey] != seen.String() {
		t.Fatalf("session value %v does not match context ID %v",
			store.saved.Values[sessionShopperIDKey], seen)
	}
}

func TestWithShopper_ReusesExistingIdentity(t *testing.T) {
	existing := uuid.New()
	store := &memStore{existing: map[any]any{sessionShopperIDKey: existing.String()}}
	var seen uuid.UUID

	h := WithShopper(store, testLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ShopperIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", http.NoBody)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != existing {
		t.Fatalf("expected existing shopper %v, got %v", existing, seen)
	}
	if store.saved != nil {
		t.Fatal("existing identity should not trigger a session save")
	}
}

func TestWithShopper_GarbageIdentityReplaced(t *testing.T) {
	store := &memStore{existing: map[any]any{sessionShopperIDKey: "not-a-uuid"}}
	var seen uuid.UUID

	h := WithShopper(store, testLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ShopperIDFromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", http.NoBody)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == uuid.Nil {
		t.Fatal("expected a replacement shopper ID for unparseable session value")
	}
	if store.saved == nil {
		t.Fatal("expected replacement identity to be saved")
	}
}

func TestWithShopper_SaveFailureReturns500(t *testing.T) {
	store := &memStore{saveErr: http.ErrHandlerTimeout}

	called := false
	h := WithShopper(store, testLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", http.NoBody)
	h.ServeHTTP(w, req)

	if called {
		t.Fatal("handler should not run when the session cannot be persisted")
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
