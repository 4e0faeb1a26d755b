package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/atelier/pkg/httpx"
	"github.com/ghuser/atelier/pkg/logger"
)

const sessionName = "atelier_session"
const sessionShopperIDKey = "shopper_id"

// WithShopper is a chi middleware that resolves the shopper identity from the
// session cookie, minting a new guest identity on first contact. Carts and
// wishlists are keyed by this identity, so browsing works without sign-in.
//
// After this middleware, handlers can safely call auth.ShopperIDFromCtx(r.Context()).
func WithShopper(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				// Get only errors on a tampered cookie; a fresh session replaces it.
				log.WarnContext(r.Context(), "invalid session cookie, issuing new session", "error", err)
				session, _ = store.New(r, sessionName)
			}

			shopperID := shopperIDFromSession(session)
			if shopperID == uuid.Nil {
				shopperID = uuid.New()
				session.Values[sessionShopperIDKey] = shopperID.String()
				if err := store.Save(r, w, session); err != nil {
					log.ErrorContext(r.Context(), "failed to persist shopper session", "error", err)
					httpx.JSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
					return
				}
			}

			ctx := WithShopperID(r.Context(), shopperID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func shopperIDFromSession(session *sessions.Session) uuid.UUID {
	raw, ok := session.Values[sessionShopperIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
