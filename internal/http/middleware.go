package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const sessionContextKey contextKey = "session_id"

// SessionCookieName carries the shopper's session across visits; the cart
// provider maps it to the active order.
const SessionCookieName = "sc_session"

// SessionMiddleware reads the session cookie, minting one for first-time
// visitors.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey).(string); ok {
		return id
	}
	return ""
}
