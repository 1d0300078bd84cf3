package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

// CheckoutSessionName is the cookie holding the in-progress checkout
const CheckoutSessionName = "checkout"

// SessionExpiresAtKey stores the unix expiry of the checkout session
const SessionExpiresAtKey = "expires_at"

// NewSessionStore creates the cookie store for checkout sessions
func NewSessionStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionMiddleware provides session management functionality
type SessionMiddleware struct {
	store   sessions.Store
	timeout time.Duration
	now     func() time.Time
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(store sessions.Store, timeout time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		store:   store,
		timeout: timeout,
		now:     time.Now,
	}
}

// ExpireStaleSessions clears checkout sessions past their expiry
// and slides the expiry of live ones forward.
func (m *SessionMiddleware) ExpireStaleSessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, CheckoutSessionName)
		if err != nil {
			// Undecodable cookie, e.g. after a secret rotation
			log.Printf("Discarding invalid checkout session: %v", err)
			maxAge := session.Options.MaxAge
			session.Options.MaxAge = -1
			if err := session.Save(r, w); err != nil {
				log.Printf("Failed to clear checkout session: %v", err)
			}
			// The registry hands this session to the handler; later saves must persist
			session.Options.MaxAge = maxAge
			next.ServeHTTP(w, r)
			return
		}

		if session.IsNew {
			next.ServeHTTP(w, r)
			return
		}

		now := m.now()
		if expiry, ok := session.Values[SessionExpiresAtKey].(int64); ok && now.Unix() > expiry {
			for key := range session.Values {
				delete(session.Values, key)
			}
		}
		session.Values[SessionExpiresAtKey] = now.Add(m.timeout).Unix()

		if err := session.Save(r, w); err != nil {
			log.Printf("Failed to refresh checkout session: %v", err)
		}

		next.ServeHTTP(w, r)
	})
}
