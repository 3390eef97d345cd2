package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/securewatch/backend/pkg/config"
	"github.com/securewatch/backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// maxSessionIDLen guards against abusive client-supplied identifiers.
const maxSessionIDLen = 128

// BrowserSession resolves the opaque per-browser session identifier that
// scopes carts and chat logs. The id comes from the cookie or the
// X-Session-Id header; when neither carries one, a fresh id is minted and set
// on both. The service never parses the value.
func BrowserSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				sessionID = strings.TrimSpace(cookie.Value)
			}
			if sessionID == "" {
				sessionID = strings.TrimSpace(r.Header.Get(sessionIDHeader))
			}
			if len(sessionID) > maxSessionIDLen {
				sessionID = ""
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(cfg.CookieTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
