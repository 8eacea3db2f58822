package middleware

import (
	"net/http"
	"strings"

	"github.com/swiftcart/storefront-state/api/responses"
	pkgauth "github.com/swiftcart/storefront-state/pkg/auth"
	"github.com/swiftcart/storefront-state/pkg/config"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

// SessionChecker reports whether a session is currently open and for whom.
type SessionChecker interface {
	IsLoggedIn() bool
	Username() string
}

// Auth validates a bearer token and seeds the request context with the
// session username. The token must also match the currently open session.
func Auth(cfg config.JWTConfig, sessions SessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.Username == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing username"))
				return
			}

			if sessions != nil {
				if !sessions.IsLoggedIn() || sessions.Username() != claims.Username {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := WithUsername(r.Context(), claims.Username)
			if logg != nil {
				ctx = logg.WithUsername(ctx, claims.Username)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
