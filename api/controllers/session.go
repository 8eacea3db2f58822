package controllers

import (
	"net/http"

	"github.com/swiftcart/storefront-state/api/middleware"
	"github.com/swiftcart/storefront-state/api/responses"
	"github.com/swiftcart/storefront-state/api/validators"
	"github.com/swiftcart/storefront-state/internal/auth"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

// SessionLogin checks the submitted credentials and opens the session.
func SessionLogin(service auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := service.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// SessionLogout closes the session and clears the persisted identity.
func SessionLogout(service auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// SessionStatus reports the session visible to query results.
func SessionStatus(sessions middleware.SessionChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"logged_in": sessions.IsLoggedIn(),
			"username":  sessions.Username(),
		})
	}
}
