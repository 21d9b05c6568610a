package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"ratehub/internal/app/service"
	"ratehub/internal/common"
	"ratehub/internal/common/security"
	"ratehub/internal/domain/model"
)

type contextKey string

const callerCtxKey contextKey = "caller"

// Auth holds the middleware that establishes the caller context. Identity is
// resolved against live user records on every request, so a token for a
// deleted account stops working immediately.
type Auth struct {
	authService *service.AuthService
}

func NewAuth(authService *service.AuthService) *Auth {
	return &Auth{authService: authService}
}

// Authenticator requires a verified token and a live account behind it.
// Everything that goes wrong here is a 401; role checks come later.
func (m *Auth) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil || token == nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		userID, err := security.UserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		caller, err := m.authService.Resolve(r.Context(), userID)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), callerCtxKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SoftAuthenticator establishes the caller when a valid token is present and
// lets the request through anonymously otherwise. Used on public reads that
// personalize for signed-in users.
func (m *Auth) SoftAuthenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err == nil && token != nil {
			if userID, err := security.UserIDFromClaims(claims); err == nil {
				if caller, err := m.authService.Resolve(r.Context(), userID); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), callerCtxKey, caller))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Authorize gates a route on one operation from the permission table. Missing
// caller is 401; established caller without the permission is 403. The two
// never collapse.
func Authorize(op model.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}
			if !model.RoleCan(caller.Role, op) {
				common.RespondWithError(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func CallerFromContext(ctx context.Context) (*model.CallerContext, bool) {
	caller, ok := ctx.Value(callerCtxKey).(*model.CallerContext)
	return caller, ok
}
