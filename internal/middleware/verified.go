package middleware

import (
	"net/http"

	apperrors "github.com/ziptechlabs/cohort-server-go/internal/errors"
	"github.com/ziptechlabs/cohort-server-go/internal/httputil"
)

// RequireVerified gates routes on a confirmed email address. It must run
// after the auth middleware, which puts the user on the context.
func RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			httputil.WriteError(w, apperrors.Unauthorized("Not authenticated"))
			return
		}
		if !user.IsVerified {
			httputil.WriteError(w, apperrors.Forbidden("Email not verified"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
