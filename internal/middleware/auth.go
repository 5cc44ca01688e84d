package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kindredhq/kindred/internal/ctxkeys"
	"github.com/kindredhq/kindred/internal/repository"
	"github.com/kindredhq/kindred/internal/service"
)

// AuthMiddleware resolves a Bearer token into the caller's account and adds
// it to the request context. Requests without a valid token pass through
// unauthenticated; RequireAuth draws the line.
func AuthMiddleware(authService *service.AuthService, accounts repository.AccountRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			account, err := accounts.ByID(r.Context(), sub)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// Never carry the hash around in context
			account.PasswordHash = ""

			ctx := ctxkeys.WithAccount(r.Context(), account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose context holds no authenticated account.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := ctxkeys.Account(r.Context())
		if account == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	}
}
