package routes

import (
	"net/http"

	"github.com/kindredhq/kindred/internal/app"
	"github.com/kindredhq/kindred/internal/handler"
	"github.com/kindredhq/kindred/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AccountService)
	account := handler.NewAccountHandler(app.AccountService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", health.Health)

	// Auth - rate limited
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))

	// Account - requires a verified token
	mux.HandleFunc("DELETE /account", middleware.RequireAuth(account.DeleteAccount))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.Accounts),
	)
}
