package routes

import (
	"net/http"

	"github.com/beanmap/beanmap/internal/app"
	"github.com/beanmap/beanmap/internal/handler"
	"github.com/beanmap/beanmap/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.ContentService)
	auth := handler.NewAuthHandler(app.AuthService)
	cafe := handler.NewCafeHandler(app.CafeService)

	mux := http.NewServeMux()

	// Home and content
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /about", home.AboutPage)

	// Catalog
	mux.HandleFunc("GET /places", cafe.PlacesPage)
	mux.HandleFunc("GET /cafe/{id}", cafe.CafePage)

	// Café submission. Deliberately open to anonymous visitors, as the site
	// has always been; wrap in middleware.RequireAuth to change that.
	mux.HandleFunc("GET /add_cafe", cafe.AddCafePage)
	mux.HandleFunc("POST /add_cafe", cafe.AddCafe)

	// Auth (login/registration submissions are rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /join", middleware.RequireGuest(auth.JoinPage))
	mux.HandleFunc("POST /join", rateLimiter(middleware.RequireGuest(auth.Join)))
	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("GET /logout", auth.Logout)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config first, CSRF reads it for the Secure flag
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.Session(app.AuthService, app.Users),
		middleware.WithURLPath,
	)

	return h
}
