package router

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/supermarket/internal/http/ban"
	"github.com/rogerio-castellano/supermarket/internal/http/handlers"
	mw "github.com/rogerio-castellano/supermarket/internal/http/middleware"
	rl "github.com/rogerio-castellano/supermarket/internal/http/rate_limiter"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rs/zerolog"
)

// staticPrefixes are served straight from StaticDir without sessions and
// without case folding, since uploaded file names keep their case.
var staticPrefixes = []string{"/images/", "/css/", "/js/"}

type Config struct {
	Sessions   *session.Manager
	Limiter    *rl.Limiter
	LoginGuard *ban.Guard
	Logger     zerolog.Logger
	StaticDir  string

	// TrustProxyHeaders rewrites RemoteAddr from X-Forwarded-For / X-Real-IP.
	// The limiter and login guard key on RemoteAddr, so leave it off unless a
	// proxy in front strips client-supplied values.
	TrustProxyHeaders bool
}

func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(mw.RequestLogging(cfg.Logger))
	r.Use(mw.ErrorHandling(cfg.Logger))
	r.Use(mw.SecurityHeaders)
	r.Use(mw.LowercasePaths(staticPrefixes...))
	r.Use(mw.MethodOverride)

	r.Get("/health", handlers.HealthHandler)

	static := http.FileServer(http.Dir(filepath.Clean(cfg.StaticDir)))
	for _, prefix := range staticPrefixes {
		r.Handle(prefix+"*", static)
	}

	limited := []func(http.Handler) http.Handler{}
	if cfg.Limiter != nil {
		limited = append(limited, cfg.Limiter.Middleware)
	}
	if cfg.LoginGuard != nil {
		limited = append(limited, cfg.LoginGuard.Middleware)
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.Middleware)

		r.Get("/", handlers.HomeHandler)
		r.Get("/register", handlers.RegisterPageHandler)
		r.With(limited...).Post("/register", handlers.RegisterHandler)
		r.Get("/login", handlers.LoginPageHandler)
		r.With(limited...).Post("/login", handlers.LoginHandler)
		r.Get("/logout", handlers.LogoutHandler)

		r.Get("/shopping", handlers.ShoppingHandler)
		r.Get("/product/{id}", handlers.GetProductByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuthenticated)

			r.Post("/add-to-cart/{id}", handlers.AddToCartHandler)
			r.Get("/cart", handlers.CartHandler)
			r.Post("/cart/delete/{id}", handlers.RemoveFromCartHandler)
			r.Delete("/cart/delete/{id}", handlers.RemoveFromCartHandler)
			r.Get("/checkout", handlers.CheckoutHandler)
			r.Post("/checkout/confirm", handlers.ConfirmCheckoutHandler)
			r.Get("/checkout/success", handlers.CheckoutSuccessHandler)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)

				r.Get("/inventory", handlers.InventoryHandler)
				r.Get("/metrics/inventory", handlers.GetInventoryMetricsHandler)

				r.Get("/addproduct", handlers.AddProductPageHandler)
				r.Post("/addproduct", handlers.CreateProductHandler)

				r.Get("/updateproduct/{id}", handlers.UpdateProductPageHandler)
				r.Post("/updateproduct/{id}", handlers.UpdateProductHandler)
				r.Put("/updateproduct/{id}", handlers.UpdateProductHandler)

				r.Get("/deleteproduct/{id}", handlers.DeleteProductHandler)
				r.Post("/deleteproduct/{id}", handlers.DeleteProductHandler)
				r.Delete("/deleteproduct/{id}", handlers.DeleteProductHandler)
			})
		})
	})

	return r
}
