package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swiftcart/storefront-state/api/controllers"
	"github.com/swiftcart/storefront-state/api/middleware"
	"github.com/swiftcart/storefront-state/internal/auth"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/config"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	Store    *state.Store
	Engine   *queries.Engine
	Auth     auth.Service
	Sessions middleware.SessionChecker
	Catalog  controllers.ProductSource
	StorageP controllers.Pinger
	Registry *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.StorageP))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/session", func(r chi.Router) {
		r.Post("/login", controllers.SessionLogin(p.Auth, p.Logger))
		r.Post("/logout", controllers.SessionLogout(p.Auth, p.Logger))
		r.Get("/", controllers.SessionStatus(p.Sessions))
	})

	// The wishlist and product catalog stay reachable without a session.
	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Get("/", controllers.WishlistFetch(p.Store, p.Engine, p.Logger))
		r.Post("/", controllers.WishlistAdd(p.Store, p.Logger))
		r.Delete("/{productId}", controllers.WishlistRemove(p.Store, p.Logger))
	})

	r.Route("/api/v1/products/{productId}", func(r chi.Router) {
		r.Get("/", controllers.ProductDetail(p.Catalog, p.Logger))
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.ReviewsList(p.Engine, p.Logger))
			r.With(middleware.Auth(p.Config.JWT, p.Sessions, p.Logger)).Post("/", controllers.ReviewCreate(p.Store, p.Logger))
			r.With(middleware.Auth(p.Config.JWT, p.Sessions, p.Logger)).Put("/{reviewId}", controllers.ReviewUpdate(p.Store, p.Logger))
			r.With(middleware.Auth(p.Config.JWT, p.Sessions, p.Logger)).Delete("/{reviewId}", controllers.ReviewDelete(p.Store, p.Logger))
		})
		r.Route("/ratings", func(r chi.Router) {
			r.Get("/", controllers.RatingsList(p.Engine, p.Store, p.Logger))
			r.Post("/", controllers.RatingCreate(p.Store, p.Logger))
			r.Put("/{index}", controllers.RatingUpdate(p.Store, p.Logger))
			r.Delete("/{index}", controllers.RatingDelete(p.Store, p.Logger))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Sessions, p.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Engine, p.Logger))
			r.Post("/", controllers.CartAdd(p.Store, p.Logger))
			r.Put("/{productId}", controllers.CartUpdate(p.Store, p.Logger))
			r.Delete("/{productId}", controllers.CartRemove(p.Store, p.Logger))
			r.Delete("/", controllers.CartClear(p.Store, p.Logger))
		})

		r.Route("/comparison", func(r chi.Router) {
			r.Get("/", controllers.ComparisonFetch(p.Engine, p.Logger))
			r.Post("/", controllers.ComparisonAdd(p.Store, p.Logger))
			r.Put("/{productId}", controllers.ComparisonUpdate(p.Store, p.Logger))
			r.Delete("/{productId}", controllers.ComparisonRemove(p.Store, p.Logger))
			r.Delete("/", controllers.ComparisonClear(p.Store, p.Logger))
		})
	})

	return r
}
