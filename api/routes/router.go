package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loopstackhq/loopstack-backend/api/controllers"
	cartcontrollers "github.com/loopstackhq/loopstack-backend/api/controllers/cart"
	shopcontrollers "github.com/loopstackhq/loopstack-backend/api/controllers/shops"
	"github.com/loopstackhq/loopstack-backend/api/middleware"
	cartsvc "github.com/loopstackhq/loopstack-backend/internal/cart"
	"github.com/loopstackhq/loopstack-backend/internal/products"
	"github.com/loopstackhq/loopstack-backend/internal/stores"
	"github.com/loopstackhq/loopstack-backend/pkg/config"
	"github.com/loopstackhq/loopstack-backend/pkg/logger"
	"github.com/loopstackhq/loopstack-backend/pkg/metrics"
)

// Deps carries everything the HTTP surface needs. cmd/api builds one after
// bootstrapping the clients and services.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Readiness      []controllers.ReadinessCheck
	Gatherer       prometheus.Gatherer
	HTTPMetrics    *metrics.HTTPMetrics
	CartStore      *cartsvc.Store
	StoreService   stores.Service
	ProductService products.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness...))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))
		r.Get("/", cartcontrollers.CartFetch(deps.CartStore, logg))
		r.Delete("/", cartcontrollers.CartClear(deps.CartStore, logg))
		r.Get("/count", cartcontrollers.CartCount(deps.CartStore, logg))
		r.Post("/items", cartcontrollers.CartAddItem(deps.CartStore, logg))
		r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(deps.CartStore, logg))
		r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(deps.CartStore, logg))
		r.Post("/resolve", cartcontrollers.CartResolve(deps.CartStore, deps.ProductService, cfg.Pricing, logg))
		r.Post("/checkout", cartcontrollers.CartCheckout(deps.CartStore, deps.ProductService, cfg.Pricing, cfg.Checkout, logg))
	})

	r.Route("/api/v1/shops/{username}", func(r chi.Router) {
		r.Get("/", shopcontrollers.ShopDetails(deps.StoreService, logg))
		r.Get("/about", shopcontrollers.ShopAbout(deps.StoreService, logg))
		r.Get("/contact", shopcontrollers.ShopContact(deps.StoreService, logg))
		r.Get("/links", shopcontrollers.ShopLinks(deps.StoreService, logg))
		r.Get("/products", shopcontrollers.ShopProducts(deps.ProductService, logg))
		r.Get("/products/{productId}", shopcontrollers.ShopProductDetail(deps.ProductService, logg))
	})

	return r
}
