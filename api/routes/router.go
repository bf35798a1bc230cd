package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/stylin-backend/api/controllers"
	"github.com/angelmondragon/stylin-backend/api/middleware"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/stylin-backend/internal/checkout"
	"github.com/angelmondragon/stylin-backend/pkg/config"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/stylin-backend/pkg/redis"
)

// Deps is everything the HTTP surface needs. Idempotency and the ready checks
// are optional: a nil store disables replay protection and nil pingers are skipped.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Catalog     *catalog.Catalog
	Sessions    middleware.SessionResolver
	Checkout    checkoutsvc.Service
	Idempotency pkgredis.IdempotencyStore
	Gatherer    prometheus.Gatherer
	Ready       map[string]controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(deps.Catalog, logg))
			r.Get("/products/{id}", controllers.CatalogProduct(deps.Catalog, logg))
			r.Get("/brands", controllers.CatalogBrands(deps.Catalog))
			r.Get("/brands/{brand}", controllers.CatalogBrand(deps.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(deps.Sessions, logg))
			idempotent := middleware.Idempotency(deps.Idempotency, logg)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(logg))
				r.Delete("/", controllers.CartClear(logg))
				r.With(idempotent).Post("/items", controllers.CartAddItem(deps.Catalog, logg))
				r.Patch("/items/{id}", controllers.CartUpdateItem(logg))
				r.Delete("/items/{id}", controllers.CartRemoveItem(logg))
			})

			r.Route("/saved", func(r chi.Router) {
				r.Get("/", controllers.SavedList(logg))
				r.Post("/toggle", controllers.SavedToggle(deps.Catalog, logg))
				r.Delete("/{id}", controllers.SavedRemove(logg))
			})

			r.Route("/deck", func(r chi.Router) {
				r.Get("/", controllers.DeckGet(logg))
				r.Post("/swipe", controllers.DeckSwipe(logg))
				r.Post("/gesture", controllers.DeckGesture(logg))
				r.Post("/tap", controllers.DeckTap(logg))
				r.Post("/hint", controllers.DeckHint(logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/quote", controllers.CheckoutQuote(deps.Checkout, logg))
				r.With(idempotent).Post("/orders", controllers.CheckoutPlaceOrder(deps.Checkout, logg))
			})

			r.Get("/orders", controllers.OrderList(logg))
			r.Get("/orders/{id}", controllers.OrderGet(deps.Checkout, logg))
		})
	})

	return r
}
