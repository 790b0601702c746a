package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopsight-ai/shopsight-backend/api/controllers"
	"github.com/shopsight-ai/shopsight-backend/api/middleware"
	"github.com/shopsight-ai/shopsight-backend/internal/catalog"
	"github.com/shopsight-ai/shopsight-backend/internal/orders"
	"github.com/shopsight-ai/shopsight-backend/internal/predictions"
	"github.com/shopsight-ai/shopsight-backend/internal/scoring"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

type storagePinger interface {
	Ping(ctx context.Context) error
}

type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	Gateway     *store.Gateway
	Catalog     *catalog.Repository
	Orders      orders.Service
	Predictions *predictions.Repository
	Scoring     *scoring.Service
	Objects     storagePinger
	Registry    *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(p.Config.CORS),
	)

	// CORS passes preflights through; terminate them here with an empty 204.
	r.Options("/*", middleware.Preflight)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.Objects))
	})

	if p.Config.Metrics.Enabled && p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/customers", controllers.ListCustomers(p.Gateway, p.Catalog, p.Logger))
	r.Get("/products", controllers.ListProducts(p.Gateway, p.Catalog, p.Logger))
	r.Get("/orders", controllers.ListOrders(p.Gateway, p.Orders, p.Logger))
	r.Post("/orders", controllers.PlaceOrder(p.Gateway, p.Orders, p.Logger))
	r.Get("/priority-queue", controllers.PriorityQueue(p.Gateway, p.Predictions, p.Logger))
	r.Post("/run-scoring", controllers.RunScoring(p.Scoring, p.Logger))
	r.Post("/run-pipeline", controllers.RunPipeline(p.Scoring, p.Logger))

	return r
}
