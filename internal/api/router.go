package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/blaisecz/health-trends/docs"
	"github.com/blaisecz/health-trends/internal/api/handler"
	"github.com/blaisecz/health-trends/internal/api/middleware"
)

type Router struct {
	dashboardHandler *handler.DashboardHandler
	analyticsHandler *handler.AnalyticsHandler
	summaryHandler   *handler.SummaryHandler
	chatHandler      *handler.ChatHandler
}

func NewRouter(
	dashboardHandler *handler.DashboardHandler,
	analyticsHandler *handler.AnalyticsHandler,
	summaryHandler *handler.SummaryHandler,
	chatHandler *handler.ChatHandler,
) *Router {
	return &Router{
		dashboardHandler: dashboardHandler,
		analyticsHandler: analyticsHandler,
		summaryHandler:   summaryHandler,
		chatHandler:      chatHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Tracing)

		r.Route("/patients/{patientId}", func(r chi.Router) {
			r.Get("/dashboard", rt.dashboardHandler.Get)

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/", rt.analyticsHandler.List)
				r.Get("/{documentId}", rt.analyticsHandler.Get)
			})

			r.Route("/summaries", func(r chi.Router) {
				r.Post("/", rt.summaryHandler.Create)
				r.Get("/", rt.summaryHandler.List)
			})

			r.Post("/chat", rt.chatHandler.Post)
		})

		r.Route("/summaries/{jobId}", func(r chi.Router) {
			r.Get("/", rt.summaryHandler.Get)
			r.Delete("/", rt.summaryHandler.Cancel)
			r.Post("/feedback", rt.summaryHandler.Feedback)
		})
	})

	return r
}
