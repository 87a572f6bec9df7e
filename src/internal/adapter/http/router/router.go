package router

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomerRouteRegistrar interface {
	RegisterCustomerRoutes(r chi.Router)
}

type AdminRouteRegistrar interface {
	RegisterAdminRoutes(r chi.Router)
}

type Options struct {
	CustomerAuth func(http.Handler) http.Handler
	AdminAuth    func(http.Handler) http.Handler
	Customer     []CustomerRouteRegistrar
	Admin        []AdminRouteRegistrar
}

func New(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	registerSwaggerRoutes(r)

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(customer chi.Router) {
			if opts.CustomerAuth != nil {
				customer.Use(opts.CustomerAuth)
			}
			for _, registrar := range opts.Customer {
				registrar.RegisterCustomerRoutes(customer)
			}
		})

		api.Route("/admin", func(admin chi.Router) {
			if opts.AdminAuth != nil {
				admin.Use(opts.AdminAuth)
			}
			for _, registrar := range opts.Admin {
				registrar.RegisterAdminRoutes(admin)
			}
		})
	})

	return r
}
