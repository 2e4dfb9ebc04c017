// Package httpapi exposes the fintrack services as a JSON REST API over chi.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/fintrack/internal/logging"
)

// NewRouter mounts the public /auth routes and the token-gated /api routes.
func NewRouter(s Services, corsOrigins []string, log logging.Logger) http.Handler {
	h := NewHandler(s, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.Root)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(s.Tokens, log))

		r.Get("/profile", h.withUser(h.Profile))

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.withUser(h.ListTransactions))
			r.Post("/", h.withUser(h.CreateTransaction))
			r.Get("/summary", h.withUser(h.TransactionSummary))
			r.Post("/export", h.withUser(h.ExportTransactions))
			r.Put("/{id}", h.withUser(h.UpdateTransaction))
			r.Delete("/{id}", h.withUser(h.DeleteTransaction))
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", h.withUser(h.ListBudgets))
			r.Post("/", h.withUser(h.UpsertBudget))
			r.Put("/{id}", h.withUser(h.UpdateBudget))
			r.Delete("/{id}", h.withUser(h.DeleteBudget))
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.withUser(h.ListGoals))
			r.Post("/", h.withUser(h.CreateGoal))
			r.Put("/{id}", h.withUser(h.UpdateGoal))
			r.Delete("/{id}", h.withUser(h.DeleteGoal))
		})
	})

	return r
}
