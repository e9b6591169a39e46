package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-todo-api/internal/application/auth"
	"github.com/go-todo-api/internal/application/todo"
	"github.com/go-todo-api/internal/config"
	"github.com/go-todo-api/internal/transport/http/handler"
	appmiddleware "github.com/go-todo-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(deps.UserRepo, deps.JWTProvider)
	todoSvc := todo.NewService(deps.TodoRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	todoH := handler.NewTodoHandler(todoSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check/{action}", healthH.Ping)
	r.Post("/auth/signup", authH.SignUp)
	r.Post("/auth/signin", authH.SignIn)

	// ── Authenticated routes ─────────────────────────────────────────────
	// Everything under /api requires a valid bearer token; the middleware
	// rejects before any handler runs.
	r.Route("/api", func(r chi.Router) {
		r.Use(appmiddleware.Auth(deps.JWTProvider))

		r.Get("/test", healthH.Test)
		r.Get("/todo", todoH.List)
		r.Post("/todo", todoH.Create)
		r.Put("/todo/{id}", todoH.Complete)
	})

	return r
}
