package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter creates a chi router with all API routes mounted. Card and export
// routes sit behind the JWT auth middleware; auth routes are public.
func NewRouter(h *Handler, jwtSecret []byte) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.Ping)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/refresh", h.Refresh)
			r.Post("/logout", h.Logout)
			r.Post("/reset", h.RequestReset)
			r.Post("/reset/confirm", h.ConfirmReset)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			r.Get("/cards", h.ListCards)
			r.Post("/cards", h.CreateCard)
			r.Patch("/cards/{id}", h.PatchCard)
			r.Delete("/cards/{id}", h.DeleteCard)

			r.Post("/export", h.ExportCards)
		})
	})

	return r
}
