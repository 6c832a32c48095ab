// internal/app/features/services/routes.go
package services

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the service catalog (e.g., at "/services").
func Routes(h *Handler, sm *auth.SessionManager, ready func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(ready)
		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}", h.HandleUpdate)
		pr.Get("/{id}/delete", h.ServeDelete)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
