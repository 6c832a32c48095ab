// internal/app/features/contacts/routes.go
package contacts

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts contact management (e.g., at "/contacts").
func Routes(h *Handler, sm *auth.SessionManager, ready func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(ready)
		pr.Get("/", h.ServeList)
		pr.Get("/export.csv", h.ServeExport)
		pr.Get("/{id}", h.ServeDetail)
		pr.Post("/{id}/status", h.HandleStatus)
	})

	return r
}
