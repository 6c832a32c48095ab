// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard under whatever mount point the top-level
// router chooses ("/"). ready loads the console before the handler runs.
func Routes(h *Handler, sm *auth.SessionManager, ready func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(ready)
		pr.Get("/", h.ServeDashboard)
	})

	return r
}
