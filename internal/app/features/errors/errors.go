// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
	Status  int
}

// Handler is the errors feature handler.
// No backend needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the "page not found" page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusNotFound, "The page you were looking for does not exist.", "/")
}

// MethodNotAllowed renders a 405 page.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusMethodNotAllowed, "That action is not available here.", "/")
}

// RenderError writes status and renders the friendly error page.
// If backURL is empty, it resolves a safe back URL defaulting to "/".
func RenderError(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	vm := viewdata.NewBaseVM(w, r, nil, http.StatusText(status), backURL)
	vm.BackURL = backURL

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  vm,
		Heading: http.StatusText(status),
		Message: msg,
		Status:  status,
	})
}
