// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/bobprince4u/admin/internal/app/console"
	"github.com/bobprince4u/admin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the sidebar and the browser title.
const SiteName = "Admin Console"

// View names used for sidebar highlighting and page headings.
const (
	ViewDashboard    = "dashboard"
	ViewContacts     = "contacts"
	ViewProjects     = "projects"
	ViewServices     = "services"
	ViewTestimonials = "testimonials"
	ViewLogin        = "login"
)

type heading struct {
	Title    string
	Subtitle string
}

var headings = map[string]heading{
	ViewDashboard:    {"Dashboard", "Overview of your business metrics"},
	ViewContacts:     {"Contact Management", "Manage client inquiries and leads"},
	ViewProjects:     {"Portfolio Projects", "Showcase your best work"},
	ViewServices:     {"Service Offerings", "Manage your service catalog"},
	ViewTestimonials: {"Client Testimonials", "Manage client feedback and reviews"},
	ViewLogin:        {"Admin Login", "Sign in to manage your site"},
}

// NoticeSource drains queued blocking notices. auth.SessionManager satisfies it.
type NoticeSource interface {
	Notices(w http.ResponseWriter, r *http.Request) []string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.ForView(w, r, h.SessionMgr, viewdata.ViewContacts, "/"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn  bool
	UserName    string
	UserEmail   string
	UserInitial string

	// Page context
	Title       string
	Subtitle    string
	CurrentView string
	BackURL     string
	CurrentPath string

	// Sidebar badge; zero until the console has loaded.
	NewInquiries int

	// Blocking notices shown as a modal on this render.
	Notices []string

	// CSRF protection
	CSRFToken string
}

// NewBaseVM creates a populated BaseVM for a page. notices may be nil.
func NewBaseVM(w http.ResponseWriter, r *http.Request, notices NoticeSource, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserName = u.DisplayName()
		vm.UserEmail = u.Email
		if name := []rune(vm.UserName); len(name) > 0 {
			vm.UserInitial = string(name[:1])
		}
	}

	if c, ok := console.FromContext(r.Context()); ok {
		vm.NewInquiries = c.Stats().NewInquiries
	}

	if notices != nil {
		vm.Notices = notices.Notices(w, r)
	}

	return vm
}

// ForView is NewBaseVM with the heading of one of the named views.
func ForView(w http.ResponseWriter, r *http.Request, notices NoticeSource, view, backDefault string) BaseVM {
	h := headings[view]
	vm := NewBaseVM(w, r, notices, h.Title, backDefault)
	vm.Subtitle = h.Subtitle
	vm.CurrentView = view
	return vm
}

// Heading returns the title and subtitle of a named view.
func Heading(view string) (title, subtitle string) {
	h := headings[view]
	return h.Title, h.Subtitle
}

// ConfirmVM backs the shared "confirm_delete" page.
type ConfirmVM struct {
	BaseVM
	Kind      string
	Name      string
	Action    string
	CancelURL string
}
