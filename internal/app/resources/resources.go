// internal/app/resources/resources.go
package resources

import (
	"embed"
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
)

// Embed the shared layout, sidebar and notices modal.
//
//go:embed templates/*.gohtml
var FS embed.FS

// StaticDir holds the console stylesheet, served under /static.
const StaticDir = "public"

var registerOnce sync.Once

// LoadSharedTemplates registers the "shared" set. Safe to call more than once.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}

// StaticHandler serves StaticDir with pre-compressed file support.
func StaticHandler() http.Handler {
	return fileserver.Handler("/static", StaticDir)
}
