package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// Record is one backend record in its wire shape.
type Record = map[string]any

// BackendUser is an admin account known to the fake backend.
type BackendUser struct {
	ID       string
	Email    string
	FullName string
	Username string
	Password string
}

// Backend is an in-memory stand-in for the remote REST API. It speaks the
// same envelope ({success, message, data}) and field conventions: contacts
// in snake_case with lower-case status tokens, everything else camelCase,
// services keyed by number.
type Backend struct {
	*httptest.Server

	mu          sync.Mutex
	token       string
	users       map[string]BackendUser
	collections map[string][]Record
	failures    map[string]int
	omitEcho    map[string]bool
	nextID      int
	requests    []string
	lastBodies  map[string]Record
}

// NewBackend starts a fake backend seeded with one admin
// (admin@example.com / secret123) and a few records per collection. It is
// closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		token:      "valid-token",
		users:      map[string]BackendUser{},
		failures:   map[string]int{},
		omitEcho:   map[string]bool{},
		nextID:     100,
		lastBodies: map[string]Record{},
	}
	b.users["admin@example.com"] = BackendUser{ID: "1", Email: "admin@example.com", FullName: "Ada Admin", Username: "ada", Password: "secret123"}
	b.collections = map[string][]Record{
		"contacts": {
			{"id": 11, "full_name": "Grace Hopper", "email": "grace@example.com", "company_name": "Navy", "phone": "555-0100",
				"service_interest": "Cloud", "project_budget": "10k", "project_timeline": "Q3", "message": "Need help\nASAP",
				"how_heard": "Search", "status": "new", "created_at": "2024-03-01T10:00:00Z", "updated_at": "2024-03-01T10:00:00Z"},
			{"id": 12, "full_name": "Alan Turing", "email": "alan@example.com", "company_name": "Bletchley", "status": "converted",
				"created_at": "2024-02-01T10:00:00Z", "updated_at": nil},
			{"id": 13, "full_name": "Linus T", "email": "linus@example.com", "company_name": "Kernel", "status": "on_hold",
				"created_at": "2024-01-15T10:00:00Z"},
		},
		"projects": {
			{"id": "p1", "title": "Patient Portal", "client": "Acme Health", "category": "Web", "description": "Portal",
				"image": "/img/p1.png", "status": "Published", "featured": true, "technologies": []any{"Go", "HTMX"},
				"results": []any{Record{"metric": "Uptime", "value": "99.9%"}}, "completedDate": "2024-01-01"},
			{"id": "p2", "title": "Fleet App", "client": "Trucks Inc", "category": "Mobile", "description": "App",
				"image": "", "status": "draft", "featured": false, "technologies": nil, "results": nil, "completedDate": ""},
		},
		"services": {
			{"id": 1, "title": "Cloud Migration", "slug": "cloud-migration", "icon": "cloud", "shortDescription": "Move to cloud",
				"features": []any{"Assessment"}, "technologyStack": []any{"AWS"}, "processSteps": []any{}, "idealFor": []any{},
				"orderIndex": 1, "published": true},
			{"id": "2", "title": "Security Review", "slug": "security-review", "icon": nil, "shortDescription": "Audit",
				"orderIndex": 2, "published": false},
		},
		"testimonials": {
			{"id": "t1", "name": "Dana", "position": "CTO", "company": "Acme", "message": "Great", "rating": 5,
				"featured": true, "createdAt": "2024-01-01"},
			{"id": "t2", "name": "Eli", "position": "CEO", "company": "Beta", "message": "Good", "rating": "4",
				"featured": false, "createdAt": "2024-02-01"},
		},
	}

	r := chi.NewRouter()
	r.Use(b.recordRequest)
	r.Post("/admin/login", b.login)
	r.Post("/admin/create", b.signup)
	r.Route("/admin/{collection}", func(cr chi.Router) {
		cr.Use(b.requireBearer)
		cr.Get("/", b.list)
		cr.Post("/", b.create)
		cr.Put("/{id}", b.update)
		cr.Patch("/{id}", b.patch)
		cr.Delete("/{id}", b.remove)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// BaseURL returns the API base URL to configure clients with.
func (b *Backend) BaseURL() string { return b.Server.URL }

// Token returns the bearer token the backend accepts.
func (b *Backend) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// ExpireToken makes every authenticated request fail with 401.
func (b *Backend) ExpireToken() {
	b.mu.Lock()
	b.token = "rotated-" + strconv.Itoa(b.nextID)
	b.mu.Unlock()
}

// FailWith makes requests matching "METHOD /path" answer with status.
// A path ending in "/*" matches any id below it.
func (b *Backend) FailWith(route string, status int) {
	b.mu.Lock()
	b.failures[route] = status
	b.mu.Unlock()
}

// OmitEcho makes successful writes on route answer without a record.
func (b *Backend) OmitEcho(route string) {
	b.mu.Lock()
	b.omitEcho[route] = true
	b.mu.Unlock()
}

// SetCollection replaces a collection's records.
func (b *Backend) SetCollection(name string, records []Record) {
	b.mu.Lock()
	b.collections[name] = records
	b.mu.Unlock()
}

// Collection returns a copy of a collection's records.
func (b *Backend) Collection(name string) []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Record(nil), b.collections[name]...)
}

// LastBody returns the most recent decoded request body for "METHOD /path".
func (b *Backend) LastBody(route string) Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBodies[route]
}

// Requests returns "METHOD /path" for every request received.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Handlers                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (b *Backend) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, route)
		status := b.failures[route]
		if status == 0 {
			if i := strings.LastIndex(r.URL.Path, "/"); i > 0 {
				status = b.failures[r.Method+" "+r.URL.Path[:i]+"/*"]
			}
		}
		b.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, Record{"success": false, "message": fmt.Sprintf("Request failed (%d)", status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.Token() {
			writeJSON(w, http.StatusUnauthorized, Record{"success": false, "message": "Token expired"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) decode(w http.ResponseWriter, r *http.Request) (Record, bool) {
	var body Record
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, Record{"success": false, "message": "Invalid JSON"})
		return nil, false
	}
	b.mu.Lock()
	b.lastBodies[r.Method+" "+r.URL.Path] = body
	b.mu.Unlock()
	return body, true
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decode(w, r)
	if !ok {
		return
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	b.mu.Lock()
	u, found := b.users[strings.ToLower(email)]
	token := b.token
	b.mu.Unlock()
	if !found || u.Password != password {
		writeJSON(w, http.StatusUnauthorized, Record{"success": false, "message": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, Record{"success": true, "data": Record{"token": token, "user": userRecord(u)}})
}

func (b *Backend) signup(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decode(w, r)
	if !ok {
		return
	}
	email, _ := body["email"].(string)
	key := strings.ToLower(email)

	b.mu.Lock()
	if _, exists := b.users[key]; exists {
		b.mu.Unlock()
		writeJSON(w, http.StatusConflict, Record{"success": false, "message": "An account with this email already exists"})
		return
	}
	b.nextID++
	u := BackendUser{ID: strconv.Itoa(b.nextID), Email: email, Password: fmt.Sprint(body["password"])}
	u.FullName, _ = body["fullName"].(string)
	u.Username, _ = body["username"].(string)
	b.users[key] = u
	token := b.token
	omit := b.omitEcho["POST /admin/create"]
	b.mu.Unlock()

	if omit {
		writeJSON(w, http.StatusCreated, Record{"success": true, "message": "Admin created"})
		return
	}
	writeJSON(w, http.StatusCreated, Record{"success": true, "data": Record{"accessToken": token, "user": userRecord(u)}})
}

func userRecord(u BackendUser) Record {
	return Record{"id": u.ID, "email": u.Email, "fullName": u.FullName, "username": u.Username, "role": "admin"}
}

func (b *Backend) list(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	b.mu.Lock()
	records, ok := b.collections[name]
	out := append([]Record(nil), records...)
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, Record{"success": false, "message": "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, Record{"success": true, "data": out})
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	body, ok := b.decode(w, r)
	if !ok {
		return
	}

	b.mu.Lock()
	b.nextID++
	if name == "services" {
		body["id"] = b.nextID
	} else {
		body["id"] = strconv.Itoa(b.nextID)
	}
	body["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	b.collections[name] = append([]Record{body}, b.collections[name]...)
	omit := b.omitEcho[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if omit {
		writeJSON(w, http.StatusCreated, Record{"success": true})
		return
	}
	writeJSON(w, http.StatusCreated, Record{"success": true, "data": body})
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decode(w, r)
	if !ok {
		return
	}
	b.write(w, r, func(existing Record) Record {
		body["id"] = existing["id"]
		body["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
		return body
	})
}

func (b *Backend) patch(w http.ResponseWriter, r *http.Request) {
	body, ok := b.decode(w, r)
	if !ok {
		return
	}
	b.write(w, r, func(existing Record) Record {
		merged := Record{}
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range body {
			merged[k] = v
		}
		merged["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		return merged
	})
}

func (b *Backend) write(w http.ResponseWriter, r *http.Request, change func(Record) Record) {
	name, id := chi.URLParam(r, "collection"), chi.URLParam(r, "id")

	b.mu.Lock()
	records := b.collections[name]
	idx := indexOf(records, id)
	if idx < 0 {
		b.mu.Unlock()
		writeJSON(w, http.StatusNotFound, Record{"success": false, "message": "Record not found"})
		return
	}
	updated := change(records[idx])
	records[idx] = updated
	omit := b.omitEcho[r.Method+" "+r.URL.Path] || b.omitEcho[r.Method+" /admin/"+name+"/*"]
	b.mu.Unlock()

	if omit {
		writeJSON(w, http.StatusOK, Record{"success": true, "message": "Updated"})
		return
	}
	writeJSON(w, http.StatusOK, Record{"success": true, "data": updated})
}

func (b *Backend) remove(w http.ResponseWriter, r *http.Request) {
	name, id := chi.URLParam(r, "collection"), chi.URLParam(r, "id")

	b.mu.Lock()
	records := b.collections[name]
	idx := indexOf(records, id)
	if idx < 0 {
		b.mu.Unlock()
		writeJSON(w, http.StatusNotFound, Record{"success": false, "message": "Record not found"})
		return
	}
	b.collections[name] = append(records[:idx:idx], records[idx+1:]...)
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func indexOf(records []Record, id string) int {
	for i, rec := range records {
		if fmt.Sprint(rec["id"]) == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
