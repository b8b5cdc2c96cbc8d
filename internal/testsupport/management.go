package testsupport

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
)

// ManagementAPI is an in-memory stand-in for the RabbitMQ management API.
// It serves overview, queue listing, queue deletion, and purge for a single
// vhost. Deleted queues disappear from later listings.
type ManagementAPI struct {
	URL string

	vhost    string
	user     string
	password string

	mu       sync.Mutex
	queues   []string
	failures map[string]int
	requests []string
}

// NewManagementAPI starts a server for vhost holding queues. The server is
// closed when the test ends. Credentials are guest/guest.
func NewManagementAPI(t testing.TB, vhost string, queues ...string) *ManagementAPI {
	t.Helper()

	api := &ManagementAPI{
		vhost:    vhost,
		user:     "guest",
		password: "guest",
		queues:   append([]string(nil), queues...),
		failures: map[string]int{},
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	api.URL = srv.URL
	return api
}

// Fail makes requests matching "METHOD /api/path" answer with status.
func (m *ManagementAPI) Fail(request string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[request] = status
}

// Requests returns every request seen so far as "METHOD /api/path".
func (m *ManagementAPI) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

// Deletes returns only the DELETE requests, which cover delete and purge.
func (m *ManagementAPI) Deletes() []string {
	var out []string
	for _, req := range m.Requests() {
		if strings.HasPrefix(req, http.MethodDelete+" ") {
			out = append(out, req)
		}
	}
	return out
}

// Queues returns the queues currently held by the server.
func (m *ManagementAPI) Queues() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queues...)
}

func (m *ManagementAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path, _, _ := strings.Cut(r.RequestURI, "?")
	key := r.Method + " " + path

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, key)

	if user, pass, ok := r.BasicAuth(); !ok || user != m.user || pass != m.password {
		writeError(w, http.StatusUnauthorized, "not_authorised", "Login failed")
		return
	}
	if status, ok := m.failures[key]; ok {
		writeError(w, status, http.StatusText(status), "injected")
		return
	}

	queuesPath := "/api/queues/" + m.vhost
	switch {
	case r.Method == http.MethodGet && path == "/api/overview":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"management_version":"3.13.0","cluster_name":"rabbit@test"}`))
	case r.Method == http.MethodGet && path == queuesPath:
		parts := make([]string, 0, len(m.queues))
		for _, name := range m.queues {
			parts = append(parts, `{"name":"`+name+`","vhost":"`+m.vhost+`"}`)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[" + strings.Join(parts, ",") + "]"))
	case r.Method == http.MethodDelete && strings.HasPrefix(path, queuesPath+"/"):
		name, purge := strings.CutSuffix(strings.TrimPrefix(path, queuesPath+"/"), "/contents")
		if !slices.Contains(m.queues, name) {
			writeError(w, http.StatusNotFound, "Object Not Found", "Not Found")
			return
		}
		if !purge {
			m.queues = slices.DeleteFunc(m.queues, func(q string) bool { return q == name })
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusNotFound, "Object Not Found", "Not Found")
	}
}

func writeError(w http.ResponseWriter, status int, message, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `","reason":"` + reason + `"}`))
}
