// Package testutil holds fixtures shared by kitctl tests: a fake package
// registry and throwaway prototype projects.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// FakeRegistry is an npm compatible registry served by httptest.
type FakeRegistry struct {
	Server *httptest.Server
	URL    string

	mu       sync.Mutex
	packages map[string]registryPackage
	failures map[string][]int
	hits     map[string]int
	auth     string
	delay    time.Duration
}

type registryPackage struct {
	latest   string
	versions []string
}

// NewFakeRegistry starts a registry that is closed when the test ends.
func NewFakeRegistry(t *testing.T) *FakeRegistry {
	t.Helper()
	f := &FakeRegistry{
		packages: make(map[string]registryPackage),
		failures: make(map[string][]int),
		hits:     make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	f.URL = f.Server.URL
	t.Cleanup(f.Server.Close)
	return f
}

// AddPackage publishes name with the given versions and latest dist-tag.
func (f *FakeRegistry) AddPackage(name, latest string, versions ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packages[name] = registryPackage{latest: latest, versions: versions}
}

// FailNext makes the next requests for name answer with the given status codes, in order.
func (f *FakeRegistry) FailNext(name string, statuses ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[name] = append(f.failures[name], statuses...)
}

// Hits returns how many requests were made for name.
func (f *FakeRegistry) Hits(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[name]
}

// SetDelay makes every response wait for d before it is written.
func (f *FakeRegistry) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// LastAuthorization returns the Authorization header of the latest request.
func (f *FakeRegistry) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.auth
}

func (f *FakeRegistry) serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")

	f.mu.Lock()
	f.hits[name]++
	f.auth = r.Header.Get("Authorization")
	delay := f.delay
	if queued := f.failures[name]; len(queued) > 0 {
		f.failures[name] = queued[1:]
		f.mu.Unlock()
		w.WriteHeader(queued[0])
		return
	}
	pkg, ok := f.packages[name]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
		return
	}

	versions := make(map[string]interface{}, len(pkg.versions))
	for _, v := range pkg.versions {
		versions[v] = map[string]string{"name": name, "version": v}
	}
	doc := map[string]interface{}{
		"name":      name,
		"dist-tags": map[string]string{"latest": pkg.latest},
		"versions":  versions,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}
