// Package console serves the management console's JSON API: plugin
// lifecycle requests, status polls, plugin listings and template path checks.
package console

import (
	"net/http"
	"strings"
	"time"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrefix is the path every console route lives under.
const DefaultPrefix = "/manage-prototype"

// Options configures a Server.
type Options struct {
	Prefix     string
	Operations Operations
	Packages   PackageSource
	Commands   CommandPreviewer
	// ViewsDir is where installed page templates live.
	ViewsDir string
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Ready reports whether the project can be served, typically by reading
	// the manifest.
	Ready func() error
}

// Server is the console's HTTP handler.
type Server struct {
	opts   Options
	mux    *http.ServeMux
	health healthcheck.Handler
}

// New creates a Server and registers its routes.
func New(opts Options) *Server {
	opts.Prefix = strings.TrimSuffix(opts.Prefix, "/")
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		opts:   opts,
		mux:    http.NewServeMux(),
		health: healthcheck.NewHandler(),
	}
	s.health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(10000))
	if opts.Ready != nil {
		s.health.AddReadinessCheck("manifest", opts.Ready)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	p := s.opts.Prefix

	s.mux.HandleFunc("GET "+p+"/plugins", s.handlePlugins)
	s.mux.HandleFunc("POST "+p+"/plugins/{mode}", s.ajaxOnly(s.handleMode))
	s.mux.HandleFunc("GET "+p+"/plugins/{mode}/status", s.handleStatus)
	s.mux.HandleFunc("POST "+p+"/plugins/{mode}/status", s.ajaxOnly(s.handleStatus))
	s.mux.HandleFunc("GET "+p+"/plugins/{mode}/command", s.handleCommand)
	s.mux.HandleFunc("GET "+p+"/templates/check-path", s.handleCheckPath)

	s.mux.Handle("GET "+p+"/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("GET "+p+"/live", s.health.LiveEndpoint)
	s.mux.HandleFunc("GET "+p+"/ready", s.health.ReadyEndpoint)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	logger.Debug("HTTP request", logger.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   rec.status,
		"duration": time.Since(start).String(),
	})
}

// ajaxOnly redirects requests that did not come from the console's scripts
// back to the page they came from.
func (s *Server) ajaxOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isJSONRequest(r) {
			next(w, r)
			return
		}
		target := r.Referer()
		if target == "" {
			target = r.URL.RequestURI()
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func isJSONRequest(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
