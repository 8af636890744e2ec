package adapthttp

import (
	"net/http"
	"net/netip"
	"time"

	"bodycomp/internal/app"
)

// RequestObserver receives one call per served request.
type RequestObserver interface {
	ObserveRequest(method string, status int, d time.Duration)
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	entries     *app.EntryService
	charts      *app.ChartsService
	authSvc     *app.AuthService
	webDir      string
	oidcConfig  OIDCConfig
	disableAuth bool
	observer    RequestObserver
	metrics     http.Handler

	forwardAuth    bool
	trustedProxies []netip.Prefix
}

// New creates a Server wired to the given application services.
func New(es *app.EntryService, cs *app.ChartsService, authSvc *app.AuthService, webDir string) *Server {
	return &Server{entries: es, charts: cs, authSvc: authSvc, webDir: webDir}
}

// WithoutAuth disables authentication (for tests and trusted networks).
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithForwardAuth makes the server accept the Remote-User header set by a
// forward-auth proxy. With trusted prefixes, only requests whose peer
// address falls inside one of them are believed.
func (s *Server) WithForwardAuth(trusted []netip.Prefix) *Server {
	s.forwardAuth = true
	s.trustedProxies = trusted
	return s
}

// WithOIDC enables single sign-on.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithMetrics reports requests to obs and serves h on /metrics.
func (s *Server) WithMetrics(obs RequestObserver, h http.Handler) *Server {
	s.observer = obs
	s.metrics = h
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	protect := func(h http.HandlerFunc) http.Handler { return s.authMiddleware(h) }

	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/sso/login", s.handleSSOLogin)
	api.HandleFunc("/sso/callback", s.handleSSOCallback)

	api.Handle("/entries", protect(s.handleEntries))
	api.Handle("/entries/", protect(s.handleEntry))
	api.Handle("/charts/series", protect(s.handleChartsSeries))
	api.Handle("/export", protect(s.handleExport))
	api.Handle("/import", protect(s.handleImport))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.metrics != nil {
		root.Handle("/metrics", s.metrics)
	}
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
