package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	portal "github.com/itec-institute/portal"
	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Login        LoginService // Required
	CookieDomain string
	IsDev        bool         // Development mode: templates and static files come from disk
	Logger       *slog.Logger // Optional

	// Optional overrides, mainly for tests. Defaults depend on IsDev.
	TemplateFS fs.FS
	StaticFS   fs.FS
}

// NewRouter creates and configures the HTTP router with browser middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Login == nil {
		return nil, errors.New("login service is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := resolveAssetFS(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	ui := &UIHandlers{
		T:            tr,
		Svc:          services.Login,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticWithCacheHeaders(services.IsDev,
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	registerUIRoutes(mux, ui, uiRouteConfig{Sessions: services.Login, CookieDomain: services.CookieDomain})

	handler := &notFoundHandler{mux: mux, ui: ui, sessions: services.Login}
	return BrowserDetection()(handler), nil
}

// resolveAssetFS picks template and static filesystems.
// In dev mode they are read from disk for hot reloading; otherwise from the embedded copies.
func resolveAssetFS(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS(StaticPathFromRoot)
		}
		return templateFS, staticFS, nil
	}

	var err error
	if templateFS == nil {
		if templateFS, err = fs.Sub(portal.TemplateFS, TemplatePathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded templates: %w", err)
		}
	}
	if staticFS == nil {
		if staticFS, err = fs.Sub(portal.StaticFS, StaticPathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded static assets: %w", err)
		}
	}
	return templateFS, staticFS, nil
}

// staticWithCacheHeaders adds cache headers to static responses.
// Assets are not content-hashed, so production gets a short max-age and dev disables caching.
func staticWithCacheHeaders(isDev bool, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Sessions     SessionReader
	CookieDomain string
}

// page wraps a browser page with CSRF protection and session loading.
func (cfg uiRouteConfig) page() func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	load := LoadSession(cfg.Sessions)
	return func(h http.Handler) http.Handler { return csrf(load(h)) }
}

// dashboard wraps a role dashboard with CSRF protection and an exact role check.
func (cfg uiRouteConfig) dashboard(role domainauth.Role) func(http.Handler) http.Handler {
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
	roleCheck := RequireRoleBrowser(cfg.Sessions, role)
	return func(h http.Handler) http.Handler { return csrf(roleCheck(h)) }
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	page := cfg.page()

	mux.Handle("GET /{$}", page(http.HandlerFunc(h.Index)))
	mux.Handle("GET /login", page(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST /login", page(http.HandlerFunc(h.LoginSubmit)))
	mux.Handle("POST /auth/logout", page(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/signed-out", page(http.HandlerFunc(h.SignedOut)))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))

	for _, role := range domainauth.Roles() {
		seg, _ := domainauth.RouteSegment(role)
		mux.Handle("GET "+domainauth.DashboardPath(seg), cfg.dashboard(role)(http.HandlerFunc(h.Dashboard)))
	}
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux      *http.ServeMux
	ui       *UIHandlers
	sessions SessionReader
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only unmatched requests need the custom page; matched ones stream straight through.
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status != http.StatusNotFound {
		// 405 and redirects produced by the mux itself.
		cw.flushTo(w)
		return
	}
	if session := getSessionFromRequest(r, h.sessions); session != nil {
		r = r.WithContext(SetSessionInContext(r.Context(), session))
	}
	h.ui.NotFound(w, r)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	_, _ = w.Write(c.buf.Bytes())
}
