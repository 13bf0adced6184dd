package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"menuqr.app/internal/auth"
	"menuqr.app/internal/menu"
	"menuqr.app/internal/obs"
	"menuqr.app/internal/qr"
	"menuqr.app/internal/tenant"
)

// ReadyProbe reports whether downstream dependencies are reachable.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config carries the knobs the HTTP layer needs beyond its services.
type Config struct {
	Version        string
	AllowedOrigins []string
	RateBurst      int
	RatePerSecond  int
	UploadsDir     string
}

// API is the HTTP layer. It owns routing and the middleware chain; all
// domain decisions live in the services it fronts.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	cfg        Config

	auth     *auth.Service
	resolver *auth.Resolver
	tenants  *tenant.Service
	menu     *menu.Service
	qr       qr.Generator
}

func New(rp ReadyProbe, cfg Config, authSvc *auth.Service, resolver *auth.Resolver, tenants *tenant.Service, menuSvc *menu.Service, qrGen qr.Generator) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		cfg:        cfg,
		auth:       authSvc,
		resolver:   resolver,
		tenants:    tenants,
		menu:       menuSvc,
		qr:         qrGen,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// auth
	a.mux.HandleFunc("/v1/auth/register", a.Register)
	a.mux.HandleFunc("/v1/auth/login", a.Login)
	a.mux.HandleFunc("/v1/auth/refresh", a.Refresh)
	a.mux.HandleFunc("/v1/auth/logout", a.Logout)
	a.mux.HandleFunc("/v1/auth/me", a.Me)

	// tenants
	a.mux.HandleFunc("/v1/tenants/", a.TenantByID)

	// menu management
	a.mux.HandleFunc("/v1/categories", a.Categories)
	a.mux.HandleFunc("/v1/categories/", a.CategoryByID)
	a.mux.HandleFunc("/v1/menu-items", a.MenuItems)
	a.mux.HandleFunc("/v1/menu-items/", a.MenuItemByID)

	// public, no credentials
	a.mux.HandleFunc("/v1/public/tenants/", a.PublicTenant)
	a.mux.HandleFunc("/v1/public/menu/", a.PublicMenu)

	// generated QR images
	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		a.mux.Handle("/uploads/", fs)
	}

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler assembles the middleware chain around the mux. Order matters:
// metrics wrap everything, authentication runs last so denials are still
// logged and counted.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	if a.cfg.RateBurst > 0 && a.cfg.RatePerSecond > 0 {
		h = RateLimit(h, a.cfg.RateBurst, a.cfg.RatePerSecond)
	}
	h = MaxBodyBytes(h, 1<<20)
	h = CORS(a.cfg.AllowedOrigins)(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "menuqr-api",
		"version": a.cfg.Version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "menuqr-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.cfg.Version,
	})
}
