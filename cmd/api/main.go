package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"menuqr.app/internal/auth"
	"menuqr.app/internal/httpapi"
	"menuqr.app/internal/menu"
	"menuqr.app/internal/obs"
	"menuqr.app/internal/qr"
	"menuqr.app/internal/store/pg"
	"menuqr.app/internal/tenant"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	dsn := os.Getenv("MENUQR_PG_DSN")
	if dsn == "" {
		log.Fatal("missing MENUQR_PG_DSN")
	}
	accessSecret := os.Getenv("MENUQR_ACCESS_SECRET")
	refreshSecret := os.Getenv("MENUQR_REFRESH_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		log.Fatal("missing MENUQR_ACCESS_SECRET or MENUQR_REFRESH_SECRET")
	}

	db, err := pg.Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	var tokenOpts []auth.TokenOption
	if ttl := envDuration("MENUQR_ACCESS_TTL"); ttl > 0 {
		tokenOpts = append(tokenOpts, auth.WithAccessTTL(ttl))
	}
	if ttl := envDuration("MENUQR_REFRESH_TTL"); ttl > 0 {
		tokenOpts = append(tokenOpts, auth.WithRefreshTTL(ttl))
	}
	tokens, err := auth.NewTokenService(accessSecret, refreshSecret, tokenOpts...)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}
	hasher := auth.NewHasher(envInt("MENUQR_BCRYPT_COST", 12))

	users := pg.NewUsers(db)
	tenants := pg.NewTenants(db)
	menuStore := pg.NewMenu(db)

	baseURL := os.Getenv("MENUQR_PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	qrDir := os.Getenv("MENUQR_QR_DIR")
	if qrDir == "" {
		qrDir = "uploads/qr-codes"
	}
	qrGen := qr.NewFileGenerator(baseURL, qrDir)

	slugs := tenant.NewSlugger(tenants)
	authSvc, err := auth.NewService(users, tenants, users, slugs, qrGen, tokens, hasher)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	resolver := auth.NewResolver(tokens, tenants)
	tenantSvc := tenant.NewService(tenants)
	menuSvc := menu.NewService(menuStore)

	cfg := httpapi.Config{
		Version:        version,
		AllowedOrigins: splitCSV(os.Getenv("MENUQR_ALLOWED_ORIGINS")),
		RateBurst:      envInt("MENUQR_RATE_BURST", 30),
		RatePerSecond:  envInt("MENUQR_RATE_PER_SEC", 10),
		UploadsDir:     "uploads",
	}
	api := httpapi.New(httpapi.ReadyProbe{DB: db}, cfg, authSvc, resolver, tenantSvc, menuSvc, qrGen)

	addr := os.Getenv("MENUQR_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting menuqr-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}

func envDuration(name string) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	return d
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	return n
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
