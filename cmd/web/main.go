// cmd/web/main.go
//
// Compass – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (system-wide file → conf/.env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load and validate configuration (YAML + env overlays + Vault refs).
//
//  4. Open the directory database and log the published-directory count.
//
//  5. Open the optional GeoLite2 database for access-log enrichment.
//
//  6. Build the snapshot cache over the store repository.
//
//  7. Mount /metrics, then the directory router wrapped in the
//     middleware chain: ForceHTTPS → Security → Enrich.
//
//  8. Serve with hardened timeouts; SIGINT/SIGTERM drain gracefully.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openlocal/compass/internal/config"
	"github.com/openlocal/compass/internal/database"
	"github.com/openlocal/compass/internal/logger"
	"github.com/openlocal/compass/internal/middleware"
	"github.com/openlocal/compass/internal/requestinfo"
	"github.com/openlocal/compass/internal/server"
	"github.com/openlocal/compass/internal/snapshot"
	"github.com/openlocal/compass/internal/store"
	"github.com/openlocal/compass/internal/web"
)

const serverEnvPath = "/usr/local/etc/compass/global.env"

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 2.  Directory DB connect ────────────────────────────────────────
	//
	logOut.Infow("connecting to directory DB")
	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	db, err := database.Open(pingCtx, cfg.Database.DSN, database.Pool{
		MaxOpen:     cfg.Database.MaxOpenConns,
		MaxIdle:     cfg.Database.MaxIdleConns,
		MaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMin) * time.Minute,
	})
	cancelPing()
	if err != nil {
		logOut.Fatalw("connect directory DB", "err", err)
	}
	defer db.Close()
	logOut.Infow("directory DB online")

	// Log the published count as an early sanity check.
	var published int
	_ = db.Get(&published, `
	    SELECT COUNT(*) FROM directory
	    WHERE published = 1 AND deleted_at IS NULL`)
	logOut.Infow("published directories found", "count", published)

	//
	// ── 3.  GeoIP (optional) ────────────────────────────────────────────
	//
	if cfg.GeoIP.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
			logOut.Warnw("geoip database unavailable", "path", cfg.GeoIP.DBPath, "err", err)
		}
	}

	//
	// ── 4.  Snapshot cache over the store repository ────────────────────
	//
	routing := cfg.RoutingConfig()
	site := cfg.SiteConfig()
	snapshots := snapshot.New(
		store.New(db),
		routing,
		site,
		time.Duration(cfg.Snapshot.TTLSeconds)*time.Second,
	)

	//
	// ── 5.  Router: metrics + directory handler + middleware chain ─────
	//
	handler := web.NewHandler(snapshots, routing, site)

	root := chi.NewRouter()
	root.Handle("/metrics", promhttp.Handler())
	root.Mount("/", handler.Router())

	var h http.Handler = middleware.Security(requestinfo.Enrich(root))
	if cfg.HTTP.ForceHTTPS {
		h = middleware.ForceHTTPS(h)
	}

	//
	// ── 6.  Serve with graceful shutdown ───────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, h, server.Timeouts{
		Read:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		Write: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
		Idle:  time.Duration(cfg.HTTP.IdleTimeoutSeconds) * time.Second,
	})

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logOut.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorw("shutdown", "err", err)
	}
}
