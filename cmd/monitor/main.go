package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/collector"
	"BCVMonitor/internal/config"
	"BCVMonitor/internal/dashboard"
	"BCVMonitor/internal/logger"
	"BCVMonitor/internal/normalizer"
	"BCVMonitor/internal/notifier"
	"BCVMonitor/internal/server"
	"BCVMonitor/internal/store"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("BCV monitor starting...")
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("init cache: %v", err)
	}
	defer st.Close()
	log.WithField("backend", cfg.Cache.Backend).Info("cache ready")

	// Backend: direct scrape, fixed baselines, failures masked by the fallback table.
	direct := collector.NewDirectRoute(cfg.Source.PageURL, cfg.Proxy, cfg.Source.DirectTimeout, cfg.Source.RatePerMinute)
	backend := collector.NewCollector(collector.Lenient{Route: direct, Logger: log}, normalizer.New(), log)

	// Dashboard: backend when same-origin, then the relays in order.
	sel := &collector.Selector{
		SameOrigin: *cfg.Source.SameOrigin,
		Accept:     collector.Usable,
		Logger:     log,
	}
	if cfg.Source.BackendURL != "" {
		sel.Backend = collector.NewBackendRoute(cfg.Source.BackendURL, cfg.Proxy, cfg.Source.Timeout)
	}
	for _, r := range cfg.Source.Relays {
		sel.Relays = append(sel.Relays, collector.NewRelayRoute(r.Name, r.Template, cfg.Source.PageURL, cfg.Proxy, cfg.Source.Timeout))
	}
	for _, r := range sel.Routes() {
		log.WithField("route", r.Name()).Info("data route enabled")
	}

	dashNorm := normalizer.New()
	cache := store.NewCache(st, cfg.Dashboard.CacheTTL, log)
	ctrl := dashboard.NewController(collector.NewCollector(sel, dashNorm, log), cache, dashNorm, cfg.Dashboard.RefreshInterval, log)
	dashNorm.Baseline = &normalizer.LastRecordBaseline{Last: ctrl.LastRecord, Fixed: normalizer.FixedBaseline(normalizer.DefaultPrevious)}
	if !*cfg.Dashboard.AutoRefresh {
		ctrl.SetAutoRefresh(false)
	}

	hub := server.NewHub(log)
	ctrl.AddSink(hub)

	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		ctrl.AddSink(tn)
		go tn.StartPolling(ctx, notifier.Commands(ctrl))
		log.Info("telegram polling started")
	}

	srv := server.New(ctx, backend, ctrl, st, hub, log).HTTPServer(cfg.Server.Addr)
	// Bind before the first fetch so a same-origin backend route is reachable.
	if _, err := listenAndServe(srv, log); err != nil {
		log.Fatalf("listen on %s: %v", cfg.Server.Addr, err)
	}

	go ctrl.Start(ctx)

	log.Info("BCV monitor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}
	hub.Close()
	ctrl.Stop()
	log.Info("BCV monitor stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (store.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendFile:
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.FilePath), 0755); err != nil {
			return nil, err
		}
		return store.NewFileStore(cfg.Cache.FilePath), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.SQLitePath), 0755); err != nil {
			return nil, err
		}
		return store.NewSQLiteStore(cfg.Cache.SQLitePath, log)
	case config.BackendRedis:
		return store.NewRedisStore(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

// listenAndServe binds srv.Addr synchronously and serves in the background.
// The returned address accepts connections as soon as it is returned.
func listenAndServe(srv *http.Server, log logrus.FieldLogger) (net.Addr, error) {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, err
	}
	go func() {
		log.WithField("addr", ln.Addr().String()).Info("http server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()
	return ln.Addr(), nil
}
