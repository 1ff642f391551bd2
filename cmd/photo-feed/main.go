package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-photo-feed/internal/auth"
	"github.com/pribylovaa/go-photo-feed/internal/cache"
	"github.com/pribylovaa/go-photo-feed/internal/config"
	"github.com/pribylovaa/go-photo-feed/internal/search"
	"github.com/pribylovaa/go-photo-feed/internal/service"
	"github.com/pribylovaa/go-photo-feed/internal/storage/minio"
	"github.com/pribylovaa/go-photo-feed/internal/storage/mongo"
	feedhttp "github.com/pribylovaa/go-photo-feed/internal/transport/http"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting photo-feed", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := mongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		log.Error("mongo_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("mongo_connected")

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := store.Close(closeCtx); cerr != nil {
			log.Warn("mongo_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
	images, err := minio.New(s3Ctx, cfg)
	s3Cancel()
	if err != nil {
		log.Error("minio_connect_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("minio_connected")

	// Redis-кэш счётчиков лайков опционален: пустой URL отключает его,
	// выборки счётчика идут напрямую в хранилище.
	var likeCache cache.LikeCountCache
	if cfg.Cache.URL != "" {
		likeCache, err = cache.NewRedisCache(cfg.Cache.URL, "")
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		log.Info("redis_connected")

		defer func() {
			if cerr := likeCache.Close(); cerr != nil {
				log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()
	}

	searcher := search.New(&http.Client{Timeout: 15 * time.Second}, cfg.Search)
	validator := auth.NewValidator(cfg.Auth)

	svc := service.New(store, images, likeCache, *cfg)
	log.Info("service_initialized")

	apiHandler := feedhttp.NewRouter(svc, searcher, validator, feedhttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		BasePath: "",
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("photo_feed_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
