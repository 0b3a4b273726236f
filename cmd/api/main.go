package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LJTian/NewsPulse/internal/api"
	"github.com/LJTian/NewsPulse/internal/collector"
	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/LJTian/NewsPulse/internal/ingest"
	"github.com/LJTian/NewsPulse/internal/logging"
	"github.com/LJTian/NewsPulse/internal/processor"
	"github.com/LJTian/NewsPulse/internal/scheduler"
	"github.com/LJTian/NewsPulse/internal/storage"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := collector.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchMaxRedirects, cfg.RespectRobotsTxt)
	p := processor.NewSimpleProcessor(cfg.SummaryMaxRunes)
	orch := ingest.New(cfg.Sources, fetcher, p, cfg.ArticlesPerSource, logger)

	// 两种刷新策略只选其一：scheduled 读内存快照，ondemand 每次查询同步抓取
	var (
		provider storage.Provider
		sched    *scheduler.Scheduler
		mirror   *storage.RedisMirror
	)
	switch cfg.RefreshMode {
	case config.RefreshOnDemand:
		provider = ingest.NewOnDemand(orch)
	default:
		store := storage.NewMemoryStore()
		publishers := []storage.Publisher{store}
		if cfg.RedisAddr != "" {
			m, err := storage.DialRedisMirror(ctx, cfg.RedisAddr, cfg.RedisSnapshotKey, cfg.RedisSnapshotTTL)
			if err != nil {
				logger.Warn("redis mirror disabled", "error", err)
			} else {
				mirror = m
				publishers = append(publishers, m)
			}
		}

		s, err := scheduler.New(cfg.CronSpec, cfg.StartupDelay, orch, logger, publishers...)
		if err != nil {
			log.Fatalf("init scheduler failed: %v", err)
		}
		s.Start()
		sched = s
		provider = store
	}

	middleware := []gin.HandlerFunc{api.RateLimitMiddleware(cfg.APIRateLimit, cfg.APIRateBurst)}
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		middleware = append(middleware, api.BasicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}
	r := api.NewRouter(logger, middleware...)
	api.NewServer(provider, cfg.RefreshMode, logger).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting api server", "addr", srv.Addr, "mode", cfg.RefreshMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server exit: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Warn("scheduler stop", "error", err)
		}
	}
	if mirror != nil {
		_ = mirror.Close()
	}
}
