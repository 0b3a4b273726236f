package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/LJTian/NewsPulse/internal/collector"
	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/LJTian/NewsPulse/internal/ingest"
	"github.com/LJTian/NewsPulse/internal/logging"
	"github.com/LJTian/NewsPulse/internal/processor"
	"github.com/LJTian/NewsPulse/internal/storage"
)

// 仅执行一轮抓取的命令行入口：结果以 JSON 输出到 stdout，配置了 REDIS_ADDR 时同时写入 Redis。
// -mirror 只读取 Redis 中最近一次的快照，不抓取。
func main() {
	fromMirror := flag.Bool("mirror", false, "print the snapshot currently mirrored in redis instead of scraping")
	flag.Parse()

	os.Exit(run(*fromMirror))
}

// run 返回进程退出码；失败直接 return，保证 defer 的清理都能执行
func run(fromMirror bool) int {
	cfg := config.Load()
	// 日志写 stderr，stdout 只留给 JSON
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mirror *storage.RedisMirror
	if cfg.RedisAddr != "" {
		m, err := storage.DialRedisMirror(ctx, cfg.RedisAddr, cfg.RedisSnapshotKey, cfg.RedisSnapshotTTL)
		if err != nil {
			logger.Warn("redis mirror disabled", "error", err)
		} else {
			mirror = m
			defer mirror.Close()
		}
	}

	var snap storage.Snapshot
	if fromMirror {
		if mirror == nil {
			logger.Error("-mirror requires a reachable REDIS_ADDR")
			return 2
		}
		s, err := mirror.Load(ctx)
		if err != nil {
			logger.Error("load mirrored snapshot failed", "error", err)
			return 1
		}
		snap = s
	} else {
		fetcher := collector.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchMaxRedirects, cfg.RespectRobotsTxt)
		p := processor.NewSimpleProcessor(cfg.SummaryMaxRunes)
		snap = ingest.New(cfg.Sources, fetcher, p, cfg.ArticlesPerSource, logger).Refresh(ctx)

		if mirror != nil {
			if err := mirror.Publish(ctx, snap); err != nil {
				logger.Warn("publish snapshot failed", "error", err)
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		logger.Error("encode snapshot failed", "error", err)
		return 1
	}
	return 0
}
