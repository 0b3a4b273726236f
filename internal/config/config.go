package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 刷新策略：scheduled 由 cron 后台刷新、查询只读最近一次快照；ondemand 在每次查询时同步抓取
const (
	RefreshScheduled = "scheduled"
	RefreshOnDemand  = "ondemand"
)

type Config struct {
	AppPort  string
	LogLevel string

	RefreshMode  string
	CronSpec     string
	StartupDelay time.Duration

	FetchTimeout      time.Duration
	FetchMaxRedirects int
	RespectRobotsTxt  bool

	ArticlesPerSource int
	SummaryMaxRunes   int

	SourcesFile string
	Sources     []SourceConfig

	RedisAddr        string
	RedisSnapshotKey string
	RedisSnapshotTTL time.Duration

	APIRateLimit float64
	APIRateBurst int

	BasicAuthUser string
	BasicAuthPass string
}

// Load 读取 .env（可选）与环境变量，未设置时使用默认值
func Load() *Config {
	// .env 不存在是常态，忽略错误
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:  getEnv("APP_PORT", "9000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RefreshMode:  normalizeMode(getEnv("REFRESH_MODE", RefreshScheduled)),
		CronSpec:     getEnv("CRON_SPEC", "*/30 * * * *"),
		StartupDelay: getDuration("STARTUP_DELAY", 0),

		FetchTimeout:      getDuration("FETCH_TIMEOUT", 8*time.Second),
		FetchMaxRedirects: getInt("FETCH_MAX_REDIRECTS", 5),
		RespectRobotsTxt:  getBool("RESPECT_ROBOTS_TXT", false),

		ArticlesPerSource: getInt("ARTICLES_PER_SOURCE", 2),
		SummaryMaxRunes:   getInt("SUMMARY_MAX_RUNES", 200),

		SourcesFile: getEnv("SOURCES_FILE", ""),

		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisSnapshotKey: getEnv("REDIS_SNAPSHOT_KEY", "news:snapshot"),
		RedisSnapshotTTL: getDuration("REDIS_SNAPSHOT_TTL", time.Hour),

		APIRateLimit: getFloat("API_RATE_LIMIT", 20),
		APIRateBurst: getInt("API_RATE_BURST", 40),

		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	cfg.Sources = DefaultSources()
	if cfg.SourcesFile != "" {
		sources, err := LoadSourcesFile(cfg.SourcesFile)
		if err != nil {
			slog.Warn("load sources file failed, falling back to built-in sources", "file", cfg.SourcesFile, "error", err)
		} else {
			cfg.Sources = sources
		}
	}

	slog.Info("config loaded", "port", cfg.AppPort, "mode", cfg.RefreshMode, "cron", cfg.CronSpec, "sources", len(cfg.Sources))
	return cfg
}

func normalizeMode(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case RefreshOnDemand, "on-demand", "on_demand":
		return RefreshOnDemand
	case RefreshScheduled, "":
		return RefreshScheduled
	default:
		slog.Warn("unknown REFRESH_MODE, using default", "value", v, "default", RefreshScheduled)
		return RefreshScheduled
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		warnInvalid(key, v, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		warnInvalid(key, v, def)
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		warnInvalid(key, v, def)
		return def
	}
	return b
}

// getDuration 支持 "8s" 这类写法，也兼容纯数字（按秒计）
func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	warnInvalid(key, v, def)
	return def
}

func warnInvalid(key, value string, def any) {
	slog.Warn("invalid config value, using default", "key", key, "value", value, "default", def)
}
