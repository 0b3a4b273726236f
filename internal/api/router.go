package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/LJTian/NewsPulse/internal/logging"
	"github.com/LJTian/NewsPulse/internal/storage"
	"github.com/gin-gonic/gin"
)

// statusReporter 可以不触发抓取就读出当前快照的 Provider（MemoryStore）
type statusReporter interface {
	Current() storage.Snapshot
}

type Server struct {
	provider storage.Provider
	mode     string
	logger   *slog.Logger
}

func NewServer(provider storage.Provider, mode string, logger *slog.Logger) *Server {
	return &Server{provider: provider, mode: mode, logger: logging.OrDefault(logger)}
}

// NewRouter 创建 gin 引擎：panic 统一转成 500 {message, error}
func NewRouter(logger *slog.Logger, middleware ...gin.HandlerFunc) *gin.Engine {
	logger = logging.OrDefault(logger)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic while serving request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   fmt.Sprint(recovered),
		})
	}))
	r.Use(middleware...)
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	news := r.Group("/news")
	{
		news.GET("", s.listNews)
		news.GET("/topic/:topic", s.listByTopic)
		news.GET("/source/:source", s.listBySource)
	}
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "ok", "mode": s.mode}
	if sr, ok := s.provider.(statusReporter); ok {
		snap := sr.Current()
		resp["snapshot"] = snap.Status
		resp["articles"] = len(snap.Articles)
		if !snap.RefreshedAt.IsZero() {
			resp["refreshedAt"] = snap.RefreshedAt
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) listNews(c *gin.Context) {
	s.respond(c, "Error fetching news", func(snap storage.Snapshot) storage.Snapshot {
		return snap
	})
}

func (s *Server) listByTopic(c *gin.Context) {
	topic := c.Param("topic")
	s.respond(c, "Error fetching news by topic", func(snap storage.Snapshot) storage.Snapshot {
		return snap.ByTopic(topic)
	})
}

func (s *Server) listBySource(c *gin.Context) {
	source := c.Param("source")
	s.respond(c, "Error fetching news by source", func(snap storage.Snapshot) storage.Snapshot {
		return snap.BySource(source)
	})
}

// respond 快照不可用时原样返回提示对象，可用时返回文章数组
func (s *Server) respond(c *gin.Context, failMsg string, view func(storage.Snapshot) storage.Snapshot) {
	snap, err := s.provider.Snapshot(c.Request.Context())
	if err != nil {
		s.logger.Error(failMsg, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": failMsg,
			"error":   err.Error(),
		})
		return
	}

	snap = view(snap)
	if !snap.Available() {
		c.JSON(http.StatusOK, gin.H{
			"message": snap.Message(),
			"status":  snap.Status,
		})
		return
	}
	c.JSON(http.StatusOK, snap.Articles)
}
