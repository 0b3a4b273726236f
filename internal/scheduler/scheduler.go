package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/LJTian/NewsPulse/internal/logging"
	"github.com/LJTian/NewsPulse/internal/storage"
	"github.com/robfig/cron/v3"
)

const publishTimeout = 5 * time.Second

// Refresher 执行一轮完整抓取
type Refresher interface {
	Refresh(ctx context.Context) storage.Snapshot
}

// Scheduler 按 cron 周期刷新快照，并把结果交给各个 Publisher（内存快照、Redis 副本）
type Scheduler struct {
	cron         *cron.Cron
	refresher    Refresher
	publishers   []storage.Publisher
	startupDelay time.Duration
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	running sync.Mutex
	wg      sync.WaitGroup
	timer   *time.Timer
	mu      sync.Mutex
}

func New(spec string, startupDelay time.Duration, r Refresher, logger *slog.Logger, publishers ...storage.Publisher) (*Scheduler, error) {
	c := cron.New()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:         c,
		refresher:    r,
		publishers:   publishers,
		startupDelay: startupDelay,
		logger:       logging.OrDefault(logger),
		ctx:          ctx,
		cancel:       cancel,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// Start 启动 cron，并立即（或延迟 startupDelay 后）执行首轮抓取
func (s *Scheduler) Start() {
	s.cron.Start()

	s.wg.Add(1)
	first := func() {
		defer s.wg.Done()
		s.runOnce()
	}
	if s.startupDelay <= 0 {
		go first()
		return
	}

	s.mu.Lock()
	s.timer = time.AfterFunc(s.startupDelay, first)
	s.mu.Unlock()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

// runOnce 上一轮未结束时直接跳过，不排队也不重试
func (s *Scheduler) runOnce() {
	if !s.running.TryLock() {
		s.logger.Warn("previous refresh still running, skip this tick")
		return
	}
	defer s.running.Unlock()

	if s.ctx.Err() != nil {
		return
	}

	s.logger.Info("start refresh job")
	snap := s.refresher.Refresh(s.ctx)
	if s.ctx.Err() != nil {
		// 关闭过程中被取消的结果不完整，不发布
		s.logger.Info("refresh canceled, result discarded")
		return
	}

	for _, p := range s.publishers {
		ctx, cancel := context.WithTimeout(s.ctx, publishTimeout)
		if err := p.Publish(ctx, snap); err != nil {
			s.logger.Warn("publish snapshot failed", "error", err)
		}
		cancel()
	}
	s.logger.Info("refresh job done", "status", snap.Status, "articles", len(snap.Articles))
}

// Stop 停止 cron、取消进行中的抓取，并等待任务退出或 ctx 到期
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil && s.timer.Stop() {
		// 首轮尚未开始
		s.wg.Done()
	}
	s.mu.Unlock()

	s.cancel()
	cronDone := s.cron.Stop().Done()

	done := make(chan struct{})
	go func() {
		<-cronDone
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
