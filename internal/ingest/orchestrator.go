package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/LJTian/NewsPulse/internal/collector"
	"github.com/LJTian/NewsPulse/internal/config"
	"github.com/LJTian/NewsPulse/internal/logging"
	"github.com/LJTian/NewsPulse/internal/processor"
	"github.com/LJTian/NewsPulse/internal/storage"
)

const defaultArticlesPerSource = 2

// Report 单个站点在一轮抓取中的结果
type Report struct {
	Source     string
	Candidates int
	Articles   []processor.Article
	Err        error
	Elapsed    time.Duration
}

// Orchestrator 驱动一轮完整抓取：并发下载各站点 -> 抽取 -> 加工 -> 汇总排序
type Orchestrator struct {
	sources   []config.SourceConfig
	fetcher   collector.Fetcher
	processor *processor.SimpleProcessor
	perSource int
	logger    *slog.Logger
	now       func() time.Time
}

func New(sources []config.SourceConfig, fetcher collector.Fetcher, p *processor.SimpleProcessor, perSource int, logger *slog.Logger) *Orchestrator {
	if perSource <= 0 {
		perSource = defaultArticlesPerSource
	}
	return &Orchestrator{
		sources:   sources,
		fetcher:   fetcher,
		processor: p,
		perSource: perSource,
		logger:    logging.OrDefault(logger),
		now:       time.Now,
	}
}

// Refresh 执行一轮抓取。单个站点失败只会让该站点贡献 0 条，不影响其它站点；
// 所有站点结束（成功、失败或各自超时）后才汇总，按时间倒序返回。
func (o *Orchestrator) Refresh(ctx context.Context) storage.Snapshot {
	reports := o.RunSources(ctx)

	var all []processor.Article
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
		}
		all = append(all, r.Articles...)
	}

	sortNewestFirst(all)
	snap := storage.NewSnapshot(all, o.now().UTC())

	o.logger.Info("refresh complete",
		"sources", len(reports),
		"failed", failed,
		"articles", len(all),
		"status", snap.Status,
	)
	return snap
}

// RunSources 并发处理所有站点，结果按配置顺序返回
func (o *Orchestrator) RunSources(ctx context.Context) []Report {
	reports := make([]Report, len(o.sources))

	var wg sync.WaitGroup
	for i, src := range o.sources {
		wg.Add(1)
		go func(i int, src config.SourceConfig) {
			defer wg.Done()
			reports[i] = o.runSource(ctx, src)
		}(i, src)
	}
	wg.Wait()

	return reports
}

func (o *Orchestrator) runSource(ctx context.Context, src config.SourceConfig) (report Report) {
	start := time.Now()
	report.Source = src.Name
	defer func() {
		// 抽取/加工中的意外 panic 也只影响当前站点
		if rec := recover(); rec != nil {
			report.Articles = nil
			report.Err = fmt.Errorf("source %s: panic: %v", src.Name, rec)
		}
		report.Elapsed = time.Since(start)
		o.logReport(report)
	}()

	o.logger.Debug("fetch source", "source", src.Name, "url", src.URL)
	html, err := o.fetcher.Fetch(ctx, src)
	if err != nil {
		report.Err = err
		return report
	}

	candidates, err := collector.Extract(html, src.Selectors, src.BaseURL, o.perSource)
	if err != nil {
		report.Err = fmt.Errorf("source %s: %w", src.Name, err)
		return report
	}
	report.Candidates = len(candidates)
	report.Articles = o.processor.Process(src.Name, candidates)
	return report
}

func (o *Orchestrator) logReport(r Report) {
	if r.Err != nil {
		o.logger.Warn("source failed", "source", r.Source, "elapsed", r.Elapsed, "error", r.Err)
		return
	}
	if len(r.Articles) == 0 {
		o.logger.Info("source yielded no articles", "source", r.Source, "elapsed", r.Elapsed)
		return
	}
	o.logger.Info("source done", "source", r.Source, "articles", len(r.Articles), "elapsed", r.Elapsed)
}

// sortNewestFirst 时间相同的保持原有（站点配置）顺序
func sortNewestFirst(articles []processor.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Timestamp.After(articles[j].Timestamp)
	})
}

// OnDemand ondemand 模式下的快照来源：每次查询同步执行一轮抓取，不保留任何共享缓存
type OnDemand struct {
	orchestrator *Orchestrator
}

var _ storage.Provider = (*OnDemand)(nil)

func NewOnDemand(o *Orchestrator) *OnDemand {
	return &OnDemand{orchestrator: o}
}

func (d *OnDemand) Snapshot(ctx context.Context) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}
	return d.orchestrator.Refresh(ctx), nil
}
