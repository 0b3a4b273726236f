package processor

import (
	"strings"
	"time"

	"github.com/LJTian/NewsPulse/internal/collector"
)

const (
	untitledPlaceholder    = "Untitled Article"
	defaultSummaryMaxRunes = 200
	summaryEllipsis        = "..."
)

// Article 对外输出的新闻条目，创建后不再修改
type Article struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Topic     Topic     `json:"topic"`
	Sentiment float64   `json:"sentiment"`
	Entities  Entities  `json:"entities"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url,omitempty"`
}

// SimpleProcessor 把候选条目加工成 Article：标题/摘要兜底、主题、情感、实体
type SimpleProcessor struct {
	summaryMaxRunes int
	now             func() time.Time
}

func NewSimpleProcessor(summaryMaxRunes int) *SimpleProcessor {
	if summaryMaxRunes <= 0 {
		summaryMaxRunes = defaultSummaryMaxRunes
	}
	return &SimpleProcessor{
		summaryMaxRunes: summaryMaxRunes,
		now:             time.Now,
	}
}

// WithClock 测试时固定时间
func (p *SimpleProcessor) WithClock(now func() time.Time) *SimpleProcessor {
	cp := *p
	cp.now = now
	return &cp
}

func (p *SimpleProcessor) Process(source string, items []collector.Candidate) []Article {
	out := make([]Article, 0, len(items))
	for _, it := range items {
		if a, ok := p.enrich(source, it); ok {
			out = append(out, a)
		}
	}
	return out
}

func (p *SimpleProcessor) enrich(source string, it collector.Candidate) (Article, bool) {
	title := strings.TrimSpace(it.Title)
	body := strings.TrimSpace(it.Body)
	if title == "" && body == "" {
		return Article{}, false
	}

	// 正文优先用于分析，没有正文时退回标题
	text := body
	if text == "" {
		text = title
	}

	summary := title
	if body != "" {
		summary = truncateRunes(body, p.summaryMaxRunes)
	}
	if title == "" {
		title = untitledPlaceholder
	}

	return Article{
		Source:    source,
		Title:     title,
		Summary:   summary,
		Topic:     ClassifyTopic(text),
		Sentiment: ScoreSentiment(text),
		Entities:  ExtractEntities(text),
		Timestamp: p.now().UTC(),
		URL:       it.URL,
	}, true
}

// truncateRunes 按 rune 截断，超长时追加省略号
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return strings.TrimSpace(string(rs[:limit])) + summaryEllipsis
}
