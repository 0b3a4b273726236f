package storage

import (
	"strings"
	"time"

	"github.com/LJTian/NewsPulse/internal/processor"
)

// Status 快照状态：pending 表示还没有完成过任何一轮抓取；empty 表示抓取完成但一条都没拿到
type Status string

const (
	StatusPending Status = "pending"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// Snapshot 一轮抓取的完整结果，按时间倒序；整体替换，不做局部修改
type Snapshot struct {
	Status      Status              `json:"status"`
	Articles    []processor.Article `json:"articles"`
	RefreshedAt time.Time           `json:"refreshedAt"`
}

// PendingSnapshot 启动后尚未完成首轮抓取时的快照
func PendingSnapshot() Snapshot {
	return Snapshot{Status: StatusPending}
}

// NewSnapshot 根据文章数量确定状态
func NewSnapshot(articles []processor.Article, refreshedAt time.Time) Snapshot {
	if len(articles) == 0 {
		return Snapshot{Status: StatusEmpty, RefreshedAt: refreshedAt}
	}
	return Snapshot{Status: StatusReady, Articles: articles, RefreshedAt: refreshedAt}
}

// Available 只有 ready 状态才能当作列表使用
func (s Snapshot) Available() bool {
	return s.Status == StatusReady
}

// Message 不可用时返回给调用方的提示
func (s Snapshot) Message() string {
	switch s.Status {
	case StatusPending:
		return "News is being fetched, please try again in a few seconds"
	case StatusEmpty:
		return "No news could be fetched from any source, please try again later"
	default:
		return ""
	}
}

// ByTopic 按主题过滤（大小写不敏感）；不可用的快照原样返回
func (s Snapshot) ByTopic(topic string) Snapshot {
	return s.filter(func(a processor.Article) string { return string(a.Topic) }, topic)
}

// BySource 按来源过滤（大小写不敏感）；不可用的快照原样返回
func (s Snapshot) BySource(source string) Snapshot {
	return s.filter(func(a processor.Article) string { return a.Source }, source)
}

func (s Snapshot) filter(field func(processor.Article) string, want string) Snapshot {
	if !s.Available() {
		return s
	}
	out := make([]processor.Article, 0)
	for _, a := range s.Articles {
		if strings.EqualFold(field(a), want) {
			out = append(out, a)
		}
	}
	// 过滤结果为空仍然是 ready：调用方拿到空数组而不是提示信息
	return Snapshot{Status: StatusReady, Articles: out, RefreshedAt: s.RefreshedAt}
}
