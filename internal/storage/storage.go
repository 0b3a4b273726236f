package storage

import (
	"context"
	"sync/atomic"
)

// Provider 查询层读取快照的入口；scheduled 模式由 MemoryStore 实现，ondemand 模式由 ingest.OnDemand 实现
type Provider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// Publisher 接收一轮抓取完成后的快照
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// MemoryStore 进程内的快照容器：pending -> 每轮抓取后整体替换。
// 读写通过 atomic.Pointer 完成，读者永远看到某一轮的完整结果。
type MemoryStore struct {
	current atomic.Pointer[Snapshot]
}

var (
	_ Provider  = (*MemoryStore)(nil)
	_ Publisher = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	pending := PendingSnapshot()
	s.current.Store(&pending)
	return s
}

func (s *MemoryStore) Snapshot(_ context.Context) (Snapshot, error) {
	return *s.current.Load(), nil
}

// Publish 原子替换当前快照
func (s *MemoryStore) Publish(_ context.Context, snap Snapshot) error {
	s.Replace(snap)
	return nil
}

func (s *MemoryStore) Replace(snap Snapshot) {
	s.current.Store(&snap)
}

// Current 不带 context 的便捷读取，给健康检查使用
func (s *MemoryStore) Current() Snapshot {
	return *s.current.Load()
}
