package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMirror 把每轮完成的快照以 JSON 写入 Redis，供其它进程读取最新结果。
// 只是一份带 TTL 的副本，不做历史归档。
type RedisMirror struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

var _ Publisher = (*RedisMirror)(nil)

// ErrNoMirroredSnapshot Redis 中没有快照（未写入或已过期）
var ErrNoMirroredSnapshot = errors.New("no mirrored snapshot")

func NewRedisMirror(client *redis.Client, key string, ttl time.Duration) *RedisMirror {
	if key == "" {
		key = "news:snapshot"
	}
	return &RedisMirror{client: client, key: key, ttl: ttl}
}

// DialRedisMirror 连接 Redis；ping 失败只返回错误，由调用方决定是否继续
func DialRedisMirror(ctx context.Context, addr, key string, ttl time.Duration) (*RedisMirror, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewRedisMirror(rdb, key, ttl), nil
}

// Publish pending 快照没有意义，直接跳过
func (m *RedisMirror) Publish(ctx context.Context, snap Snapshot) error {
	if snap.Status == StatusPending {
		return nil
	}
	bs, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := m.client.Set(ctx, m.key, bs, m.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", m.key, err)
	}
	return nil
}

// Load 读取最近一次写入的快照
func (m *RedisMirror) Load(ctx context.Context) (Snapshot, error) {
	bs, err := m.client.Get(ctx, m.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNoMirroredSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis get %s: %w", m.key, err)
	}
	return decodeSnapshot(bs)
}

func (m *RedisMirror) Close() error {
	return m.client.Close()
}

func encodeSnapshot(snap Snapshot) ([]byte, error) {
	bs, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return bs, nil
}

func decodeSnapshot(bs []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(bs, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	switch snap.Status {
	case StatusPending, StatusEmpty, StatusReady:
	default:
		return Snapshot{}, fmt.Errorf("decode snapshot: unknown status %q", snap.Status)
	}
	return snap, nil
}
