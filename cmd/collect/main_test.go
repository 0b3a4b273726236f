package main

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRunMirrorWithoutRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	if code := run(true); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestRunMirrorExitCodes(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("REDIS_SNAPSHOT_KEY", "news:collect-test")

	// 还没有快照
	if code := run(true); code != 1 {
		t.Fatalf("exit code without snapshot = %d, want 1", code)
	}

	if err := mr.Set("news:collect-test", `{"status":"empty","articles":null,"refreshedAt":"2024-03-01T10:00:00Z"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if code := run(true); code != 0 {
		t.Fatalf("exit code with snapshot = %d, want 0", code)
	}
}
