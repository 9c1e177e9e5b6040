package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisTurnRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisTurnRateLimiter
		if !l.Allow("session-1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty session rejected", func(t *testing.T) {
		l := &redisTurnRateLimiter{
			client: &mockRedisEvaler{result: 1},
			window: time.Minute,
			max:    30,
			prefix: "chat:rl:",
		}
		if l.Allow("   ") {
			t.Fatalf("expected empty session id to be rejected")
		}
	})

	t.Run("allow within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 5}
		l := &redisTurnRateLimiter{
			client: mock,
			window: time.Minute,
			max:    30,
			prefix: "chat:rl:",
		}
		if !l.Allow("session-1") {
			t.Fatalf("expected allow when count within max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "chat:rl:session-1" {
			t.Fatalf("unexpected redis key: %v", mock.lastKeys)
		}
	})

	t.Run("deny above max", func(t *testing.T) {
		l := &redisTurnRateLimiter{
			client: &mockRedisEvaler{result: 31},
			window: time.Minute,
			max:    30,
			prefix: "chat:rl:",
		}
		if l.Allow("session-1") {
			t.Fatalf("expected deny above max")
		}
	})

	t.Run("redis error fails open", func(t *testing.T) {
		l := &redisTurnRateLimiter{
			client: &mockRedisEvaler{err: errors.New("redis down")},
			window: time.Minute,
			max:    30,
			prefix: "chat:rl:",
		}
		if !l.Allow("session-1") {
			t.Fatalf("expected fail-open on redis error")
		}
	})
}
