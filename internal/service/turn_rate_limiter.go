package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTurnAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

// TurnRateLimiter limita turnos de chat por sesion. Un limiter nil
// permite todo (fail-open).
type TurnRateLimiter interface {
	Allow(sessionID string) bool
}

type redisTurnRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisTurnRateLimiter(client *redis.Client, window time.Duration, max int) TurnRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisTurnRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "chat:rl:",
	}
}

func (l *redisTurnRateLimiter) Allow(sessionID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := strings.TrimSpace(sessionID)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	count, err := l.client.Eval(ctx, redisTurnAllowScript, []string{l.prefix + key}, seconds).Int64()
	if err != nil {
		// Si redis falla no bloqueamos la practica del estudiante.
		return true
	}
	return count <= int64(l.max)
}
