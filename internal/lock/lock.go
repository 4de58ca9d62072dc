// Package lock serializes booking writes per bot.
package lock

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// ErrLockTimeout means another writer held the key for longer than the
// caller was willing to wait.
var ErrLockTimeout = errors.New("lock: timed out waiting for key")

// Locker hands out exclusive ownership of a key. The returned unlock func is
// safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func BotKey(botID uint) string {
	return "booking:bot:" + strconv.FormatUint(uint64(botID), 10)
}

func withWait(ctx context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if wait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, wait)
}

func waitErr(parent, ctx context.Context) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrLockTimeout
	}
	return ctx.Err()
}
