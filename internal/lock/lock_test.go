package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotKey(t *testing.T) {
	assert.Equal(t, "booking:bot:0", BotKey(0))
	assert.Equal(t, "booking:bot:42", BotKey(42))
}

func exercisesMutualExclusion(t *testing.T, l Locker) {
	t.Helper()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "k")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}

func TestLocalLocker_MutualExclusion(t *testing.T) {
	l := NewLocalLocker(5 * time.Second)
	exercisesMutualExclusion(t, l)
	assert.Equal(t, 0, l.size())
}

func TestLocalLocker_Timeout(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, ErrLockTimeout)

	// other keys are independent
	other, err := l.Lock(context.Background(), "other")
	require.NoError(t, err)
	other()

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	again()
	assert.Equal(t, 0, l.size())
}

func TestLocalLocker_CallerCancel(t *testing.T) {
	l := NewLocalLocker(time.Second)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	_, client := newRedis(t)
	exercisesMutualExclusion(t, NewRedisLocker(client, 5*time.Second, 5*time.Second, nil))
}

func TestRedisLocker_TimeoutAndRelease(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, 5*time.Second, 60*time.Millisecond, nil)

	unlock, err := l.Lock(context.Background(), BotKey(1))
	require.NoError(t, err)
	assert.True(t, mr.Exists(BotKey(1)))

	_, err = l.Lock(context.Background(), BotKey(1))
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()
	assert.False(t, mr.Exists(BotKey(1)))

	again, err := l.Lock(context.Background(), BotKey(1))
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ReleaseKeepsForeignOwner(t *testing.T) {
	mr, client := newRedis(t)
	l := NewRedisLocker(client, time.Second, 50*time.Millisecond, nil)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// the TTL lapses and another process takes the key
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("k", "someone-else"))

	unlock()
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestNewRedisClient_BadAddress(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
