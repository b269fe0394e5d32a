package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("uses the given cap", func(t *testing.T) {
		pool := New("test", 8)
		assert.Equal(t, 8, pool.Cap())
	})

	t.Run("clamps cap below one", func(t *testing.T) {
		pool := New("test", 0)
		assert.Equal(t, 1, pool.Cap())
	})
}

func TestSubmit(t *testing.T) {
	t.Run("runs every submitted task", func(t *testing.T) {
		pool := New("test", 4)
		var ran atomic.Int32

		for i := 0; i < 50; i++ {
			ok := pool.Submit(context.Background(), func(context.Context) {
				ran.Add(1)
			})
			require.True(t, ok)
		}
		pool.Wait()

		assert.Equal(t, int32(50), ran.Load())
	})

	t.Run("never exceeds the concurrency cap", func(t *testing.T) {
		const limit = 5
		pool := New("test", limit)

		var current, peak atomic.Int32
		for i := 0; i < 100; i++ {
			ok := pool.Submit(context.Background(), func(context.Context) {
				n := current.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				current.Add(-1)
			})
			require.True(t, ok)
		}
		pool.Wait()

		assert.LessOrEqual(t, peak.Load(), int32(limit))
		assert.Positive(t, peak.Load())
	})

	t.Run("refuses work after cancellation without running it", func(t *testing.T) {
		pool := New("test", 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran atomic.Int32
		ok := pool.Submit(ctx, func(context.Context) {
			ran.Add(1)
		})
		pool.Wait()

		assert.False(t, ok)
		assert.Equal(t, int32(0), ran.Load())
	})
}

func TestWait(t *testing.T) {
	t.Run("blocks until all tasks finish", func(t *testing.T) {
		pool := New("test", 3)
		var done atomic.Int32

		for i := 0; i < 10; i++ {
			pool.Submit(context.Background(), func(context.Context) {
				time.Sleep(5 * time.Millisecond)
				done.Add(1)
			})
		}
		pool.Wait()

		assert.Equal(t, int32(10), done.Load())
		assert.Equal(t, int64(0), pool.Inflight())
	})
}
