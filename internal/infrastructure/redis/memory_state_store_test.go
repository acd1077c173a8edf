package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore_SingleUse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStateStore()
	require.NoError(t, s.Save(ctx, "abc", time.Minute))

	ok, err := s.Consume(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Consume(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = s.Consume(ctx, "nunca-emitido")
	assert.False(t, ok)
}

func TestMemoryStateStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStateStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "viejo", time.Minute))
	now = now.Add(2 * time.Minute)

	ok, err := s.Consume(ctx, "viejo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "a", time.Minute))
	require.NoError(t, s.Save(ctx, "b", time.Second))
	now = now.Add(10 * time.Second)
	require.NoError(t, s.Save(ctx, "c", time.Minute))
	assert.Len(t, s.expires, 2, "b vencido se purga al guardar")
}

func TestMemoryStateStore_ConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStateStore()
	require.NoError(t, s.Save(ctx, "race", time.Minute))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.Consume(ctx, "race"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
