package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"search.number": 10}
	store := NewConfigStore(seed)
	seed["search.number"] = 99

	assert.Equal(t, 10, store.GetInt("search.number"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"s":      "value",
		"i":      int64(42),
		"f":      float64(7),
		"b":      true,
		"list":   []any{"active", 3, "pending"},
		"strs":   []string{"a", "b"},
		"broken": struct{}{},
	})

	assert.Equal(t, "value", store.GetString("s"))
	assert.Equal(t, 42, store.GetInt("i"))
	assert.Equal(t, 7, store.GetInt("f"))
	assert.True(t, store.GetBool("b"))
	assert.Equal(t, []string{"active", "pending"}, store.GetStringSlice("list"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("strs"))

	assert.Equal(t, "", store.GetString("broken"))
	assert.Equal(t, 0, store.GetInt("broken"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SetAndNoops(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("k", "v"))
	val, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Watch(t *testing.T) {
	store := NewConfigStore(nil)
	ctx, cancel := context.WithCancel(context.Background())

	changed := make(chan struct{}, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Watch(ctx, func() { changed <- struct{}{} })
	}()

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return len(store.watchers) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Set("search.number", 5))
	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("watcher not notified")
	}

	cancel()
	<-done
	store.mu.RLock()
	assert.Empty(t, store.watchers)
	store.mu.RUnlock()
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore(nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("n", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("n")
		}()
	}
	wg.Wait()
}
