package console

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/productdesk/internal/catalog/controller"
)

func newTestStore(remote *memRemote) *Store {
	return NewStore(func() *controller.ListController {
		return controller.New(controller.Config{Remote: remote})
	}, time.Hour, nil)
}

func TestStoreSharesFirstLoad(t *testing.T) {
	remote := seeded()
	remote.gate = make(chan struct{})
	store := newTestStore(remote)

	var wg sync.WaitGroup
	results := make([]*controller.ListController, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.Get(context.Background(), "sess-1")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(remote.gate)
	wg.Wait()

	assert.Equal(t, 1, remote.listCalls)
	for _, ctl := range results {
		assert.Same(t, results[0], ctl)
		assert.Equal(t, controller.Ready, ctl.State())
	}
}

func TestStoreSeparatesSessions(t *testing.T) {
	remote := seeded()
	store := newTestStore(remote)

	a := store.Get(context.Background(), "a")
	b := store.Get(context.Background(), "b")

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, remote.listCalls)
	assert.Equal(t, 2, store.Len())
}

func TestStoreReloadReplacesWorkspace(t *testing.T) {
	remote := seeded()
	store := newTestStore(remote)
	first := store.Get(context.Background(), "a")
	first.RequestNewRow()

	second := store.Reload(context.Background(), "a")

	assert.NotSame(t, first, second)
	assert.False(t, second.HasPending())
	assert.Equal(t, 2, remote.listCalls)
}

func TestStoreSweepDropsIdle(t *testing.T) {
	store := newTestStore(seeded())
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	store.Get(context.Background(), "old")
	now = now.Add(30 * time.Minute)
	store.Get(context.Background(), "fresh")
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}
