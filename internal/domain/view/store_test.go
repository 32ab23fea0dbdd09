package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStore_GetExtendsLifetime(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, 0)
	store.now = func() time.Time { return now }

	store.Put(newView("a", "1"))

	now = now.Add(50 * time.Second)
	_, ok := store.Get("a")
	require.True(t, ok)

	now = now.Add(50 * time.Second)
	v, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v.RecordID)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, 0)
	store.now = func() time.Time { return now }

	store.Put(newView("old", "1"))
	now = now.Add(90 * time.Second)
	store.Put(newView("fresh", "2"))

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get("fresh")
	assert.True(t, ok)
}

func TestStore_PutRespectsLimit(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, 2)
	store.now = func() time.Time { return now }

	store.Put(newView("a", "1"))
	now = now.Add(time.Second)
	store.Put(newView("b", "2"))
	now = now.Add(time.Second)

	// "a" is used again, so "b" becomes the oldest.
	_, ok := store.Get("a")
	require.True(t, ok)
	now = now.Add(time.Second)

	store.Put(newView("c", "3"))
	assert.Equal(t, 2, store.Len())

	_, ok = store.Get("b")
	assert.False(t, ok)
	_, ok = store.Get("a")
	assert.True(t, ok)
	_, ok = store.Get("c")
	assert.True(t, ok)
}

func TestStore_PutPrefersExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, 2)
	store.now = func() time.Time { return now }

	store.Put(newView("stale", "1"))
	now = now.Add(90 * time.Second)
	store.Put(newView("live", "2"))
	store.Put(newView("new", "3"))

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("live")
	assert.True(t, ok)
	_, ok = store.Get("new")
	assert.True(t, ok)
}

func TestStore_Run_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewStore(time.Nanosecond, 0)
	store.Put(newView("a", "1"))

	swept := make(chan int, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- store.Run(ctx, time.Millisecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
	}()

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()
	assert.NoError(t, <-done)
}
