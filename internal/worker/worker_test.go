package worker

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3, nil)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(func(ctx context.Context) {
			require.NoError(t, ctx.Err())
			mu.Lock()
			count++
			mu.Unlock()
		}))
	}
	require.NoError(t, p.Submit(nil))
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0, nil)
	done := false
	require.NoError(t, p.Submit(func(context.Context) { done = true }))
	p.Stop()
	require.True(t, done)
}

func TestPoolStopped(t *testing.T) {
	p := NewPool(1, nil)
	p.Stop()
	p.Stop()
	require.ErrorIs(t, p.Submit(func(context.Context) {}), ErrStopped)
}

func TestPoolRecoversPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := NewPool(1, logger)
	require.NoError(t, p.Submit(func(context.Context) { panic("boom") }))
	ran := false
	require.NoError(t, p.Submit(func(context.Context) { ran = true }))
	p.Stop()

	require.True(t, ran)
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Equal(t, "boom", hook.LastEntry().Data["panic"])
}

func TestPoolSubmitDoesNotBlock(t *testing.T) {
	p := NewPool(1, nil)
	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func(context.Context) {
		close(started)
		<-release
	}))
	<-started

	var mu sync.Mutex
	ran := 0
	for i := 0; i < queueSize; i++ {
		require.NoError(t, p.Submit(func(context.Context) {
			mu.Lock()
			ran++
			mu.Unlock()
		}))
	}
	require.ErrorIs(t, p.Submit(func(context.Context) {}), ErrQueueFull)

	close(release)
	p.Stop()
	require.Equal(t, queueSize, ran)
}
