package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	// ErrStopped is returned by Submit once Stop has been called.
	ErrStopped = errors.New("worker: pool stopped")
	// ErrQueueFull is returned by Submit when queueSize tasks are already waiting.
	ErrQueueFull = errors.New("worker: queue full")
)

// queueSize 等待中的任務上限；Submit 不會阻塞呼叫端
const queueSize = 64

// Task represents a unit of work executed by the pool. The context is
// cancelled when the pool stops.
type Task func(ctx context.Context)

// Pool defines a simple worker pool.
type Pool interface {
	Submit(Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1. Panics inside a
// task are recovered and logged.
func NewPool(n int, logger logrus.FieldLogger) Pool {
	if n <= 0 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{jobs: make(chan Task, queueSize), ctx: ctx, cancel: cancel, log: logger}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    logrus.FieldLogger

	mu      sync.RWMutex
	stopped bool
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.WithField("panic", r).Error("worker task panicked")
		}
	}()
	job(p.ctx)
}

func (p *pool) Submit(t Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop waits for queued tasks to finish, then cancels the task context.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
	p.cancel()
}
