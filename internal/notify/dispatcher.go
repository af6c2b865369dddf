package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/booking-engine/internal/metrics"
)

// Job is a unit of best-effort background work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs jobs on a fixed pool of workers fed by a bounded queue.
// Dispatch never blocks: when the queue is full the job is dropped and logged.
// Job errors are logged and otherwise ignored.
type Dispatcher struct {
	queue   chan Job
	wg      sync.WaitGroup
	logger  *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(workers, size int, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 100
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		queue:   make(chan Job, size),
		logger:  logger,
		metrics: m,
		timeout: timeout,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.queue {
		d.run(job)
	}
}

func (d *Dispatcher) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("background job panicked", "job", job.Name, "panic", r)
		}
	}()

	if err := job.Run(ctx); err != nil {
		d.logger.Warn("background job failed", "job", job.Name, "err", err)
	}
}

// Dispatch enqueues job and reports whether it was accepted.
func (d *Dispatcher) Dispatch(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropping job", "job", job.Name)
		return false
	}

	select {
	case d.queue <- job:
		return true
	default:
		d.logger.Warn("notify queue full, dropping job", "job", job.Name)
		d.metrics.Dropped()
		return false
	}
}

// Close stops accepting jobs and waits for queued ones until ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
