/*
Package worker provides a worker pool for concurrent task processing
with rate limiting, context cancellation and an optional synchronous
mode that runs every task inline on submission.

Pools are usually obtained through a Registry, which creates and starts
one pool per name so different parts of the application can share it:

	reg := worker.NewRegistry()
	pool, err := reg.Get(ctx, "shots", worker.Config{Workers: 4})

	pool.Submit(worker.Task{
		ID: 1,
		Execute: func(ctx context.Context) (worker.Result, error) {
			return worker.Result{ID: 1, Data: "processed"}, nil
		},
	})

	// Wait for results, collecting per-task errors
	results, errs := pool.WaitSafe()
*/
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Task represents a unit of work to be processed by the worker pool
type Task struct {
	// ID uniquely identifies the task
	ID int

	// Execute is the function that performs the actual work
	// It receives a context for cancellation support
	Execute func(context.Context) (Result, error)
}

// Result represents the output of a processed task
type Result struct {
	// ID matches the task ID that produced this result
	ID int

	// Data holds the actual result data
	Data interface{}

	// order is used internally to maintain submission order
	order int
}

// Config holds the configuration for the worker pool
type Config struct {
	// Workers is the number of concurrent workers; ignored when
	// Synchronous is set
	Workers int

	// RateLimit is the maximum number of operations per second (0 for unlimited)
	RateLimit int

	// Synchronous runs every task inline on Submit instead of
	// dispatching it to workers. Task errors are still deferred to
	// Wait or WaitSafe.
	Synchronous bool
}

// Pool defines the interface for a worker pool
type Pool interface {
	// Start initializes and starts the worker pool
	Start(context.Context) error

	// Submit adds a task to the pool for processing
	Submit(Task) error

	// Wait blocks until all submitted tasks are processed and returns
	// the results in submission order, or the first task error
	Wait() ([]Result, error)

	// WaitSafe blocks until all submitted tasks are processed and
	// returns the successful results in submission order together
	// with every task error, in completion order
	WaitSafe() ([]Result, []error)

	// GetStats returns current statistics about the pool
	GetStats() Stats

	// Status returns the current status of the pool
	Status() Status

	// Stop shuts down the pool, cancelling running tasks
	Stop() error

	// Terminate shuts down the pool and discards queued tasks
	Terminate() error
}

// pool implements the Pool interface
type pool struct {
	config        Config
	tasks         chan taskWithOrder
	results       chan Result
	limiter       *rate.Limiter
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	mu            sync.RWMutex
	started       bool
	stopped       bool
	drained       bool
	collectorDone chan struct{}
	collectMu     sync.Mutex
	collected     []Result
	stats         Stats
	failures      []error
	startTime     time.Time
	statsMu       sync.RWMutex // Separate mutex for stats to avoid blocking pool operations
	activeWorkers atomic.Int32 // Track active workers atomically
	taskOrder     int
	orderMu       sync.Mutex
}

type taskWithOrder struct {
	Task
	order int
}

// NewPool creates a new worker pool with the given configuration
func NewPool(config Config) (Pool, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	p := &pool{
		config:  config,
		tasks:   make(chan taskWithOrder, config.Workers*2),
		results: make(chan Result, config.Workers*2),
		limiter: limiter,
		stats: Stats{
			Status: StatusStopped,
		},
	}

	// Initialize atomic counter
	p.activeWorkers.Store(0)

	return p, nil
}

// validateConfig checks if the pool configuration is valid
func validateConfig(config Config) error {
	if !config.Synchronous && config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}

// Start initializes and starts the worker pool
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	p.startTime = time.Now()

	// Initialize stats
	p.statsMu.Lock()
	p.stats = Stats{
		ActiveWorkers:  0,
		QueuedTasks:    0,
		CompletedTasks: 0,
		FailedTasks:    0,
		Status:         StatusIdle,
		Uptime:         0,
	}
	p.statsMu.Unlock()

	// The collector drains results while tasks are still being
	// submitted, so workers never block on a full results channel
	p.collectorDone = make(chan struct{})
	go p.collector()

	// Synchronous pools run tasks on the submitting goroutine
	if p.config.Synchronous {
		return nil
	}

	// Start workers
	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return nil
}

// collector accumulates worker results until the results channel is
// closed, then publishes them in one step
func (p *pool) collector() {
	var local []Result
	for result := range p.results {
		local = append(local, result)
	}

	p.collectMu.Lock()
	p.collected = append(p.collected, local...)
	p.collectMu.Unlock()

	close(p.collectorDone)
}

// finishCollector closes the results channel once no worker can send
// anymore and waits for the collector to publish. Callers must hold
// p.mu and must have joined the workers first.
func (p *pool) finishCollector() {
	if p.drained {
		return
	}
	p.drained = true

	close(p.results)
	<-p.collectorDone
}

// Submit adds a task to the pool for processing
func (p *pool) Submit(task Task) error {
	if !p.started {
		return fmt.Errorf("pool not started")
	}

	p.orderMu.Lock()
	order := p.taskOrder
	p.taskOrder++
	p.orderMu.Unlock()

	if p.config.Synchronous {
		return p.runInline(taskWithOrder{task, order})
	}

	select {
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", p.ctx.Err())
	case p.tasks <- struct {
		Task
		order int
	}{task, order}:
		return nil
	}
}

// runInline executes one task on the calling goroutine. Task errors are
// recorded for Wait/WaitSafe rather than returned, matching the
// deferred error handling of the concurrent path.
func (p *pool) runInline(t taskWithOrder) error {
	select {
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", p.ctx.Err())
	default:
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(p.ctx); err != nil {
			p.recordFailure(fmt.Errorf("rate limiter error: %w", err))
			return nil
		}
	}

	result, err := t.Execute(p.ctx)
	result.order = t.order

	if err != nil {
		p.recordFailure(fmt.Errorf("task %d failed: %w", t.ID, err))
		return nil
	}

	p.statsMu.Lock()
	p.stats.CompletedTasks++
	p.statsMu.Unlock()

	p.collectMu.Lock()
	p.collected = append(p.collected, result)
	p.collectMu.Unlock()

	return nil
}

// recordFailure stores a task error for later collection
func (p *pool) recordFailure(err error) {
	p.statsMu.Lock()
	p.stats.FailedTasks++
	p.stats.Status = StatusProcessing
	p.failures = append(p.failures, err)
	p.statsMu.Unlock()
}

// Wait blocks until all submitted tasks are processed
func (p *pool) Wait() ([]Result, error) {
	results, errs := p.WaitSafe()
	if len(errs) > 0 {
		return nil, errs[0]
	}

	return results, nil
}

// WaitSafe blocks until all submitted tasks are processed, collecting
// task errors instead of failing on the first one
func (p *pool) WaitSafe() ([]Result, []error) {
	p.mu.Lock() // Lock to check and update state safely
	if !p.started && !p.stopped {
		p.mu.Unlock()
		return nil, []error{fmt.Errorf("pool not started")}
	}

	if !p.stopped {
		// Only close if not already closed
		close(p.tasks)
		p.stopped = true
	}
	p.mu.Unlock()

	// Wait for all workers to finish
	p.wg.Wait()

	p.mu.Lock()
	p.finishCollector()
	p.mu.Unlock()

	p.collectMu.Lock()
	// Sort results by submission order
	sort.Slice(p.collected, func(i, j int) bool {
		return p.collected[i].order < p.collected[j].order
	})
	results := append([]Result(nil), p.collected...)
	p.collectMu.Unlock()

	p.statsMu.RLock()
	failures := append([]error(nil), p.failures...)
	p.statsMu.RUnlock()

	return results, failures
}

// Stop shuts down the pool
func (p *pool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil // Already stopped
	}

	if !p.started {
		p.stopped = true
		return nil
	}

	// Set stopped status first
	p.statsMu.Lock()
	p.stats.Status = StatusStopped
	p.stats.ActiveWorkers = 0
	p.statsMu.Unlock()

	// Mark as stopped
	p.stopped = true
	p.started = false

	// Cancel context and close channels
	p.cancel()

	// Close tasks channel only if it hasn't been closed
	select {
	case _, ok := <-p.tasks:
		if ok {
			close(p.tasks)
		}
	default:
		close(p.tasks)
	}

	// Wait for workers with timeout
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.finishCollector()
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("shutdown timed out")
	}
}

// Terminate shuts down the pool like Stop and additionally discards
// every task still queued
func (p *pool) Terminate() error {
	p.mu.Lock()

	if p.stopped {
		p.mu.Unlock()
		return nil
	}

	if !p.started {
		p.stopped = true
		p.mu.Unlock()
		return nil
	}

	p.statsMu.Lock()
	p.stats.Status = StatusStopped
	p.stats.ActiveWorkers = 0
	p.statsMu.Unlock()

	p.stopped = true
	p.started = false

	p.cancel()
	close(p.tasks)
	p.mu.Unlock()

	// Drain the queue so workers stop picking up work
	for range p.tasks {
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.mu.Lock()
		p.finishCollector()
		p.mu.Unlock()
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("termination timed out")
	}
}

func (p *pool) GetStats() Stats {
	p.statsMu.RLock()
	defer p.statsMu.RUnlock()

	activeWorkers := int(p.activeWorkers.Load())
	queuedTasks := len(p.tasks)

	// Use the consistent status determination
	status := p.getStatus()

	return Stats{
		ActiveWorkers:  activeWorkers,
		QueuedTasks:    queuedTasks,
		CompletedTasks: p.stats.CompletedTasks,
		FailedTasks:    p.stats.FailedTasks,
		Status:         status,
		Uptime:         time.Since(p.startTime),
	}
}

// Make Status consistent with GetStats
func (p *pool) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.getStatus()
}

// internal helper to get consistent status
func (p *pool) getStatus() Status {
	if !p.started {
		return StatusStopped
	}

	// If we're explicitly marked as stopped, return that
	if p.stats.Status == StatusStopped {
		return StatusStopped
	}

	activeWorkers := p.activeWorkers.Load()
	queuedTasks := len(p.tasks)

	// If there are failed tasks, active workers, or queued tasks, we're processing
	if p.stats.FailedTasks > 0 || activeWorkers > 0 || queuedTasks > 0 {
		return StatusProcessing
	}

	return StatusIdle
}

// worker processes tasks from the pool
func (p *pool) worker(id int) {
	defer p.wg.Done()

	for taskWithOrder := range p.tasks {
		task := taskWithOrder.Task
		order := taskWithOrder.order

		// Increment active workers counter
		p.activeWorkers.Add(1)

		// Process task with rate limiting if configured
		if p.limiter != nil {
			err := p.limiter.Wait(p.ctx)
			if err != nil {
				p.activeWorkers.Add(-1)
				p.recordFailure(fmt.Errorf("rate limiter error: %w", err))
				return
			}
		}

		// Process task
		result, err := task.Execute(p.ctx)
		result.order = order // Preserve order in result

		// Decrement active workers counter after task completion
		p.activeWorkers.Add(-1)

		if err != nil {
			p.recordFailure(fmt.Errorf("task %d failed: %w", task.ID, err))
			continue
		}

		// Update completion statistics
		p.statsMu.Lock()
		p.stats.CompletedTasks++
		p.statsMu.Unlock()

		// Send result
		select {
		case <-p.ctx.Done():
			return
		case p.results <- result:
		}
	}
}
