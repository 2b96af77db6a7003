package worker

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/govindp47/smarthire/internal/logger"
)

// ErrQueueFull is returned by Submit when the task queue has no capacity.
// Callers are expected to surface backpressure instead of blocking.
var ErrQueueFull = errors.New("task queue is full")

// Task is one unit of background work. Run is retried on error up to the
// pool's attempt limit; OnExhausted fires once when all attempts fail.
type Task struct {
	Name        string
	Run         func(ctx context.Context) error
	OnExhausted func(err error)
}

// Pool executes tasks on a fixed number of workers with a bounded queue,
// per-attempt timeouts and jittered exponential backoff between retries.
type Pool struct {
	queue       chan Task
	workers     int
	maxAttempts int
	taskTimeout time.Duration
	baseDelay   time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc
	once   sync.Once
}

func NewPool(workers, queueSize, maxAttempts int, taskTimeout time.Duration) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Pool{
		queue:       make(chan Task, queueSize),
		workers:     workers,
		maxAttempts: maxAttempts,
		taskTimeout: taskTimeout,
		baseDelay:   time.Second,
	}
}

// Start launches the workers. Safe to call once.
func (p *Pool) Start() {
	p.once.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker(ctx)
		}
		logger.Info().Int("workers", p.workers).Int("queue_size", cap(p.queue)).Msg("worker pool started")
	})
}

// Submit enqueues a task without blocking. A full queue is the caller's
// problem to report, typically as a 503.
func (p *Pool) Submit(task Task) error {
	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting work and waits for in-flight tasks, bounded by ctx.
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if p.cancel != nil {
			p.cancel()
		}
		return nil
	case <-ctx.Done():
		if p.cancel != nil {
			p.cancel()
		}
		return ctx.Err()
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for task := range p.queue {
		p.execute(ctx, task)
	}
}

func (p *Pool) execute(ctx context.Context, task Task) {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(p.backoff(attempt - 1)):
			case <-ctx.Done():
				lastErr = ctx.Err()
			}
			if ctx.Err() != nil {
				break
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.taskTimeout)
		err := task.Run(attemptCtx)
		cancel()

		if err == nil {
			if attempt > 1 {
				logger.Info().Str("task", task.Name).Int("attempt", attempt).Msg("task succeeded after retry")
			}
			return
		}
		lastErr = err
		logger.Warn().Err(err).Str("task", task.Name).Int("attempt", attempt).Msg("task attempt failed")

		if ctx.Err() != nil {
			break
		}
	}

	logger.Error().Err(lastErr).Str("task", task.Name).Int("attempts", p.maxAttempts).Msg("task exhausted all attempts")
	if task.OnExhausted != nil {
		task.OnExhausted(lastErr)
	}
}

func (p *Pool) backoff(attempt int) time.Duration {
	delay := p.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	// up to 25% jitter
	return delay + time.Duration(rand.Float64()*0.25*float64(delay))
}
