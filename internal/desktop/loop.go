package desktop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
)

var (
	ErrLoopStopped  = errors.New("control loop stopped")
	ErrTaskPanicked = errors.New("control loop task panicked")
)

// Task statuses recorded by the loop
const (
	TaskOK       = "ok"
	TaskError    = "error"
	TaskPanicked = "panic"
)

// Task states. A queued task is claimed either by the loop (running) or by
// its caller giving up (cancelled), never both.
const (
	taskPending int32 = iota
	taskRunning
	taskCancelled
)

type task struct {
	fn    func() error
	done  chan error
	state *atomic.Int32
}

// Loop runs submitted tasks one at a time on the goroutine that called
// Run. Tasks must not call Do themselves.
type Loop struct {
	tasks   chan task
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewLoop creates a loop whose queue holds buffer pending tasks
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		tasks:   make(chan task, buffer),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logging.NewNop(),
	}
}

// WithLogger adds structured logging to the loop
func (l *Loop) WithLogger(logger *logging.Logger) *Loop {
	l.logger = logging.OrNop(logger).Named("loop")
	return l
}

// WithMetrics adds task metrics to the loop
func (l *Loop) WithMetrics(metrics *monitoring.Metrics) *Loop {
	l.metrics = metrics
	return l
}

// Run executes tasks until ctx is done or Stop is called. It returns nil
// after Stop and ctx.Err() on cancellation. Run must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	l.logger.Debug("Control loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("Control loop cancelled", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-l.stop:
			l.logger.Debug("Control loop stopped")
			return nil
		case t := <-l.tasks:
			if !t.state.CompareAndSwap(taskPending, taskRunning) {
				continue
			}
			t.done <- l.execute(t.fn)
		}
	}
}

// Stop ends Run. Tasks still queued fail with ErrLoopStopped.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Done is closed once Run has returned
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

// Do runs fn on the loop and waits for its result. If ctx ends before fn
// starts, fn is skipped and Do returns ctx.Err(). Once fn has started Do
// always returns its result.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	t := task{fn: fn, done: make(chan error, 1), state: new(atomic.Int32)}

	select {
	case l.tasks <- t:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.done:
		return err
	case <-l.stopped:
		select {
		case err := <-t.done:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		if t.state.CompareAndSwap(taskPending, taskCancelled) {
			return ctx.Err()
		}
		return <-t.done
	}
}

func (l *Loop) execute(fn func() error) (err error) {
	timer := monitoring.NewTimer(l.metrics)

	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Control loop task panicked", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			timer.Stop(TaskPanicked)
			return
		}
		if err != nil {
			timer.Stop(TaskError)
			return
		}
		timer.Stop(TaskOK)
	}()

	return fn()
}
