package lsprpc

import (
	"errors"
	"io"
	"sync"
)

// defaultQueueCapacity bounds the output agent's task queue: a
// standalone long-lived writer needs one to avoid unbounded memory
// growth if the consumer falls behind.
const defaultQueueCapacity = 256

// ErrAgentShutdown is returned by TrySubmit once the agent has been
// shut down.
var ErrAgentShutdown = errors.New("lsprpc: output agent is shut down")

// ErrQueueFull is returned by TrySubmit when the bounded task queue has
// no room; callers should treat this the same as a shutdown trigger.
var ErrQueueFull = errors.New("lsprpc: output agent queue is full")

// writerTask is a unit of work run on the agent's single worker
// goroutine with exclusive access to the owned writer.
type writerTask func(w io.Writer)

// WriterProvider is invoked once, on the worker goroutine, to produce
// the writer the agent will own for its lifetime. Because it only ever
// runs on that one goroutine, the returned writer need not be
// thread-safe.
type WriterProvider func() io.Writer

// OutputAgent is the single-consumer worker that owns the outbound
// byte stream. It is the only place in this package that
// writes to that stream; everything else submits tasks to it.
type OutputAgent struct {
	tasks    chan writerTask
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	shutdown bool
	logger   Printer
}

// NewOutputAgent constructs an agent with the given bounded queue
// capacity (0 selects defaultQueueCapacity) and logger (nil selects the
// package default).
func NewOutputAgent(queueCapacity int, logger Printer) *OutputAgent {
	if queueCapacity <= 0 {
		queueCapacity = defaultQueueCapacity
	}
	if logger == nil {
		logger = defaultLogger
	}
	return &OutputAgent{
		tasks:  make(chan writerTask, queueCapacity),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start spawns the worker goroutine, which calls provider once to
// obtain the writer, then executes submitted tasks strictly in
// submission order until ShutdownAndJoin is called.
func (a *OutputAgent) Start(provider WriterProvider) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		w := provider()
		for {
			select {
			case task, ok := <-a.tasks:
				if !ok {
					return
				}
				task(w)
			case <-a.done:
				// Drain whatever was already accepted before
				// returning, so no accepted task is silently lost.
				for {
					select {
					case task := <-a.tasks:
						task(w)
					default:
						return
					}
				}
			}
		}
	}()
}

// TrySubmit enqueues task for execution on the worker goroutine. It
// fails if the agent is already shut down or the queue is full.
func (a *OutputAgent) TrySubmit(task writerTask) error {
	// The lock is held across the non-blocking send so a task cannot be
	// accepted after ShutdownAndJoin has marked the agent shut down.
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shutdown {
		return ErrAgentShutdown
	}

	select {
	case a.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// IsShutdown reports whether ShutdownAndJoin has been called.
func (a *OutputAgent) IsShutdown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shutdown
}

// ShutdownAndJoin idempotently shuts the agent down: no further tasks
// are accepted, and this call blocks until the worker has drained
// everything already accepted and released the writer.
func (a *OutputAgent) ShutdownAndJoin() {
	a.mu.Lock()
	if a.shutdown {
		a.mu.Unlock()
		return
	}
	a.shutdown = true
	a.mu.Unlock()

	close(a.done)
	a.wg.Wait()
}
