package selection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xtding233/randomizer/internal/chooser"
	"github.com/xtding233/randomizer/internal/metrics"
)

// DefaultDelay is used when Options.Delay is zero.
const DefaultDelay = 300 * time.Millisecond

var ErrNegativeDelay = errors.New("delay must not be negative")

// Options configures a Controller.
type Options[T any] struct {
	Delay    time.Duration // zero means DefaultDelay
	Auto     bool          // trigger during New
	Chooser  *chooser.Chooser
	Clock    Clock
	Handlers Handlers[T]

	Name    string // label for logs and metrics
	Logger  logrus.FieldLogger
	Metrics *metrics.Metrics
}

// Controller drives the init -> delay -> finish lifecycle over a fixed
// candidate list. It owns at most one pending timer; Trigger and Dispose
// cancel it before returning, and a cancelled timer never changes state.
//
// Transitions happen under the lock and are queued for the handlers, which
// run in transition order outside the lock. The goroutine that finds the
// queue idle delivers it, so a handler may call Trigger: the new round is
// delivered once the handler returns. After Dispose no handler is started.
type Controller[T any] struct {
	candidates []T
	delay      time.Duration
	chooser    *chooser.Chooser
	clock      Clock
	handlers   Handlers[T]
	name       string
	log        logrus.FieldLogger
	metrics    *metrics.Metrics

	mu        sync.Mutex
	phase     Phase
	result    T
	hasResult bool
	round     uint64
	timer     Timer
	disposed  bool

	pending    []Snapshot[T] // undelivered transitions
	delivering bool
}

// New creates a Controller in PhaseInit, or PhaseDelay when opts.Auto is set.
// candidates must not be empty; the slice is copied.
func New[T any](candidates []T, opts Options[T]) (*Controller[T], error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("new selection %q: %w", opts.Name, chooser.ErrNoCandidates)
	}
	if opts.Delay < 0 {
		return nil, fmt.Errorf("new selection %q: %w", opts.Name, ErrNegativeDelay)
	}

	c := &Controller[T]{
		candidates: append([]T(nil), candidates...),
		delay:      opts.Delay,
		chooser:    opts.Chooser,
		clock:      opts.Clock,
		handlers:   opts.Handlers,
		name:       opts.Name,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		phase:      PhaseInit,
	}
	if c.delay == 0 {
		c.delay = DefaultDelay
	}
	if c.chooser == nil {
		c.chooser = chooser.Default()
	}
	if c.clock == nil {
		c.clock = SystemClock
	}
	if c.log == nil {
		c.log = logrus.WithField("process", "selection")
	}
	c.log = c.log.WithField("selection", c.name)

	if opts.Auto {
		c.Trigger()
		return c, nil
	}
	c.mu.Lock()
	c.pending = append(c.pending, c.snapshotLocked())
	c.mu.Unlock()
	c.deliver()
	return c, nil
}

// Delay returns the configured countdown.
func (c *Controller[T]) Delay() time.Duration { return c.delay }

// Candidates returns a copy of the candidate list.
func (c *Controller[T]) Candidates() []T { return append([]T(nil), c.candidates...) }

// Snapshot returns the current phase and result.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Trigger cancels any pending selection, clears the result and starts a
// new countdown. It is a no-op after Dispose.
func (c *Controller[T]) Trigger() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	cancelled := c.stopLocked()

	c.round++
	round := c.round
	var zero T
	c.phase = PhaseDelay
	c.result = zero
	c.hasResult = false
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(round) })
	c.pending = append(c.pending, c.snapshotLocked())
	c.mu.Unlock()

	if cancelled {
		c.metrics.Cancelled(c.name)
	}
	c.metrics.Triggered(c.name)
	c.log.WithFields(logrus.Fields{
		"round":     round,
		"cancelled": cancelled,
		"delay":     c.delay,
	}).Debug("selection triggered")

	c.deliver()
}

// Dispose cancels any pending selection and drops undelivered transitions.
// The controller ignores every later Trigger and timer. Calling it more than
// once is harmless. A handler already running when Dispose is called may
// still be returning; none starts afterwards.
func (c *Controller[T]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.pending = nil
	cancelled := c.stopLocked()
	c.mu.Unlock()

	if cancelled {
		c.metrics.Cancelled(c.name)
	}
	c.log.WithField("cancelled", cancelled).Debug("selection disposed")
}

func (c *Controller[T]) fire(round uint64) {
	c.mu.Lock()
	// stale timers can still run if Stop lost the race with the clock
	if c.disposed || round != c.round || c.phase != PhaseDelay {
		c.mu.Unlock()
		c.log.WithField("round", round).Debug("ignoring stale selection timer")
		return
	}
	c.timer = nil

	result, err := chooser.Choose(c.chooser, c.candidates)
	if err != nil {
		// unreachable while candidates is non-empty
		c.mu.Unlock()
		c.log.WithError(err).Error("selection failed")
		return
	}
	c.result = result
	c.hasResult = true
	c.phase = PhaseFinish
	c.pending = append(c.pending, c.snapshotLocked())
	c.mu.Unlock()

	c.metrics.Finished(c.name, fmt.Sprint(result))
	c.log.WithFields(logrus.Fields{
		"round":  round,
		"result": result,
	}).Debug("selection finished")

	c.deliver()
}

// deliver dispatches queued transitions unless another call is already
// doing so. The disposed check and the dequeue share one critical section,
// so a transition is either handed to its handler before Dispose or dropped.
func (c *Controller[T]) deliver() {
	c.mu.Lock()
	if c.delivering {
		c.mu.Unlock()
		return
	}
	c.delivering = true
	for !c.disposed && len(c.pending) > 0 {
		snap := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		c.handlers.Dispatch(snap)

		c.mu.Lock()
	}
	c.delivering = false
	c.mu.Unlock()
}

// stopLocked cancels the pending timer, reporting whether one existed.
func (c *Controller[T]) stopLocked() bool {
	if c.timer == nil {
		return false
	}
	c.timer.Stop()
	c.timer = nil
	return true
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Phase:     c.phase,
		Result:    c.result,
		HasResult: c.hasResult,
		Round:     c.round,
	}
}
