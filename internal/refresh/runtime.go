package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vidyasagar/deskup/internal/logging"
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 15 * time.Second

	// DefaultLimit is the number of fetches allowed in flight at once.
	DefaultLimit = 8
)

// ErrClosed is returned by Wait once the runtime has been closed.
var ErrClosed = errors.New("refresh runtime closed")

// Runtime is the shared execution context for fetch jobs. Dispatch never
// blocks: when the concurrency limit is reached the job is refused.
type Runtime struct {
	ctx     context.Context
	cancel  context.CancelFunc
	g       errgroup.Group
	timeout time.Duration
	log     *log.Logger

	// dispatchMu orders Go against Close so no job is added to the group
	// once Close has started waiting on it.
	dispatchMu sync.Mutex
	closed     atomic.Bool

	mu     sync.Mutex
	onDone func(name string)
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithTimeout sets the per-fetch deadline. Non-positive values keep the default.
func WithTimeout(d time.Duration) RuntimeOption {
	return func(r *Runtime) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLimit caps concurrent fetches.
func WithLimit(n int) RuntimeOption {
	return func(r *Runtime) {
		if n > 0 {
			r.g.SetLimit(n)
		}
	}
}

// NewRuntime creates a runtime whose jobs run under parent.
func NewRuntime(parent context.Context, opts ...RuntimeOption) *Runtime {
	ctx, cancel := context.WithCancel(parent)
	r := &Runtime{
		ctx:     ctx,
		cancel:  cancel,
		timeout: DefaultTimeout,
		log:     logging.WithPrefix("refresh"),
	}
	r.g.SetLimit(DefaultLimit)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnDone registers a hook called after every job finishes, from the job's
// goroutine. The UI uses it to repaint as soon as a slot settles.
func (r *Runtime) OnDone(fn func(name string)) {
	r.mu.Lock()
	r.onDone = fn
	r.mu.Unlock()
}

// Timeout returns the per-fetch deadline.
func (r *Runtime) Timeout() time.Duration {
	return r.timeout
}

func (r *Runtime) debug(msg string, keyvals ...interface{}) {
	if r.log != nil {
		r.log.Debug(msg, keyvals...)
	}
}

// Go dispatches fn with a context carrying the fetch deadline. It returns
// false without running fn if the runtime is closed or saturated.
func (r *Runtime) Go(name string, fn func(ctx context.Context)) bool {
	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()
	if r.closed.Load() {
		return false
	}
	ok := r.g.TryGo(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
		defer cancel()

		start := time.Now()
		fn(ctx)
		r.debug("job finished", "job", name, "elapsed", time.Since(start).Round(time.Millisecond))

		r.mu.Lock()
		hook := r.onDone
		r.mu.Unlock()
		if hook != nil {
			hook(name)
		}
		return nil
	})
	if !ok {
		r.debug("dispatch refused", "job", name)
	}
	return ok
}

// Wait blocks until every dispatched job has returned or ctx is done.
func (r *Runtime) Wait(ctx context.Context) error {
	if r.closed.Load() {
		return ErrClosed
	}
	done := make(chan struct{})
	go func() {
		_ = r.g.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels in-flight jobs and waits for them to return.
func (r *Runtime) Close() {
	r.dispatchMu.Lock()
	if r.closed.Load() {
		r.dispatchMu.Unlock()
		return
	}
	r.closed.Store(true)
	r.cancel()
	r.dispatchMu.Unlock()

	_ = r.g.Wait()
}
