package refresh

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vidyasagar/deskup/internal/logging"
)

// Fetch produces the value for one slot.
type Fetch[T any] func(ctx context.Context) (T, error)

// MaybeRefresh claims slot if it is Unset and dispatches fetch on rt. It
// returns whether a fetch was dispatched. While the slot is Pending repeated
// calls do nothing, so it is safe to call on every frame.
func MaybeRefresh[T any](rt *Runtime, name string, slot *Slot[T], fetch Fetch[T]) bool {
	if !slot.Claim() {
		return false
	}
	ok := rt.Go(name, func(ctx context.Context) {
		v, err := fetch(ctx)
		if err != nil {
			logging.Warn("fetch failed", "job", name, "err", err)
		}
		slot.Resolve(v, err)
	})
	if !ok {
		slot.Release()
	}
	return ok
}

// job is the type-erased view of a registered slot.
type job interface {
	name() string
	refresh(rt *Runtime) bool
	retry() bool
	reload() bool
	phase() Phase
	owed() bool
}

type jobConfig struct {
	configured func() bool
}

// JobOption configures a registered job.
type JobOption func(*jobConfig)

// WhenConfigured gates the job on fn. When fn reports false the slot is
// marked NotConfigured instead of fetched.
func WhenConfigured(fn func() bool) JobOption {
	return func(c *jobConfig) {
		c.configured = fn
	}
}

type slotJob[T any] struct {
	label string
	slot  *Slot[T]
	fetch Fetch[T]
	cfg   jobConfig

	// stale is set when a reload arrives while a fetch is in flight. That
	// fetch may predate the change, so the slot is fetched again after it.
	stale atomic.Bool
}

func (j *slotJob[T]) name() string { return j.label }

func (j *slotJob[T]) refresh(rt *Runtime) bool {
	if j.cfg.configured != nil && !j.cfg.configured() {
		if j.slot.Disable() {
			logging.Info("job not configured", "job", j.label)
		}
		return false
	}
	if j.stale.Load() && j.slot.Reset() {
		j.stale.Store(false)
	}
	return MaybeRefresh(rt, j.label, j.slot, j.fetch)
}

func (j *slotJob[T]) retry() bool { return j.slot.Retry() }

func (j *slotJob[T]) reload() bool {
	j.stale.Store(true)
	if j.slot.Reset() {
		j.stale.Store(false)
		return true
	}
	if j.slot.Load().Phase == Pending {
		return true
	}
	j.stale.Store(false)
	return false
}

func (j *slotJob[T]) phase() Phase { return j.slot.Load().Phase }
func (j *slotJob[T]) owed() bool   { return j.stale.Load() }

// Orchestrator holds the registered jobs and drives them from the UI frame.
type Orchestrator struct {
	rt *Runtime

	mu   sync.RWMutex
	jobs []job
}

// New creates an orchestrator dispatching on rt.
func New(rt *Runtime) *Orchestrator {
	return &Orchestrator{rt: rt}
}

// Runtime returns the shared runtime.
func (o *Orchestrator) Runtime() *Runtime {
	return o.rt
}

// Register adds a job. Jobs are refreshed in registration order.
func Register[T any](o *Orchestrator, name string, slot *Slot[T], fetch Fetch[T], opts ...JobOption) {
	j := &slotJob[T]{label: name, slot: slot, fetch: fetch}
	for _, opt := range opts {
		opt(&j.cfg)
	}
	o.mu.Lock()
	o.jobs = append(o.jobs, j)
	o.mu.Unlock()
}

func (o *Orchestrator) snapshot() []job {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]job(nil), o.jobs...)
}

// Refresh dispatches every Unset job and returns how many were dispatched.
// Call it once per frame.
func (o *Orchestrator) Refresh() int {
	n := 0
	for _, j := range o.snapshot() {
		if j.refresh(o.rt) {
			n++
		}
	}
	return n
}

// Retry returns every Failed slot to Unset and reports how many were reset.
// The next Refresh fetches them again.
func (o *Orchestrator) Retry() int {
	n := 0
	for _, j := range o.snapshot() {
		if j.retry() {
			n++
		}
	}
	if n > 0 {
		logging.Info("retrying failed jobs", "count", n)
	}
	return n
}

// Reload makes the named job fetch again. A settled slot is reset at once;
// a Pending slot is reset after its current fetch resolves, since that
// fetch may have started before whatever prompted the reload.
func (o *Orchestrator) Reload(name string) bool {
	for _, j := range o.snapshot() {
		if j.name() == name {
			return j.reload()
		}
	}
	return false
}

// InFlight counts jobs that are Pending.
func (o *Orchestrator) InFlight() int {
	n := 0
	for _, j := range o.snapshot() {
		if j.phase() == Pending {
			n++
		}
	}
	return n
}

// Settled reports whether every job is Ready, Failed or NotConfigured with
// no reload outstanding.
func (o *Orchestrator) Settled() bool {
	for _, j := range o.snapshot() {
		if j.owed() {
			return false
		}
		switch j.phase() {
		case Unset, Pending:
			return false
		}
	}
	return true
}

// Wait refreshes until every job has settled, for headless use.
func (o *Orchestrator) Wait(ctx context.Context) error {
	for {
		o.Refresh()
		if err := o.rt.Wait(ctx); err != nil {
			return err
		}
		if o.Settled() {
			return nil
		}
	}
}

// Close cancels in-flight fetches and waits for them.
func (o *Orchestrator) Close() {
	o.rt.Close()
}
