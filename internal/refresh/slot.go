// Package refresh runs fetch-if-absent jobs on a shared runtime and keeps
// their results in lock-free slots that the UI reads every frame.
package refresh

import (
	"slices"
	"sync/atomic"
)

// Phase is the lifecycle position of a slot.
type Phase int32

const (
	Unset Phase = iota
	Pending
	Ready
	Failed
	NotConfigured
)

func (p Phase) String() string {
	switch p {
	case Unset:
		return "unset"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case NotConfigured:
		return "not-configured"
	default:
		return "unknown"
	}
}

// Status is what the presentation layer distinguishes.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
	StatusNotConfigured
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	case StatusNotConfigured:
		return "not-configured"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a slot. Value is meaningful only when
// Phase is Ready and Err only when Phase is Failed.
type State[T any] struct {
	Phase Phase
	Value T
	Err   error
}

// Status folds Unset and Pending into Loading.
func (s State[T]) Status() Status {
	switch s.Phase {
	case Ready:
		return StatusReady
	case Failed:
		return StatusFailed
	case NotConfigured:
		return StatusNotConfigured
	default:
		return StatusLoading
	}
}

// Settled reports whether no fetch is outstanding or expected.
func (s State[T]) Settled() bool {
	return s.Phase == Ready || s.Phase == Failed || s.Phase == NotConfigured
}

// Slot holds the latest State of one fetch job. The zero value is an
// Unset slot ready for use.
type Slot[T any] struct {
	p atomic.Pointer[State[T]]
}

// NewSlot returns an Unset slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Load returns the current state.
func (s *Slot[T]) Load() State[T] {
	if st := s.p.Load(); st != nil {
		return *st
	}
	return State[T]{Phase: Unset}
}

// Claim moves Unset to Pending. Only the caller that gets true may dispatch.
func (s *Slot[T]) Claim() bool {
	return s.swap(&State[T]{Phase: Pending}, Unset)
}

// Resolve settles a Pending slot: Ready with v when err is nil, Failed otherwise.
func (s *Slot[T]) Resolve(v T, err error) bool {
	next := &State[T]{Phase: Ready, Value: v}
	if err != nil {
		next = &State[T]{Phase: Failed, Err: err}
	}
	return s.swap(next, Pending)
}

// Release gives back a claim whose dispatch was refused.
func (s *Slot[T]) Release() bool {
	return s.swap(nil, Pending)
}

// Disable marks an Unset slot as NotConfigured.
func (s *Slot[T]) Disable() bool {
	return s.swap(&State[T]{Phase: NotConfigured}, Unset)
}

// Retry returns a Failed slot to Unset.
func (s *Slot[T]) Retry() bool {
	return s.swap(nil, Failed)
}

// Reset returns a settled slot (Ready or Failed) to Unset so it is fetched again.
func (s *Slot[T]) Reset() bool {
	return s.swap(nil, Ready, Failed)
}

// swap installs next if the current phase is one of from. A nil next
// stores the Unset state.
func (s *Slot[T]) swap(next *State[T], from ...Phase) bool {
	for {
		cur := s.p.Load()
		phase := Unset
		if cur != nil {
			phase = cur.Phase
		}
		if !slices.Contains(from, phase) {
			return false
		}
		if s.p.CompareAndSwap(cur, next) {
			return true
		}
	}
}
