// Package resource provides a keyed async loader for Bubble Tea views.
//
// A Resource owns the fetch lifecycle of one piece of remote data: it is Idle
// until given a key, Loading while a request for that key is in flight, and
// then Loaded or Failed. Loading a new key cancels the previous request's
// context and bumps a generation counter, so a late response for an old key
// is dropped instead of overwriting newer state. Cancellation never surfaces
// as a failure.
package resource

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Status is the lifecycle stage of a Resource
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the tagged value held by a Resource. Data is only reachable when
// Loaded and Err only when Failed.
type State[T any] struct {
	status Status
	data   T
	err    error
}

// Status reports the lifecycle stage
func (s State[T]) Status() Status { return s.status }

// Data returns the payload when Loaded
func (s State[T]) Data() (T, bool) {
	if s.status != Loaded {
		var zero T
		return zero, false
	}
	return s.data, true
}

// Err returns the failure when Failed
func (s State[T]) Err() error {
	if s.status != Failed {
		return nil
	}
	return s.err
}

// FetchFunc loads the value for key. It must honour ctx cancellation.
type FetchFunc[K comparable, T any] func(ctx context.Context, key K) (T, error)

// ResultMsg carries a settled fetch back to the update loop
type ResultMsg[K comparable, T any] struct {
	ID   string
	Gen  uint64
	Key  K
	Data T
	Err  error
}

// Resource is a value type; methods return the updated copy, Bubble Tea style.
type Resource[K comparable, T any] struct {
	id     string
	fetch  FetchFunc[K, T]
	parent context.Context

	key    K
	hasKey bool
	gen    uint64
	cancel context.CancelFunc
	state  State[T]
}

// New creates an Idle resource. id distinguishes this resource's messages
// from other resources sharing the same type parameters.
func New[K comparable, T any](ctx context.Context, id string, fetch FetchFunc[K, T]) Resource[K, T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return Resource[K, T]{
		id:     id,
		fetch:  fetch,
		parent: ctx,
	}
}

// ID returns the message routing id
func (r Resource[K, T]) ID() string { return r.id }

// State returns the current state
func (r Resource[K, T]) State() State[T] { return r.state }

// Status is shorthand for State().Status()
func (r Resource[K, T]) Status() Status { return r.state.status }

// Key returns the key of the current or last request
func (r Resource[K, T]) Key() (K, bool) { return r.key, r.hasKey }

// Generation increases every time the resource is loaded or reset
func (r Resource[K, T]) Generation() uint64 { return r.gen }

// Load starts a fetch for key, superseding anything in flight.
func (r Resource[K, T]) Load(key K) (Resource[K, T], tea.Cmd) {
	r = r.supersede()

	ctx, cancel := context.WithCancel(r.parent)
	r.cancel = cancel
	r.key = key
	r.hasKey = true
	r.state = State[T]{status: Loading}

	id, gen, fetch := r.id, r.gen, r.fetch
	return r, func() tea.Msg {
		data, err := fetch(ctx, key)
		return ResultMsg[K, T]{ID: id, Gen: gen, Key: key, Data: data, Err: err}
	}
}

// Ensure loads key unless that key is already Loading or Loaded.
// Idle and Failed states are (re)fetched.
func (r Resource[K, T]) Ensure(key K) (Resource[K, T], tea.Cmd) {
	if r.hasKey && r.key == key && (r.state.status == Loading || r.state.status == Loaded) {
		return r, nil
	}
	return r.Load(key)
}

// Reset cancels any in-flight request and returns to Idle with no key.
func (r Resource[K, T]) Reset() Resource[K, T] {
	r = r.supersede()
	var zero K
	r.key = zero
	r.hasKey = false
	r.state = State[T]{}
	return r
}

// Suspend cancels an in-flight request and returns to Idle, keeping settled
// data untouched. Used when the view gating the fetch goes inactive.
func (r Resource[K, T]) Suspend() Resource[K, T] {
	if r.state.status != Loading {
		return r
	}
	r = r.supersede()
	r.state = State[T]{}
	return r
}

// Update settles the resource if msg is its current result. The bool reports
// whether msg belonged to this resource, stale or not.
func (r Resource[K, T]) Update(msg tea.Msg) (Resource[K, T], bool) {
	res, ok := msg.(ResultMsg[K, T])
	if !ok || res.ID != r.id {
		return r, false
	}
	if res.Gen != r.gen || r.state.status != Loading {
		// superseded
		return r, true
	}

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	switch {
	case res.Err == nil:
		r.state = State[T]{status: Loaded, data: res.Data}
	case errors.Is(res.Err, context.Canceled):
		// only reachable when the parent context is gone; stay quiet
		r.state = State[T]{}
	default:
		r.state = State[T]{status: Failed, err: res.Err}
	}
	return r, true
}

func (r Resource[K, T]) supersede() Resource[K, T] {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
	return r
}
