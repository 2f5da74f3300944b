// Package journal provides the transactional scope every timelock entry point runs in.
//
// A Journal records how to undo each state change and buffers the notifications produced
// along the way. Committing drops the undo log, releases held locks and delivers the
// notifications in emission order. Reverting replays the undo log backwards and discards the
// notifications, so a failed transaction leaves no observable trace.
package journal

import (
	"context"

	"github.com/smartcontractkit/timelock/events"
)

type ctxKey struct{}

type notification struct {
	sink  events.Observer
	event events.Event
}

type hold struct {
	key     any
	release func()
}

// Snapshot identifies a point in the journal that can be reverted to.
type Snapshot struct {
	undo    int
	pending int
}

// Journal is the undo log and notification buffer of a single transaction. It is not safe
// for concurrent use; a transaction runs on one goroutine.
type Journal struct {
	undo    []func()
	pending []notification
	holds   []hold
}

// New creates an empty Journal.
func New() *Journal {
	return &Journal{}
}

// NewContext returns a copy of ctx carrying j.
func NewContext(ctx context.Context, j *Journal) context.Context {
	return context.WithValue(ctx, ctxKey{}, j)
}

// FromContext returns the journal of the transaction ctx belongs to, if any.
func FromContext(ctx context.Context) (*Journal, bool) {
	j, ok := ctx.Value(ctxKey{}).(*Journal)

	return j, ok && j != nil
}

// Append records an undo function for a state change that has just been applied.
func (j *Journal) Append(undo func()) {
	j.undo = append(j.undo, undo)
}

// Emit buffers ev for delivery to sink on commit. A nil sink drops the event.
func (j *Journal) Emit(sink events.Observer, ev events.Event) {
	if sink == nil {
		return
	}
	j.pending = append(j.pending, notification{sink: sink, event: ev})
}

// Pending returns the buffered events in emission order.
func (j *Journal) Pending() []events.Event {
	out := make([]events.Event, 0, len(j.pending))
	for _, n := range j.pending {
		out = append(out, n.event)
	}

	return out
}

// Snapshot returns the current position of the journal.
func (j *Journal) Snapshot() Snapshot {
	return Snapshot{undo: len(j.undo), pending: len(j.pending)}
}

// RevertToSnapshot undoes every change recorded after s, newest first, and drops the
// notifications emitted after s.
func (j *Journal) RevertToSnapshot(s Snapshot) {
	for i := len(j.undo) - 1; i >= s.undo; i-- {
		j.undo[i]()
	}
	j.undo = j.undo[:s.undo]
	j.pending = j.pending[:s.pending]
}

// Hold registers a resource held until the transaction ends. release is called once on
// Commit or Abort.
func (j *Journal) Hold(key any, release func()) {
	j.holds = append(j.holds, hold{key: key, release: release})
}

// Holds reports whether key is held by the transaction.
func (j *Journal) Holds(key any) bool {
	for _, h := range j.holds {
		if h.key == key {
			return true
		}
	}

	return false
}

// Do runs fn with j attached to ctx. If fn fails every change recorded since Do was called is
// undone and the error is returned unchanged.
func (j *Journal) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := j.Snapshot()
	if err := fn(NewContext(ctx, j)); err != nil {
		j.RevertToSnapshot(snap)
		return err
	}

	return nil
}

// Commit makes the transaction final: the undo log is dropped, held resources are released
// and the buffered notifications are delivered in order.
func (j *Journal) Commit() {
	pending := j.pending
	j.undo = nil
	j.pending = nil
	j.release()

	for _, n := range pending {
		n.sink.Notify(n.event)
	}
}

// Abort reverts every recorded change and releases held resources.
func (j *Journal) Abort() {
	j.RevertToSnapshot(Snapshot{})
	j.release()
}

func (j *Journal) release() {
	holds := j.holds
	j.holds = nil
	for i := len(holds) - 1; i >= 0; i-- {
		holds[i].release()
	}
}

// Run executes fn as a transaction. When ctx already belongs to a transaction fn joins it and
// only its own changes are undone on failure; otherwise a new journal is created and
// committed once fn succeeds.
func Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if j, ok := FromContext(ctx); ok {
		return j.Do(ctx, fn)
	}

	j := New()
	if err := j.Do(ctx, fn); err != nil {
		j.Abort()
		return err
	}
	j.Commit()

	return nil
}
