package timelock

import (
	"context"
	"errors"
	"sync"

	"github.com/smartcontractkit/timelock/journal"
	"github.com/smartcontractkit/timelock/types"
)

var errFakeTargetFailed = errors.New("fake target failed")

var (
	fakeIncrement = []byte("increment")
	fakeFail      = []byte("fail")
)

// fakeCounter is a stateful target. It counts the increment calls it receives and fails on
// fail calls. Its state changes are journaled so that reverted executions leave no trace.
type fakeCounter struct {
	mu      sync.Mutex
	count   int
	callers []types.Message
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{}
}

// Invoke implements the Target interface.
func (f *fakeCounter) Invoke(ctx context.Context, msg types.Message) error {
	switch string(msg.Data) {
	case string(fakeFail):
		return errFakeTargetFailed
	case string(fakeIncrement):
		f.mu.Lock()
		f.count++
		f.callers = append(f.callers, msg)
		f.mu.Unlock()

		if j, ok := journal.FromContext(ctx); ok {
			j.Append(func() {
				f.mu.Lock()
				defer f.mu.Unlock()
				f.count--
				f.callers = f.callers[:len(f.callers)-1]
			})
		}

		return nil
	default:
		return errors.New("unknown fake call")
	}
}

// Count returns the number of increments applied.
func (f *fakeCounter) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.count
}

// Messages returns the messages of the applied increments.
func (f *fakeCounter) Messages() []types.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]types.Message(nil), f.callers...)
}
