package timelock

import (
	"context"

	"github.com/smartcontractkit/timelock/types"
)

// Target is the code living at an address that executed calls are delivered to.
//
// Invoke runs inside the executing transaction. A target holding state must record how to undo
// its changes with journal.FromContext(ctx) so that a failing batch leaves no partial effect.
// A target may query the controller and observes the effects of the calls executed before it.
// It may also call the controller's mutating methods with the ctx it received; the call then
// joins the executing transaction.
type Target interface {
	Invoke(ctx context.Context, msg types.Message) error
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func(ctx context.Context, msg types.Message) error

// Invoke calls f(ctx, msg).
func (f TargetFunc) Invoke(ctx context.Context, msg types.Message) error {
	return f(ctx, msg)
}

// invoke delivers call to its target on behalf of the timelock. Must be called inside a
// transaction.
func (c *Controller) invoke(ctx context.Context, call types.Call) error {
	msg := types.Message{
		Caller: c.address,
		Value:  call.ValueOrZero(),
		Data:   call.Data,
	}

	if call.Target == c.address {
		return c.dispatch(ctx, msg)
	}

	target, ok := c.targets[call.Target]
	if !ok {
		if len(call.Data) == 0 {
			return nil
		}

		return ErrNoTargetCode
	}

	return c.callout(func() error {
		return target.Invoke(ctx, msg)
	})
}

