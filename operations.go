package timelock

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock/events"
	"github.com/smartcontractkit/timelock/internal/utils/safecast"
	"github.com/smartcontractkit/timelock/journal"
	"github.com/smartcontractkit/timelock/types"
)

// Schedule queues a single call operation that becomes executable once delay has elapsed.
// The caller must hold ProposerRole. It returns the operation identifier.
func (c *Controller) Schedule(
	ctx context.Context, caller common.Address, call types.Call, predecessor, salt common.Hash, delay types.Timestamp,
) (common.Hash, error) {
	id, err := HashOperation(call, predecessor, salt)
	if err != nil {
		return common.Hash{}, err
	}

	err = c.transact(ctx, func(ctx context.Context) error {
		return c.schedule(ctx, caller, id, []types.Call{call}, predecessor, delay)
	})
	if err != nil {
		return common.Hash{}, err
	}
	LoggerFrom(ctx).Infof("Scheduled operation %s with delay %d", id.Hex(), delay)

	return id, nil
}

// ScheduleBatch queues an operation made of an ordered batch of calls that becomes executable
// once delay has elapsed. The caller must hold ProposerRole. It returns the operation
// identifier.
func (c *Controller) ScheduleBatch(
	ctx context.Context, caller common.Address, calls []types.Call, predecessor, salt common.Hash, delay types.Timestamp,
) (common.Hash, error) {
	if err := validateBatch(calls); err != nil {
		return common.Hash{}, err
	}
	id, err := HashOperationBatch(calls, predecessor, salt)
	if err != nil {
		return common.Hash{}, err
	}

	err = c.transact(ctx, func(ctx context.Context) error {
		return c.schedule(ctx, caller, id, calls, predecessor, delay)
	})
	if err != nil {
		return common.Hash{}, err
	}
	LoggerFrom(ctx).Infof("Scheduled batch operation %s with %d calls and delay %d", id.Hex(), len(calls), delay)

	return id, nil
}

// Execute runs a ready single call operation. The caller must hold ExecutorRole unless the
// zero address holds it.
func (c *Controller) Execute(
	ctx context.Context, caller common.Address, call types.Call, predecessor, salt common.Hash,
) error {
	id, err := HashOperation(call, predecessor, salt)
	if err != nil {
		return err
	}

	err = c.transact(ctx, func(ctx context.Context) error {
		return c.execute(ctx, caller, id, []types.Call{call}, predecessor)
	})
	if err != nil {
		return err
	}
	LoggerFrom(ctx).Infof("Executed operation %s", id.Hex())

	return nil
}

// ExecuteBatch runs a ready batch operation. Calls are invoked in order and either all of
// them take effect or none does.
func (c *Controller) ExecuteBatch(
	ctx context.Context, caller common.Address, calls []types.Call, predecessor, salt common.Hash,
) error {
	if err := validateBatch(calls); err != nil {
		return err
	}
	id, err := HashOperationBatch(calls, predecessor, salt)
	if err != nil {
		return err
	}

	err = c.transact(ctx, func(ctx context.Context) error {
		return c.execute(ctx, caller, id, calls, predecessor)
	})
	if err != nil {
		return err
	}
	LoggerFrom(ctx).Infof("Executed batch operation %s with %d calls", id.Hex(), len(calls))

	return nil
}

// Cancel removes a pending operation. The caller must hold ProposerRole. A cancelled
// operation can be scheduled again.
func (c *Controller) Cancel(ctx context.Context, caller common.Address, id common.Hash) error {
	err := c.transact(ctx, func(ctx context.Context) error {
		return c.cancel(ctx, caller, id)
	})
	if err != nil {
		return err
	}
	LoggerFrom(ctx).Infof("Cancelled operation %s", id.Hex())

	return nil
}

// UpdateDelay changes the minimum delay. Only the timelock itself may call it, which means the
// change has to go through a scheduled operation targeting the timelock address.
func (c *Controller) UpdateDelay(ctx context.Context, caller common.Address, newDelay types.Timestamp) error {
	err := c.transact(ctx, func(ctx context.Context) error {
		return c.updateDelay(ctx, caller, newDelay)
	})
	if err != nil {
		return err
	}
	LoggerFrom(ctx).Infof("Updated minimum delay to %d", newDelay)

	return nil
}

// ScheduleOperation schedules op, as a single call operation when it holds exactly one call
// and as a batch otherwise.
func (c *Controller) ScheduleOperation(ctx context.Context, caller common.Address, op *Operation) (common.Hash, error) {
	if err := op.Validate(); err != nil {
		return common.Hash{}, err
	}
	if len(op.Calls) == 1 {
		return c.Schedule(ctx, caller, op.Calls[0], op.Predecessor, op.Salt, op.Delay)
	}

	return c.ScheduleBatch(ctx, caller, op.Calls, op.Predecessor, op.Salt, op.Delay)
}

// ExecuteOperation executes op, mirroring how ScheduleOperation scheduled it.
func (c *Controller) ExecuteOperation(ctx context.Context, caller common.Address, op *Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	if len(op.Calls) == 1 {
		return c.Execute(ctx, caller, op.Calls[0], op.Predecessor, op.Salt)
	}

	return c.ExecuteBatch(ctx, caller, op.Calls, op.Predecessor, op.Salt)
}

func validateBatch(calls []types.Call) error {
	if len(calls) == 0 {
		return ErrNoCallsInBatch
	}
	if len(calls) > MaxCallsPerOperation {
		return NewTooManyCallsError(len(calls))
	}

	return nil
}

// schedule must be called inside a transaction.
func (c *Controller) schedule(
	ctx context.Context, caller common.Address, id common.Hash, calls []types.Call, predecessor common.Hash, delay types.Timestamp,
) error {
	if err := c.ac.CheckRole(ProposerRole, caller); err != nil {
		return err
	}
	if _, ok := c.ops[id]; ok {
		return NewOperationAlreadyScheduledError(id)
	}
	if delay < c.minDelay {
		return NewInsufficientDelayError(delay, c.minDelay)
	}

	now := c.now()
	readyAt, err := safecast.AddUint64(uint64(now), uint64(delay))
	if err != nil || types.Timestamp(readyAt) <= types.DoneTimestamp {
		return NewInvalidReadyTimestampError(now, delay)
	}

	c.setRecord(ctx, id, &record{state: recordPending, readyAt: types.Timestamp(readyAt)})

	j, _ := journal.FromContext(ctx)
	for i, call := range calls {
		index, err := safecast.IntToUint8(i)
		if err != nil {
			return err
		}
		j.Emit(c.observer, events.CallScheduled{
			ID:          id,
			Index:       index,
			Call:        call,
			Predecessor: predecessor,
			Delay:       delay,
		})
	}

	return nil
}

// execute must be called inside a transaction.
func (c *Controller) execute(
	ctx context.Context, caller common.Address, id common.Hash, calls []types.Call, predecessor common.Hash,
) error {
	if !c.ac.HasRole(ExecutorRole, common.Address{}) {
		if err := c.ac.CheckRole(ExecutorRole, caller); err != nil {
			return err
		}
	}
	if !c.isReady(id) {
		return NewOperationNotReadyError(id)
	}
	if predecessor != (common.Hash{}) && !c.isDone(predecessor) {
		return NewPredecessorNotExecutedError(predecessor)
	}

	j, _ := journal.FromContext(ctx)
	for i, call := range calls {
		if err := c.invoke(ctx, call); err != nil {
			return NewUnderlyingCallFailedError(id, i, call.Target, err)
		}

		index, err := safecast.IntToUint8(i)
		if err != nil {
			return err
		}
		j.Emit(c.observer, events.CallExecuted{ID: id, Index: index, Call: call})
	}

	// A call back into the timelock may have cancelled or executed the operation.
	if !c.isReady(id) {
		return NewOperationNotReadyError(id)
	}
	c.setRecord(ctx, id, &record{state: recordDone})

	return nil
}

// cancel must be called inside a transaction.
func (c *Controller) cancel(ctx context.Context, caller common.Address, id common.Hash) error {
	if err := c.ac.CheckRole(ProposerRole, caller); err != nil {
		return err
	}
	if c.ops[id].state != recordPending {
		return NewOperationCannotBeCancelledError(id)
	}

	c.setRecord(ctx, id, nil)

	j, _ := journal.FromContext(ctx)
	j.Emit(c.observer, events.Cancelled{ID: id})

	return nil
}

// updateDelay must be called inside a transaction.
func (c *Controller) updateDelay(ctx context.Context, caller common.Address, newDelay types.Timestamp) error {
	if caller != c.address {
		return NewCallerMustBeTimelockError(caller)
	}
	c.setMinDelay(ctx, newDelay)

	return nil
}
