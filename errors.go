package timelock

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock/types"
)

var (
	// ErrNoCallsInBatch is returned when a batch operation contains no calls.
	ErrNoCallsInBatch = errors.New("no calls in batch")

	// ErrNoTargetCode is returned when a call carries a payload for an address that has no
	// registered target to handle it.
	ErrNoTargetCode = errors.New("call with data to an address without a target")
)

// OperationAlreadyScheduledError is returned when scheduling an operation whose identifier is
// already pending or done.
type OperationAlreadyScheduledError struct {
	ID common.Hash
}

// NewOperationAlreadyScheduledError creates a new OperationAlreadyScheduledError.
func NewOperationAlreadyScheduledError(id common.Hash) *OperationAlreadyScheduledError {
	return &OperationAlreadyScheduledError{ID: id}
}

// Error implements the error interface.
func (e *OperationAlreadyScheduledError) Error() string {
	return fmt.Sprintf("operation %s already scheduled", e.ID.Hex())
}

// InsufficientDelayError is returned when the requested delay is below the minimum delay.
type InsufficientDelayError struct {
	Delay    types.Timestamp
	MinDelay types.Timestamp
}

// NewInsufficientDelayError creates a new InsufficientDelayError.
func NewInsufficientDelayError(delay, minDelay types.Timestamp) *InsufficientDelayError {
	return &InsufficientDelayError{Delay: delay, MinDelay: minDelay}
}

// Error implements the error interface.
func (e *InsufficientDelayError) Error() string {
	return fmt.Sprintf("insufficient delay: %d is below the minimum delay %d", e.Delay, e.MinDelay)
}

// InvalidReadyTimestampError is returned when the ready time of an operation would overflow
// or collide with the timestamps reserved for unset and done operations.
type InvalidReadyTimestampError struct {
	Now   types.Timestamp
	Delay types.Timestamp
}

// NewInvalidReadyTimestampError creates a new InvalidReadyTimestampError.
func NewInvalidReadyTimestampError(now, delay types.Timestamp) *InvalidReadyTimestampError {
	return &InvalidReadyTimestampError{Now: now, Delay: delay}
}

// Error implements the error interface.
func (e *InvalidReadyTimestampError) Error() string {
	return fmt.Sprintf("invalid ready timestamp for delay %d at time %d", e.Delay, e.Now)
}

// OperationNotReadyError is returned when executing an operation that is not pending or whose
// ready time has not passed.
type OperationNotReadyError struct {
	ID common.Hash
}

// NewOperationNotReadyError creates a new OperationNotReadyError.
func NewOperationNotReadyError(id common.Hash) *OperationNotReadyError {
	return &OperationNotReadyError{ID: id}
}

// Error implements the error interface.
func (e *OperationNotReadyError) Error() string {
	return fmt.Sprintf("operation %s is not ready", e.ID.Hex())
}

// PredecessorNotExecutedError is returned when executing an operation whose predecessor is not
// done.
type PredecessorNotExecutedError struct {
	Predecessor common.Hash
}

// NewPredecessorNotExecutedError creates a new PredecessorNotExecutedError.
func NewPredecessorNotExecutedError(predecessor common.Hash) *PredecessorNotExecutedError {
	return &PredecessorNotExecutedError{Predecessor: predecessor}
}

// Error implements the error interface.
func (e *PredecessorNotExecutedError) Error() string {
	return fmt.Sprintf("predecessor %s has not been executed", e.Predecessor.Hex())
}

// OperationCannotBeCancelledError is returned when cancelling an operation that is not pending.
type OperationCannotBeCancelledError struct {
	ID common.Hash
}

// NewOperationCannotBeCancelledError creates a new OperationCannotBeCancelledError.
func NewOperationCannotBeCancelledError(id common.Hash) *OperationCannotBeCancelledError {
	return &OperationCannotBeCancelledError{ID: id}
}

// Error implements the error interface.
func (e *OperationCannotBeCancelledError) Error() string {
	return fmt.Sprintf("operation %s cannot be cancelled", e.ID.Hex())
}

// CallerMustBeTimelockError is returned when a self governed operation is invoked by any
// caller other than the timelock itself.
type CallerMustBeTimelockError struct {
	Caller common.Address
}

// NewCallerMustBeTimelockError creates a new CallerMustBeTimelockError.
func NewCallerMustBeTimelockError(caller common.Address) *CallerMustBeTimelockError {
	return &CallerMustBeTimelockError{Caller: caller}
}

// Error implements the error interface.
func (e *CallerMustBeTimelockError) Error() string {
	return fmt.Sprintf("caller %s must be the timelock", e.Caller.Hex())
}

// UnderlyingCallFailedError is returned when a call of an executed operation fails. The whole
// execution has been reverted and the operation is still pending.
type UnderlyingCallFailedError struct {
	ID     common.Hash
	Index  int
	Target common.Address
	Err    error
}

// NewUnderlyingCallFailedError creates a new UnderlyingCallFailedError.
func NewUnderlyingCallFailedError(id common.Hash, index int, target common.Address, err error) *UnderlyingCallFailedError {
	return &UnderlyingCallFailedError{ID: id, Index: index, Target: target, Err: err}
}

// Error implements the error interface.
func (e *UnderlyingCallFailedError) Error() string {
	return fmt.Sprintf("call %d to %s of operation %s failed: %v", e.Index, e.Target.Hex(), e.ID.Hex(), e.Err)
}

// Unwrap returns the error reported by the target.
func (e *UnderlyingCallFailedError) Unwrap() error {
	return e.Err
}

// TooManyCallsError is returned when a batch has more calls than notification indices can
// address.
type TooManyCallsError struct {
	NumCalls int
}

// NewTooManyCallsError creates a new TooManyCallsError.
func NewTooManyCallsError(numCalls int) *TooManyCallsError {
	return &TooManyCallsError{NumCalls: numCalls}
}

// Error implements the error interface.
func (e *TooManyCallsError) Error() string {
	return fmt.Sprintf("too many calls: %d max number is %d", e.NumCalls, MaxCallsPerOperation)
}

// UnknownSelectorError is returned when a call to the timelock carries a payload that does
// not match any self callable method.
type UnknownSelectorError struct {
	Selector []byte
}

// NewUnknownSelectorError creates a new UnknownSelectorError.
func NewUnknownSelectorError(selector []byte) *UnknownSelectorError {
	return &UnknownSelectorError{Selector: selector}
}

// Error implements the error interface.
func (e *UnknownSelectorError) Error() string {
	return fmt.Sprintf("unknown timelock method selector: %#x", e.Selector)
}
