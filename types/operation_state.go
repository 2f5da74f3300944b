package types

// OperationState is the lifecycle state of a timelock operation.
type OperationState uint8

const (
	// OperationUnset is the state of an operation that was never scheduled or was cancelled.
	OperationUnset OperationState = iota
	// OperationWaiting is the state of a scheduled operation whose ready time has not passed.
	OperationWaiting
	// OperationReady is the state of a scheduled operation that can be executed.
	OperationReady
	// OperationDone is the state of an executed operation. It is terminal.
	OperationDone
)

// String returns the name of the state.
func (s OperationState) String() string {
	switch s {
	case OperationUnset:
		return "unset"
	case OperationWaiting:
		return "waiting"
	case OperationReady:
		return "ready"
	case OperationDone:
		return "done"
	default:
		return "unknown"
	}
}
