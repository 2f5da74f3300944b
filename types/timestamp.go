package types

// Timestamp is a point in time, or a delay, expressed in the units of the timelock clock.
type Timestamp uint64

const (
	// UnsetTimestamp is reported for operations that do not exist.
	UnsetTimestamp Timestamp = 0

	// DoneTimestamp is reported for operations that have been executed.
	DoneTimestamp Timestamp = 1
)
