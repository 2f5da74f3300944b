package timelock

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/smartcontractkit/timelock/types"
)

// Operation is a schedulable unit of work together with the parameters that identify it.
type Operation struct {
	Calls       []types.Call    `json:"calls" validate:"required,min=1,max=256"`
	Predecessor common.Hash     `json:"predecessor"`
	Salt        common.Hash     `json:"salt"`
	Delay       types.Timestamp `json:"delay"`
}

// Validate checks that the operation can be scheduled.
func (o *Operation) Validate() error {
	var validate = validator.New()
	if err := validate.Struct(o); err != nil {
		return err
	}

	for _, call := range o.Calls {
		if err := call.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ID returns the operation identifier. Operations holding a single call are hashed as single
// call operations, others as batches.
func (o *Operation) ID() (common.Hash, error) {
	if len(o.Calls) == 1 {
		return HashOperation(o.Calls[0], o.Predecessor, o.Salt)
	}
	if err := validateBatch(o.Calls); err != nil {
		return common.Hash{}, err
	}

	return HashOperationBatch(o.Calls, o.Predecessor, o.Salt)
}

// OperationBuilder builds timelock operations.
type OperationBuilder struct {
	operation Operation
}

// NewOperationBuilder creates a new OperationBuilder.
func NewOperationBuilder() *OperationBuilder {
	return &OperationBuilder{
		operation: Operation{
			Calls: []types.Call{},
		},
	}
}

// AddCall appends a call to the operation.
func (b *OperationBuilder) AddCall(call types.Call) *OperationBuilder {
	b.operation.Calls = append(b.operation.Calls, call)

	return b
}

// SetCalls sets all the calls of the operation.
func (b *OperationBuilder) SetCalls(calls []types.Call) *OperationBuilder {
	b.operation.Calls = calls

	return b
}

// SetPredecessor sets the operation that must be done before this one can execute.
func (b *OperationBuilder) SetPredecessor(predecessor common.Hash) *OperationBuilder {
	b.operation.Predecessor = predecessor
	return b
}

// SetSalt sets the salt of the operation.
func (b *OperationBuilder) SetSalt(salt common.Hash) *OperationBuilder {
	b.operation.Salt = salt
	return b
}

// SetDelay sets the delay of the operation.
func (b *OperationBuilder) SetDelay(delay types.Timestamp) *OperationBuilder {
	b.operation.Delay = delay
	return b
}

// Build validates and returns the constructed Operation.
func (b *OperationBuilder) Build() (*Operation, error) {
	if err := b.operation.Validate(); err != nil {
		return nil, err
	}

	op := b.operation

	return &op, nil
}
