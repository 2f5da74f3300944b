package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Call is a single invocation queued in a timelock operation. The zero value is a valid no-op
// call to the zero address.
type Call struct {
	Target common.Address `json:"target"`
	Value  *big.Int       `json:"value"`
	Data   []byte         `json:"data"`
}

// NewCall creates a new Call.
func NewCall(target common.Address, value *big.Int, data []byte) Call {
	return Call{
		Target: target,
		Value:  value,
		Data:   data,
	}
}

// ValueOrZero returns the value transferred by the call, treating a nil value as zero.
func (c Call) ValueOrZero() *big.Int {
	if c.Value == nil {
		return big.NewInt(0)
	}

	return new(big.Int).Set(c.Value)
}

// Validate ensures the call can be encoded and invoked.
func (c Call) Validate() error {
	if c.Value != nil && c.Value.Sign() < 0 {
		return fmt.Errorf("invalid call value: %v", c.Value)
	}

	return nil
}

// Message is what a target receives when a queued call is invoked.
type Message struct {
	// Caller is the principal performing the call. For executed operations this is always the
	// timelock itself.
	Caller common.Address
	Value  *big.Int
	Data   []byte
}
