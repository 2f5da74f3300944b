package timelock

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/smartcontractkit/timelock/internal/utils/abi"
	"github.com/smartcontractkit/timelock/types"
)

const (
	hashOperationABI      = `[{"internalType":"address","name":"target","type":"address"},{"internalType":"uint256","name":"value","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"},{"internalType":"bytes32","name":"predecessor","type":"bytes32"},{"internalType":"bytes32","name":"salt","type":"bytes32"}]`
	hashOperationBatchABI = `[{"components":[{"internalType":"address","name":"target","type":"address"},{"internalType":"uint256","name":"value","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"internalType":"struct Call[]","name":"calls","type":"tuple[]"},{"internalType":"bytes32","name":"predecessor","type":"bytes32"},{"internalType":"bytes32","name":"salt","type":"bytes32"}]`
)

// abiCall mirrors the Call tuple of the timelock ABI.
type abiCall struct {
	Target common.Address
	Value  *big.Int
	Data   []byte
}

func toABICall(c types.Call) abiCall {
	data := c.Data
	if data == nil {
		data = []byte{}
	}

	return abiCall{Target: c.Target, Value: c.ValueOrZero(), Data: data}
}

// HashOperation computes the identifier of an operation made of a single call. It is the
// keccak256 of abi.encode(target, value, data, predecessor, salt).
func HashOperation(call types.Call, predecessor, salt common.Hash) (common.Hash, error) {
	if err := call.Validate(); err != nil {
		return common.Hash{}, err
	}

	c := toABICall(call)
	encoded, err := abi.Encode(hashOperationABI, c.Target, c.Value, c.Data, [32]byte(predecessor), [32]byte(salt))
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}

// HashOperationBatch computes the identifier of an operation made of an ordered batch of
// calls. It is the keccak256 of abi.encode(calls, predecessor, salt) and covers the whole
// sequence, so reordering calls yields a different identifier.
func HashOperationBatch(calls []types.Call, predecessor, salt common.Hash) (common.Hash, error) {
	encodedCalls := make([]abiCall, 0, len(calls))
	for _, call := range calls {
		if err := call.Validate(); err != nil {
			return common.Hash{}, err
		}
		encodedCalls = append(encodedCalls, toABICall(call))
	}

	encoded, err := abi.Encode(hashOperationBatchABI, encodedCalls, [32]byte(predecessor), [32]byte(salt))
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Keccak256Hash(encoded), nil
}
