package timelock

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock/types"
)

// timelockABI describes the methods an operation can invoke on the timelock itself.
const timelockABI = `[
{"inputs":[{"internalType":"uint256","name":"newDelay","type":"uint256"}],"name":"updateDelay","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"role","type":"bytes32"},{"internalType":"address","name":"account","type":"address"}],"name":"grantRole","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"role","type":"bytes32"},{"internalType":"address","name":"account","type":"address"}],"name":"revokeRole","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"role","type":"bytes32"},{"internalType":"address","name":"account","type":"address"}],"name":"renounceRole","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"address","name":"target","type":"address"},{"internalType":"uint256","name":"value","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"},{"internalType":"bytes32","name":"predecessor","type":"bytes32"},{"internalType":"bytes32","name":"salt","type":"bytes32"},{"internalType":"uint256","name":"delay","type":"uint256"}],"name":"schedule","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"components":[{"internalType":"address","name":"target","type":"address"},{"internalType":"uint256","name":"value","type":"uint256"},{"internalType":"bytes","name":"data","type":"bytes"}],"internalType":"struct Call[]","name":"calls","type":"tuple[]"},{"internalType":"bytes32","name":"predecessor","type":"bytes32"},{"internalType":"bytes32","name":"salt","type":"bytes32"},{"internalType":"uint256","name":"delay","type":"uint256"}],"name":"scheduleBatch","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"bytes32","name":"id","type":"bytes32"}],"name":"cancel","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

const (
	methodUpdateDelay   = "updateDelay"
	methodGrantRole     = "grantRole"
	methodRevokeRole    = "revokeRole"
	methodRenounceRole  = "renounceRole"
	methodSchedule      = "schedule"
	methodScheduleBatch = "scheduleBatch"
	methodCancel        = "cancel"
)

var parsedTimelockABI = func() gethabi.ABI {
	parsed, err := gethabi.JSON(strings.NewReader(timelockABI))
	if err != nil {
		panic(fmt.Sprintf("failed to parse timelock ABI: %v", err))
	}

	return parsed
}()

// Invoke handles a call made to the timelock address. The payload is an ABI encoded call to
// one of the self callable methods; an empty payload is a plain value transfer and succeeds.
func (c *Controller) Invoke(ctx context.Context, msg types.Message) error {
	return c.transact(ctx, func(ctx context.Context) error {
		return c.dispatch(ctx, msg)
	})
}

// dispatch must be called inside a transaction.
func (c *Controller) dispatch(ctx context.Context, msg types.Message) error {
	if len(msg.Data) == 0 {
		return nil
	}
	if len(msg.Data) < 4 {
		return NewUnknownSelectorError(msg.Data)
	}

	method, err := parsedTimelockABI.MethodById(msg.Data[:4])
	if err != nil {
		return NewUnknownSelectorError(msg.Data[:4])
	}
	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return fmt.Errorf("failed to decode %s arguments: %w", method.Name, err)
	}

	switch method.Name {
	case methodUpdateDelay:
		newDelay, err := toTimestamp(args[0])
		if err != nil {
			return err
		}

		return c.updateDelay(ctx, msg.Caller, newDelay)
	case methodGrantRole:
		return c.ac.GrantRole(ctx, msg.Caller, toHash(args[0]), args[1].(common.Address))
	case methodRevokeRole:
		return c.ac.RevokeRole(ctx, msg.Caller, toHash(args[0]), args[1].(common.Address))
	case methodRenounceRole:
		return c.ac.RenounceRole(ctx, msg.Caller, toHash(args[0]), args[1].(common.Address))
	case methodSchedule:
		call := types.NewCall(args[0].(common.Address), args[1].(*big.Int), args[2].([]byte))
		predecessor, salt := toHash(args[3]), toHash(args[4])
		delay, err := toTimestamp(args[5])
		if err != nil {
			return err
		}
		id, err := HashOperation(call, predecessor, salt)
		if err != nil {
			return err
		}

		return c.schedule(ctx, msg.Caller, id, []types.Call{call}, predecessor, delay)
	case methodScheduleBatch:
		encoded := *gethabi.ConvertType(args[0], new([]abiCall)).(*[]abiCall)
		calls := make([]types.Call, 0, len(encoded))
		for _, e := range encoded {
			calls = append(calls, types.NewCall(e.Target, e.Value, e.Data))
		}
		predecessor, salt := toHash(args[1]), toHash(args[2])
		delay, err := toTimestamp(args[3])
		if err != nil {
			return err
		}
		if err = validateBatch(calls); err != nil {
			return err
		}
		id, err := HashOperationBatch(calls, predecessor, salt)
		if err != nil {
			return err
		}

		return c.schedule(ctx, msg.Caller, id, calls, predecessor, delay)
	case methodCancel:
		return c.cancel(ctx, msg.Caller, toHash(args[0]))
	default:
		return NewUnknownSelectorError(msg.Data[:4])
	}
}

// EncodeUpdateDelay returns the payload of a call to the timelock changing the minimum delay.
func EncodeUpdateDelay(newDelay types.Timestamp) ([]byte, error) {
	return parsedTimelockABI.Pack(methodUpdateDelay, new(big.Int).SetUint64(uint64(newDelay)))
}

// EncodeGrantRole returns the payload of a call to the timelock granting role to account.
func EncodeGrantRole(role common.Hash, account common.Address) ([]byte, error) {
	return parsedTimelockABI.Pack(methodGrantRole, [32]byte(role), account)
}

// EncodeRevokeRole returns the payload of a call to the timelock revoking role from account.
func EncodeRevokeRole(role common.Hash, account common.Address) ([]byte, error) {
	return parsedTimelockABI.Pack(methodRevokeRole, [32]byte(role), account)
}

// EncodeRenounceRole returns the payload of a call to the timelock renouncing role. Only
// useful when account is the timelock itself.
func EncodeRenounceRole(role common.Hash, account common.Address) ([]byte, error) {
	return parsedTimelockABI.Pack(methodRenounceRole, [32]byte(role), account)
}

// EncodeSchedule returns the payload of a call to the timelock scheduling a single call
// operation.
func EncodeSchedule(call types.Call, predecessor, salt common.Hash, delay types.Timestamp) ([]byte, error) {
	if err := call.Validate(); err != nil {
		return nil, err
	}
	c := toABICall(call)

	return parsedTimelockABI.Pack(methodSchedule,
		c.Target, c.Value, c.Data, [32]byte(predecessor), [32]byte(salt), new(big.Int).SetUint64(uint64(delay)))
}

// EncodeScheduleBatch returns the payload of a call to the timelock scheduling a batch
// operation.
func EncodeScheduleBatch(calls []types.Call, predecessor, salt common.Hash, delay types.Timestamp) ([]byte, error) {
	if err := validateBatch(calls); err != nil {
		return nil, err
	}
	encoded := make([]abiCall, 0, len(calls))
	for _, call := range calls {
		if err := call.Validate(); err != nil {
			return nil, err
		}
		encoded = append(encoded, toABICall(call))
	}

	return parsedTimelockABI.Pack(methodScheduleBatch,
		encoded, [32]byte(predecessor), [32]byte(salt), new(big.Int).SetUint64(uint64(delay)))
}

// EncodeCancel returns the payload of a call to the timelock cancelling operation id.
func EncodeCancel(id common.Hash) ([]byte, error) {
	return parsedTimelockABI.Pack(methodCancel, [32]byte(id))
}

func toHash(v any) common.Hash {
	return common.Hash(v.([32]byte))
}

func toTimestamp(v any) (types.Timestamp, error) {
	n := v.(*big.Int)
	if !n.IsUint64() {
		return 0, fmt.Errorf("value %s exceeds the timestamp range", n)
	}

	return types.Timestamp(n.Uint64()), nil
}
