package timelock

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	id := common.HexToHash("0x1")
	target := common.HexToAddress("0x2")

	tests := []struct {
		err      error
		expected string
	}{
		{NewOperationAlreadyScheduledError(id), "operation " + id.Hex() + " already scheduled"},
		{NewInsufficientDelayError(1, 10), "insufficient delay: 1 is below the minimum delay 10"},
		{NewInvalidReadyTimestampError(0, 1), "invalid ready timestamp for delay 1 at time 0"},
		{NewOperationNotReadyError(id), "operation " + id.Hex() + " is not ready"},
		{NewPredecessorNotExecutedError(id), "predecessor " + id.Hex() + " has not been executed"},
		{NewOperationCannotBeCancelledError(id), "operation " + id.Hex() + " cannot be cancelled"},
		{NewCallerMustBeTimelockError(target), "caller 0x0000000000000000000000000000000000000002 must be the timelock"},
		{
			NewUnderlyingCallFailedError(id, 3, target, errors.New("boom")),
			"call 3 to 0x0000000000000000000000000000000000000002 of operation " + id.Hex() + " failed: boom",
		},
		{NewTooManyCallsError(300), "too many calls: 300 max number is 256"},
		{NewUnknownSelectorError([]byte{0xde, 0xad, 0xbe, 0xef}), "unknown timelock method selector: 0xdeadbeef"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}

func TestUnderlyingCallFailedError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewUnderlyingCallFailedError(common.Hash{}, 0, common.Address{}, errFakeTargetFailed)

	require.ErrorIs(t, err, errFakeTargetFailed)

	var callErr *UnderlyingCallFailedError
	require.ErrorAs(t, error(err), &callErr)
	assert.Equal(t, 0, callErr.Index)
}
