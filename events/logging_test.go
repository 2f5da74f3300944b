package events

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smartcontractkit/timelock/types"
)

func TestLogObserver(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	o := NewLogObserver(zap.New(core))

	id := common.HexToHash("0xabc")
	o.Notify(CallScheduled{
		ID:    id,
		Index: 1,
		Call:  types.NewCall(common.HexToAddress("0x2"), big.NewInt(5), []byte{0x1, 0x2}),
		Delay: 11,
	})
	o.Notify(Cancelled{ID: id})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, "CallScheduled", entries[0].Message)
	assert.Equal(t, "timelock.events", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.Equal(t, id.String(), fields["id"])
	assert.Equal(t, uint8(1), fields["index"])
	assert.Equal(t, "5", fields["value"])
	assert.Equal(t, int64(2), fields["dataLen"])
	assert.Equal(t, uint64(11), fields["delay"])

	assert.Equal(t, "Cancelled", entries[1].Message)
	assert.Equal(t, id.String(), entries[1].ContextMap()["id"])
}

func TestLogObserver_NilLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NewLogObserver(nil).Notify(MinDelayChange{NewDelay: 1})
	})
}
