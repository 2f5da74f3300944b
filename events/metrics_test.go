package events

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	var (
		opA = common.HexToHash("0xa")
		opB = common.HexToHash("0xb")
	)

	m.Notify(MinDelayChange{OldDelay: 0, NewDelay: 10})
	m.Notify(CallScheduled{ID: opA, Index: 0})
	m.Notify(CallScheduled{ID: opA, Index: 1})
	m.Notify(CallScheduled{ID: opB, Index: 0})
	m.Notify(CallExecuted{ID: opA, Index: 0})
	m.Notify(CallExecuted{ID: opA, Index: 1})

	assert.InDelta(t, 10, testutil.ToFloat64(m.minDelay), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.pending), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.events.WithLabelValues(NameCallScheduled)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.events.WithLabelValues(NameCallExecuted)), 0)

	m.Notify(Cancelled{ID: opB})
	assert.InDelta(t, 0, testutil.ToFloat64(m.pending), 0)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	require.ErrorContains(t, err, "failed to register timelock metric")
}
