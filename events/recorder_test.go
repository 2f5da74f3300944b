package events

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Notify(MinDelayChange{OldDelay: 0, NewDelay: 10})
	r.Notify(Cancelled{ID: common.HexToHash("0x1")})
	r.Notify(MinDelayChange{OldDelay: 10, NewDelay: 12})

	assert.Equal(t, []Event{
		MinDelayChange{OldDelay: 0, NewDelay: 10},
		Cancelled{ID: common.HexToHash("0x1")},
		MinDelayChange{OldDelay: 10, NewDelay: 12},
	}, r.Events())

	assert.Len(t, r.Named(NameMinDelayChange), 2)
	assert.Len(t, r.Named(NameCallExecuted), 0)

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestMulti(t *testing.T) {
	t.Parallel()

	var (
		first  = NewRecorder()
		second = NewRecorder()
		calls  []string
	)

	m := Multi{first, nil, ObserverFunc(func(ev Event) {
		calls = append(calls, ev.Name())
	}), second}

	m.Notify(Cancelled{})

	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
	assert.Equal(t, []string{NameCancelled}, calls)
}

func TestEvent_Name(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give Event
		want string
	}{
		{MinDelayChange{}, "MinDelayChange"},
		{CallScheduled{}, "CallScheduled"},
		{CallExecuted{}, "CallExecuted"},
		{Cancelled{}, "Cancelled"},
		{RoleGranted{}, "RoleGranted"},
		{RoleRevoked{}, "RoleRevoked"},
		{RoleAdminChanged{}, "RoleAdminChanged"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.give.Name())
	}
}
