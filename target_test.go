package timelock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/timelock/events"
	"github.com/smartcontractkit/timelock/journal"
	"github.com/smartcontractkit/timelock/types"
)

// runWithin fails the test if fn does not return within a few seconds.
func runWithin(t *testing.T, fn func() error) error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- fn() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("controller call did not return")
		return nil
	}
}

func TestController_Execute_TargetQueriesController(t *testing.T) {
	t.Parallel()

	type snapshot struct {
		minDelay types.Timestamp
		pending  bool
		done     bool
		state    types.OperationState
		count    int
		executor bool
	}

	var (
		env  *testEnv
		id   common.Hash
		seen []snapshot
	)
	readerAddr := common.HexToAddress("0xd0")
	reader := TargetFunc(func(ctx context.Context, msg types.Message) error {
		seen = append(seen, snapshot{
			minDelay: env.c.GetMinDelay(),
			pending:  env.c.IsOperationPending(id),
			done:     env.c.IsOperationDone(id),
			state:    env.c.GetOperationState(id),
			count:    env.counter.Count(),
			executor: env.c.HasRole(ExecutorRole, executorAddr),
		})

		return nil
	})

	ctx := testContext(t)
	env = newTestEnv(t, defaultConfig(), WithTarget(readerAddr, reader))

	updateDelay, err := EncodeUpdateDelay(30)
	require.NoError(t, err)
	calls := []types.Call{
		incrementCall(),
		types.NewCall(timelockAddr, nil, updateDelay),
		types.NewCall(readerAddr, nil, nil),
	}
	id, err = env.c.ScheduleBatch(ctx, proposerAddr, calls, common.Hash{}, salt0, 10)
	require.NoError(t, err)
	env.clock.Run(10)

	err = runWithin(t, func() error {
		return env.c.ExecuteBatch(ctx, executorAddr, calls, common.Hash{}, salt0)
	})
	require.NoError(t, err)

	require.Equal(t, []snapshot{{
		minDelay: 30,
		pending:  true,
		done:     false,
		state:    types.OperationReady,
		count:    1,
		executor: true,
	}}, seen)
	assert.True(t, env.c.IsOperationDone(id))

	// The controller stays usable after the target returned.
	_, err = env.c.Schedule(ctx, proposerAddr, incrementCall(), common.Hash{}, salt1, 30)
	require.NoError(t, err)
}

func TestController_Execute_TargetReentersController(t *testing.T) {
	t.Parallel()

	errDiscarded := errors.New("discarded")
	followUp := incrementCall()

	var (
		env           *testEnv
		sawDiscarded  bool
		sawFollowUp   bool
		followUpDelay types.Timestamp
	)
	schedulerAddr := common.HexToAddress("0xd1")
	scheduler := TargetFunc(func(ctx context.Context, msg types.Message) error {
		err := journal.Run(ctx, func(ctx context.Context) error {
			if _, err := env.c.Schedule(ctx, msg.Caller, followUp, common.Hash{}, salt0, 10); err != nil {
				return err
			}

			return errDiscarded
		})
		if !errors.Is(err, errDiscarded) {
			return err
		}
		discardedID, err := HashOperation(followUp, common.Hash{}, salt0)
		if err != nil {
			return err
		}
		sawDiscarded = env.c.IsOperation(discardedID)

		followUpID, err := env.c.Schedule(ctx, msg.Caller, followUp, common.Hash{}, salt1, 10)
		if err != nil {
			return err
		}
		sawFollowUp = env.c.IsOperationPending(followUpID)
		followUpDelay = env.c.GetTimestamp(followUpID)

		return nil
	})

	ctx := testContext(t)
	cfg := defaultConfig()
	cfg.Proposers = append(cfg.Proposers, timelockAddr)
	env = newTestEnv(t, cfg, WithTarget(schedulerAddr, scheduler))

	call := types.NewCall(schedulerAddr, nil, nil)
	id, err := env.c.Schedule(ctx, proposerAddr, call, common.Hash{}, salt1, 10)
	require.NoError(t, err)
	env.clock.Run(10)
	env.rec.Reset()

	err = runWithin(t, func() error {
		return env.c.Execute(ctx, executorAddr, call, common.Hash{}, salt1)
	})
	require.NoError(t, err)

	followUpID, err := HashOperation(followUp, common.Hash{}, salt1)
	require.NoError(t, err)
	discardedID, err := HashOperation(followUp, common.Hash{}, salt0)
	require.NoError(t, err)

	assert.False(t, sawDiscarded)
	assert.True(t, sawFollowUp)
	assert.Equal(t, types.Timestamp(20), followUpDelay)
	assert.False(t, env.c.IsOperation(discardedID))
	assert.True(t, env.c.IsOperationPending(followUpID))
	requireEvents(t, []events.Event{
		events.CallScheduled{ID: followUpID, Index: 0, Call: followUp, Delay: 10},
		events.CallExecuted{ID: id, Index: 0, Call: call},
	}, env.rec.Events())
}

func TestController_Execute_TargetReadFailureRollsBack(t *testing.T) {
	t.Parallel()

	var env *testEnv
	readerAddr := common.HexToAddress("0xd2")
	reader := TargetFunc(func(context.Context, types.Message) error {
		if env.c.GetMinDelay() != 30 {
			return errors.New("delay update not visible")
		}

		return errFakeTargetFailed
	})

	ctx := testContext(t)
	env = newTestEnv(t, defaultConfig(), WithTarget(readerAddr, reader))

	updateDelay, err := EncodeUpdateDelay(30)
	require.NoError(t, err)
	calls := []types.Call{
		types.NewCall(timelockAddr, nil, updateDelay),
		types.NewCall(readerAddr, nil, nil),
	}
	id, err := env.c.ScheduleBatch(ctx, proposerAddr, calls, common.Hash{}, salt0, 10)
	require.NoError(t, err)
	env.clock.Run(10)
	env.rec.Reset()

	err = runWithin(t, func() error {
		return env.c.ExecuteBatch(ctx, executorAddr, calls, common.Hash{}, salt0)
	})
	require.ErrorIs(t, err, errFakeTargetFailed)

	assert.Equal(t, types.Timestamp(10), env.c.GetMinDelay())
	assert.True(t, env.c.IsOperationReady(id))
	assert.Empty(t, env.rec.Events())
}
