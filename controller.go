// Package timelock implements a timelock controller: an access controlled scheduler that
// delays the execution of privileged calls.
//
// Proposers schedule operations made of one or more calls. Once the operation delay has
// passed, executors can execute it; until then proposers can cancel it. The minimum delay is
// itself governed by the timelock: it can only be changed by an operation that the timelock
// schedules and executes against its own address.
package timelock

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"

	"github.com/smartcontractkit/timelock/accesscontrol"
	"github.com/smartcontractkit/timelock/events"
	"github.com/smartcontractkit/timelock/journal"
	"github.com/smartcontractkit/timelock/types"
)

// MaxCallsPerOperation is the largest batch an operation can hold. Notification indices are
// uint8.
const MaxCallsPerOperation = 256

var _ Target = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used to evaluate delays. Defaults to mclock.System.
func WithClock(clock mclock.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithObserver sets the observer notified of timelock and role changes.
func WithObserver(o events.Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithTarget registers the target invoked for calls to address.
func WithTarget(address common.Address, t Target) Option {
	return func(c *Controller) {
		c.targets[address] = t
	}
}

type recordState uint8

const (
	recordPending recordState = iota + 1
	recordDone
)

// record is the state of a known operation. Operations without a record are unset.
type record struct {
	state   recordState
	readyAt types.Timestamp
}

// Controller is the timelock state machine. Every mutating method runs as a single
// transaction: it either applies all of its effects and delivers its notifications, or fails
// and leaves no trace.
//
// Transactions are serialized by txMu. The state lock mu is held by the running transaction
// except while a registered target executes, so a target can query the controller. Queries
// made concurrently during that window see the effects applied so far by the executing batch.
type Controller struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	// stateHeld is set while the running transaction holds mu. Only the transaction holding
	// txMu reads or writes it.
	stateHeld bool

	address  common.Address
	ac       *accesscontrol.AccessControl
	clock    mclock.Clock
	observer events.Observer
	targets  map[common.Address]Target
	ops      map[common.Hash]record
	minDelay types.Timestamp
}

// NewController creates a timelock controller from cfg.
//
// The admin is granted TimelockAdminRole, proposers ProposerRole and executors ExecutorRole.
// TimelockAdminRole administers both proposer and executor roles. Including the zero address
// in the executors lets anyone execute ready operations.
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		address: cfg.Address,
		clock:   mclock.System{},
		targets: make(map[common.Address]Target),
		ops:     make(map[common.Hash]record),
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, ok := c.targets[c.address]; ok {
		return nil, fmt.Errorf("cannot register a target at the timelock address %s", c.address.Hex())
	}
	c.ac = accesscontrol.New(accesscontrol.WithObserver(c.observer))

	err := c.transact(context.Background(), func(ctx context.Context) error {
		c.setMinDelay(ctx, cfg.MinDelay)

		c.ac.SetRoleAdmin(ctx, ProposerRole, TimelockAdminRole)
		c.ac.SetRoleAdmin(ctx, ExecutorRole, TimelockAdminRole)

		if cfg.Admin != (common.Address{}) {
			c.ac.SetupRole(ctx, c.address, TimelockAdminRole, cfg.Admin)
		}
		for _, proposer := range cfg.Proposers {
			c.ac.SetupRole(ctx, c.address, ProposerRole, proposer)
		}
		for _, executor := range cfg.Executors {
			c.ac.SetupRole(ctx, c.address, ExecutorRole, executor)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Address returns the principal the timelock acts as when executing calls.
func (c *Controller) Address() common.Address {
	return c.address
}

// HashOperation returns the identifier of a single call operation.
func (c *Controller) HashOperation(call types.Call, predecessor, salt common.Hash) (common.Hash, error) {
	return HashOperation(call, predecessor, salt)
}

// HashOperationBatch returns the identifier of a batch operation.
func (c *Controller) HashOperationBatch(calls []types.Call, predecessor, salt common.Hash) (common.Hash, error) {
	return HashOperationBatch(calls, predecessor, salt)
}

// IsOperation reports whether id is pending or done.
func (c *Controller) IsOperation(id common.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.ops[id]

	return ok
}

// IsOperationPending reports whether id is scheduled and not yet executed. Ready operations
// are pending too.
func (c *Controller) IsOperationPending(id common.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ops[id].state == recordPending
}

// IsOperationReady reports whether id is pending and its ready time has passed.
func (c *Controller) IsOperationReady(id common.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.isReady(id)
}

// IsOperationDone reports whether id has been executed.
func (c *Controller) IsOperationDone(id common.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.isDone(id)
}

// GetTimestamp returns the time at which id becomes ready, types.UnsetTimestamp for unknown
// operations and types.DoneTimestamp for executed ones.
func (c *Controller) GetTimestamp(id common.Hash) types.Timestamp {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.ops[id]
	switch {
	case !ok:
		return types.UnsetTimestamp
	case rec.state == recordDone:
		return types.DoneTimestamp
	default:
		return rec.readyAt
	}
}

// GetOperationState returns the lifecycle state of id.
func (c *Controller) GetOperationState(id common.Hash) types.OperationState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.ops[id]
	switch {
	case !ok:
		return types.OperationUnset
	case rec.state == recordDone:
		return types.OperationDone
	case c.now() >= rec.readyAt:
		return types.OperationReady
	default:
		return types.OperationWaiting
	}
}

// GetMinDelay returns the minimum delay accepted for new operations.
func (c *Controller) GetMinDelay() types.Timestamp {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.minDelay
}

// HasRole reports whether account holds role.
func (c *Controller) HasRole(role common.Hash, account common.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ac.HasRole(role, account)
}

// GetRoleAdmin returns the admin role of role.
func (c *Controller) GetRoleAdmin(role common.Hash) common.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ac.GetRoleAdmin(role)
}

// RoleMembers returns every account holding role.
func (c *Controller) RoleMembers(role common.Hash) []common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ac.RoleMembers(role)
}

// GrantRole grants role to account on behalf of caller, who must hold the role's admin role.
func (c *Controller) GrantRole(ctx context.Context, caller common.Address, role common.Hash, account common.Address) error {
	return c.transact(ctx, func(ctx context.Context) error {
		return c.ac.GrantRole(ctx, caller, role, account)
	})
}

// RevokeRole revokes role from account on behalf of caller, who must hold the role's admin
// role.
func (c *Controller) RevokeRole(ctx context.Context, caller common.Address, role common.Hash, account common.Address) error {
	return c.transact(ctx, func(ctx context.Context) error {
		return c.ac.RevokeRole(ctx, caller, role, account)
	})
}

// RenounceRole removes role from caller. account must equal caller.
func (c *Controller) RenounceRole(ctx context.Context, caller common.Address, role common.Hash, account common.Address) error {
	return c.transact(ctx, func(ctx context.Context) error {
		return c.ac.RenounceRole(ctx, caller, role, account)
	})
}

// transact runs fn as one transaction. Calls made while the controller is already part of the
// transaction carried by ctx join it; the controller locks are then held until that outer
// transaction commits or aborts. A call joining from a target reacquires the state lock for
// its own duration.
func (c *Controller) transact(ctx context.Context, fn func(ctx context.Context) error) error {
	j, nested := journal.FromContext(ctx)
	if !nested {
		j = journal.New()
	}
	switch {
	case !j.Holds(c):
		c.txMu.Lock()
		c.mu.Lock()
		c.stateHeld = true
		j.Hold(c, func() {
			c.stateHeld = false
			c.mu.Unlock()
			c.txMu.Unlock()
		})
	case !c.stateHeld:
		c.mu.Lock()
		c.stateHeld = true
		defer func() {
			c.stateHeld = false
			c.mu.Unlock()
		}()
	}

	if err := j.Do(ctx, fn); err != nil {
		if !nested {
			j.Abort()
		}

		return err
	}
	if !nested {
		j.Commit()
	}

	return nil
}

// callout runs fn with the state lock released. Must be called inside a transaction.
func (c *Controller) callout(fn func() error) error {
	c.stateHeld = false
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.stateHeld = true
	}()

	return fn()
}

// restore runs an undo function under the state lock. Undo functions run either from the
// transaction that applied the change or from a target that reverts its own nested work.
func (c *Controller) restore(undo func()) {
	if !c.stateHeld {
		c.mu.Lock()
		defer c.mu.Unlock()
	}
	undo()
}

func (c *Controller) now() types.Timestamp {
	return types.Timestamp(c.clock.Now())
}

func (c *Controller) isReady(id common.Hash) bool {
	rec, ok := c.ops[id]
	return ok && rec.state == recordPending && c.now() >= rec.readyAt
}

func (c *Controller) isDone(id common.Hash) bool {
	rec, ok := c.ops[id]
	return ok && rec.state == recordDone
}

// setRecord stores rec for id, or deletes the record when rec is nil. Must be called inside a
// transaction.
func (c *Controller) setRecord(ctx context.Context, id common.Hash, rec *record) {
	previous, had := c.ops[id]
	if rec == nil {
		delete(c.ops, id)
	} else {
		c.ops[id] = *rec
	}

	j, _ := journal.FromContext(ctx)
	j.Append(func() {
		c.restore(func() {
			if had {
				c.ops[id] = previous
			} else {
				delete(c.ops, id)
			}
		})
	})
}

// setMinDelay must be called inside a transaction.
func (c *Controller) setMinDelay(ctx context.Context, newDelay types.Timestamp) {
	j, _ := journal.FromContext(ctx)

	oldDelay := c.minDelay
	j.Emit(c.observer, events.MinDelayChange{OldDelay: oldDelay, NewDelay: newDelay})
	c.minDelay = newDelay
	j.Append(func() {
		c.restore(func() { c.minDelay = oldDelay })
	})
}
