// Package events defines the notifications emitted by the access control and timelock
// components and the observers that consume them.
package events

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock/types"
)

// Event names.
const (
	NameMinDelayChange   = "MinDelayChange"
	NameCallScheduled    = "CallScheduled"
	NameCallExecuted     = "CallExecuted"
	NameCancelled        = "Cancelled"
	NameRoleGranted      = "RoleGranted"
	NameRoleRevoked      = "RoleRevoked"
	NameRoleAdminChanged = "RoleAdminChanged"
)

// Event is a state change notification.
type Event interface {
	Name() string
}

// Observer consumes notifications. Notify is fire-and-forget: it cannot fail the transaction
// that produced the event.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Notify calls f(ev).
func (f ObserverFunc) Notify(ev Event) {
	f(ev)
}

// MinDelayChange is emitted when the minimum delay for future operations is modified.
type MinDelayChange struct {
	OldDelay types.Timestamp
	NewDelay types.Timestamp
}

func (MinDelayChange) Name() string { return NameMinDelayChange }

// CallScheduled is emitted once per call when an operation is scheduled.
type CallScheduled struct {
	ID          common.Hash
	Index       uint8
	Call        types.Call
	Predecessor common.Hash
	Delay       types.Timestamp
}

func (CallScheduled) Name() string { return NameCallScheduled }

// CallExecuted is emitted once per call after every call of an operation succeeded.
type CallExecuted struct {
	ID    common.Hash
	Index uint8
	Call  types.Call
}

func (CallExecuted) Name() string { return NameCallExecuted }

// Cancelled is emitted when a pending operation is cancelled.
type Cancelled struct {
	ID common.Hash
}

func (Cancelled) Name() string { return NameCancelled }

// RoleGranted is emitted when Account is granted Role by Sender.
type RoleGranted struct {
	Role    common.Hash
	Account common.Address
	Sender  common.Address
}

func (RoleGranted) Name() string { return NameRoleGranted }

// RoleRevoked is emitted when Account loses Role. Sender is the account that originated the
// revocation, which is Account itself for a renounce.
type RoleRevoked struct {
	Role    common.Hash
	Account common.Address
	Sender  common.Address
}

func (RoleRevoked) Name() string { return NameRoleRevoked }

// RoleAdminChanged is emitted when the admin role of Role changes.
type RoleAdminChanged struct {
	Role          common.Hash
	PreviousAdmin common.Hash
	NewAdmin      common.Hash
}

func (RoleAdminChanged) Name() string { return NameRoleAdminChanged }
