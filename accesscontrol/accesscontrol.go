// Package accesscontrol implements role based access control with a role administration
// hierarchy.
//
// Every role has exactly one admin role. Unless changed with SetRoleAdmin a role administers
// itself. Granting or revoking a role requires the caller to hold the admin role of that role.
package accesscontrol

import (
	"context"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/timelock/events"
	"github.com/smartcontractkit/timelock/journal"
)

// Option configures an AccessControl.
type Option func(*AccessControl)

// WithObserver sets the observer notified of role changes.
func WithObserver(o events.Observer) Option {
	return func(ac *AccessControl) {
		ac.observer = o
	}
}

// AccessControl owns role membership and the role admin table.
//
// All mutations run inside a journal transaction: when called with a context that already
// carries a journal the change joins that transaction and is undone if it is reverted. The
// transaction holds txMu from its first mutation until it ends, so a permission check and the
// change it guards cannot interleave with another writer.
type AccessControl struct {
	txMu     sync.Mutex
	mu       sync.RWMutex
	members  map[common.Hash]*memberSet
	admins   map[common.Hash]common.Hash
	observer events.Observer
}

// New creates an AccessControl with no members.
func New(opts ...Option) *AccessControl {
	ac := &AccessControl{
		members: make(map[common.Hash]*memberSet),
		admins:  make(map[common.Hash]common.Hash),
	}
	for _, opt := range opts {
		opt(ac)
	}

	return ac
}

// HasRole reports whether account holds role.
func (ac *AccessControl) HasRole(role common.Hash, account common.Address) bool {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	return ac.hasRole(role, account)
}

// GetRoleAdmin returns the admin role of role.
func (ac *AccessControl) GetRoleAdmin(role common.Hash) common.Hash {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	return ac.roleAdmin(role)
}

// CheckRole returns a MissingRoleError if account does not hold role.
func (ac *AccessControl) CheckRole(role common.Hash, account common.Address) error {
	if !ac.HasRole(role, account) {
		return NewMissingRoleError(role, account)
	}

	return nil
}

// GrantRole grants role to account. The caller must hold the admin role of role. Granting a
// role the account already holds is a no-op.
func (ac *AccessControl) GrantRole(ctx context.Context, caller common.Address, role common.Hash, account common.Address) error {
	return ac.transact(ctx, func(ctx context.Context) error {
		if err := ac.CheckRole(ac.GetRoleAdmin(role), caller); err != nil {
			return err
		}
		ac.grant(ctx, caller, role, account)

		return nil
	})
}

// RevokeRole revokes role from account. The caller must hold the admin role of role. Revoking
// a role the account does not hold is a no-op.
func (ac *AccessControl) RevokeRole(ctx context.Context, caller common.Address, role common.Hash, account common.Address) error {
	return ac.transact(ctx, func(ctx context.Context) error {
		if err := ac.CheckRole(ac.GetRoleAdmin(role), caller); err != nil {
			return err
		}
		ac.revoke(ctx, caller, role, account)

		return nil
	})
}

// RenounceRole removes role from the calling account. account must be the caller.
func (ac *AccessControl) RenounceRole(ctx context.Context, caller common.Address, role common.Hash, account common.Address) error {
	if caller != account {
		return ErrInvalidCaller
	}

	return ac.transact(ctx, func(ctx context.Context) error {
		ac.revoke(ctx, caller, role, account)
		return nil
	})
}

// SetupRole grants role to account without any admin check. It is meant for initialization
// only; sender is reported as the granting account.
func (ac *AccessControl) SetupRole(ctx context.Context, sender common.Address, role common.Hash, account common.Address) {
	_ = ac.transact(ctx, func(ctx context.Context) error {
		ac.grant(ctx, sender, role, account)
		return nil
	})
}

// SetRoleAdmin changes the admin role of role without any permission check. It is meant for
// initialization only.
func (ac *AccessControl) SetRoleAdmin(ctx context.Context, role, adminRole common.Hash) {
	_ = ac.transact(ctx, func(ctx context.Context) error {
		ac.mu.Lock()
		previous, had := ac.admins[role]
		ac.admins[role] = adminRole
		ac.mu.Unlock()

		j, _ := journal.FromContext(ctx)
		j.Append(func() {
			ac.mu.Lock()
			defer ac.mu.Unlock()
			if had {
				ac.admins[role] = previous
			} else {
				delete(ac.admins, role)
			}
		})
		if !had {
			previous = role
		}
		j.Emit(ac.observer, events.RoleAdminChanged{Role: role, PreviousAdmin: previous, NewAdmin: adminRole})

		return nil
	})
}

// RoleMemberCount returns the number of accounts holding role.
func (ac *AccessControl) RoleMemberCount(role common.Hash) int {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if set, ok := ac.members[role]; ok {
		return len(set.list)
	}

	return 0
}

// RoleMember returns the account at index in the member list of role. The order is not
// stable across revocations.
func (ac *AccessControl) RoleMember(role common.Hash, index int) (common.Address, error) {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	set, ok := ac.members[role]
	if !ok || index < 0 || index >= len(set.list) {
		count := 0
		if ok {
			count = len(set.list)
		}

		return common.Address{}, &RoleMemberIndexError{Role: role, Index: index, Count: count}
	}

	return set.list[index], nil
}

// RoleMembers returns every account holding role.
func (ac *AccessControl) RoleMembers(role common.Hash) []common.Address {
	ac.mu.RLock()
	defer ac.mu.RUnlock()

	if set, ok := ac.members[role]; ok {
		return slices.Clone(set.list)
	}

	return []common.Address{}
}

// transact runs fn in the transaction carried by ctx, or in a new one, holding txMu until that
// transaction ends.
func (ac *AccessControl) transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return journal.Run(ctx, func(ctx context.Context) error {
		j, _ := journal.FromContext(ctx)
		if !j.Holds(ac) {
			ac.txMu.Lock()
			j.Hold(ac, ac.txMu.Unlock)
		}

		return fn(ctx)
	})
}

func (ac *AccessControl) hasRole(role common.Hash, account common.Address) bool {
	set, ok := ac.members[role]
	return ok && set.contains(account)
}

// roleAdmin looks up the admin table, a role without an entry administers itself.
func (ac *AccessControl) roleAdmin(role common.Hash) common.Hash {
	if admin, ok := ac.admins[role]; ok {
		return admin
	}

	return role
}

// grant must be called inside a journal transaction.
func (ac *AccessControl) grant(ctx context.Context, sender common.Address, role common.Hash, account common.Address) {
	ac.mu.Lock()
	set, ok := ac.members[role]
	if !ok {
		set = newMemberSet()
		ac.members[role] = set
	}
	added := set.add(account)
	ac.mu.Unlock()

	if !added {
		return
	}

	j, _ := journal.FromContext(ctx)
	j.Append(func() {
		ac.mu.Lock()
		defer ac.mu.Unlock()
		set.remove(account)
	})
	j.Emit(ac.observer, events.RoleGranted{Role: role, Account: account, Sender: sender})
}

// revoke must be called inside a journal transaction.
func (ac *AccessControl) revoke(ctx context.Context, sender common.Address, role common.Hash, account common.Address) {
	ac.mu.Lock()
	set, ok := ac.members[role]
	slot := -1
	if ok {
		slot = set.remove(account)
	}
	ac.mu.Unlock()

	if slot < 0 {
		return
	}

	j, _ := journal.FromContext(ctx)
	j.Append(func() {
		ac.mu.Lock()
		defer ac.mu.Unlock()
		set.restore(account, slot)
	})
	j.Emit(ac.observer, events.RoleRevoked{Role: role, Account: account, Sender: sender})
}
