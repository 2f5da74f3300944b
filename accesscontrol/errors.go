package accesscontrol

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidCaller is returned when an account tries to renounce a role on behalf of another
// account.
var ErrInvalidCaller = errors.New("can only renounce roles for self")

// MissingRoleError is returned when an account does not hold the role a guarded operation
// requires.
type MissingRoleError struct {
	Role    common.Hash
	Account common.Address
}

// NewMissingRoleError creates a new MissingRoleError.
func NewMissingRoleError(role common.Hash, account common.Address) *MissingRoleError {
	return &MissingRoleError{Role: role, Account: account}
}

// Error implements the error interface.
func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("account %s is missing role %s", e.Account.Hex(), e.Role.Hex())
}

// RoleMemberIndexError is returned when enumerating a role member past the end of the set.
type RoleMemberIndexError struct {
	Role  common.Hash
	Index int
	Count int
}

// Error implements the error interface.
func (e *RoleMemberIndexError) Error() string {
	return fmt.Sprintf("index %d out of range for role %s with %d members", e.Index, e.Role.Hex(), e.Count)
}
