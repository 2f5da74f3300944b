package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// NewRole derives a role identifier from its human readable name.
func NewRole(name string) common.Hash {
	return crypto.Keccak256Hash([]byte(name))
}
