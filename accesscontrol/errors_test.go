package accesscontrol

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	role := common.HexToHash("0x01")
	account := common.HexToAddress("0x02")

	tests := []struct {
		err      error
		expected string
	}{
		{
			NewMissingRoleError(role, account),
			"account 0x0000000000000000000000000000000000000002 is missing role 0x0000000000000000000000000000000000000000000000000000000000000001",
		},
		{
			&RoleMemberIndexError{Role: role, Index: 3, Count: 1},
			"index 3 out of range for role 0x0000000000000000000000000000000000000000000000000000000000000001 with 1 members",
		},
		{ErrInvalidCaller, "can only renounce roles for self"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.err.Error())
	}
}
