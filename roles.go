package timelock

import "github.com/smartcontractkit/timelock/types"

// Roles understood by the timelock controller.
var (
	TimelockAdminRole = types.NewRole("TIMELOCK_ADMIN_ROLE")
	ProposerRole      = types.NewRole("PROPOSER_ROLE")
	ExecutorRole      = types.NewRole("EXECUTOR_ROLE")
)
