package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unset", OperationUnset.String())
	assert.Equal(t, "waiting", OperationWaiting.String())
	assert.Equal(t, "ready", OperationReady.String())
	assert.Equal(t, "done", OperationDone.String())
	assert.Equal(t, "unknown", OperationState(42).String())
}
