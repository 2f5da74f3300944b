package types

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    Call
		wantErr string
	}{
		{
			name: "zero call is valid",
			give: Call{},
		},
		{
			name: "positive value",
			give: NewCall(common.HexToAddress("0x1"), big.NewInt(10), []byte{0x01}),
		},
		{
			name:    "negative value",
			give:    NewCall(common.HexToAddress("0x1"), big.NewInt(-1), nil),
			wantErr: "invalid call value: -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate()

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCall_ValueOrZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Call{}.ValueOrZero().Sign())

	value := big.NewInt(7)
	got := NewCall(common.Address{}, value, nil).ValueOrZero()
	assert.Equal(t, int64(7), got.Int64())

	// The returned value is a copy
	got.SetInt64(8)
	assert.Equal(t, int64(7), value.Int64())
}
