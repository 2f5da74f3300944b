// Package safecast implements functions to safely cast types to avoid panics
package safecast

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/spf13/cast"
)

// IntToUint8 safely converts an int to uint8 using cast and checks for overflow
func IntToUint8(value int) (uint8, error) {
	if value < 0 || value > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", value)
	}

	return cast.ToUint8E(value)
}

// Int64ToUint64 safely converts an int64 to uint64 using cast and checks for overflow
func Int64ToUint64(value int64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// StringToUint64 parses a base 10 unsigned integer using cast.
func StringToUint64(value string) (uint64, error) {
	if value == "" || value[0] == '-' {
		return 0, fmt.Errorf("value %q is not an unsigned integer", value)
	}

	return cast.ToUint64E(value)
}

// AddUint64 adds two uint64 values and reports an error on overflow.
func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("sum of %d and %d exceeds uint64 range", a, b)
	}

	return sum, nil
}
