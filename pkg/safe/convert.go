// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
	"math/big"
)

// Uint64FromBig converts a big integer chain value to uint64, rejecting
// nil, negative and out-of-range values.
func Uint64FromBig(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, fmt.Errorf("nil big integer")
	}
	if v.Sign() < 0 {
		return 0, fmt.Errorf("value %s out of uint64 range", v.String())
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("value %s out of uint64 range", v.String())
	}
	return v.Uint64(), nil
}

// IntFromBig converts a big integer chain value to int with range validation.
func IntFromBig(v *big.Int) (int, error) {
	u, err := Uint64FromBig(v)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", u)
	}
	return int(u), nil
}

// Int converts unsigned integers to int with range validation.
func Int[T ~uint | ~uint32 | ~uint64](v T) (int, error) {
	if uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(v), nil
}
