package types

import "fmt"

// OutOfRangeError is the signed-overflow-on-assignment error (§7, §8).
type OutOfRangeError struct {
	Type  *Integer
	Value int64
}

func (e *OutOfRangeError) Error() string {
	min, max := e.Type.Width.Bounds(true)
	return fmt.Sprintf("value %d out of range for %s [%d, %d]", e.Value, e.Type.String(), min, max)
}

// CheckRange validates (or clamps) value against a sized integer type,
// matching §4.1's check_range and §8's quantified invariants:
//
//   - signed: value must lie in [min, max] or CheckRange fails with
//     OutOfRangeError.
//   - unsigned: a negative value is clamped to 0, then masked to the width;
//     the stored result is always max(0, value) & mask(T).
//
// The second return value is the value actually to be stored.
func CheckRange(t *Integer, value int64) (int64, error) {
	if t.Signed {
		min, max := t.Width.Bounds(true)
		if value < min || value > max {
			return 0, &OutOfRangeError{Type: t, Value: value}
		}
		return value, nil
	}

	clamped := value
	if clamped < 0 {
		clamped = 0
	}
	stored := int64(uint64(clamped) & t.Width.Mask())
	return stored, nil
}
