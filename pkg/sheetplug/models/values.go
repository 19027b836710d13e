package models

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
)

// int64Limit is 2^63, the first float64 beyond the int64 range.
const int64Limit = float64(1 << 63)

// JoinKey returns a comparable key for a cell value used in joins.
// Numerically equal numbers share a key regardless of their type, strings
// are keyed by exact value, and nil or NaN never produce a key.
func JoinKey(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case int64:
		return "n:" + strconv.FormatInt(x, 10), true
	case int:
		return "n:" + strconv.Itoa(x), true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		if i, ok := wholeInt(x); ok {
			return "n:" + strconv.FormatInt(i, 10), true
		}
		return "n:" + strconv.FormatFloat(x, 'g', -1, 64), true
	case string:
		return "s:" + x, true
	case bool:
		return "b:" + strconv.FormatBool(x), true
	default:
		return "o:" + fmt.Sprint(x), true
	}
}

// CompareValues orders cell values: numbers before booleans before strings,
// nil last. Numbers compare numerically and strings lexically.
func CompareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 0:
		return compareNumbers(a, b)
	case 1:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case 2:
		sa, sb := fmt.Sprint(a), fmt.Sprint(b)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	}
	return 0
}

func rank(v any) int {
	switch v.(type) {
	case int64, int, float64:
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			return 3
		}
		return 0
	case bool:
		return 1
	case nil:
		return 3
	default:
		return 2
	}
}

// compareNumbers compares integers exactly and falls back to float64 only
// when one side is a fractional or out-of-range float.
func compareNumbers(a, b any) int {
	ia, okA := toInt(a)
	ib, okB := toInt(b)
	if okA && okB {
		return cmp.Compare(ia, ib)
	}
	return cmp.Compare(toFloat(a), toFloat(b))
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return wholeInt(x)
	}
	return 0, false
}

// wholeInt converts a float without a fractional part that fits in int64.
func wholeInt(x float64) (int64, bool) {
	if x != math.Trunc(x) || x < -int64Limit || x >= int64Limit {
		return 0, false
	}
	return int64(x), true
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

// FormatValue renders a cell value as text. Whole floats print without a
// fractional part and nil prints as "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
