package models

import (
	"math"
	"testing"
)

func TestJoinKey(t *testing.T) {
	k1, _ := JoinKey(int64(1))
	k2, _ := JoinKey(1.0)
	if k1 != k2 {
		t.Errorf("expected int64(1) and 1.0 to share a key, got %q and %q", k1, k2)
	}

	ks, _ := JoinKey("1")
	if ks == k1 {
		t.Errorf("expected string \"1\" to differ from number 1")
	}

	big1, _ := JoinKey(int64(1e18))
	big2, _ := JoinKey(1e18)
	if big1 != big2 {
		t.Errorf("expected int64(1e18) and 1e18 to share a key, got %q and %q", big1, big2)
	}

	k53, _ := JoinKey(int64(9007199254740993))
	f53, _ := JoinKey(9007199254740992.0)
	if k53 == f53 {
		t.Errorf("expected 2^53+1 and 2^53 to have distinct keys, both %q", k53)
	}

	if _, ok := JoinKey(nil); ok {
		t.Error("expected nil to have no key")
	}
	if _, ok := JoinKey(math.NaN()); ok {
		t.Error("expected NaN to have no key")
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		a, b     any
		expected int
	}{
		{int64(1), int64(2), -1},
		{2.5, int64(2), 1},
		{int64(2), 2.0, 0},
		{"a", "b", -1},
		{int64(9), "a", -1},
		{"a", nil, -1},
		{nil, int64(1), 1},
		{nil, nil, 0},
		{false, true, -1},
		{int64(9007199254740993), int64(9007199254740992), 1},
		{int64(9007199254740992), int64(9007199254740993), -1},
		{int64(1e18), 1e18, 0},
		{9007199254740992.0, int64(9007199254740993), -1},
		{1e19, int64(math.MaxInt64), 1},
	}

	for _, tt := range tests {
		got := CompareValues(tt.a, tt.b)
		if sign(got) != tt.expected {
			t.Errorf("CompareValues(%v, %v) = %d, expected sign %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, ""},
		{"Alice", "Alice"},
		{int64(7), "7"},
		{2.0, "2"},
		{2.5, "2.5"},
		{true, "true"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.input); got != tt.expected {
			t.Errorf("FormatValue(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
