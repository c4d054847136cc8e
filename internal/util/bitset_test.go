package util

import (
	"testing"
)

func TestBitSet(t *testing.T) {
	tests := []struct {
		name  string
		set   []int
		clear []int
		want  []uint64
	}{
		{name: "empty", want: []uint64{0, 0, 0}},
		{name: "first word", set: []int{5}, want: []uint64{1 << 5, 0, 0}},
		{name: "last bit", set: []int{128}, want: []uint64{0, 0, 1}},
		{name: "set twice", set: []int{64, 64, 65}, want: []uint64{0, 3, 0}},
		{name: "cleared", set: []int{5, 100}, clear: []int{5}, want: []uint64{0, 1 << 36, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bitset := NewBitSet(129)
			for _, b := range tt.set {
				bitset.Set(b)
			}
			for _, b := range tt.clear {
				bitset.Clear(b)
			}
			for i, v := range tt.want {
				if bitset[i] != v {
					t.Errorf("bitset[%d] = 0x%X, want 0x%X", i, bitset[i], v)
				}
			}
			for _, b := range tt.clear {
				if bitset.Test(b) {
					t.Errorf("bit %d still set after Clear", b)
				}
			}
		})
	}
}

func TestBitSetRange(t *testing.T) {
	bitset := NewBitSet(200)
	bitset.SetRange(60, 70)
	bitset.SetRange(65, 66) // overlapping ranges count once

	if got := bitset.Count(); got != 11 {
		t.Errorf("Expected 11 bits set, got %d", got)
	}
	if bitset.Test(59) || bitset.Test(71) {
		t.Errorf("Expected range bounds to be inclusive and exact")
	}
	if !bitset.Test(63) || !bitset.Test(64) {
		t.Errorf("Expected range to cross word boundary")
	}
}
