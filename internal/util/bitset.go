package util

import "math/bits"

// BitSet tracks sector usage.
type BitSet []uint64

func NewBitSet(size int) BitSet {
	return make(BitSet, (size+63)/64)
}

func (b BitSet) Set(bit int) {
	b[bit/64] |= 1 << (bit % 64)
}

// SetRange sets bits [from, to], inclusive.
func (b BitSet) SetRange(from, to int) {
	for i := from; i <= to; i++ {
		b.Set(i)
	}
}

func (b BitSet) Clear(bit int) {
	b[bit/64] &^= 1 << (bit % 64)
}

func (b BitSet) Test(bit int) bool {
	return b[bit/64]&(1<<(bit%64)) != 0
}

// Count returns the number of set bits.
func (b BitSet) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}
