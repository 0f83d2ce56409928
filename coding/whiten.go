// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Linear congruential generator parameters.
const (
	lcgM = 1<<31 - 1
	lcgA = 1103515245
	lcgC = 12345

	DefaultSeed = 0xdeadbeef
)

// A Whitener scrambles payload bits with the low bit of a linear
// congruential generator, breaking up long runs of one colour.  It
// is not a cipher.  XOR makes whitening self-inverse: a Whitener
// created with the same seed and fed the same number of bits undoes
// it.
//
// The generator is never reseeded, so the output for a bit depends
// on how many bits were whitened before it.
type Whitener struct {
	seed uint64
}

// NewWhitener returns a Whitener starting at seed.
func NewWhitener(seed uint32) *Whitener {
	return &Whitener{seed: uint64(seed)}
}

// Next advances the generator once and returns the new state.
func (w *Whitener) Next() uint32 {
	// seed < 2^32 and lcgA < 2^31, so the product fits.
	w.seed = (lcgA*w.seed + lcgC) % lcgM
	return uint32(w.seed)
}

// Bit advances the generator and returns its low bit.
func (w *Whitener) Bit() byte {
	return byte(w.Next() & 1)
}

// Whiten XORs every bit of bits in place with a generator bit.
func (w *Whitener) Whiten(bits []byte) {
	for i := range bits {
		bits[i] ^= w.Bit()
	}
}
