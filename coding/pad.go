// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements the bit-level stages of thermite encoding:
// padding, whitening, line framing and rasterization.
package coding // import "github.com/unixdj/thermite/coding"

// MaxPad is the longest pad whose length fits in its marker byte.
const MaxPad = 255

// NeededPadding returns the number of bytes that bring size to the
// next multiple of blockSize.  The result is in [1, blockSize]: a
// size that is already a multiple gains a full block, so the pad
// marker is always present.  NeededPadding panics if blockSize is
// not positive.
func NeededPadding(size, blockSize int) int {
	if blockSize <= 0 {
		panic("thermite: non-positive block size")
	}
	return blockSize - size%blockSize
}

// Pad returns an ANSI X.923 pad of count bytes: count-1 zeros
// followed by count.  A count below 1 yields no padding.
func Pad(count int) ([]byte, error) {
	if count < 1 {
		return []byte{}, nil
	}
	if count > MaxPad {
		return nil, RangeError(count)
	}
	b := make([]byte, count)
	b[count-1] = byte(count)
	return b, nil
}

// Unpad strips an ANSI X.923 pad from b.  It returns a RangeError if
// the marker is zero or longer than b, and ErrRange if any of the
// filler bytes is not zero.
func Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, RangeError(0)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > len(b) {
		return nil, RangeError(n)
	}
	for _, v := range b[len(b)-n : len(b)-1] {
		if v != 0 {
			return nil, ErrRange
		}
	}
	return b[:len(b)-n], nil
}
