// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Fixed line markers.  They bound a line for alignment and do not
// look like whitened payload.
var (
	Preamble  = []byte{0, 0, 0, 1, 1, 1}
	Postamble = []byte{1, 1, 1, 0, 0, 0}
)

// A StepCode is a table of equal-length bit patterns cycled line by
// line, so that two consecutive lines carrying the same payload are
// still framed differently.
type StepCode [][]byte

var (
	// DefaultStepCode alternates two 2-bit markers.
	DefaultStepCode = StepCode{{0, 1}, {1, 0}}

	// GrayStepCode is a 2-bit reflected binary code; a skipped
	// line changes exactly one marker bit.
	GrayStepCode = StepCode{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
)

// Bits returns the length of each pattern.
func (sc StepCode) Bits() int {
	if len(sc) == 0 {
		return 0
	}
	return len(sc[0])
}

// Validate checks that sc is non-empty, its patterns have the same
// length and contain only 0 and 1.
func (sc StepCode) Validate() error {
	if len(sc) == 0 {
		return &ConfigError{"step code size", 0}
	}
	n := len(sc[0])
	for _, p := range sc {
		if len(p) != n || n == 0 {
			return &ConfigError{"step code pattern length", len(p)}
		}
		for _, b := range p {
			if b > 1 {
				return &ConfigError{"step code bit", int(b)}
			}
		}
	}
	return nil
}

// Overhead returns the number of framing bits added to each line.
func (sc StepCode) Overhead() int {
	return len(Preamble) + sc.Bits() + len(Postamble)
}

// A Framer wraps payload bits in line markers.  The step cursor
// advances once per framed line.
type Framer struct {
	code StepCode
	step int
}

// NewFramer returns a Framer cycling through code, starting at its
// first pattern.
func NewFramer(code StepCode) (*Framer, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	return &Framer{code: code}, nil
}

// Step returns the index of the pattern the next line is framed with.
func (f *Framer) Step() int { return f.step }

// Frame returns preamble, step pattern, payload and postamble as one
// bit sequence, then advances the step cursor.  Any payload length is
// accepted.
func (f *Framer) Frame(payload []byte) []byte {
	sc := f.code[f.step]
	out := make([]byte, 0, len(payload)+f.code.Overhead())
	out = append(out, Preamble...)
	out = append(out, sc...)
	out = append(out, payload...)
	out = append(out, Postamble...)
	f.step = (f.step + 1) % len(f.code)
	return out
}

// Unpack returns the bits of b, most significant first, one bit per
// byte.
func Unpack(b []byte) []byte {
	bits := make([]byte, len(b)*8)
	for i, v := range b {
		for j := 0; j < 8; j++ {
			bits[i*8+j] = v >> (7 - j) & 1
		}
	}
	return bits
}

// Manchester returns the Manchester code of bits: 0 becomes 01 and
// 1 becomes 10.  Every bit carries a transition, at twice the width.
func Manchester(bits []byte) []byte {
	out := make([]byte, 0, len(bits)*2)
	for _, b := range bits {
		out = append(out, b&1, b&1^1)
	}
	return out
}
