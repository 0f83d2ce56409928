// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fec

import (
	"rsc.io/qr/gf256"

	"github.com/unixdj/thermite/coding"
)

// Field is the field for Reed-Solomon check bytes, the same one QR
// codes use.
var Field = gf256.NewField(0x11d, 2)

// rsCodec appends n-k check bytes to the message.  The generator
// polynomial has roots α^0 through α^(n-k-1).
type rsCodec struct {
	p  Params
	rs *gf256.RSEncoder
}

func newRSCodec(p Params) *rsCodec {
	return &rsCodec{p, gf256.NewRSEncoder(Field, p.ECCSize)}
}

func (c *rsCodec) Params() Params { return c.p }

func (c *rsCodec) Encode(msg []byte) ([]byte, error) {
	if err := checkShape(msg, c.p); err != nil {
		return nil, err
	}
	cw := make([]byte, c.p.N())
	k := copy(cw, msg)
	c.rs.ECC(cw[:k], cw[k:])
	return cw, nil
}

// Verify reports whether all syndromes of cw are zero.
func (c *rsCodec) Verify(cw []byte) (bool, error) {
	if len(cw) != c.p.N() {
		return false, &coding.ShapeError{Got: len(cw), Want: c.p.N()}
	}
	for _, s := range Syndromes(cw, c.p.ECCSize) {
		if s != 0 {
			return false, nil
		}
	}
	return true, nil
}

// Syndromes returns the syndromes of codeword cw for a code with
// ecc check bytes.  All of them are zero for an uncorrupted codeword
// produced by the ReedSolomon codec.
func Syndromes(cw []byte, ecc int) []byte {
	s := make([]byte, ecc)
	for i := range s {
		x := Field.Exp(i)
		var v byte
		for _, b := range cw {
			v = Field.Mul(v, x) ^ b
		}
		s[i] = v
	}
	return s
}

var (
	_ Verifier = (*rsCodec)(nil)
	_ Verifier = (*vandermondeCodec)(nil)
	_ Verifier = (*BWCodec)(nil)
)
