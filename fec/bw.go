// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fec

import (
	"fmt"

	"storj.io/infectious"

	"github.com/unixdj/thermite/coding"
)

// A BWCodec is a Reed-Solomon codec whose codewords can be decoded
// with Berlekamp-Welch error correction.  Byte i of a codeword is
// share number i.
type BWCodec struct {
	p   Params
	fec *infectious.FEC
}

// NewBWCodec returns a BWCodec for p.
func NewBWCodec(p Params) (*BWCodec, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	f, err := infectious.NewFEC(p.K(), p.N())
	if err != nil {
		return nil, fmt.Errorf("fec: %v: %w", p, err)
	}
	return &BWCodec{p: p, fec: f}, nil
}

func (c *BWCodec) Params() Params { return c.p }

func (c *BWCodec) Encode(msg []byte) ([]byte, error) {
	if err := checkShape(msg, c.p); err != nil {
		return nil, err
	}
	cw := make([]byte, c.p.N())
	err := c.fec.Encode(msg, func(s infectious.Share) {
		cw[s.Number] = s.Data[0]
	})
	if err != nil {
		return nil, fmt.Errorf("fec: encode: %w", err)
	}
	return cw, nil
}

// Decode returns the message of codeword cw, correcting up to
// (n-k)/2 corrupted bytes.  cw is not modified.
func (c *BWCodec) Decode(cw []byte) ([]byte, error) {
	if len(cw) != c.p.N() {
		return nil, &coding.ShapeError{Got: len(cw), Want: c.p.N()}
	}
	shares := make([]infectious.Share, len(cw))
	for i, b := range cw {
		shares[i] = infectious.Share{Number: i, Data: []byte{b}}
	}
	msg, err := c.fec.Decode(nil, shares)
	if err != nil {
		return nil, fmt.Errorf("fec: decode: %w", err)
	}
	return msg, nil
}

// Verify reports whether cw is a codeword, i.e. decodes and
// re-encodes to itself.
func (c *BWCodec) Verify(cw []byte) (bool, error) {
	msg, err := c.Decode(cw)
	if err != nil {
		return false, nil
	}
	enc, err := c.Encode(msg)
	if err != nil {
		return false, err
	}
	for i := range enc {
		if enc[i] != cw[i] {
			return false, nil
		}
	}
	return true, nil
}
