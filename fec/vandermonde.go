// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fec

import (
	"fmt"

	"github.com/klauspost/reedsolomon"

	"github.com/unixdj/thermite/coding"
)

// vandermondeCodec treats every message byte as a one-byte data shard
// and every check byte as a one-byte parity shard.
type vandermondeCodec struct {
	p   Params
	enc reedsolomon.Encoder
}

func newVandermondeCodec(p Params) (*vandermondeCodec, error) {
	enc, err := reedsolomon.New(p.K(), p.ECCSize)
	if err != nil {
		return nil, fmt.Errorf("fec: %v: %w", p, err)
	}
	return &vandermondeCodec{p: p, enc: enc}, nil
}

func (c *vandermondeCodec) Params() Params { return c.p }

func (c *vandermondeCodec) Encode(msg []byte) ([]byte, error) {
	if err := checkShape(msg, c.p); err != nil {
		return nil, err
	}
	cw := make([]byte, c.p.N())
	copy(cw, msg)
	if err := c.enc.Encode(byteShards(cw)); err != nil {
		return nil, fmt.Errorf("fec: unable to make parity shards: %w", err)
	}
	return cw, nil
}

// Verify reports whether the parity bytes of cw match its data bytes.
func (c *vandermondeCodec) Verify(cw []byte) (bool, error) {
	if len(cw) != c.p.N() {
		return false, &coding.ShapeError{Got: len(cw), Want: c.p.N()}
	}
	return c.enc.Verify(byteShards(cw))
}

// byteShards splits cw into one-byte shards sharing its storage.
func byteShards(cw []byte) [][]byte {
	shards := make([][]byte, len(cw))
	for i := range shards {
		shards[i] = cw[i : i+1 : i+1]
	}
	return shards
}
