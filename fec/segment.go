// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fec

import "github.com/unixdj/thermite/coding"

// A Segmenter splits a byte stream into k-byte messages and encodes
// them, one codeword per call to Next.  The stream is padded with
// ANSI X.923 padding to a multiple of k; a stream that is already a
// multiple gains a full block of padding.
//
//	s := fec.NewSegmenter(data, codec)
//	for s.Next() {
//		use(s.Codeword())
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type Segmenter struct {
	c    Codec
	k    int
	data []byte // unencoded input
	pad  []byte // unencoded padding
	buf  []byte // message scratch
	cw   []byte
	err  error
}

// NewSegmenter returns a Segmenter reading data and encoding with c.
// data is not copied and must not be modified until the Segmenter is
// exhausted.
func NewSegmenter(data []byte, c Codec) *Segmenter {
	k := c.Params().K()
	s := &Segmenter{c: c, k: k, data: data}
	if k <= 0 {
		s.err = &coding.ConfigError{Name: "message size", Value: k}
		return s
	}
	s.pad, s.err = coding.Pad(coding.NeededPadding(len(data), k))
	s.buf = make([]byte, k)
	return s
}

// Count returns the number of codewords a Segmenter emits for size
// bytes of input, or 0 if p is invalid.
func Count(size int, p Params) int {
	k := p.K()
	if k <= 0 {
		return 0
	}
	return (size + coding.NeededPadding(size, k)) / k
}

// Next encodes the next message.  It returns false when the stream
// is exhausted or an error occurred.
func (s *Segmenter) Next() bool {
	s.cw = nil
	if s.err != nil || len(s.data)+len(s.pad) == 0 {
		return false
	}
	n := copy(s.buf, s.data)
	s.data = s.data[n:]
	m := copy(s.buf[n:], s.pad)
	s.pad = s.pad[m:]
	// Padding completes the last block.
	s.cw, s.err = s.c.Encode(s.buf[:n+m])
	return s.err == nil
}

// Codeword returns the codeword produced by the last call to Next.
// The slice is owned by the caller.
func (s *Segmenter) Codeword() []byte { return s.cw }

// Err returns the first error encountered.
func (s *Segmenter) Err() error { return s.err }

// EncodeAll returns all codewords of data concatenated.
func EncodeAll(data []byte, c Codec) ([]byte, error) {
	p := c.Params()
	out := make([]byte, 0, Count(len(data), p)*p.N())
	s := NewSegmenter(data, c)
	for s.Next() {
		out = append(out, s.Codeword()...)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
