// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package thermite encodes binary data as printable raster lines for
dot-matrix and thermal printers, such that a photograph or scan of
the printout can be decoded back.

Data is padded and protected with a Reed-Solomon code (package fec),
and the codewords are cut into lines.  Every line is whitened to break
up long runs of one colour, framed with fixed markers and a cycling
step code that sets apart repeated lines, and expanded into a band of
pixels (package coding).

	c, _ := fec.New(fec.ReedSolomon, fec.Params{BlockSize: 16, ECCSize: 5})
	e, _ := thermite.NewEncoder(thermite.DefaultOptions)
	s := e.Stream(data, c)
	for s.Next() {
		send(s.Tile())
	}
	if err := s.Err(); err != nil {
		...
	}
*/
package thermite // import "github.com/unixdj/thermite"

import (
	"github.com/unixdj/thermite/coding"
	"github.com/unixdj/thermite/fec"
)

// Options holds the geometry and line coding of an Encoder.
// Start from DefaultOptions; a zero Seed is a valid seed.
type Options struct {
	BlockWidth int             // pixels per bit, horizontally
	LineHeight int             // pixel rows per line
	LineBytes  int             // codeword bytes per line in a Stream
	StepCode   coding.StepCode // nil means coding.DefaultStepCode
	Seed       uint32          // whitener seed
	Manchester bool            // Manchester-code whitened payload
}

// DefaultOptions fit 4 bytes per line on a 384 dot printer head.
var DefaultOptions = Options{
	BlockWidth: 8,
	LineHeight: 8,
	LineBytes:  4,
	StepCode:   coding.DefaultStepCode,
	Seed:       coding.DefaultSeed,
}

// Validate checks the geometry and step code of o.
func (o *Options) Validate() error {
	switch {
	case o.BlockWidth <= 0:
		return &coding.ConfigError{Name: "block width", Value: o.BlockWidth}
	case o.LineHeight <= 0:
		return &coding.ConfigError{Name: "line height", Value: o.LineHeight}
	case o.LineBytes <= 0:
		return &coding.ConfigError{Name: "line bytes", Value: o.LineBytes}
	}
	if o.StepCode != nil {
		return o.StepCode.Validate()
	}
	return nil
}

// LineWidth returns the width in pixels of a line carrying n bytes.
func (o *Options) LineWidth(n int) int {
	sc := o.StepCode
	if sc == nil {
		sc = coding.DefaultStepCode
	}
	bits := n * 8
	if o.Manchester {
		bits *= 2
	}
	return (bits + sc.Overhead()) * o.BlockWidth
}

// An Encoder turns lines of bytes into tiles.  It owns the whitener
// state and the step cursor, both of which advance with every line,
// so an Encoder must not be used concurrently, and the order of calls
// determines the output.
type Encoder struct {
	opt Options
	w   *coding.Whitener
	f   *coding.Framer
}

// NewEncoder returns an Encoder for opt.
func NewEncoder(opt Options) (*Encoder, error) {
	if opt.StepCode == nil {
		opt.StepCode = coding.DefaultStepCode
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	f, err := coding.NewFramer(opt.StepCode)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		opt: opt,
		w:   coding.NewWhitener(opt.Seed),
		f:   f,
	}, nil
}

// Options returns the options e was created with.
func (e *Encoder) Options() Options { return e.opt }

// Step returns the step code index the next line is framed with.
func (e *Encoder) Step() int { return e.f.Step() }

// LineBits returns the framed bit sequence for one line of bytes:
// the bits of b, most significant first, whitened and framed.
func (e *Encoder) LineBits(b []byte) []byte {
	bits := coding.Unpack(b)
	e.w.Whiten(bits)
	if e.opt.Manchester {
		bits = coding.Manchester(bits)
	}
	return e.f.Frame(bits)
}

// EncodeLine returns the tile for one line of bytes.  Any number of
// bytes is accepted.
func (e *Encoder) EncodeLine(b []byte) (*Tile, error) {
	band, err := coding.Rasterize(e.LineBits(b), e.opt.BlockWidth,
		e.opt.LineHeight)
	if err != nil {
		return nil, err
	}
	bitmap, stride := band.Pack()
	return &Tile{
		Bitmap: bitmap,
		Width:  band.Width,
		Height: band.Height,
		Stride: stride,
	}, nil
}

// A Stream encodes data lazily, one tile per call to Next.  The
// codewords of data are concatenated and cut into lines of LineBytes
// bytes; the last line may be shorter.
type Stream struct {
	e    *Encoder
	seg  *fec.Segmenter
	buf  []byte // codeword bytes not yet in a line
	tile *Tile
	err  error
}

// Stream returns a Stream encoding data with codec c.  data must not
// be modified until the Stream is exhausted.
func (e *Encoder) Stream(data []byte, c fec.Codec) *Stream {
	return &Stream{e: e, seg: fec.NewSegmenter(data, c)}
}

// Next encodes the next line.  It returns false at the end of the
// data or on error.
func (s *Stream) Next() bool {
	s.tile = nil
	if s.err != nil {
		return false
	}
	n := s.e.opt.LineBytes
	for len(s.buf) < n && s.seg.Next() {
		s.buf = append(s.buf, s.seg.Codeword()...)
	}
	if s.err = s.seg.Err(); s.err != nil || len(s.buf) == 0 {
		return false
	}
	n = min(n, len(s.buf))
	s.tile, s.err = s.e.EncodeLine(s.buf[:n])
	s.buf = append(s.buf[:0], s.buf[n:]...)
	return s.err == nil
}

// Tile returns the tile produced by the last call to Next.
func (s *Stream) Tile() *Tile { return s.tile }

// Err returns the first error encountered.
func (s *Stream) Err() error { return s.err }

// Lines returns the number of lines a Stream produces for size bytes
// of data encoded with parameters p.
func (o *Options) Lines(size int, p fec.Params) int {
	if o.LineBytes <= 0 {
		return 0
	}
	total := fec.Count(size, p) * p.N()
	return (total + o.LineBytes - 1) / o.LineBytes
}

// Encode encodes all of data and returns the lines stacked into one
// tile.  On error no tile is returned.
func (e *Encoder) Encode(data []byte, c fec.Codec) (*Tile, error) {
	var tiles []*Tile
	s := e.Stream(data, c)
	for s.Next() {
		tiles = append(tiles, s.Tile())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return Stack(tiles...), nil
}
