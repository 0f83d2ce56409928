// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fec protects byte streams with block error correcting codes
// over GF(2^8).
//
// A stream is padded to a whole number of k-byte messages, and each
// message is encoded into an n-byte codeword able to correct up to
// (n-k)/2 corrupted bytes.
package fec

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/unixdj/thermite/coding"
)

// MaxBlockSize is the longest codeword over a byte-sized field.
const MaxBlockSize = 255

// Params describes a block code: codewords of BlockSize bytes, of
// which ECCSize are redundancy.
type Params struct {
	BlockSize int // n
	ECCSize   int // n-k
}

// N returns the codeword size.
func (p Params) N() int { return p.BlockSize }

// K returns the message size.
func (p Params) K() int { return p.BlockSize - p.ECCSize }

// Validate reports whether 0 < k < n <= 255.
func (p Params) Validate() error {
	switch {
	case p.BlockSize <= 0 || p.BlockSize > MaxBlockSize:
		return &coding.ConfigError{Name: "block size", Value: p.BlockSize}
	case p.ECCSize <= 0 || p.ECCSize >= p.BlockSize:
		return &coding.ConfigError{Name: "ecc size", Value: p.ECCSize}
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("RS(%d,%d)", p.N(), p.K())
}

// A Codec encodes k-byte messages into n-byte codewords.
// Implementations are deterministic and not safe for concurrent use.
type Codec interface {
	Params() Params
	// Encode returns the codeword for msg in a new slice.
	// It returns a *coding.ShapeError if len(msg) != k.
	Encode(msg []byte) ([]byte, error)
}

// A Verifier checks a codeword without correcting it.
type Verifier interface {
	Verify(cw []byte) (bool, error)
}

// A Kind selects a Codec implementation.
type Kind int

const (
	ReedSolomon    Kind = iota // syndrome RS, generator roots α^0..α^(n-k-1)
	Vandermonde                // systematic RS from a Vandermonde matrix
	BerlekampWelch             // RS decodable with Berlekamp-Welch
	kinds
)

var kindNames = [kinds]string{"rs", "vandermonde", "bw"}

var ErrKind = errors.New("fec: unknown codec kind")

func (k Kind) String() string {
	if k < 0 || k >= kinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for i, v := range kindNames {
		if v == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrKind, s)
}

// New returns a Codec of the given kind for p.
func New(kind Kind, p Params) (Codec, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch kind {
	case ReedSolomon:
		return newRSCodec(p), nil
	case Vandermonde:
		return newVandermondeCodec(p)
	case BerlekampWelch:
		return NewBWCodec(p)
	}
	return nil, fmt.Errorf("%w %d", ErrKind, int(kind))
}

func checkShape(msg []byte, p Params) error {
	if len(msg) != p.K() {
		return &coding.ShapeError{Got: len(msg), Want: p.K()}
	}
	return nil
}
