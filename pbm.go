// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermite

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the tile to w,
// for use with netpbm.
func (t *Tile) EncodePBM(w io.Writer) error {
	if !t.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	bord := t.Border
	width := t.Width + bord*2
	height := t.Height + bord*2
	if _, err := b.WriteString("P4\n" + strconv.Itoa(width) + " " +
		strconv.Itoa(height) + "\n"); err != nil {
		return err
	}
	row := make([]byte, (width+7)/8)
	var white byte
	if t.Reverse {
		white = 255
		for i := range row {
			row[i] = white
		}
	}
	for i := 0; i < bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	data := row[bord/8 : (bord+t.Width+7)/8]
	slen := bord & 7
	for y := 0; y < t.Height; y++ {
		srow := t.Bitmap[y*t.Stride : y*t.Stride+(t.Width+7)/8]
		if slen|int(white) == 0 {
			copy(data, srow)
		} else {
			pbmRow(data, srow, white, slen)
		}
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	if bord != 0 {
		for i := range data {
			data[i] = white
		}
		for i := 0; i < bord; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow encodes a row of tile pixels shifted right by slen bits and
// XORed with white.
func pbmRow(row, srow []byte, white byte, slen int) {
	j := 0
	z := white
	for _, v := range srow {
		if j >= len(row) {
			return
		}
		row[j] = z ^ v>>slen
		z = v<<(8-slen) ^ white
		j++
	}
	if j < len(row) {
		row[j] = z
	}
}
