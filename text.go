// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermite

import (
	"io"
	"strings"
)

// Half block characters indexed by top | bottom<<1, 1 is black.
var halfBlocks = [4]string{" ", "▀", "▄", "█"}

// String returns the tile drawn with Unicode half blocks, two pixel
// rows per line of text.
func (t *Tile) String() string {
	if !t.isValid() {
		return ""
	}
	bord := t.Border
	var b strings.Builder
	for y := -bord; y < t.Height+bord; y += 2 {
		for x := -bord; x < t.Width+bord; x++ {
			i := t.Pixel(x, y) | t.Pixel(x, y+1)<<1
			if t.Reverse {
				i ^= 3
				if y+1 >= t.Height+bord {
					i &^= 2
				}
			}
			b.WriteString(halfBlocks[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// EncodeASCII writes the tile to w drawn with "#", two characters
// per pixel.
func (t *Tile) EncodeASCII(w io.Writer) error {
	if !t.isValid() {
		return ErrArgs
	}
	bord := t.Border
	pix := t.Width + 2*bord
	b := make([]byte, 0, (pix*2+1)*(t.Height+2*bord))
	for y := -bord; y < t.Height+bord; y++ {
		for x := -bord; x < t.Width+bord; x++ {
			var p byte = ' '
			if t.Black(x, y) != t.Reverse {
				p = '#'
			}
			b = append(b, p, p)
		}
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}
