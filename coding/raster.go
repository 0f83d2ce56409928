// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Band is a rasterised line: Height rows of Width pixels, 1 is
// a mark.  All rows are identical.
type Band struct {
	Rows   [][]byte
	Width  int
	Height int
}

// Rasterize expands each bit of bits into a blockWidth by lineHeight
// rectangle of pixels.
func Rasterize(bits []byte, blockWidth, lineHeight int) (*Band, error) {
	if blockWidth <= 0 {
		return nil, &ConfigError{"block width", blockWidth}
	}
	if lineHeight <= 0 {
		return nil, &ConfigError{"line height", lineHeight}
	}
	w := len(bits) * blockWidth
	row := make([]byte, 0, w)
	for _, b := range bits {
		if b > 1 {
			return nil, RangeError(b)
		}
		for i := 0; i < blockWidth; i++ {
			row = append(row, b)
		}
	}
	rows := make([][]byte, lineHeight)
	rows[0] = row
	for y := 1; y < lineHeight; y++ {
		rows[y] = append([]byte(nil), row...)
	}
	return &Band{Rows: rows, Width: w, Height: lineHeight}, nil
}

// Pack returns the band as a packed bitmap, most significant bit
// leftmost, with rows stride bytes apart.
func (b *Band) Pack() (bitmap []byte, stride int) {
	stride = (b.Width + 7) / 8
	bitmap = make([]byte, stride*b.Height)
	for y, row := range b.Rows {
		dst := bitmap[y*stride:]
		for x, v := range row {
			dst[x/8] |= v << (7 - x&7)
		}
	}
	return bitmap, stride
}
