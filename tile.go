// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermite

import (
	"errors"
	"image"
	"image/color"
)

var ErrArgs = errors.New("thermite: invalid arguments")

// A Tile is a rectangular pixel grid, one or more encoded lines.
// It implements image output in several formats.
type Tile struct {
	Bitmap []byte // 1 is a mark (black), 0 is blank; MSB leftmost
	Width  int    // pixels per row
	Height int    // number of rows
	Stride int    // number of bytes per row

	// Output settings, ignored by Black and Pixel.
	Border  int  // blank pixels on each side
	Reverse bool // swap black and white
}

func (t *Tile) isValid() bool {
	return t != nil && t.Width >= 0 && t.Height >= 0 &&
		t.Stride >= (t.Width+7)/8 && t.Border >= 0 &&
		len(t.Bitmap) >= t.Stride*t.Height
}

// Black returns true if the pixel at (x,y) is black.
func (t *Tile) Black(x, y int) bool {
	return 0 <= x && x < t.Width && 0 <= y && y < t.Height &&
		t.Bitmap[y*t.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// Pixel returns the value of the pixel at (x,y), 1 for a mark.
// Pixels outside the tile are 0.
func (t *Tile) Pixel(x, y int) byte {
	if t.Black(x, y) {
		return 1
	}
	return 0
}

// Rows returns the tile as a Height by Width matrix of 0 and 1.
func (t *Tile) Rows() [][]byte {
	rows := make([][]byte, t.Height)
	for y := range rows {
		rows[y] = make([]byte, t.Width)
		for x := range rows[y] {
			rows[y][x] = t.Pixel(x, y)
		}
	}
	return rows
}

// Stack returns a tile with tiles placed one below the other, in
// order.  Narrower tiles are padded with blank pixels on the right.
// Border and Reverse are taken from the first tile.
func Stack(tiles ...*Tile) *Tile {
	s := &Tile{}
	for _, t := range tiles {
		s.Width = max(s.Width, t.Width)
		s.Height += t.Height
	}
	if len(tiles) != 0 {
		s.Border, s.Reverse = tiles[0].Border, tiles[0].Reverse
	}
	s.Stride = (s.Width + 7) / 8
	s.Bitmap = make([]byte, s.Stride*s.Height)
	b := s.Bitmap
	for _, t := range tiles {
		for y := 0; y < t.Height; y++ {
			n := (t.Width + 7) / 8
			copy(b[:n], t.Bitmap[y*t.Stride:y*t.Stride+n])
			if r := t.Width & 7; r != 0 {
				b[n-1] &= 0xff << (8 - r)
			}
			b = b[s.Stride:]
		}
	}
	return s
}

// Image returns an Image displaying the tile, including the border.
func (t *Tile) Image() image.Image {
	return &tileImage{t}
}

// tileImage implements image.Image
type tileImage struct {
	*Tile
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (t *tileImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width+2*t.Border, t.Height+2*t.Border)
}

func (t *tileImage) At(x, y int) color.Color {
	if t.Black(x-t.Border, y-t.Border) != t.Reverse {
		return blackColor
	}
	return whiteColor
}

func (t *tileImage) ColorModel() color.Model {
	return color.GrayModel
}

// Paletted returns the tile with its border as a two-colour image.
func (t *Tile) Paletted() *image.Paletted {
	bounds := t.Image().Bounds()
	img := image.NewPaletted(bounds, color.Palette{whiteColor, blackColor})
	var rev uint8
	if t.Reverse {
		rev = 1
	}
	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+bounds.Dx()]
		for x := range row {
			row[x] = t.Pixel(x-t.Border, y-t.Border) ^ rev
		}
	}
	return img
}
