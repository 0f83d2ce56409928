// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermite

import (
	"bytes"
	"image/png"
	"io"
)

// EncodePNG writes a PNG image displaying the tile to w.  The image is
// paletted with a bit depth of 1.
func (t *Tile) EncodePNG(w io.Writer) error {
	if w == nil || !t.isValid() {
		return ErrArgs
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, t.Paletted())
}

// PNG returns a PNG image displaying the tile, or nil if the tile is
// invalid.
func (t *Tile) PNG() []byte {
	var b bytes.Buffer
	if err := t.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}
