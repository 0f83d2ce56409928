// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermite

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// DefaultDPI is the resolution of common thermal printer heads.
const DefaultDPI = 203

// EncodePDF writes a single page PDF displaying the tile to w, sized
// so that it prints at dpi pixels per inch.
func (t *Tile) EncodePDF(w io.Writer, dpi int) error {
	if w == nil || !t.isValid() || dpi <= 0 {
		return ErrArgs
	}
	var img bytes.Buffer
	if err := t.EncodePNG(&img); err != nil {
		return err
	}
	bounds := t.Image().Bounds()
	widthMM := float64(bounds.Dx()) / float64(dpi) * 25.4
	heightMM := float64(bounds.Dy()) / float64(dpi) * 25.4

	pdf := fpdf.New("P", "mm", "", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("thermite", true)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: widthMM, Ht: heightMM})
	pdf.RegisterImageOptionsReader("tile", fpdf.ImageOptions{ImageType: "PNG"}, &img)
	pdf.ImageOptions("tile", 0, 0, widthMM, heightMM, false, fpdf.ImageOptions{}, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("thermite: generate PDF: %w", err)
	}
	return nil
}
