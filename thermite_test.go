// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermite

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unixdj/thermite/coding"
	"github.com/unixdj/thermite/fec"
)

var helloParams = fec.Params{BlockSize: 16, ECCSize: 5}

func helloCodeword(t *testing.T) []byte {
	t.Helper()
	c, err := fec.New(fec.ReedSolomon, helloParams)
	if err != nil {
		t.Fatal(err)
	}
	cw, err := fec.EncodeAll([]byte("HELLO"), c)
	if err != nil {
		t.Fatal(err)
	}
	if len(cw) != 16 {
		t.Fatalf("%d codeword bytes, want 16", len(cw))
	}
	return cw
}

// sample recovers framed bits from row y of a tile.
func sample(t *Tile, blockWidth, y int) []byte {
	bits := make([]byte, t.Width/blockWidth)
	for i := range bits {
		bits[i] = t.Pixel(i*blockWidth, y)
	}
	return bits
}

func TestHelloLine(t *testing.T) {
	cw := helloCodeword(t)
	opt := DefaultOptions
	opt.BlockWidth, opt.LineHeight = 10, 10
	e, err := NewEncoder(opt)
	if err != nil {
		t.Fatal(err)
	}
	bits := e.LineBits(cw)
	if len(bits) != 6+2+128+6 {
		t.Fatalf("%d framed bits, want 142", len(bits))
	}
	payload := coding.Unpack(cw)
	coding.NewWhitener(0xdeadbeef).Whiten(payload)
	var want []byte
	want = append(want, 0, 0, 0, 1, 1, 1)
	want = append(want, 0, 1)
	want = append(want, payload...)
	want = append(want, 1, 1, 1, 0, 0, 0)
	if diff := cmp.Diff(want, bits); diff != "" {
		t.Errorf("framed bits (-want +got):\n%s", diff)
	}

	e, _ = NewEncoder(opt)
	tile, err := e.EncodeLine(cw)
	if err != nil {
		t.Fatal(err)
	}
	if tile.Width != 1420 || tile.Height != 10 {
		t.Fatalf("tile is %dx%d, want 1420x10", tile.Width, tile.Height)
	}
	for y, row := range tile.Rows() {
		for x, v := range row {
			if v != want[x/10] {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, v, want[x/10])
			}
		}
	}
}

func TestRepeatedLinesDiffer(t *testing.T) {
	e, err := NewEncoder(DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	line := []byte{0, 0, 0, 0}
	a, b := e.LineBits(line), e.LineBits(line)
	if bytes.Equal(a, b) {
		t.Fatal("identical payloads framed identically")
	}
	sc := coding.DefaultStepCode
	p := len(coding.Preamble)
	if !bytes.Equal(a[p:p+2], sc[0]) || !bytes.Equal(b[p:p+2], sc[1]) {
		t.Errorf("markers %v %v", a[p:p+2], b[p:p+2])
	}
	if e.Step() != 0 {
		t.Errorf("step %d after two lines, want 0", e.Step())
	}
}

func TestEncoderDeterministic(t *testing.T) {
	c, err := fec.New(fec.Vandermonde, helloParams)
	if err != nil {
		t.Fatal(err)
	}
	data := []byte(strings.Repeat("thermite ", 20))
	e1, _ := NewEncoder(DefaultOptions)
	e2, _ := NewEncoder(DefaultOptions)
	a, err := e1.Encode(data, c)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e2.Encode(data, c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("encoders disagree:\n%s", diff)
	}
	// A used encoder continues its whitening sequence.
	c2, err := e1.Encode(data, c)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Bitmap, c2.Bitmap) {
		t.Error("second encoding repeated the first")
	}
}

func TestStream(t *testing.T) {
	c, err := fec.New(fec.ReedSolomon, helloParams)
	if err != nil {
		t.Fatal(err)
	}
	data := bytes.Repeat([]byte{0xff}, 100)
	all, err := fec.EncodeAll(data, c)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 160 {
		t.Fatalf("%d codeword bytes, want 160", len(all))
	}

	opt := DefaultOptions
	opt.LineBytes = 7
	opt.BlockWidth = 3
	e, err := NewEncoder(opt)
	if err != nil {
		t.Fatal(err)
	}
	w := coding.NewWhitener(opt.Seed)
	s := e.Stream(data, c)
	lines := 0
	for s.Next() {
		tile := s.Tile()
		n := min(7, len(all))
		if tile.Width != opt.LineWidth(n) {
			t.Fatalf("line %d: width %d, want %d",
				lines, tile.Width, opt.LineWidth(n))
		}
		if tile.Height != opt.LineHeight {
			t.Fatalf("line %d: height %d", lines, tile.Height)
		}
		bits := sample(tile, opt.BlockWidth, 0)
		payload := coding.Unpack(all[:n])
		w.Whiten(payload)
		got := bits[8 : len(bits)-6]
		if diff := cmp.Diff(payload, got); diff != "" {
			t.Fatalf("line %d payload (-want +got):\n%s", lines, diff)
		}
		if step := bits[6:8]; !bytes.Equal(step, coding.DefaultStepCode[lines%2]) {
			t.Fatalf("line %d: step %v", lines, step)
		}
		all = all[n:]
		lines++
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("%d bytes not encoded", len(all))
	}
	if want := opt.Lines(100, helloParams); lines != want || lines != 23 {
		t.Errorf("%d lines, want %d", lines, want)
	}
	if s.Next() {
		t.Error("Next after end")
	}
}

func TestManchesterOption(t *testing.T) {
	opt := DefaultOptions
	opt.Manchester = true
	opt.StepCode = coding.GrayStepCode
	e, err := NewEncoder(opt)
	if err != nil {
		t.Fatal(err)
	}
	tile, err := e.EncodeLine([]byte{0x0f, 0xf0})
	if err != nil {
		t.Fatal(err)
	}
	if tile.Width != opt.LineWidth(2) || tile.Width != (32+6+2+6)*8 {
		t.Errorf("width %d", tile.Width)
	}
	bits := sample(tile, opt.BlockWidth, 0)
	for i := 8; i < 8+32; i += 2 {
		if bits[i] == bits[i+1] {
			t.Fatalf("no transition at payload bit %d", (i-8)/2)
		}
	}
}

func TestNewEncoderErrors(t *testing.T) {
	bad := []Options{
		{BlockWidth: 0, LineHeight: 1, LineBytes: 1},
		{BlockWidth: 1, LineHeight: -1, LineBytes: 1},
		{BlockWidth: 1, LineHeight: 1, LineBytes: 0},
		{BlockWidth: 1, LineHeight: 1, LineBytes: 1, StepCode: coding.StepCode{{0}, {0, 1}}},
	}
	for _, opt := range bad {
		if _, err := NewEncoder(opt); !errors.Is(err, coding.ErrConfig) {
			t.Errorf("NewEncoder(%+v) error = %v, want ErrConfig", opt, err)
		}
	}
	e, err := NewEncoder(Options{BlockWidth: 1, LineHeight: 1, LineBytes: 1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(coding.DefaultStepCode, e.Options().StepCode); diff != "" {
		t.Errorf("default step code (-want +got):\n%s", diff)
	}
}

type rejectCodec struct{}

var errReject = errors.New("reject")

func (rejectCodec) Params() fec.Params            { return helloParams }
func (rejectCodec) Encode([]byte) ([]byte, error) { return nil, errReject }

func TestEncodeError(t *testing.T) {
	e, _ := NewEncoder(DefaultOptions)
	tile, err := e.Encode([]byte("data"), rejectCodec{})
	if !errors.Is(err, errReject) || tile != nil {
		t.Errorf("Encode = %v, %v", tile, err)
	}
}

func TestStack(t *testing.T) {
	a := &Tile{Bitmap: []byte{0xff, 0xff}, Width: 12, Height: 1, Stride: 2}
	b := &Tile{Bitmap: []byte{0xff, 0x00}, Width: 3, Height: 2, Stride: 1}
	s := Stack(a, b)
	if s.Width != 12 || s.Height != 3 || s.Stride != 2 {
		t.Fatalf("stacked tile %dx%d stride %d", s.Width, s.Height, s.Stride)
	}
	want := []byte{0xff, 0xf0, 0xe0, 0x00, 0x00, 0x00}
	if diff := cmp.Diff(want, s.Bitmap); diff != "" {
		t.Errorf("bitmap (-want +got):\n%s", diff)
	}
	if e := Stack(); e.Width != 0 || e.Height != 0 {
		t.Errorf("empty stack %dx%d", e.Width, e.Height)
	}
}

// testTile is 3x2: 101 / 010.
func testTile() *Tile {
	return &Tile{Bitmap: []byte{0xa0, 0x40}, Width: 3, Height: 2, Stride: 1}
}

func TestEncodePBM(t *testing.T) {
	tests := []struct {
		border  int
		reverse bool
		want    string
	}{
		{0, false, "P4\n3 2\n\xa0\x40"},
		{0, true, "P4\n3 2\n\x5f\xbf"},
		{1, false, "P4\n5 4\n\x00\x50\x20\x00"},
		{8, false, "P4\n19 18\n" + strings.Repeat("\x00", 3*8) +
			"\x00\xa0\x00\x00\x40\x00" + strings.Repeat("\x00", 3*8)},
	}
	for _, tt := range tests {
		tile := testTile()
		tile.Border, tile.Reverse = tt.border, tt.reverse
		var b bytes.Buffer
		if err := tile.EncodePBM(&b); err != nil {
			t.Fatal(err)
		}
		if got := b.String(); got != tt.want {
			t.Errorf("border %d reverse %v: got %q, want %q",
				tt.border, tt.reverse, got, tt.want)
		}
	}
	bad := &Tile{Bitmap: []byte{0}, Width: 9, Height: 1, Stride: 1}
	if err := bad.EncodePBM(new(bytes.Buffer)); err != ErrArgs {
		t.Errorf("invalid tile: error = %v", err)
	}
}

func TestEncodePNG(t *testing.T) {
	tile := testTile()
	tile.Border = 2
	var b bytes.Buffer
	if err := tile.EncodePNG(&b); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 7 || bounds.Dy() != 6 {
		t.Fatalf("image is %v", bounds)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 7; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if black := g.Y < 0x80; black != tile.Black(x-2, y-2) {
				t.Errorf("pixel (%d,%d): black %v", x, y, black)
			}
		}
	}
}

func TestEncodePDF(t *testing.T) {
	var b bytes.Buffer
	if err := testTile().EncodePDF(&b, DefaultDPI); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("%PDF-")) {
		t.Errorf("output starts with %q", b.Bytes()[:min(8, b.Len())])
	}
	if err := testTile().EncodePDF(&b, 0); err != ErrArgs {
		t.Errorf("dpi 0: error = %v", err)
	}
}

func TestText(t *testing.T) {
	tile := testTile()
	if got, want := tile.String(), "▀▄▀\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	var b bytes.Buffer
	if err := tile.EncodeASCII(&b); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "##  ##\n  ##  \n"; got != want {
		t.Errorf("EncodeASCII = %q, want %q", got, want)
	}
}
