package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/unixdj/thermite"
	"github.com/unixdj/thermite/internal/config"
)

var g = struct {
	profile  config.Profile // encoding profile
	pfile    string         // profile file
	fn       string         // output filename
	format   int            // output file format
	rev      bool           // reverse colours
	latin1   bool           // Latin-1 input conversion
	compress bool           // zstd-compress input
	gray     bool           // Gray step code
	verbose  int            // log verbosity
}{
	profile: config.Default(),
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	fmt.Fprint(w, "Thermal printer data encoder\nUsage: ",
		cl.Program(), " ", cl.UsageLine(), ` [string ...]
If no string is given, data is read from standard input unchanged.
Data is padded, protected with a Reed-Solomon code, whitened and
framed into printable lines, which are written as a single image.

`)
	cl.PrintOptions(w)
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`thermite version 0.1.0
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

func verbose() { g.verbose++ }

var formats = []string{
	"pbm", "pbmi", "png", "pngi", "pdf", "pdfi",
	"utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*thermite.Tile, io.Writer) error{
	(*thermite.Tile).EncodePBM,
	(*thermite.Tile).EncodePNG,
	func(t *thermite.Tile, w io.Writer) error {
		return t.EncodePDF(w, g.profile.DPI)
	},
	func(t *thermite.Tile, w io.Writer) error {
		_, err := fmt.Fprint(w, t)
		return err
	},
	(*thermite.Tile).EncodeASCII,
}

func parseFlags() {
	p := &g.profile
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(opt(verbose), 'v', "log progress; -vv: debug").SetFlag()
	getopt.Flag(&g.pfile, 'c', "YAML encoding profile; "+
		"flags override its settings", "file")
	bs := getopt.Unsigned('n', uint64(p.BlockSize),
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 2, Max: 255},
		"codeword size in bytes", "n")
	ecc := getopt.Unsigned('e', uint64(p.ECCSize),
		&getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 254},
		"error correction bytes per codeword; "+
			"corrects half as many corrupted bytes", "ecc")
	codec := getopt.Enum('C', []string{"rs", "vandermonde", "bw"},
		p.Codec, "Reed-Solomon codec", "rs|vandermonde|bw")
	getopt.Flag(&p.BlockWidth, 'w', "pixels per bit, horizontally", "width")
	getopt.Flag(&p.LineHeight, 'H', "pixel rows per line", "height")
	getopt.Flag(&p.LineBytes, 'l', "codeword bytes per line", "bytes")
	getopt.Flag(&p.Border, 'm', "blank margin in pixels", "margin")
	getopt.Flag(&p.DPI, 'r', "resolution for type pdf[i]", "dpi")
	getopt.Flag(&p.MaxWidth, 'W', "printer head width in dots, "+
		"0 for no limit", "dots")
	getopt.Flag(&g.gray, 'g', "cycle a 4-step Gray code instead of "+
		"two alternating markers")
	getopt.Flag(&p.Manchester, 'M', "Manchester-code the payload")
	getopt.Flag(&g.latin1, '1', "convert string arguments to Latin-1")
	getopt.Flag(&g.compress, 'z', "compress data with zstd before encoding")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for standard output`,
		"file")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise pbm`, "type")

	getopt.Parse()

	if g.pfile != "" {
		lp, err := config.Load(g.pfile)
		if err != nil {
			log.Fatalln(err)
		}
		// Reapply flags given on the command line.
		saved := *p
		*p = lp
		for r, f := range map[rune]func(){
			'w': func() { p.BlockWidth = saved.BlockWidth },
			'H': func() { p.LineHeight = saved.LineHeight },
			'l': func() { p.LineBytes = saved.LineBytes },
			'm': func() { p.Border = saved.Border },
			'r': func() { p.DPI = saved.DPI },
			'W': func() { p.MaxWidth = saved.MaxWidth },
			'M': func() { p.Manchester = saved.Manchester },
		} {
			if getopt.IsSet(r) {
				f()
			}
		}
	}
	if g.pfile == "" || getopt.IsSet('n') {
		p.BlockSize = int(*bs)
	}
	if g.pfile == "" || getopt.IsSet('e') {
		p.ECCSize = int(*ecc)
	}
	if g.pfile == "" || getopt.IsSet('C') {
		p.Codec = *codec
	}
	if g.gray {
		p.StepCode = "gray"
	}
	if err := p.Validate(); err != nil {
		log.Fatalln(err)
	}

	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "pbm"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

func setupLogging() {
	level := parseLogLevel(os.Getenv("THERMITE_LOG_LEVEL"))
	switch {
	case g.verbose > 1:
		level = slog.LevelDebug
	case g.verbose == 1:
		level = min(level, slog.LevelInfo)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level})))
}

func readInput() []byte {
	if args := getopt.Args(); len(args) != 0 {
		s := strings.Join(args, " ")
		if g.latin1 {
			var err error
			if s, err = charmap.ISO8859_1.NewEncoder().String(s); err != nil {
				log.Fatalln(err)
			}
		}
		return []byte(s)
	}
	var b bytes.Buffer
	if _, err := io.Copy(&b, os.Stdin); err != nil {
		log.Fatalln(err)
	}
	return b.Bytes()
}

func compress(data []byte) []byte {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		log.Fatalln(err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func main() {
	log.SetFlags(0)
	parseFlags()
	setupLogging()

	p := &g.profile
	data := readInput()
	slog.Debug("input read", "bytes", len(data))
	if g.compress {
		n := len(data)
		data = compress(data)
		slog.Info("input compressed", "from", n, "to", len(data))
	}

	c, err := p.NewCodec()
	if err != nil {
		log.Fatalln(err)
	}
	o, err := p.Options()
	if err != nil {
		log.Fatalln(err)
	}
	e, err := thermite.NewEncoder(o)
	if err != nil {
		log.Fatalln(err)
	}
	slog.Info("encoding", "params", p.Params(), "codec", p.Codec,
		"lines", o.Lines(len(data), p.Params()),
		"width", o.LineWidth(o.LineBytes)+2*p.Border)
	t, err := e.Encode(data, c)
	if err != nil {
		log.Fatalln(err)
	}
	t.Border = p.Border
	t.Reverse = g.rev
	write(t)
}

func write(t *thermite.Tile) {
	w := os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	err := encoders[g.format](t, w)
	if g.fn != "" && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
	slog.Info("image written", "format", formats[g.format*2],
		"width", t.Width+2*t.Border, "height", t.Height+2*t.Border)
}
