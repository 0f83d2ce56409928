// Package config loads encoding profiles from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unixdj/thermite"
	"github.com/unixdj/thermite/coding"
	"github.com/unixdj/thermite/fec"
)

// Profile holds everything needed to encode data for one printer.
//
//	block_size: 16
//	ecc_size: 5
//	codec: rs
//	block_width: 8
//	line_height: 8
//	line_bytes: 4
//	step_code: gray
//	manchester: false
//	border: 8
//	dpi: 203
type Profile struct {
	BlockSize  int    `yaml:"block_size"`
	ECCSize    int    `yaml:"ecc_size"`
	Codec      string `yaml:"codec"`
	BlockWidth int    `yaml:"block_width"`
	LineHeight int    `yaml:"line_height"`
	LineBytes  int    `yaml:"line_bytes"`
	StepCode   string `yaml:"step_code"` // "default" or "gray"
	Manchester bool   `yaml:"manchester"`
	Border     int    `yaml:"border"`
	DPI        int    `yaml:"dpi"`
	MaxWidth   int    `yaml:"max_width"` // printer head width in dots, 0 for no limit
}

// Default returns the built-in profile, 4 bytes per line on a 384 dot
// thermal printer.
func Default() Profile {
	o := thermite.DefaultOptions
	return Profile{
		BlockSize:  16,
		ECCSize:    5,
		Codec:      fec.ReedSolomon.String(),
		BlockWidth: o.BlockWidth,
		LineHeight: o.LineHeight,
		LineBytes:  o.LineBytes,
		StepCode:   "default",
		Border:     8,
		DPI:        thermite.DefaultDPI,
		MaxWidth:   384,
	}
}

// Load reads the profile at path.  Fields missing from the file keep
// their values from Default.
func Load(path string) (Profile, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Params returns the codec parameters of p.
func (p *Profile) Params() fec.Params {
	return fec.Params{BlockSize: p.BlockSize, ECCSize: p.ECCSize}
}

// Options returns the encoder options of p.
func (p *Profile) Options() (thermite.Options, error) {
	sc, err := parseStepCode(p.StepCode)
	if err != nil {
		return thermite.Options{}, err
	}
	return thermite.Options{
		BlockWidth: p.BlockWidth,
		LineHeight: p.LineHeight,
		LineBytes:  p.LineBytes,
		StepCode:   sc,
		Seed:       coding.DefaultSeed,
		Manchester: p.Manchester,
	}, nil
}

// NewCodec returns a codec for p.
func (p *Profile) NewCodec() (fec.Codec, error) {
	k, err := fec.ParseKind(p.Codec)
	if err != nil {
		return nil, err
	}
	return fec.New(k, p.Params())
}

// Validate checks that p describes a usable encoder.
func (p *Profile) Validate() error {
	if err := p.Params().Validate(); err != nil {
		return err
	}
	if _, err := fec.ParseKind(p.Codec); err != nil {
		return err
	}
	o, err := p.Options()
	if err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if p.Border < 0 {
		return &coding.ConfigError{Name: "border", Value: p.Border}
	}
	if p.DPI <= 0 {
		return &coding.ConfigError{Name: "dpi", Value: p.DPI}
	}
	if w := o.LineWidth(p.LineBytes) + 2*p.Border; p.MaxWidth > 0 && w > p.MaxWidth {
		return fmt.Errorf("%w: line width %d exceeds %d dots",
			coding.ErrConfig, w, p.MaxWidth)
	}
	return nil
}

func parseStepCode(s string) (coding.StepCode, error) {
	switch s {
	case "", "default":
		return coding.DefaultStepCode, nil
	case "gray":
		return coding.GrayStepCode, nil
	}
	return nil, fmt.Errorf("%w step code %q", coding.ErrConfig, s)
}
