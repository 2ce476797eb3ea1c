// Package config loads chart definition files.
//
// A definition bundles the chart configuration, the arc or area element
// options and the data in one document, written either as TOML or JSON:
//
//	name = "traffic"
//	scheme = "ocean"
//
//	[chart]
//	type = "stacked"
//	width = 640
//	height = 320
//	interpolation = "monotoneX"
//
//	[[data]]
//	key = "web"
//	data = [{ key = 1, data = 10 }, { key = 2, data = 14 }]
//
// The data section is kept as generic decoded values and handed to the
// data normalizer, so every input form it accepts is accepted here.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/area"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/pie"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Frame size used when a definition leaves width or height unset.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 400.0
)

// Format identifies a definition encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf infers the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported definition file %q (want .toml or .json)", filepath.Base(path))
}

// Definition is a complete, renderable chart document.
type Definition struct {
	Name   string       `json:"name,omitempty" toml:"name"`
	Chart  chart.Config `json:"chart" toml:"chart"`
	Scheme string       `json:"scheme,omitempty" toml:"scheme"`

	// Pie configures pie charts and is ignored otherwise.
	Pie *pie.Config `json:"pie,omitempty" toml:"pie"`

	// Elements selects the drawn parts of an area chart. Nil draws all of
	// them with default styling.
	Elements *area.Elements `json:"elements,omitempty" toml:"elements"`

	Data any `json:"data" toml:"data"`
}

// IsPie reports whether the definition renders a pie chart.
func (d *Definition) IsPie() bool {
	return d.Chart.Type == data.Pie
}

// SetDefaults fills the frame size and chart type.
func (d *Definition) SetDefaults() {
	if d.Chart.Width == 0 {
		d.Chart.Width = DefaultWidth
	}
	if d.Chart.Height == 0 {
		d.Chart.Height = DefaultHeight
	}
	if t, err := data.ParseChartType(string(d.Chart.Type)); err == nil {
		d.Chart.Type = t
	}
}

// Validate applies defaults and checks the chart and pie configuration.
// The data itself is validated when it is normalized.
func (d *Definition) Validate() error {
	d.SetDefaults()
	if err := d.Chart.Validate(); err != nil {
		return err
	}
	if d.Data == nil {
		return errors.New(errors.ErrCodeInvalidInput, "definition has no data")
	}
	if d.IsPie() && d.Pie != nil {
		return d.Pie.WithDefaults().Validate()
	}
	return nil
}

// PieConfig returns the pie configuration with the definition's scheme.
func (d *Definition) PieConfig() pie.Config {
	var pc pie.Config
	if d.Pie != nil {
		pc = *d.Pie
	}
	if pc.Scheme == "" {
		pc.Scheme = d.Scheme
	}
	return pc
}

// AreaElements returns the configured elements or the defaults.
func (d *Definition) AreaElements() area.Elements {
	if d.Elements == nil {
		return area.DefaultElements()
	}
	return *d.Elements
}

// Load reads and validates the definition at path. Unknown TOML keys do
// not fail the load; they are returned as warnings.
func Load(path string) (*Definition, []string, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads a definition from r.
func Decode(r io.Reader, format Format) (*Definition, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return Parse(raw, format)
}

// Parse decodes and validates a definition.
func Parse(raw []byte, format Format) (*Definition, []string, error) {
	var (
		def      Definition
		warnings []string
	)
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(raw), &def)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		for _, k := range md.Undecoded() {
			// data is decoded into an untyped value, so its keys always
			// show up as undecoded.
			if len(k) > 0 && k[0] == "data" {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("unknown key %q", k.String()))
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&def); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition format %q", format)
	}
	if err := def.Validate(); err != nil {
		return nil, warnings, err
	}
	return &def, warnings, nil
}

// Marshal encodes a definition as JSON, the canonical form used for
// storage and cache keys.
func Marshal(d *Definition) ([]byte, error) {
	return json.Marshal(d)
}
