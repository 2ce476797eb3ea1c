package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

const stackedTOML = `
name = "traffic"
scheme = "ocean"
colour = "oops"

[chart]
type = "stacked"
width = 640
height = 320
interpolation = "monotoneX"

[[data]]
key = "web"
data = [{ key = 1, data = 10 }, { key = 2, data = 14 }]

[[data]]
key = "api"
data = [{ key = 1, data = 3 }, { key = 2, data = 5 }]
`

const pieJSON = `{
  "chart": {"type": "pie", "width": 300, "height": 300},
  "pie": {"doughnut": true, "padAngle": 0.02, "label": {"displayAll": true}},
  "scheme": "sunset",
  "data": [{"key": "a", "data": 1}, {"key": "b", "data": 2}]
}`

func TestParseTOML(t *testing.T) {
	def, warnings, err := Parse([]byte(stackedTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Name != "traffic" || def.Chart.Type != data.Stacked {
		t.Errorf("unexpected definition: %+v", def)
	}
	if def.Chart.Width != 640 || def.Chart.Height != 320 {
		t.Errorf("frame = %vx%v", def.Chart.Width, def.Chart.Height)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "colour") {
		t.Errorf("warnings = %v, want one about colour", warnings)
	}

	shape, err := data.Normalize(def.Data, def.Chart.Type)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if shape.Kind != data.Nested || len(shape.Series) != 2 {
		t.Errorf("shape = %v with %d series", shape.Kind, len(shape.Series))
	}
}

func TestParseTOMLWarningsSkipData(t *testing.T) {
	const src = `
[chart]
type = "standard"
width = 100
height = 50

[elements.line]
stroke_widht = 2

[[data]]
key = "jan"
data = 1
note = "first"

[[data]]
key = "feb"
data = 2
`
	_, warnings, err := Parse([]byte(src), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{`unknown key "elements.line.stroke_widht"`}
	if len(warnings) != len(want) || warnings[0] != want[0] {
		t.Errorf("warnings = %v, want %v", warnings, want)
	}
}

func TestParseJSONPie(t *testing.T) {
	def, warnings, err := Parse([]byte(pieJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if !def.IsPie() {
		t.Fatal("definition should be a pie")
	}
	pc := def.PieConfig()
	if !pc.Doughnut || pc.PadAngle != 0.02 || pc.Scheme != "sunset" {
		t.Errorf("pie config = %+v", pc)
	}
	if pc.Label == nil || !pc.Label.DisplayAll {
		t.Error("label options should be decoded")
	}
}

func TestParseDefaults(t *testing.T) {
	def, _, err := Parse([]byte(`{"data": [{"key": "a", "data": 1}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Chart.Width != DefaultWidth || def.Chart.Height != DefaultHeight {
		t.Errorf("frame = %vx%v", def.Chart.Width, def.Chart.Height)
	}
	if def.Chart.Type != data.Standard {
		t.Errorf("type = %q", def.Chart.Type)
	}
	if def.Elements != nil || def.AreaElements().Line == nil {
		t.Error("nil elements should fall back to the defaults")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format Format
		code   errors.Code
	}{
		{"bad json", `{`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"bad toml", `[chart`, FormatTOML, errors.ErrCodeInvalidFormat},
		{"no data", `{"chart": {"type": "standard"}}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"bad type", `{"chart": {"type": "radar"}, "data": []}`, FormatJSON, errors.ErrCodeInvalidType},
		{"bad size", `{"chart": {"width": -1}, "data": []}`, FormatJSON, errors.ErrCodeInvalidConfig},
		{"bad pie", `{"chart": {"type": "pie"}, "pie": {"padAngle": -1}, "data": []}`, FormatJSON, errors.ErrCodeInvalidConfig},
		{"bad format", `{}`, Format("yaml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.raw), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(path, []byte(stackedTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	def, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if def.Scheme != "ocean" {
		t.Errorf("scheme = %q", def.Scheme)
	}

	if _, _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
	if _, _, err := Load(filepath.Join(dir, "chart.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension err = %v", err)
	}
}

func TestLoadService(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("STACKCHART_REDIS_ADDR=localhost:6379\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, ":9090")
	t.Setenv(EnvRedisAddr, "")
	os.Unsetenv(EnvRedisAddr)
	t.Setenv(EnvMongoDB, "")

	s, err := LoadService(env, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("LoadService: %v", err)
	}
	if s.Addr != ":9090" {
		t.Errorf("Addr = %q, environment should win", s.Addr)
	}
	if s.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want value from .env", s.RedisAddr)
	}
	if s.MongoDB != DefaultMongoDB {
		t.Errorf("MongoDB = %q", s.MongoDB)
	}
}

func TestLoadExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example definitions")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			def, warnings, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(warnings) > 0 {
				t.Errorf("warnings = %v", warnings)
			}
			if _, err := data.Normalize(def.Data, def.Chart.Type); err != nil {
				t.Errorf("Normalize: %v", err)
			}
		})
	}
}
