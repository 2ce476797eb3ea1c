package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

const salesTOML = `name = "sales"

[chart]
type = "standard"
width = 200
height = 100

[[data]]
key = "jan"
data = 1

[[data]]
key = "feb"
data = 3
`

func writeDefinition(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sales.toml")
	if err := os.WriteFile(path, []byte(salesTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testContext() context.Context {
	return withLogger(context.Background(), log.New(&bytes.Buffer{}))
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, json", []string{"svg", "json"}},
		{"svg,,png", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		n      int
		want   string
	}{
		{"derived from input", "", "svg", 1, "charts/sales.svg"},
		{"single explicit", "out/chart.image", "png", 1, "out/chart.image"},
		{"several share base", "out/chart.svg", "json", 2, "out/chart.json"},
		{"several without ext", "out/chart", "png", 3, "out/chart.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "charts/sales.toml", tt.format, tt.n); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPipelineOptionsOverrides(t *testing.T) {
	input := writeDefinition(t, t.TempDir())
	po, err := pipelineOptions(input, &renderOpts{
		formats:  []string{"svg"},
		hover:    "feb",
		pointerX: 12,
		hasX:     true,
		width:    640,
		zoomed:   true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if po.Definition.Chart.Width != 640 || po.Definition.Chart.Height != 100 {
		t.Errorf("frame = %gx%g", po.Definition.Chart.Width, po.Definition.Chart.Height)
	}
	if !po.Definition.Chart.IsZoomed {
		t.Error("zoomed override not applied")
	}
	if po.PointerX == nil || *po.PointerX != 12 || po.Hover != "feb" {
		t.Errorf("pointer options = %v, %q", po.PointerX, po.Hover)
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := writeDefinition(t, dir)
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, nil, log.New(&bytes.Buffer{}))

	opts := &renderOpts{
		formats: []string{"svg", "json"},
		output:  filepath.Join(dir, "out", "sales"),
		style:   pipeline.StyleSimple,
		scale:   1,
	}
	if err := runRender(testContext(), runner, input, opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "out", "sales.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Error("svg output should start with <svg")
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "sales.json")); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestRunRenderMissingFile(t *testing.T) {
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, log.New(&bytes.Buffer{}))
	err := runRender(testContext(), runner, filepath.Join(t.TempDir(), "nope.toml"), &renderOpts{formats: []string{"svg"}})
	if err == nil {
		t.Fatal("missing input should fail")
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(3, 1, true)
	for _, want := range []string{"3 points", "1 series", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine = %q, missing %q", line, want)
		}
	}
	if !strings.Contains(statsLine(1, 2, false), iconFresh) {
		t.Error("uncached stats should say fresh")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"render", "explore", "serve", "cache", "version", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCompletionGenerators(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for shell, gen := range completionGenerators {
		var buf bytes.Buffer
		if err := gen(root, &buf); err != nil || buf.Len() == 0 {
			t.Errorf("%s completion: err=%v, %d bytes", shell, err, buf.Len())
		}
	}
}
