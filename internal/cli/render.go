package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file, base path for several formats, or "-" for stdout
	formats  []string // svg, png, json
	hover    string   // key to render hovered
	pointerX float64  // pointer x in pixels, used when hasX
	hasX     bool
	zoomed   bool
	animated bool
	width    float64
	height   float64
	style    string
	scale    float64
	watch    bool
	noCache  bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{style: pipeline.DefaultStyle, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart definition to SVG, PNG or JSON",
		Long: `Render a chart definition (.toml or .json) to one or more formats.

Use --hover or --pointer-x to render the chart as it looks while the pointer
rests on a key. With --watch the file is re-rendered whenever it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) > 1 {
				return fmt.Errorf("stdout output takes a single format, got %d", len(opts.formats))
			}
			opts.hasX = cmd.Flags().Changed("pointer-x")

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			if !opts.watch {
				return runRender(ctx, runner, args[0], &opts)
			}
			return watchFile(ctx, args[0], watchDebounce, func() error {
				return runRender(ctx, runner, args[0], &opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.hover, "hover", "", "render with the pointer on this key (area) or slice (pie)")
	cmd.Flags().Float64Var(&opts.pointerX, "pointer-x", 0, "render with the pointer at this x pixel (area charts)")
	cmd.Flags().BoolVar(&opts.zoomed, "zoomed", false, "draw outside the clip padding")
	cmd.Flags().BoolVar(&opts.animated, "animated", false, "mark paths as animation-eligible")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override the chart width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "override the chart height")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "SVG style: simple (default), handdrawn")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel scale")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the file changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// pipelineOptions loads input and applies the command-line overrides.
func pipelineOptions(input string, opts *renderOpts) (pipeline.Options, error) {
	def, warnings, err := config.Load(input)
	if err != nil {
		return pipeline.Options{}, err
	}
	for _, w := range warnings {
		printWarning("%s: %s", filepath.Base(input), w)
	}
	if opts.width > 0 {
		def.Chart.Width = opts.width
	}
	if opts.height > 0 {
		def.Chart.Height = opts.height
	}
	if opts.zoomed {
		def.Chart.IsZoomed = true
	}
	if opts.animated {
		def.Chart.Animated = true
	}

	po := pipeline.Options{
		Definition: def,
		Hover:      opts.hover,
		Formats:    opts.formats,
		Style:      opts.style,
		Scale:      opts.scale,
	}
	if opts.hasX {
		x := opts.pointerX
		po.PointerX = &x
	}
	return po, nil
}

func runRender(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	po, err := pipelineOptions(input, opts)
	if err != nil {
		return err
	}
	var spin *spinner
	if !opts.watch && opts.output != "-" {
		spin = newSpinner(ctx, os.Stderr, "Rendering "+filepath.Base(input))
		spin.Start()
	}
	result, err := runner.Execute(ctx, po)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	for _, format := range po.Formats {
		if opts.output == "-" {
			if _, err := os.Stdout.Write(result.Artifacts[format]); err != nil {
				return err
			}
			continue
		}
		path := outputPath(opts.output, input, format, len(po.Formats))
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	if opts.output != "-" {
		printStats(result.Stats.Points, result.Stats.Series, result.CacheInfo.RenderHit)
	}
	prog.done("Rendered " + filepath.Base(input))
	return nil
}

// outputPath derives the file written for format. A single format uses
// output verbatim; several formats share output (minus any format
// extension) as base path.
func outputPath(output, input, format string, n int) string {
	if output != "" && n == 1 {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
