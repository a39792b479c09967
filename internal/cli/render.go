package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/config"
	"github.com/matzehuels/antcolor/pkg/errors"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
	"github.com/matzehuels/antcolor/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path (or base path for multiple outputs)
	formats  string  // output formats: svg, png, pdf, dot, json
	detailed bool    // label vertices with their color index
	title    string  // diagram title
	scale    float64 // PNG scale factor
	cache    cacheFlags
}

// renderCommand creates the render command for drawing a saved coloring.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [result.json]",
		Short: "Render a saved coloring to SVG, PNG, PDF or DOT",
		Long: `Render a saved coloring to SVG, PNG, PDF or DOT.

The input is a JSON document written by 'antcolor color -f json'. It holds the
graph and its coloring, so rendering does not rerun the colony. The coloring
is checked against the graph before drawing.

PNG and PDF output needs rsvg-convert (librsvg) on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
				if opts.output != "" {
					formats = []string{formatForPath(opts.output)}
				}
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return pipeline.Classify(err, "invalid --format")
			}
			return c.runRender(cmd, args[0], formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label vertices with their color")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, formats []string, opts *renderOpts) error {
	ctx := cmd.Context()

	doc, err := pkgio.ImportDocument(input)
	if err != nil {
		return pipeline.Classify(err, "load %s", input)
	}

	runner, err := c.newRunner(ctx, opts.cache.merge(cmd, config.Cache{}), nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, nil, pipeline.Options{
		Formats:  formats,
		Detailed: opts.detailed,
		Title:    opts.title,
		Scale:    opts.scale,
		Logger:   loggerFromContext(ctx),
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		input:     input,
		output:    opts.output,
		cacheHit:  cacheHit,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source file, used to derive output names
	output    string // -o value
	cacheHit  bool
}

// writeArtifacts writes each rendered format and prints the paths.
// A single format with -o goes exactly there; otherwise files are named
// <base>.<format>, where base is -o without extension, the input file
// without extension, or "coloring". The input file is never overwritten.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if p.input != "" && filepath.Clean(path) == filepath.Clean(p.input) {
			path = base + ".colored." + format
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	if p.cacheHit {
		printDetail("served from cache")
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath returns the output path without its format extension.
func basePath(output, input string) string {
	switch {
	case output != "":
		if pipeline.ValidFormats[errors.FormatFromPath(output)] {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
		return output
	case input != "":
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return "coloring"
}

// formatForPath maps a file extension to an output format, defaulting to SVG.
func formatForPath(path string) string {
	if f := errors.FormatFromPath(path); pipeline.ValidFormats[f] {
		return f
	}
	return pipeline.FormatSVG
}
