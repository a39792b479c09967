package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/config"
	"github.com/matzehuels/antcolor/pkg/graph"
	"github.com/matzehuels/antcolor/pkg/pipeline"
)

const (
	defaultGraphFile = "graph.txt" // file offered by the interactive prompt
	defaultVertices  = 15          // generated graph size
	defaultDensity   = 0.3         // edge probability of generated graphs
)

// colorOpts holds the command-line flags for the color command.
type colorOpts struct {
	config      string  // TOML or YAML config file
	generate    int     // generate a random graph with this many vertices
	density     float64 // edge probability for --generate
	save        string  // where to write a generated graph
	output      string  // output file (or base path for multiple formats)
	formats     string  // comma-separated output formats
	seed        uint64  // random seed, applied only when set
	symmetrize  bool    // accept one-sided adjacency lists
	detailed    bool    // label vertices with their color index
	title       string  // diagram title
	scale       float64 // PNG scale factor
	interactive bool    // ask whether to load or generate
	refresh     bool    // ignore cached results
	params      colony.Params
	cache       cacheFlags
}

// colorCommand creates the color command, the main entry point: load or
// generate a graph, run the colony, print and optionally render the result.
func (c *CLI) colorCommand() *cobra.Command {
	opts := colorOpts{
		density:    defaultDensity,
		symmetrize: true,
		scale:      pipeline.DefaultScale,
		params:     colony.DefaultParams(),
	}

	cmd := &cobra.Command{
		Use:   "color [graph-file]",
		Short: "Color a graph with the ant colony",
		Long: `Color a graph with the ant colony.

The graph file is an adjacency list: line i holds the neighbors of vertex i,
separated by spaces. Files ending in .json hold a graph in JSON form. Instead
of a file, --generate N builds a random graph with N vertices.

The best coloring found is printed as a table. With -o or -f the result is
also rendered (svg, png, pdf, dot) or saved as a JSON document that the
'render' command accepts.

Seeded runs (--seed or a seed in the config file) are cached locally, so
repeating a run returns the stored coloring instantly.

Examples:
  antcolor color graph.txt
  antcolor color --generate 50 --density 0.2 --seed 7 -o coloring.svg
  antcolor color graph.txt -f svg,json -o out/coloring
  antcolor color --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runColor(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "config file (.toml, .yaml, .yml)")
	cmd.Flags().IntVarP(&opts.generate, "generate", "g", 0, "generate a random graph with N vertices")
	cmd.Flags().Float64Var(&opts.density, "density", opts.density, "edge probability for generated graphs")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the generated graph to this file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, png, pdf, dot, json (comma-separated)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed; makes the run reproducible and cacheable")
	cmd.Flags().BoolVar(&opts.symmetrize, "symmetrize", opts.symmetrize, "accept adjacency lists that list an edge from one side")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label vertices with their color")
	cmd.Flags().StringVar(&opts.title, "title", "", "diagram title")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "ask whether to load a saved graph or generate one")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	registerParamFlags(cmd, &opts.params)
	opts.cache.register(cmd)

	return cmd
}

// registerParamFlags binds the colony parameters to flags.
func registerParamFlags(cmd *cobra.Command, p *colony.Params) {
	cmd.Flags().IntVar(&p.NumAnts, "ants", p.NumAnts, "ants per round")
	cmd.Flags().IntVar(&p.NumIterations, "iterations", p.NumIterations, "number of rounds")
	cmd.Flags().Float64Var(&p.Rho, "rho", p.Rho, "evaporation rate in (0, 1)")
	cmd.Flags().Float64Var(&p.Tau0, "tau0", p.Tau0, "initial trail strength")
	cmd.Flags().Float64VarP(&p.HeuristicWeight, "heuristic-weight", "w", p.HeuristicWeight, "exponent of the 1/degree heuristic")
	cmd.Flags().IntVar(&p.Workers, "workers", p.Workers, "ants constructed concurrently")
	cmd.Flags().IntVar(&p.ReportEvery, "report-every", p.ReportEvery, "log progress every N rounds (0 disables)")
}

// mergeParamFlags copies parameters set on the command line over dst.
func mergeParamFlags(cmd *cobra.Command, src colony.Params, dst *colony.Params) {
	set := map[string]func(){
		"ants":             func() { dst.NumAnts = src.NumAnts },
		"iterations":       func() { dst.NumIterations = src.NumIterations },
		"rho":              func() { dst.Rho = src.Rho },
		"tau0":             func() { dst.Tau0 = src.Tau0 },
		"heuristic-weight": func() { dst.HeuristicWeight = src.HeuristicWeight },
		"workers":          func() { dst.Workers = src.Workers },
		"report-every":     func() { dst.ReportEvery = src.ReportEvery },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

// resolveConfig loads the config file and lets explicitly set flags win.
func (o *colorOpts) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.config)
	if err != nil {
		return cfg, err
	}
	mergeParamFlags(cmd, o.params, &cfg.Colony)

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed := o.seed
		cfg.Seed = &seed
	}
	if flags.Changed("symmetrize") {
		cfg.Symmetrize = o.symmetrize
	}
	if flags.Changed("detailed") {
		cfg.Output.Detailed = o.detailed
	}
	if flags.Changed("scale") || cfg.Output.Scale == 0 {
		cfg.Output.Scale = o.scale
	}
	cfg.Cache = o.cache.merge(cmd, cfg.Cache)

	if err := cfg.Validate(); err != nil {
		return cfg, pipeline.Classify(err, "invalid settings")
	}
	return cfg, nil
}

// outputFormats returns the formats to render. Without -f the format
// follows the -o extension, falling back to SVG.
func (o *colorOpts) outputFormats() ([]string, error) {
	formats := parseFormats(o.formats)
	if len(formats) == 0 && o.output != "" {
		formats = []string{formatForPath(o.output)}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return nil, pipeline.Classify(err, "invalid --format")
	}
	return formats, nil
}

func (c *CLI) runColor(cmd *cobra.Command, args []string, opts *colorOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := opts.resolveConfig(cmd)
	if err != nil {
		return err
	}
	formats, err := opts.outputFormats()
	if err != nil {
		return err
	}

	g, input, err := c.loadSource(ctx, args, opts, cfg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg.Cache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Coloring...")
	reporter := newColonyReporter(logger, spinner)
	pipeOpts := pipeline.Options{
		Params:   cfg.Colony,
		Seed:     cfg.Seed,
		Refresh:  opts.refresh,
		Formats:  formats,
		Detailed: cfg.Output.Detailed,
		Title:    opts.title,
		Scale:    cfg.Output.Scale,
		Logger:   logger,
		Progress: reporter.onProgress,
	}

	prog := newProgress(logger)
	spinner.Start()
	doc, cacheHit, err := runner.ColorWithCacheInfo(ctx, g, pipeOpts)
	if err != nil {
		spinner.StopWithError("Coloring failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Colored %d vertices", g.N()))

	printSuccess("Best coloring uses %s colors", StyleNumber.Render(strconv.Itoa(doc.Colors)))
	printStats(g.N(), g.EdgeCount(), doc.Colors, cacheHit)
	printColoring(doc.Solution())
	if doc.FoundAt >= 0 {
		printKeyValue("Found in", fmt.Sprintf("round %d of %d", doc.FoundAt+1, doc.Iterations))
	}
	if doc.Seed != nil {
		printKeyValue("Seed", strconv.FormatUint(*doc.Seed, 10))
	}

	if len(formats) == 0 {
		return nil
	}

	spinner = newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, doc, g, pipeOpts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printNewline()
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		input:     input,
		output:    opts.output,
		cacheHit:  renderHit,
	})
}

// loadSource returns the graph to color and the path it came from (empty
// for generated graphs that were not saved).
func (c *CLI) loadSource(ctx context.Context, args []string, opts *colorOpts, cfg config.Config) (*graph.Graph, string, error) {
	logger := loggerFromContext(ctx)

	if opts.interactive {
		path := defaultGraphFile
		if len(args) == 1 {
			path = args[0]
		}
		vertices := defaultVertices
		if opts.generate > 0 {
			vertices = opts.generate
		}
		choice, err := promptSource(os.Stderr, path, vertices)
		if err != nil {
			return nil, "", err
		}
		if choice.Load {
			if fileExists(choice.Path) {
				return loadGraph(choice.Path, cfg.Symmetrize, logger)
			}
			printWarning("No saved graph at %s; generating a new one", choice.Path)
			choice.Vertices = vertices
		}
		return generateAndSave(choice.Vertices, opts.density, cfg.Seed, choice.Path, logger)
	}

	switch {
	case len(args) == 1 && opts.generate > 0:
		return nil, "", fmt.Errorf("give either a graph file or --generate, not both")
	case len(args) == 1:
		return loadGraph(args[0], cfg.Symmetrize, logger)
	case opts.generate > 0:
		return generateAndSave(opts.generate, opts.density, cfg.Seed, opts.save, logger)
	}
	return nil, "", fmt.Errorf("no graph: give a graph file, --generate N, or --interactive")
}

func loadGraph(path string, symmetrize bool, logger interface{ Infof(string, ...any) }) (*graph.Graph, string, error) {
	g, err := pipeline.LoadGraph(path, symmetrize)
	if err != nil {
		return nil, "", err
	}
	logger.Infof("Loaded %s: %d vertices, %d edges", path, g.N(), g.EdgeCount())
	return g, path, nil
}

// generateAndSave builds a random graph and writes it to save when set.
// The graph uses the run seed when there is one, so a seeded invocation
// reproduces both the graph and its coloring.
func generateAndSave(n int, density float64, seed *uint64, save string, logger interface{ Infof(string, ...any) }) (*graph.Graph, string, error) {
	s := rand.Uint64()
	if seed != nil {
		s = *seed
	}
	g, err := pipeline.GenerateGraph(n, density, s)
	if err != nil {
		return nil, "", err
	}
	logger.Infof("Generated %d vertices, %d edges (density %.2f)", g.N(), g.EdgeCount(), density)

	if save == "" {
		return g, "", nil
	}
	if err := pipeline.SaveGraph(g, save); err != nil {
		return nil, "", err
	}
	logger.Infof("Saved graph to %s", save)
	return g, save, nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !stderrors.Is(err, fs.ErrNotExist)
}
