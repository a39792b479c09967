// Package pipeline runs the load → color → render pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read an adjacency list or JSON graph, or generate a random one
//  2. Color: run the ant colony, consulting the result cache for seeded runs
//  3. Render: produce artifacts (SVG, PNG, PDF, DOT, JSON) from the result
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	seed := uint64(42)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Params:  colony.DefaultParams(),
//	    Seed:    &seed,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Errors returned by the runner carry [errors.Code] values so callers can
// map them to exit codes or HTTP statuses without inspecting messages.
package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. The JSON form is accepted by the
// HTTP API.
type Options struct {
	Params colony.Params `json:"params"`

	// Seed makes the run reproducible and cacheable. Nil draws a fresh seed,
	// which is still recorded in the result.
	Seed *uint64 `json:"seed,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Title    string   `json:"title,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	Logger   *log.Logger         `json:"-"`
	Progress colony.ProgressFunc `json:"-"`
}

// SetDefaults fills unset render options.
func (o *Options) SetDefaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Validate checks params and formats.
func (o *Options) Validate() error {
	if err := o.Params.Validate(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Cacheable reports whether results of these options may be cached.
func (o *Options) Cacheable() bool { return o.Seed != nil }

// =============================================================================
// Result
// =============================================================================

// Result holds the outputs of a pipeline run.
type Result struct {
	Graph     *graph.Graph
	GraphHash string

	// Document is the serializable coloring.
	Document pkgio.Document

	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline timings.
type Stats struct {
	Vertices   int
	Edges      int
	ColorTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	ResultHit bool
	RenderHit bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("%w: %q (must be one of: %s)", errUnsupportedFormat, format, formatList())
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatList() string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}
