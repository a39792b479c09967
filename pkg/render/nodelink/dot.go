package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/graph"
	"github.com/matzehuels/antcolor/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the color index below each vertex id.
	Detailed bool

	// Title is drawn above the diagram when non-empty.
	Title string
}

// palette holds fill colors for the first color classes.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#808080",
}

// Fill returns the fill color used for color class c.
// Classes past the palette get an HSV color with a distinct hue.
func Fill(c int) string {
	if c < 0 {
		return "white"
	}
	if c < len(palette) {
		return palette[c]
	}
	// Golden-ratio hue stepping keeps consecutive classes far apart.
	h := float64(c) * 0.618033988749895
	h -= float64(int(h))
	return fmt.Sprintf("%.3f 0.650 0.950", h)
}

// ToDOT converts a graph and its coloring to Graphviz DOT. coloring may be
// nil or shorter than g.N(); missing entries render as uncolored.
func ToDOT(g *graph.Graph, coloring colony.Solution, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=28;\n", opts.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fontsize=18, width=0.5, fixedsize=false];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for v := 0; v < g.N(); v++ {
		c := colony.Unassigned
		if v < len(coloring) {
			c = coloring[v]
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(fmtAttrs(v, c, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v, c int, detailed bool) string {
	id := strconv.Itoa(v)
	if !detailed || c < 0 {
		return id
	}
	return fmt.Sprintf("%s\nc%d", id, c)
}

func fmtAttrs(v, c int, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(v, c, detailed)),
		fmt.Sprintf("fillcolor=%q", Fill(c)),
	}
	if c < 0 {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return RenderSVGContext(context.Background(), dot)
}

// RenderSVGContext is [RenderSVG] with an explicit context.
func RenderSVGContext(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing scales from the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
