// Package nodelink renders colored graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph and its coloring to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, coloring, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT is an undirected graph laid out with the neato engine.
// Every vertex is a filled circle whose fill comes from a fixed palette
// indexed by its color class; classes beyond the palette get generated hues,
// so distinct classes never share a fill. Vertices
// without a color (a partial coloring) are drawn dashed and white.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
