// Package render converts rendered graph drawings between output formats.
//
// The [nodelink] subpackage draws a colored graph as SVG with Graphviz.
// [ToPDF] and [ToPNG] convert any SVG further using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(g, coloring, nodelink.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/antcolor/pkg/render/nodelink
package render
