package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
	"github.com/matzehuels/antcolor/pkg/observability"
	"github.com/matzehuels/antcolor/pkg/render"
	"github.com/matzehuels/antcolor/pkg/render/nodelink"
)

// RenderFormat produces one artifact for doc without touching the cache.
func RenderFormat(ctx context.Context, g *graph.Graph, doc pkgio.Document, format string, opts Options) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := renderFormat(ctx, g, doc, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func renderFormat(ctx context.Context, g *graph.Graph, doc pkgio.Document, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return pkgio.MarshalDocument(doc)
	}

	title := opts.Title
	if title == "" && opts.Detailed {
		title = fmt.Sprintf("%d colors", doc.Colors)
	}
	dot := nodelink.ToDOT(g, doc.Solution(), nodelink.Options{Detailed: opts.Detailed, Title: title})
	if format == FormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVGContext(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return render.ToPDFContext(ctx, svg)
	case FormatPNG:
		return render.ToPNGContext(ctx, svg, opts.Scale)
	}
	return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, format)
}
