package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/graph"
)

func path3(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(path3(t), colony.Solution{0, 1, 0}, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing undirected graph declaration")
	}
	for _, want := range []string{"0 -- 1;", "1 -- 2;", palette[0], palette[1]} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() emitted a directed edge")
	}
}

func TestToDOT_Title(t *testing.T) {
	dot := ToDOT(path3(t), nil, Options{Title: "2 colors"})
	if !strings.Contains(dot, `label="2 colors"`) {
		t.Error("ToDOT() missing title")
	}
}

func TestToDOT_Uncolored(t *testing.T) {
	dot := ToDOT(path3(t), colony.Solution{0}, Options{})
	if strings.Count(dot, "dashed") != 2 {
		t.Errorf("expected two dashed vertices:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		v, c     int
		detailed bool
		want     string
	}{
		{3, 1, false, "3"},
		{3, 1, true, "3\nc1"},
		{3, -1, true, "3"},
	}
	for _, tt := range tests {
		if got := fmtLabel(tt.v, tt.c, tt.detailed); got != tt.want {
			t.Errorf("fmtLabel(%d, %d, %v) = %q, want %q", tt.v, tt.c, tt.detailed, got, tt.want)
		}
	}
}

func TestFillDistinct(t *testing.T) {
	seen := make(map[string]int)
	for c := 0; c < 60; c++ {
		f := Fill(c)
		if prev, ok := seen[f]; ok {
			t.Fatalf("Fill(%d) = Fill(%d) = %s", c, prev, f)
		}
		seen[f] = c
	}
	if Fill(-1) != "white" {
		t.Errorf("Fill(-1) = %s", Fill(-1))
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeViewBox([]byte(tt.svg)); string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(path3(t), colony.Solution{0, 1, 0}, Options{Detailed: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(`not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
