package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcolor/pkg/cache"
	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/errors"
	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
)

func testOptions(seed *uint64) Options {
	p := colony.DefaultParams()
	p.NumAnts = 4
	p.NumIterations = 10
	p.ReportEvery = 0
	return Options{Params: p, Seed: seed}
}

func seedPtr(s uint64) *uint64 { return &s }

func cycle5(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.FromEdges(5, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 0}})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(&bytes.Buffer{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestExecute(t *testing.T) {
	g := cycle5(t)
	opts := testOptions(seedPtr(7))
	opts.Formats = []string{FormatDOT, FormatJSON}

	res, err := quietRunner(nil).Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	doc := res.Document
	if doc.Colors != 3 {
		t.Errorf("odd cycle colored with %d colors, want 3", doc.Colors)
	}
	if !doc.Solution().Valid(g) {
		t.Errorf("invalid coloring %v", doc.Coloring)
	}
	if doc.RunID == "" || doc.Seed == nil || *doc.Seed != 7 || doc.Params == nil {
		t.Errorf("missing run metadata: %+v", doc)
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "graph G") {
		t.Error("dot artifact missing graph header")
	}
	var back pkgio.Document
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &back); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if back.RunID != doc.RunID {
		t.Errorf("json artifact run id = %q, want %q", back.RunID, doc.RunID)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	g := graph.Random(25, 0.3, newRNG(3))
	r := quietRunner(nil)
	a, err := r.Color(context.Background(), g, testOptions(seedPtr(11)))
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions(seedPtr(11))
	opts.Params.Workers = 4
	b, err := r.Color(context.Background(), g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Colors != b.Colors || !equalInts(a.Coloring, b.Coloring) {
		t.Errorf("same seed gave %v and %v", a.Coloring, b.Coloring)
	}
}

func TestColorCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	g := cycle5(t)

	first, hit, err := r.ColorWithCacheInfo(ctx, g, testOptions(seedPtr(1)))
	if err != nil || hit {
		t.Fatalf("first run: hit=%v err=%v", hit, err)
	}
	second, hit, err := r.ColorWithCacheInfo(ctx, g, testOptions(seedPtr(1)))
	if err != nil || !hit {
		t.Fatalf("second run: hit=%v err=%v", hit, err)
	}
	if second.RunID != first.RunID {
		t.Error("cache hit should return the stored document")
	}

	refresh := testOptions(seedPtr(1))
	refresh.Refresh = true
	if _, hit, _ := r.ColorWithCacheInfo(ctx, g, refresh); hit {
		t.Error("refresh should bypass the cache")
	}

	if _, hit, _ := r.ColorWithCacheInfo(ctx, g, testOptions(nil)); hit {
		t.Error("unseeded run should not hit the cache")
	}
	if _, hit, _ := r.ColorWithCacheInfo(ctx, g, testOptions(nil)); hit {
		t.Error("unseeded run should not be stored")
	}
}

func TestRenderFromDocument(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	r := quietRunner(fc)
	g := cycle5(t)

	doc, err := r.Color(ctx, g, testOptions(seedPtr(2)))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Formats: []string{FormatSVG}}
	arts, hit, err := r.RenderWithCacheInfo(ctx, doc, nil, opts)
	if err != nil || hit {
		t.Fatalf("render: hit=%v err=%v", hit, err)
	}
	if !bytes.Contains(arts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing <svg>")
	}
	if _, hit, _ := r.RenderWithCacheInfo(ctx, doc, nil, opts); !hit {
		t.Error("second render should be cached")
	}
}

func TestRenderRejectsBadDocument(t *testing.T) {
	doc := pkgio.Document{
		Graph:    pkgio.GraphJSON{Vertices: 2, Edges: [][2]int{{0, 1}}},
		Coloring: []int{0, 0},
	}
	_, err := quietRunner(nil).Render(context.Background(), doc, nil, Options{Formats: []string{FormatDOT}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteErrors(t *testing.T) {
	g := cycle5(t)
	ctx := context.Background()

	bad := testOptions(nil)
	bad.Params.Rho = 2
	if _, err := quietRunner(nil).Execute(ctx, g, bad); !errors.Is(err, errors.ErrCodeInvalidParams) {
		t.Errorf("bad rho: err = %v, want INVALID_PARAMS", err)
	}

	badFmt := testOptions(nil)
	badFmt.Formats = []string{"gif"}
	if _, err := quietRunner(nil).Execute(ctx, g, badFmt); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v, want INVALID_FORMAT", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := quietRunner(nil).Execute(canceled, g, testOptions(nil)); !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("canceled: err = %v, want CANCELED", err)
	}
}

func TestLoadAndSaveGraph(t *testing.T) {
	dir := t.TempDir()
	g := cycle5(t)

	for _, name := range []string{"g.txt", "g.json"} {
		path := filepath.Join(dir, name)
		if err := SaveGraph(g, path); err != nil {
			t.Fatalf("SaveGraph(%s): %v", name, err)
		}
		back, err := LoadGraph(path, false)
		if err != nil {
			t.Fatalf("LoadGraph(%s): %v", name, err)
		}
		if back.EdgeCount() != g.EdgeCount() {
			t.Errorf("%s: %d edges, want %d", name, back.EdgeCount(), g.EdgeCount())
		}
	}
}

func TestLoadGraphErrors(t *testing.T) {
	dir := t.TempDir()
	selfLoop := filepath.Join(dir, "loop.txt")
	_ = os.WriteFile(selfLoop, []byte("0\n"), 0o644)
	garbage := filepath.Join(dir, "garbage.txt")
	_ = os.WriteFile(garbage, []byte("a b\n"), 0o644)

	tests := []struct {
		name string
		path string
		want errors.Code
	}{
		{"missing", filepath.Join(dir, "none.txt"), errors.ErrCodeFileNotFound},
		{"self loop", selfLoop, errors.ErrCodeInvalidGraph},
		{"garbage", garbage, errors.ErrCodeInvalidInput},
		{"empty path", "", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGraph(tt.path, false)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestGenerateGraph(t *testing.T) {
	a, err := GenerateGraph(30, 0.2, 5)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateGraph(30, 0.2, 5)
	if a.EdgeCount() != b.EdgeCount() {
		t.Error("same seed should generate the same graph")
	}
	if _, err := GenerateGraph(-1, 0.2, 5); err == nil {
		t.Error("negative n should fail")
	}
	if _, err := GenerateGraph(10, 1.5, 5); err == nil {
		t.Error("density > 1 should fail")
	}
}

func TestClassify(t *testing.T) {
	if Classify(nil, "x") != nil {
		t.Error("Classify(nil) should be nil")
	}
	coded := errors.New(errors.ErrCodeNotFound, "gone")
	if Classify(coded, "x") != error(coded) {
		t.Error("coded errors pass through unchanged")
	}
	if got := errors.GetCode(Classify(graph.ErrAsymmetric, "x")); got != errors.ErrCodeInvalidGraph {
		t.Errorf("asymmetric: %q", got)
	}
	if got := errors.GetCode(Classify(os.ErrPermission, "x")); got != errors.ErrCodeInternal {
		t.Errorf("unknown: %q", got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
