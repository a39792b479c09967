package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/graph"
)

func TestReadAdjacencyList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][]int
		wantErr bool
	}{
		{"triangle", "1 2\n0 2\n0 1\n", [][]int{{1, 2}, {0, 2}, {0, 1}}, false},
		{"isolated vertex", "1\n0\n\n", [][]int{{1}, {0}, {}}, false},
		{"trailing spaces", "1 \n0 \n", [][]int{{1}, {0}}, false},
		{"no final newline", "1\n0", [][]int{{1}, {0}}, false},
		{"empty", "", nil, false},
		{"garbage", "1 x\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAdjacencyList(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjacencyListFileRoundTrip(t *testing.T) {
	g, err := graph.FromEdges(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := ExportAdjacencyList(g, path); err != nil {
		t.Fatalf("ExportAdjacencyList: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1\n0 2\n1 3\n2\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	back, err := ImportAdjacencyList(path)
	if err != nil {
		t.Fatalf("ImportAdjacencyList: %v", err)
	}
	if !reflect.DeepEqual(back.Edges(), g.Edges()) {
		t.Errorf("edges = %v, want %v", back.Edges(), g.Edges())
	}
}

func TestImportAdjacencyListDirected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directed.txt")
	if err := os.WriteFile(path, []byte("1 2\n\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAdjacencyList(path); err == nil {
		t.Error("expected asymmetry error without symmetrize")
	}

	g, err := ImportAdjacencyList(path, graph.WithSymmetrize())
	if err != nil {
		t.Fatalf("ImportAdjacencyList: %v", err)
	}
	if g.EdgeCount() != 2 || !g.Adjacent(2, 0) {
		t.Errorf("symmetrized graph has edges %v", g.Edges())
	}
}

func TestImportAdjacencyListMissing(t *testing.T) {
	_, err := ImportAdjacencyList(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil || !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestGraphJSON(t *testing.T) {
	g, _ := graph.FromEdges(3, []graph.Edge{{U: 2, V: 1}, {U: 0, V: 1}})

	var buf bytes.Buffer
	if err := WriteGraphJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadGraphJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.N() != 3 || !reflect.DeepEqual(back.Edges(), g.Edges()) {
		t.Errorf("round trip lost edges: %v", back.Edges())
	}

	a, _ := MarshalGraph(g)
	h, _ := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	b, _ := MarshalGraph(h)
	if !bytes.Equal(a, b) {
		t.Errorf("equal graphs marshal differently: %s vs %s", a, b)
	}
}

func TestReadGraphJSONInvalid(t *testing.T) {
	for _, in := range []string{
		`{"vertices": 2, "edges": [[0, 0]]}`,
		`{"vertices": 2, "edges": [[0, 5]]}`,
		`not json`,
	} {
		if _, err := ReadGraphJSON(strings.NewReader(in)); err == nil {
			t.Errorf("ReadGraphJSON(%s) succeeded", in)
		}
	}
}

func TestDocument(t *testing.T) {
	g, _ := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	res := &colony.Result{
		Best:       colony.Solution{0, 1, 0},
		Cost:       2,
		FoundAt:    3,
		Iterations: 10,
		History:    []int{3, 3, 3, 2},
		Duration:   1500 * time.Millisecond,
	}
	doc := NewDocument(g, res)
	doc.RunID = "run-1"
	if doc.DurationMS != 1500 || doc.Colors != 2 {
		t.Errorf("doc = %+v", doc)
	}

	path := filepath.Join(t.TempDir(), "result.json")
	if err := ExportDocument(doc, path); err != nil {
		t.Fatal(err)
	}
	back, err := ImportDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, doc) {
		t.Errorf("round trip = %+v, want %+v", back, doc)
	}
	if _, err := back.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDocumentValidate(t *testing.T) {
	base := Document{Graph: GraphJSON{Vertices: 2, Edges: [][2]int{{0, 1}}}}
	tests := []struct {
		name     string
		colors   int
		coloring []int
		wantErr  error
	}{
		{"valid", 2, []int{0, 1}, nil},
		{"conflict", 1, []int{0, 0}, ErrInvalidColoring},
		{"short", 1, []int{0}, ErrInvalidColoring},
		{"unassigned", 0, []int{colony.Unassigned, colony.Unassigned}, ErrInvalidColoring},
		{"negative colors", 0, []int{-4, -9}, ErrInvalidColoring},
		{"colors mismatch", 5, []int{0, 1}, ErrInvalidColoring},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			d.Colors = tt.colors
			d.Coloring = tt.coloring
			if _, err := d.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadGraphJSONNegativeVertices(t *testing.T) {
	_, err := ReadGraphJSON(strings.NewReader(`{"vertices": -3, "edges": []}`))
	if !errors.Is(err, graph.ErrVertexOutOfRange) {
		t.Errorf("err = %v, want ErrVertexOutOfRange", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}
