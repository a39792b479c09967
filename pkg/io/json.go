package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/graph"
)

// ErrInvalidColoring is returned by [Document.Validate] for colorings that do
// not fit their graph.
var ErrInvalidColoring = errors.New("invalid coloring")

// GraphJSON is the wire form of a graph.
type GraphJSON struct {
	Vertices int      `json:"vertices"`
	Edges    [][2]int `json:"edges"`
}

// Document is the wire form of a finished coloring run.
type Document struct {
	RunID      string         `json:"run_id,omitempty"`
	Graph      GraphJSON      `json:"graph"`
	Colors     int            `json:"colors"`
	Coloring   []int          `json:"coloring"`
	FoundAt    int            `json:"found_at"`
	Iterations int            `json:"iterations"`
	History    []int          `json:"history,omitempty"`
	Params     *colony.Params `json:"params,omitempty"`
	Seed       *uint64        `json:"seed,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// FromGraph converts g to its wire form.
func FromGraph(g *graph.Graph) GraphJSON {
	out := GraphJSON{Vertices: g.N(), Edges: make([][2]int, 0, g.EdgeCount())}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, [2]int{e.U, e.V})
	}
	return out
}

// ToGraph validates the wire form and builds a graph.
func (gj GraphJSON) ToGraph() (*graph.Graph, error) {
	edges := make([]graph.Edge, len(gj.Edges))
	for i, e := range gj.Edges {
		edges[i] = graph.Edge{U: e[0], V: e[1]}
	}
	return graph.FromEdges(gj.Vertices, edges)
}

// MarshalGraph encodes g as compact JSON. Edges are ordered, so equal graphs
// produce equal bytes; the result cache relies on this.
func MarshalGraph(g *graph.Graph) ([]byte, error) {
	return json.Marshal(FromGraph(g))
}

// WriteGraphJSON writes g as indented JSON.
func WriteGraphJSON(g *graph.Graph, w io.Writer) error {
	return encode(w, FromGraph(g))
}

// ReadGraphJSON decodes a graph from r.
func ReadGraphJSON(r io.Reader) (*graph.Graph, error) {
	var gj GraphJSON
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrSyntax, err)
	}
	return gj.ToGraph()
}

// NewDocument builds a document for a finished run on g.
func NewDocument(g *graph.Graph, res *colony.Result) Document {
	return Document{
		Graph:      FromGraph(g),
		Colors:     res.Cost,
		Coloring:   append([]int{}, res.Best...),
		FoundAt:    res.FoundAt,
		Iterations: res.Iterations,
		History:    res.History,
		DurationMS: res.Duration.Milliseconds(),
	}
}

// Solution returns the coloring as a [colony.Solution].
func (d Document) Solution() colony.Solution { return colony.Solution(d.Coloring) }

// Validate checks that the coloring is complete, has no conflicts and uses
// exactly Colors colors.
func (d Document) Validate() (*graph.Graph, error) {
	g, err := d.Graph.ToGraph()
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	if len(d.Coloring) != g.N() {
		return nil, fmt.Errorf("%w: %d entries for %d vertices", ErrInvalidColoring, len(d.Coloring), g.N())
	}
	s := d.Solution()
	if !s.Complete() {
		return nil, fmt.Errorf("%w: uncolored vertices", ErrInvalidColoring)
	}
	if cost := s.Cost(); d.Colors != cost {
		return nil, fmt.Errorf("%w: colors is %d, coloring uses %d", ErrInvalidColoring, d.Colors, cost)
	}
	if conflicts := s.Conflicts(g); len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %d conflicting edges, first %d-%d", ErrInvalidColoring, len(conflicts), conflicts[0].U, conflicts[0].V)
	}
	return g, nil
}

// MarshalDocument encodes d as indented JSON.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes d as indented JSON to w.
func WriteDocument(d Document, w io.Writer) error {
	return encode(w, d)
}

// ReadDocument decodes a document from r without validating it.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("%w: decode: %v", ErrSyntax, err)
	}
	return d, nil
}

// ExportDocument writes d to a JSON file at path.
func ExportDocument(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}

// ImportDocument reads a document from a JSON file at path.
func ImportDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
