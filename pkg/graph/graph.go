package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfLoop is returned when a vertex lists itself as a neighbor.
	ErrSelfLoop = errors.New("self-loop")

	// ErrAsymmetric is returned when i lists j as a neighbor but j does not
	// list i. Use [WithSymmetrize] to accept directed input.
	ErrAsymmetric = errors.New("adjacency is not symmetric")

	// ErrVertexOutOfRange is returned when a neighbor id is outside 0..n-1.
	ErrVertexOutOfRange = errors.New("vertex out of range")
)

// Edge is an undirected edge between two distinct vertices.
type Edge struct {
	U, V int
}

// Graph is an immutable, symmetric and irreflexive adjacency relation over
// the vertices 0..N()-1.
//
// The zero value is the empty graph. Graph is safe for concurrent use.
type Graph struct {
	adj       [][]bool
	neighbors [][]int
	edges     int
}

// Option configures graph construction.
type Option func(*buildOptions)

type buildOptions struct {
	symmetrize bool
}

// WithSymmetrize mirrors every listed edge (i→j also adds j→i) and silently
// drops self-loops instead of rejecting them.
func WithSymmetrize() Option {
	return func(o *buildOptions) { o.symmetrize = true }
}

// FromAdjacencyList builds a graph from one neighbor list per vertex.
// The number of vertices is len(lists). Duplicate entries are tolerated.
func FromAdjacencyList(lists [][]int, opts ...Option) (*Graph, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	n := len(lists)
	adj := newMatrix(n)
	for i, list := range lists {
		for _, j := range list {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("vertex %d lists %d: %w", i, j, ErrVertexOutOfRange)
			}
			if i == j {
				if o.symmetrize {
					continue
				}
				return nil, fmt.Errorf("vertex %d: %w", i, ErrSelfLoop)
			}
			adj[i][j] = true
			if o.symmetrize {
				adj[j][i] = true
			}
		}
	}
	return fromMatrix(adj)
}

// FromEdges builds a graph with n vertices and the given undirected edges.
// Repeated edges are tolerated. A negative n is rejected with
// [ErrVertexOutOfRange].
func FromEdges(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("vertex count %d: %w", n, ErrVertexOutOfRange)
	}
	adj := newMatrix(n)
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, ErrVertexOutOfRange)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("vertex %d: %w", e.U, ErrSelfLoop)
		}
		adj[e.U][e.V] = true
		adj[e.V][e.U] = true
	}
	return fromMatrix(adj)
}

// FromMatrix builds a graph from a square boolean adjacency matrix.
// The matrix is copied; later changes to m do not affect the graph.
func FromMatrix(m [][]bool) (*Graph, error) {
	n := len(m)
	adj := newMatrix(n)
	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), n, ErrVertexOutOfRange)
		}
		copy(adj[i], row)
	}
	return fromMatrix(adj)
}

// fromMatrix validates adj and takes ownership of it.
func fromMatrix(adj [][]bool) (*Graph, error) {
	n := len(adj)
	g := &Graph{adj: adj, neighbors: make([][]int, n)}
	for i := 0; i < n; i++ {
		if adj[i][i] {
			return nil, fmt.Errorf("vertex %d: %w", i, ErrSelfLoop)
		}
		for j := 0; j < n; j++ {
			if !adj[i][j] {
				continue
			}
			if !adj[j][i] {
				return nil, fmt.Errorf("edge %d-%d: %w", i, j, ErrAsymmetric)
			}
			g.neighbors[i] = append(g.neighbors[i], j)
			if i < j {
				g.edges++
			}
		}
	}
	return g, nil
}

func newMatrix(n int) [][]bool {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	return adj
}

// N returns the number of vertices.
func (g *Graph) N() int { return len(g.adj) }

// Adjacent reports whether i and j share an edge.
// Out-of-range ids are never adjacent.
func (g *Graph) Adjacent(i, j int) bool {
	if i < 0 || j < 0 || i >= len(g.adj) || j >= len(g.adj) {
		return false
	}
	return g.adj[i][j]
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.neighbors[v]) }

// Neighbors returns the neighbors of v in ascending order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(v int) []int { return g.neighbors[v] }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Edges returns every undirected edge once, with U < V, ordered by U then V.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u, ns := range g.neighbors {
		for _, v := range ns {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	return out
}

// AdjacencyList returns a fresh copy of the neighbor lists, suitable for
// serialization with [FromAdjacencyList].
func (g *Graph) AdjacencyList() [][]int {
	out := make([][]int, len(g.neighbors))
	for i, ns := range g.neighbors {
		out[i] = append([]int{}, ns...)
	}
	return out
}
