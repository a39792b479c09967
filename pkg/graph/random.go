package graph

import "math/rand/v2"

// Random draws an Erdős–Rényi G(n, p) graph: each of the n(n-1)/2 vertex
// pairs becomes an edge independently with probability p.
//
// The same rng state always yields the same graph. p is clamped to [0, 1]
// and a negative n yields the empty graph.
func Random(n int, p float64, rng *rand.Rand) *Graph {
	n = max(n, 0)
	p = max(0, min(p, 1))
	adj := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				adj[i][j] = true
				adj[j][i] = true
			}
		}
	}
	g, _ := fromMatrix(adj) // symmetric and loop-free by construction
	return g
}

// Complete returns the complete graph on n vertices, or the empty graph for
// n < 0.
func Complete(n int) *Graph {
	n = max(n, 0)
	adj := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			adj[i][j] = i != j
		}
	}
	g, _ := fromMatrix(adj)
	return g
}
