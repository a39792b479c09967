// Package graph provides the immutable undirected graph consumed by the
// coloring colony.
//
// # Overview
//
// A [Graph] is a fixed adjacency relation over the vertex ids 0..n-1. It is
// symmetric (Adjacent(i, j) == Adjacent(j, i)) and irreflexive (no vertex is
// adjacent to itself). Once constructed, a Graph is never modified, so it can
// be shared freely between goroutines.
//
// # Construction
//
// Graphs are built from one of three input shapes:
//
//   - [FromAdjacencyList]: one neighbor list per vertex (the on-disk format)
//   - [FromEdges]: an undirected edge list over n vertices
//   - [FromMatrix]: a boolean adjacency matrix
//
// Malformed input is rejected at construction time with [ErrSelfLoop],
// [ErrAsymmetric] or [ErrVertexOutOfRange]. Adjacency lists produced by a
// directed generator can be accepted with [WithSymmetrize], which mirrors
// every listed edge and drops self-loops instead of failing:
//
//	g, err := graph.FromAdjacencyList(lists, graph.WithSymmetrize())
//
// # Random Graphs
//
// [Random] draws an Erdős–Rényi G(n, p) graph from a caller-supplied
// random source, so generated instances are reproducible from a seed.
//
// # Degree
//
// [Graph.Degree] returns the static neighbor count of a vertex. The colony
// uses it as its saturation heuristic: vertices with many neighbors are
// harder to color and are preferred early.
package graph
