// Package io reads and writes graphs and colorings.
//
// # Adjacency Lists
//
// The plain-text format has one line per vertex; line i lists the neighbors
// of vertex i as space-separated integer ids. An empty line is a vertex
// without neighbors:
//
//	1 2
//	0
//	0
//
// Files written by random generators are often directed (i lists j but j
// does not list i). Pass [graph.WithSymmetrize] to [ImportAdjacencyList] to
// accept them:
//
//	g, err := io.ImportAdjacencyList("grafo.txt", graph.WithSymmetrize())
//
// # JSON
//
// Graphs serialize as a vertex count plus an undirected edge list:
//
//	{"vertices": 3, "edges": [[0, 1], [1, 2]]}
//
// A finished run serializes as a [Document]: the graph, the coloring, its
// color count and run metadata. Documents are what the render command and
// the HTTP API consume and produce, and what the result cache stores.
package io
