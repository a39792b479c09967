package graph_test

import (
	"fmt"

	"github.com/matzehuels/antcolor/pkg/graph"
)

func ExampleFromAdjacencyList() {
	// Path 0 - 1 - 2
	g, err := graph.FromAdjacencyList([][]int{{1}, {0, 2}, {1}})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Vertices:", g.N())
	fmt.Println("Edges:", g.Edges())
	fmt.Println("Degree of 1:", g.Degree(1))
	// Output:
	// Vertices: 3
	// Edges: [{0 1} {1 2}]
	// Degree of 1: 2
}

func ExampleWithSymmetrize() {
	// Directed lists as written by a generator: only 0 lists 2.
	g, _ := graph.FromAdjacencyList([][]int{{2}, {}, {}}, graph.WithSymmetrize())

	fmt.Println("2 adjacent to 0:", g.Adjacent(2, 0))
	// Output:
	// 2 adjacent to 0: true
}
