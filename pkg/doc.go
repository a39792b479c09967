// Package pkg provides the core libraries for antcolor graph coloring.
//
// # Overview
//
// antcolor finds small proper vertex colorings of undirected graphs with the
// Ant System metaheuristic: in every round a colony of ants builds complete
// colorings one color class at a time, guided by a pheromone trail that
// rewards the sequences found in cheap colorings.
//
// # Architecture
//
// The typical data flow:
//
//	adjacency list / JSON graph / random generator
//	         ↓
//	    [graph] package (validated undirected graph)
//	         ↓
//	    [colony] package (ants + pheromone field)
//	         ↓
//	    [io] package (JSON result document)
//	         ↓
//	    [render/nodelink] + [render] (DOT, SVG, PNG, PDF)
//
// # Quick Start
//
//	g, _ := graph.FromAdjacencyList([][]int{{1, 2}, {0, 2}, {0, 1}})
//	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
//	res, _ := colony.Run(ctx, g, colony.DefaultParams(), rng)
//	fmt.Println(res.Cost, res.Best) // 3 [...]
//
// # Main Packages
//
// [graph] - Immutable undirected graphs built from adjacency lists, edge
// lists or matrices, plus the random G(n, p) generator.
//
// [colony] - The Ant System: parameters, the per-ant construction state
// machine, the symmetric pheromone field, and the round loop.
//
// [io] - Plain-text adjacency lists and the JSON result document.
//
// [render/nodelink] - Colored node-link diagrams through Graphviz.
//
// [render] - SVG to PDF/PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - Load → color → render with result and artifact caching, used
// by both the CLI and the HTTP API.
//
// [cache] - File, Redis and null cache backends with key derivation.
//
// [config] - TOML/YAML configuration files.
//
// [api] - HTTP API.
//
// [observability] and [metrics] - Hook registry and its Prometheus
// implementation.
//
// [errors] - Error codes shared by the CLI and the API.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/colony/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/graph
// [colony]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/colony
// [io]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/config
// [api]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/antcolor/pkg/errors
package pkg
