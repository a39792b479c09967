package pipeline

import (
	"math/rand/v2"
	"os"

	"github.com/matzehuels/antcolor/pkg/errors"
	"github.com/matzehuels/antcolor/pkg/graph"
	pkgio "github.com/matzehuels/antcolor/pkg/io"
)

// LoadGraph reads a graph file. Files ending in .json hold a JSON graph;
// anything else is an adjacency list. symmetrize accepts adjacency lists
// that name an edge from one side only.
func LoadGraph(path string, symmetrize bool) (*graph.Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	var (
		g   *graph.Graph
		err error
	)
	if errors.FormatFromPath(path) == FormatJSON {
		g, err = loadJSON(path)
	} else {
		var opts []graph.Option
		if symmetrize {
			opts = append(opts, graph.WithSymmetrize())
		}
		g, err = pkgio.ImportAdjacencyList(path, opts...)
	}
	if err != nil {
		return nil, Classify(err, "load %s", path)
	}
	if err := errors.ValidateVertexCount(g.N()); err != nil {
		return nil, err
	}
	return g, nil
}

func loadJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pkgio.ReadGraphJSON(f)
}

// GenerateGraph builds a random G(n, p) graph from seed.
func GenerateGraph(n int, density float64, seed uint64) (*graph.Graph, error) {
	if err := errors.ValidateVertexCount(n); err != nil {
		return nil, err
	}
	if err := errors.ValidateDensity(density); err != nil {
		return nil, err
	}
	return graph.Random(n, density, newRNG(seed)), nil
}

// SaveGraph writes g as an adjacency list, or as JSON when path ends in .json.
func SaveGraph(g *graph.Graph, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	var err error
	if errors.FormatFromPath(path) == FormatJSON {
		err = saveJSON(g, path)
	} else {
		err = pkgio.ExportAdjacencyList(g, path)
	}
	return Classify(err, "save %s", path)
}

func saveJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pkgio.WriteGraphJSON(g, f)
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
