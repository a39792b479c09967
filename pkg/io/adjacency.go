package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/antcolor/pkg/graph"
)

// ErrSyntax is wrapped by every parse error of this package.
var ErrSyntax = errors.New("syntax error")

// ReadAdjacencyList parses the plain-text adjacency format from r.
// It returns the raw neighbor lists without validating them.
func ReadAdjacencyList(r io.Reader) ([][]int, error) {
	var lists [][]int
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		neighbors := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid vertex %q", ErrSyntax, line, f)
			}
			neighbors = append(neighbors, v)
		}
		lists = append(lists, neighbors)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return lists, nil
}

// ImportAdjacencyList reads an adjacency-list file and builds a graph.
// Construction errors (self-loops, asymmetry, bad ids) are returned wrapped
// with the file path.
func ImportAdjacencyList(path string, opts ...graph.Option) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lists, err := ReadAdjacencyList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := graph.FromAdjacencyList(lists, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteAdjacencyList writes g in the plain-text adjacency format.
// Both directions of every edge are listed.
func WriteAdjacencyList(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for v := 0; v < g.N(); v++ {
		for k, u := range g.Neighbors(v) {
			if k > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(u))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ExportAdjacencyList writes g to a file at path.
func ExportAdjacencyList(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteAdjacencyList(g, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
