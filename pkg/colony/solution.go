package colony

import "github.com/matzehuels/antcolor/pkg/graph"

// Unassigned marks a vertex that has not been colored yet.
const Unassigned = -1

// Solution maps each vertex to its color. Colors are dense, starting at 0 in
// order of first use.
type Solution []int

// Cost returns the number of colors used: the largest color plus one.
// The empty solution costs 0.
func (s Solution) Cost() int {
	best := -1
	for _, c := range s {
		best = max(best, c)
	}
	return best + 1
}

// Complete reports whether every vertex has a color. Any negative entry,
// not only [Unassigned], counts as uncolored.
func (s Solution) Complete() bool {
	for _, c := range s {
		if c < 0 {
			return false
		}
	}
	return true
}

// Conflicts returns the edges of g whose endpoints share a color.
func (s Solution) Conflicts(g *graph.Graph) []graph.Edge {
	var out []graph.Edge
	for _, e := range g.Edges() {
		if s[e.U] >= 0 && s[e.U] == s[e.V] {
			out = append(out, e)
		}
	}
	return out
}

// Valid reports whether s is a complete, conflict-free coloring of g.
func (s Solution) Valid(g *graph.Graph) bool {
	return len(s) == g.N() && s.Complete() && len(s.Conflicts(g)) == 0
}

// Classes groups vertices by color; Classes()[c] lists the vertices colored c.
// Uncolored vertices are left out.
func (s Solution) Classes() [][]int {
	out := make([][]int, s.Cost())
	for v, c := range s {
		if c >= 0 {
			out[c] = append(out[c], v)
		}
	}
	return out
}

// Clone returns an independent copy of s.
func (s Solution) Clone() Solution {
	if s == nil {
		return nil
	}
	return append(Solution{}, s...)
}
