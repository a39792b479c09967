package colony

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/antcolor/pkg/graph"
)

// Tour is the outcome of one ant's construction.
type Tour struct {
	// Solution is the complete, conflict-free coloring.
	Solution Solution
	// Path lists vertices in the order they were colored.
	Path []int
	// Cost is the number of colors used.
	Cost int
}

// antState names the steps of the construction state machine.
type antState int

const (
	stateStart  antState = iota // color a random vertex with color 0
	stateExtend                 // grow the current color class or open a new one
	stateDone                   // every vertex is colored
)

func (s antState) String() string {
	switch s {
	case stateStart:
		return "START"
	case stateExtend:
		return "EXTEND"
	case stateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// ant holds the construction state of a single ant.
type ant struct {
	g         *graph.Graph
	trail     Trail
	heuristic []float64 // (1/degree)^w per vertex
	rng       *rand.Rand

	state    antState
	colors   Solution
	path     []int
	current  int // last colored vertex
	color    int // color class being grown
	assigned int

	// scratch buffers reused across EXTEND steps
	candidates []int
	weights    []float64
}

// Construct builds one complete coloring of g.
//
// The ant reads trail but never modifies it. w is the heuristic weight
// exponent applied to 1/degree. All randomness comes from rng.
func Construct(g *graph.Graph, trail Trail, w float64, rng *rand.Rand) Tour {
	return newAnt(g, trail, heuristicTerms(g, w), rng).run()
}

func newAnt(g *graph.Graph, trail Trail, heuristic []float64, rng *rand.Rand) *ant {
	n := g.N()
	colors := make(Solution, n)
	for i := range colors {
		colors[i] = Unassigned
	}
	return &ant{
		g:          g,
		trail:      trail,
		heuristic:  heuristic,
		rng:        rng,
		state:      stateStart,
		colors:     colors,
		path:       make([]int, 0, n),
		candidates: make([]int, 0, n),
		weights:    make([]float64, 0, n),
	}
}

// heuristicTerms precomputes (1/degree(v))^w. Isolated vertices get 1, the
// largest value the term can take for degree >= 1 and w >= 0.
func heuristicTerms(g *graph.Graph, w float64) []float64 {
	out := make([]float64, g.N())
	for v := range out {
		d := g.Degree(v)
		if d == 0 {
			out[v] = 1
			continue
		}
		out[v] = math.Pow(1/float64(d), w)
	}
	return out
}

// run drives the state machine until DONE.
func (a *ant) run() Tour {
	for a.state != stateDone {
		a.step()
	}
	return Tour{Solution: a.colors, Path: a.path, Cost: a.cost()}
}

// step performs exactly one state transition.
func (a *ant) step() {
	switch a.state {
	case stateStart:
		a.start()
	case stateExtend:
		a.extend()
	}
}

func (a *ant) start() {
	n := a.g.N()
	if n == 0 {
		a.state = stateDone
		return
	}
	a.assign(a.rng.IntN(n))
}

func (a *ant) extend() {
	a.collectCandidates()
	if len(a.candidates) == 0 {
		// Open a new color class; current stays where it is.
		a.color++
		return
	}
	a.assign(a.candidates[a.pick()])
}

// assign colors v with the current color and moves the ant onto it.
func (a *ant) assign(v int) {
	a.colors[v] = a.color
	a.path = append(a.path, v)
	a.current = v
	a.assigned++
	if a.assigned == a.g.N() {
		a.state = stateDone
	} else {
		a.state = stateExtend
	}
}

// collectCandidates gathers uncolored vertices with no neighbor in the
// current color class.
func (a *ant) collectCandidates() {
	a.candidates = a.candidates[:0]
	for v, c := range a.colors {
		if c == Unassigned && !a.clashes(v) {
			a.candidates = append(a.candidates, v)
		}
	}
}

func (a *ant) clashes(v int) bool {
	for _, u := range a.g.Neighbors(v) {
		if a.colors[u] == a.color {
			return true
		}
	}
	return false
}

// pick returns an index into candidates drawn proportionally to
// heuristic(v) * trail(current, v). The trail is indexed by vertex ids.
func (a *ant) pick() int {
	a.weights = a.weights[:0]
	total := 0.0
	for _, v := range a.candidates {
		wt := a.heuristic[v] * a.trail.At(a.current, v)
		a.weights = append(a.weights, wt)
		total += wt
	}

	if !(total > 0) || math.IsInf(total, 0) {
		return a.rng.IntN(len(a.candidates))
	}

	r := a.rng.Float64() * total
	for i, wt := range a.weights {
		r -= wt
		if r < 0 {
			return i
		}
	}
	// Rounding slack left r just above zero.
	return lastPositive(a.weights)
}

// lastPositive returns the index of the last positive weight, or 0 if there
// is none.
func lastPositive(weights []float64) int {
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

func (a *ant) cost() int {
	if a.g.N() == 0 {
		return 0
	}
	return a.color + 1
}
