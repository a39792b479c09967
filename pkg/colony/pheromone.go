package colony

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Trail is a read-only view of pheromone strengths between vertex pairs.
type Trail interface {
	At(i, j int) float64
}

// =============================================================================
// Field
// =============================================================================

// Field is the symmetric pheromone matrix shared by all rounds of a run.
// Every entry starts at tau0 (the diagonal included, although it is never
// read). Storage is a [mat.SymDense], so (i, j) and (j, i) are the same cell
// and symmetry holds by construction.
//
// Field is not safe for concurrent mutation; ants read a [Snapshot] instead.
type Field struct {
	n     int
	rho   float64
	trail *mat.SymDense // nil when n == 0
}

// NewField creates an n x n field filled with tau0 that evaporates at rate rho.
func NewField(n int, tau0, rho float64) *Field {
	f := &Field{n: n, rho: rho}
	if n == 0 {
		return f
	}
	data := make([]float64, n*n)
	for i := range data {
		data[i] = tau0
	}
	f.trail = mat.NewSymDense(n, data)
	return f
}

// N returns the number of vertices the field covers.
func (f *Field) N() int { return f.n }

// At returns the trail strength between i and j.
func (f *Field) At(i, j int) float64 { return f.trail.At(i, j) }

// Evaporate multiplies every entry by 1-rho.
func (f *Field) Evaporate() {
	if f.trail == nil {
		return
	}
	f.trail.ScaleSym(1-f.rho, f.trail)
}

// Reinforce adds the accumulated deposits entry-wise.
// It panics if d does not have the same dimension as the field.
func (f *Field) Reinforce(d *Deposits) {
	if f.trail == nil {
		return
	}
	if d.n != f.n {
		panic("colony: deposit dimension mismatch")
	}
	f.trail.AddSym(f.trail, d.m)
}

// Snapshot returns an immutable copy of the current trail.
func (f *Field) Snapshot() *Snapshot {
	if f.trail == nil {
		return &Snapshot{}
	}
	cp := mat.NewSymDense(f.n, nil)
	cp.CopySym(f.trail)
	return &Snapshot{m: cp}
}

// Snapshot is a frozen copy of a [Field]. It is safe for concurrent reads.
type Snapshot struct {
	m *mat.SymDense
}

// At returns the trail strength between i and j at snapshot time.
func (s *Snapshot) At(i, j int) float64 { return s.m.At(i, j) }

// =============================================================================
// Deposits
// =============================================================================

// Deposits accumulates the pheromone laid by all ants of one round.
type Deposits struct {
	n int
	m *mat.SymDense
}

// NewDeposits returns an all-zero n x n accumulator.
func NewDeposits(n int) *Deposits {
	d := &Deposits{n: n}
	if n > 0 {
		d.m = mat.NewSymDense(n, nil)
	}
	return d
}

// Add lays amount on the pair (i, j), which is the same cell as (j, i).
// Non-positive and non-finite amounts are ignored so entries stay non-negative.
func (d *Deposits) Add(i, j int, amount float64) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return
	}
	d.m.SetSym(i, j, d.m.At(i, j)+amount)
}

// AddPath lays amount on every consecutive pair of path.
func (d *Deposits) AddPath(path []int, amount float64) {
	for k := 0; k+1 < len(path); k++ {
		d.Add(path[k], path[k+1], amount)
	}
}

// At returns the accumulated amount on the pair (i, j).
func (d *Deposits) At(i, j int) float64 { return d.m.At(i, j) }
