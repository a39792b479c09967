package colony

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/antcolor/pkg/graph"
)

// Record is the best coloring seen so far.
type Record struct {
	Solution  Solution
	Cost      int
	Iteration int // round that found it, 0-based
}

// Progress is reported once per round, after the trail update.
type Progress struct {
	Iteration     int // 0-based round index
	Iterations    int // total rounds in the run
	IterationBest int // cheapest tour of this round
	BestCost      int // best cost over all rounds so far
	Improved      bool
	Elapsed       time.Duration
}

// ProgressFunc receives per-round progress. It is called from the goroutine
// running the colony.
type ProgressFunc func(Progress)

// Result summarizes a finished run.
type Result struct {
	Best       Solution
	Cost       int
	FoundAt    int   // round in which Best was found
	Iterations int   // rounds executed
	History    []int // best cost after each round
	Duration   time.Duration
}

// Option configures a [Colony].
type Option func(*Colony)

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Colony) { c.logger = l }
}

// WithProgress registers a callback invoked after every round.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Colony) { c.progress = fn }
}

// Colony drives the Ant System over a fixed graph.
//
// Create one with [New]; the zero value is not usable. A Colony is not
// safe for concurrent use.
type Colony struct {
	g         *graph.Graph
	params    Params
	field     *Field
	rng       *rand.Rand
	heuristic []float64

	logger   *log.Logger
	progress ProgressFunc

	iteration int
	best      Record
	history   []int
	start     time.Time
}

// New creates a colony for g. rng seeds every ant of every round and is
// owned by the colony for the duration of the run.
func New(g *graph.Graph, params Params, rng *rand.Rand, opts ...Option) (*Colony, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidParams)
	}
	c := &Colony{
		g:         g,
		params:    params,
		field:     NewField(g.N(), params.Tau0, params.Rho),
		rng:       rng,
		heuristic: heuristicTerms(g, params.HeuristicWeight),
		best:      Record{Cost: -1, Iteration: -1},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c, nil
}

// Run is a convenience wrapper around [New] and [Colony.Run].
func Run(ctx context.Context, g *graph.Graph, params Params, rng *rand.Rand, opts ...Option) (*Result, error) {
	c, err := New(g, params, rng, opts...)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx)
}

// Run executes the configured number of rounds and returns the best coloring.
//
// An empty graph short-circuits to an empty zero-cost solution. Cancelling
// ctx stops the run between rounds and returns the context error.
func (c *Colony) Run(ctx context.Context) (*Result, error) {
	c.start = time.Now()
	if c.g.N() == 0 {
		return &Result{Best: Solution{}, Cost: 0, FoundAt: -1}, nil
	}

	c.logger.Debug("Starting colony",
		"vertices", c.g.N(),
		"edges", c.g.EdgeCount(),
		"ants", c.params.NumAnts,
		"iterations", c.params.NumIterations)

	for c.iteration < c.params.NumIterations {
		if _, err := c.Step(ctx); err != nil {
			return nil, err
		}
	}
	return c.result(), nil
}

// Step runs a single round and returns its progress. It is exported so
// callers can interleave rounds with their own work.
func (c *Colony) Step(ctx context.Context) (Progress, error) {
	if err := ctx.Err(); err != nil {
		return Progress{}, err
	}
	if c.start.IsZero() {
		c.start = time.Now()
	}

	tours, err := c.construct(ctx)
	if err != nil {
		return Progress{}, err
	}

	deposits := NewDeposits(c.g.N())
	roundBest := 0
	for i, t := range tours {
		deposits.AddPath(t.Path, 1/float64(t.Cost))
		if t.Cost < tours[roundBest].Cost {
			roundBest = i
		}
	}
	c.field.Evaporate()
	c.field.Reinforce(deposits)

	improved := c.best.Cost < 0 || tours[roundBest].Cost < c.best.Cost
	if improved {
		c.best = Record{
			Solution:  tours[roundBest].Solution.Clone(),
			Cost:      tours[roundBest].Cost,
			Iteration: c.iteration,
		}
	}
	c.history = append(c.history, c.best.Cost)

	p := Progress{
		Iteration:     c.iteration,
		Iterations:    c.params.NumIterations,
		IterationBest: tours[roundBest].Cost,
		BestCost:      c.best.Cost,
		Improved:      improved,
		Elapsed:       time.Since(c.start),
	}
	c.report(p)
	c.iteration++
	return p, nil
}

// construct runs every ant of the current round against one snapshot.
// Per-ant generators are drawn from c.rng before any ant starts, so the
// outcome does not depend on scheduling.
func (c *Colony) construct(ctx context.Context) ([]Tour, error) {
	snap := c.field.Snapshot()

	seeds := make([][2]uint64, c.params.NumAnts)
	for i := range seeds {
		seeds[i] = [2]uint64{c.rng.Uint64(), c.rng.Uint64()}
	}

	tours := make([]Tour, c.params.NumAnts)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.params.Workers)
	for i := range tours {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seeds[i][0], seeds[i][1]))
			tours[i] = newAnt(c.g, snap, c.heuristic, rng).run()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return tours, nil
}

func (c *Colony) report(p Progress) {
	c.logger.Debug("Round finished",
		"iteration", p.Iteration,
		"round_best", p.IterationBest,
		"best", p.BestCost)
	if every := c.params.ReportEvery; every > 0 && p.Iteration%every == 0 {
		c.logger.Infof("Iteration %d: best coloring uses %d colors", p.Iteration, p.BestCost)
	}
	if c.progress != nil {
		c.progress(p)
	}
}

func (c *Colony) result() *Result {
	return &Result{
		Best:       c.best.Solution.Clone(),
		Cost:       c.best.Cost,
		FoundAt:    c.best.Iteration,
		Iterations: c.iteration,
		History:    append([]int{}, c.history...),
		Duration:   time.Since(c.start),
	}
}

// Best returns the best record so far. Cost is -1 before the first round.
func (c *Colony) Best() Record {
	r := c.best
	r.Solution = r.Solution.Clone()
	return r
}

// Trail returns a snapshot of the current pheromone field.
func (c *Colony) Trail() *Snapshot { return c.field.Snapshot() }
