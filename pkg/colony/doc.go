// Package colony colors graphs with an Ant System: many simulated ants build
// conflict-free colorings guided by a learned pheromone trail, and the trail
// is reinforced toward colorings that use fewer colors.
//
// # Overview
//
// One run consists of a fixed number of rounds. In every round:
//
//  1. The [Field] is frozen into a [Snapshot] that all ants read.
//  2. Each ant runs [Construct], producing a [Tour]: a complete coloring, the
//     order in which vertices were colored, and the number of colors used.
//  3. Every ant deposits 1/cost on each consecutive pair of its visitation
//     path into a shared [Deposits] accumulator.
//  4. After all ants finish, the field evaporates once and absorbs the
//     accumulated deposits.
//  5. The best coloring so far is replaced if an ant found a strictly
//     cheaper one.
//
// # Construction
//
// [Construct] is an explicit state machine (START, EXTEND, DONE). START
// colors a random vertex with color 0. EXTEND repeatedly picks, among the
// uncolored vertices that have no neighbor in the current color class, one
// vertex at random with probability proportional to
//
//	(1/degree(v))^w * trail(current, v)
//
// and gives it the current color. When no vertex fits, a new color class is
// opened without moving. Isolated vertices get the maximal heuristic term
// and an all-zero weight vector falls back to a uniform draw, so
// construction always terminates with a valid coloring of at most n colors.
//
// # Determinism
//
// The caller owns the random source. A [Colony] derives one independent
// generator per ant from it before the ants start, so a run is fully
// reproducible from a seed, regardless of [Params.Workers].
//
// # Concurrency
//
// Ants of one round only read the immutable snapshot and write their own
// result slot; they may run on up to [Params.Workers] goroutines. The field
// is mutated only after the whole round has finished. A [Colony] itself is
// not safe for concurrent use.
package colony
