package colony

import (
	"errors"
	"fmt"
)

// Default parameter values.
const (
	DefaultNumAnts         = 10
	DefaultNumIterations   = 100
	DefaultRho             = 0.5
	DefaultTau0            = 1.0
	DefaultHeuristicWeight = 1.0
	DefaultWorkers         = 1
	DefaultReportEvery     = 10
)

// ErrInvalidParams is wrapped by every error returned from [Params.Validate].
var ErrInvalidParams = errors.New("invalid colony parameters")

// Params tunes a colony run. Use [DefaultParams] as a starting point.
type Params struct {
	// NumAnts is the number of ants constructing a coloring per round.
	NumAnts int `json:"num_ants" toml:"num_ants" yaml:"num_ants"`

	// NumIterations is the fixed number of rounds; there is no early stop.
	NumIterations int `json:"num_iterations" toml:"num_iterations" yaml:"num_iterations"`

	// Rho is the evaporation rate in (0, 1).
	Rho float64 `json:"rho" toml:"rho" yaml:"rho"`

	// Tau0 is the initial trail strength on every vertex pair.
	Tau0 float64 `json:"tau0" toml:"tau0" yaml:"tau0"`

	// HeuristicWeight is the exponent w in (1/degree)^w.
	HeuristicWeight float64 `json:"heuristic_weight" toml:"heuristic_weight" yaml:"heuristic_weight"`

	// Workers bounds how many ants of a round run concurrently.
	// Results do not depend on it.
	Workers int `json:"workers,omitempty" toml:"workers" yaml:"workers"`

	// ReportEvery controls how often progress is logged at info level.
	// Zero disables periodic reports.
	ReportEvery int `json:"report_every,omitempty" toml:"report_every" yaml:"report_every"`
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		NumAnts:         DefaultNumAnts,
		NumIterations:   DefaultNumIterations,
		Rho:             DefaultRho,
		Tau0:            DefaultTau0,
		HeuristicWeight: DefaultHeuristicWeight,
		Workers:         DefaultWorkers,
		ReportEvery:     DefaultReportEvery,
	}
}

// Validate checks every field and reports the first problem found.
func (p Params) Validate() error {
	switch {
	case p.NumAnts < 1:
		return fmt.Errorf("%w: num_ants must be at least 1, got %d", ErrInvalidParams, p.NumAnts)
	case p.NumIterations < 1:
		return fmt.Errorf("%w: num_iterations must be at least 1, got %d", ErrInvalidParams, p.NumIterations)
	case !(p.Rho > 0 && p.Rho < 1):
		return fmt.Errorf("%w: rho must be in (0, 1), got %v", ErrInvalidParams, p.Rho)
	case !(p.Tau0 > 0):
		return fmt.Errorf("%w: tau0 must be positive, got %v", ErrInvalidParams, p.Tau0)
	case !(p.HeuristicWeight >= 0):
		return fmt.Errorf("%w: heuristic_weight must not be negative, got %v", ErrInvalidParams, p.HeuristicWeight)
	case p.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidParams, p.Workers)
	case p.ReportEvery < 0:
		return fmt.Errorf("%w: report_every must not be negative, got %d", ErrInvalidParams, p.ReportEvery)
	}
	return nil
}
