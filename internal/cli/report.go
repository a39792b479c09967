package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcolor/pkg/colony"
)

// heartbeatInterval is how long the reporter stays quiet before logging a
// status line without an improvement.
const heartbeatInterval = 10 * time.Second

// colonyReporter turns per-round colony progress into log lines and spinner
// updates. It logs the first solution, every improvement, and a heartbeat
// while the search stalls.
//
// The reporter is not safe for concurrent use; the colony calls it from the
// goroutine running the run.
type colonyReporter struct {
	logger   *log.Logger
	spinner  *Spinner // optional
	lastBest int
	lastLog  time.Time
	now      func() time.Time
}

func newColonyReporter(logger *log.Logger, spinner *Spinner) *colonyReporter {
	return &colonyReporter{
		logger:   logger,
		spinner:  spinner,
		lastBest: -1,
		now:      time.Now,
	}
}

// onProgress is a [colony.ProgressFunc].
func (r *colonyReporter) onProgress(p colony.Progress) {
	if r.spinner != nil {
		r.spinner.SetMessage(fmt.Sprintf("Coloring... round %d/%d, best %d colors",
			p.Iteration+1, p.Iterations, p.BestCost))
	}

	switch {
	case r.lastBest < 0:
		r.logger.Debugf("Initial: %d colors", p.BestCost)
		r.lastLog = r.now()
	case p.BestCost < r.lastBest:
		r.logger.Debugf("Improved: %d colors (↓%d) in round %d", p.BestCost, r.lastBest-p.BestCost, p.Iteration)
		r.lastLog = r.now()
	default:
		if r.now().Sub(r.lastLog) >= heartbeatInterval {
			r.logger.Infof("Searching... round %d/%d, %d colors (%s elapsed)",
				p.Iteration+1, p.Iterations, p.BestCost, p.Elapsed.Truncate(time.Second))
			r.lastLog = r.now()
		}
	}
	r.lastBest = p.BestCost
}
