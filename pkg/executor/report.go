package executor

import (
	"time"

	"github.com/arthur-debert/agentlink/pkg/reconcile"
)

// Report collects the results of one batch, in target order
type Report struct {
	Operation reconcile.Operation `json:"operation"`
	Source    string              `json:"source"`
	DryRun    bool                `json:"dryRun,omitempty"`
	Results   []reconcile.Result  `json:"results"`
	Duration  time.Duration       `json:"-"`
}

// FailedCount returns the number of Failed results
func (r *Report) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// HasFailures reports whether any target failed. Skipped and not-managed
// targets do not count.
func (r *Report) HasFailures() bool {
	return r.FailedCount() > 0
}

// Unhealthy returns the results of a status batch that need attention
func (r *Report) Unhealthy() []reconcile.Result {
	var out []reconcile.Result
	for _, res := range r.Results {
		if !res.Outcome.IsHealthy() {
			out = append(out, res)
		}
	}
	return out
}

// Counts tallies results by outcome
func (r *Report) Counts() map[reconcile.Outcome]int {
	counts := make(map[reconcile.Outcome]int)
	for _, res := range r.Results {
		counts[res.Outcome]++
	}
	return counts
}
