package output

import (
	"fmt"

	"github.com/arthur-debert/agentlink/pkg/executor"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
)

// Status groups outcomes for display
type Status string

const (
	StatusOK      Status = "ok"      // Nothing to do
	StatusChanged Status = "changed" // Written, or would be in a dry run
	StatusSkipped Status = "skipped" // Left alone on purpose
	StatusDrift   Status = "drift"   // Reported by status as needing attention
	StatusError   Status = "error"   // Failed
)

// Item is the display form of one target result
type Item struct {
	Target  string `json:"target"`
	Outcome string `json:"outcome"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Summary counts items by status
type Summary struct {
	Total   int `json:"total"`
	OK      int `json:"ok"`
	Changed int `json:"changed"`
	Skipped int `json:"skipped"`
	Drift   int `json:"drift"`
	Failed  int `json:"failed"`
}

// Report is the display form of a batch
type Report struct {
	Command string  `json:"command"`
	Source  string  `json:"source"`
	DryRun  bool    `json:"dryRun"`
	Items   []Item  `json:"targets"`
	Summary Summary `json:"summary"`
}

// outcomeVerbs holds past and future tense details per outcome
var outcomeVerbs = map[reconcile.Outcome]struct {
	Past   string
	Future string
}{
	reconcile.OutcomeCreatedSymlink: {Past: "linked to %s", Future: "will link to %s"},
	reconcile.OutcomeCreatedCopy:    {Past: "copied from %s", Future: "will copy from %s"},
	reconcile.OutcomeRemovedSymlink: {Past: "symlink removed", Future: "symlink will be removed"},
	reconcile.OutcomeRemovedCopy:    {Past: "managed copy removed", Future: "managed copy will be removed"},
}

// NewReport builds the display form of an executor report. rel shortens
// absolute target paths, typically to project-relative ones.
func NewReport(rep *executor.Report, source string, rel func(string) string) *Report {
	if rel == nil {
		rel = func(s string) string { return s }
	}

	out := &Report{
		Command: string(rep.Operation),
		Source:  source,
		DryRun:  rep.DryRun,
		Items:   make([]Item, 0, len(rep.Results)),
	}

	for _, res := range rep.Results {
		item := Item{
			Target:  rel(res.Target),
			Outcome: string(res.Outcome),
			Status:  statusOf(res),
			Detail:  detailOf(res, source, rep.DryRun),
			Error:   res.ErrorMessage(),
		}
		out.Items = append(out.Items, item)
		out.Summary.add(item.Status)
	}

	return out
}

func (s *Summary) add(status Status) {
	s.Total++
	switch status {
	case StatusOK:
		s.OK++
	case StatusChanged:
		s.Changed++
	case StatusSkipped:
		s.Skipped++
	case StatusDrift:
		s.Drift++
	case StatusError:
		s.Failed++
	}
}

func statusOf(res reconcile.Result) Status {
	if res.Failed() {
		return StatusError
	}
	if res.Operation == reconcile.OpCheck {
		if res.Outcome.IsHealthy() {
			return StatusOK
		}
		return StatusDrift
	}

	switch res.Outcome {
	case reconcile.OutcomeCreatedSymlink, reconcile.OutcomeCreatedCopy,
		reconcile.OutcomeRemovedSymlink, reconcile.OutcomeRemovedCopy:
		return StatusChanged
	case reconcile.OutcomeSynced:
		if res.Changed {
			return StatusChanged
		}
		return StatusOK
	case reconcile.OutcomeSkippedForeign, reconcile.OutcomeNotManaged:
		return StatusSkipped
	default:
		return StatusOK
	}
}

func detailOf(res reconcile.Result, source string, dryRun bool) string {
	if verbs, ok := outcomeVerbs[res.Outcome]; ok {
		format := verbs.Past
		if dryRun {
			format = verbs.Future
		}
		arg := source
		if res.Outcome == reconcile.OutcomeCreatedSymlink && res.LinkDest != "" {
			arg = res.LinkDest
		}
		detail := format
		if res.Outcome == reconcile.OutcomeCreatedSymlink || res.Outcome == reconcile.OutcomeCreatedCopy {
			detail = fmt.Sprintf(format, arg)
		}
		if res.Repaired {
			detail += " (replaced a broken link)"
		}
		if dryRun && res.MayFallBack {
			detail += " (or copy from " + source + " if symlinks are refused)"
		}
		return detail
	}

	switch res.Outcome {
	case reconcile.OutcomeAlreadySatisfied:
		return "already in place"
	case reconcile.OutcomeSkippedForeign, reconcile.OutcomeNotManaged, reconcile.OutcomeForeign:
		return "not managed by agentlink, left untouched"
	case reconcile.OutcomeSynced:
		if !res.Changed {
			return "up to date"
		}
		if dryRun {
			return "will be refreshed from " + source
		}
		return "refreshed from " + source
	case reconcile.OutcomeIsSymlink:
		return "symlink, nothing to refresh"
	case reconcile.OutcomeAbsent:
		return "not present"
	case reconcile.OutcomeLinked:
		return "linked to " + res.LinkDest
	case reconcile.OutcomeLinkedElsewhere:
		return "links to " + res.LinkDest + " instead of " + source
	case reconcile.OutcomeBrokenLink:
		return "broken link to " + res.LinkDest + " (run link to repair)"
	case reconcile.OutcomeCopyCurrent:
		return "managed copy, up to date"
	case reconcile.OutcomeCopyStale:
		return "managed copy, out of date (run sync)"
	case reconcile.OutcomeMissing:
		return "missing (run link)"
	default:
		return ""
	}
}
