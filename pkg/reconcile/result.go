package reconcile

import (
	"github.com/arthur-debert/agentlink/pkg/inspect"
)

// Operation names a reconciler entry point
type Operation string

const (
	OpMaterialize Operation = "link"
	OpSync        Operation = "sync"
	OpRemove      Operation = "unlink"
	OpCheck       Operation = "status"
)

// Outcome is the closed set of per-target results
type Outcome string

const (
	// Materialize
	OutcomeCreatedSymlink   Outcome = "created-symlink"
	OutcomeCreatedCopy      Outcome = "created-copy"
	OutcomeAlreadySatisfied Outcome = "already-satisfied"
	OutcomeSkippedForeign   Outcome = "skipped-foreign"

	// Sync
	OutcomeSynced     Outcome = "synced"
	OutcomeNotManaged Outcome = "not-managed"
	OutcomeIsSymlink  Outcome = "is-symlink"
	OutcomeAbsent     Outcome = "absent"

	// Remove (also uses OutcomeNotManaged and OutcomeAbsent)
	OutcomeRemovedSymlink Outcome = "removed-symlink"
	OutcomeRemovedCopy    Outcome = "removed-copy"

	// Check
	OutcomeLinked          Outcome = "linked"
	OutcomeLinkedElsewhere Outcome = "linked-elsewhere"
	OutcomeBrokenLink      Outcome = "broken-link"
	OutcomeCopyCurrent     Outcome = "copy-current"
	OutcomeCopyStale       Outcome = "copy-stale"
	OutcomeForeign         Outcome = "foreign"
	OutcomeMissing         Outcome = "missing"

	// Any operation
	OutcomeFailed Outcome = "failed"
)

// IsFailure reports whether the outcome is a true failure. Skipped and
// not-managed targets are steady states, not failures.
func (o Outcome) IsFailure() bool {
	return o == OutcomeFailed
}

// IsHealthy reports whether a Check outcome needs no action
func (o Outcome) IsHealthy() bool {
	return o == OutcomeLinked || o == OutcomeCopyCurrent
}

// Result is the outcome of one operation on one target
type Result struct {
	Operation Operation `json:"operation"`
	Target    string    `json:"target"`
	Outcome   Outcome   `json:"outcome"`

	// Previous is the state the target was found in
	Previous inspect.State `json:"-"`
	// LinkDest is the symlink destination found or created
	LinkDest string `json:"linkDest,omitempty"`
	// Repaired is set when a broken link was replaced
	Repaired bool `json:"repaired,omitempty"`
	// Changed is set by Sync when the copy content differed from the source
	Changed bool `json:"changed,omitempty"`
	// DryRun is set when nothing was written
	DryRun bool `json:"dryRun,omitempty"`
	// MayFallBack marks a predicted symlink that a real run in auto mode
	// would turn into a managed copy if the filesystem refuses symlinks
	MayFallBack bool `json:"mayFallBack,omitempty"`

	Err error `json:"-"`
}

// Failed reports whether the result is a failure
func (r Result) Failed() bool {
	return r.Outcome.IsFailure()
}

// ErrorMessage returns the failure message, or "" for non-failures
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func (r Result) fail(err error) Result {
	r.Outcome = OutcomeFailed
	r.Err = err
	return r
}
