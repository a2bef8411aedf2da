package reconcile

import (
	"bytes"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/inspect"
	"github.com/arthur-debert/agentlink/pkg/marker"
)

// Check reports the state of target relative to source without modifying
// anything. A managed copy is current when the content after its header
// equals the source.
func (r *Reconciler) Check(source, target string) Result {
	unlock := r.locks.lock(target)
	defer unlock()

	result := Result{Operation: OpCheck, Target: target}

	in := r.inspector.Inspect(target)
	result.Previous = in.State
	result.LinkDest = in.LinkDest

	switch in.State {
	case inspect.Absent:
		result.Outcome = OutcomeMissing
	case inspect.Symlink:
		switch {
		case in.Broken:
			result.Outcome = OutcomeBrokenLink
		case r.inspector.LinksTo(in, source):
			result.Outcome = OutcomeLinked
		default:
			result.Outcome = OutcomeLinkedElsewhere
		}
	case inspect.ManagedCopy:
		want, err := r.readSource(source)
		if err != nil {
			return result.fail(err)
		}
		// Only the body counts; a header naming another provenance is not drift.
		body, ok := marker.Strip(in.Content)
		if ok && bytes.Equal(body, want) {
			result.Outcome = OutcomeCopyCurrent
		} else {
			result.Outcome = OutcomeCopyStale
		}
	case inspect.ForeignFile:
		if in.Err != nil {
			return result.fail(errors.Wrapf(in.Err, errors.ErrFileAccess, "cannot inspect %s", target))
		}
		result.Outcome = OutcomeForeign
	}

	return result
}
