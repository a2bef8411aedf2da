package reconcile

import (
	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/inspect"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Remove deletes target when it is a symlink (wherever it points) or a
// managed copy. Only the link entry is removed, never its destination.
// Foreign files are reported as not managed and left in place.
func (r *Reconciler) Remove(target string) Result {
	logger := logging.GetLogger("reconcile.remove").With().
		Str("target", target).
		Logger()

	unlock := r.locks.lock(target)
	defer unlock()

	result := Result{Operation: OpRemove, Target: target, DryRun: r.dryRun}

	in := r.inspector.Inspect(target)
	result.Previous = in.State

	switch in.State {
	case inspect.Absent:
		result.Outcome = OutcomeAbsent
		return result
	case inspect.ForeignFile:
		if in.Err != nil {
			return result.fail(errors.Wrapf(in.Err, errors.ErrFileAccess, "cannot inspect %s", target))
		}
		result.Outcome = OutcomeNotManaged
		return result
	case inspect.Symlink:
		result.Outcome = OutcomeRemovedSymlink
		result.LinkDest = in.LinkDest
	case inspect.ManagedCopy:
		result.Outcome = OutcomeRemovedCopy
	}

	if r.dryRun {
		return result
	}

	if err := r.fs.Remove(target); err != nil {
		return result.fail(errors.Wrapf(err, errors.ErrFileRemove, "cannot remove %s", target))
	}

	logger.Info().Str("outcome", string(result.Outcome)).Msg("removed target")
	return result
}
