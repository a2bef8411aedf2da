package reconcile

import (
	"bytes"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/inspect"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Sync rewrites a managed copy at target from the current source content.
// Absent targets, symlinks and foreign files are left alone. The copy is only
// rewritten when its content differs; Changed reports whether it did.
func (r *Reconciler) Sync(source, target string) Result {
	logger := logging.GetLogger("reconcile.sync").With().
		Str("source", source).
		Str("target", target).
		Logger()

	unlock := r.locks.lock(target)
	defer unlock()

	result := Result{Operation: OpSync, Target: target, DryRun: r.dryRun}

	in := r.inspector.Inspect(target)
	result.Previous = in.State

	switch in.State {
	case inspect.Absent:
		result.Outcome = OutcomeAbsent
		return result
	case inspect.Symlink:
		result.Outcome = OutcomeIsSymlink
		result.LinkDest = in.LinkDest
		return result
	case inspect.ForeignFile:
		if in.Err != nil {
			return result.fail(errors.Wrapf(in.Err, errors.ErrFileAccess, "cannot inspect %s", target))
		}
		result.Outcome = OutcomeNotManaged
		return result
	}

	content, err := r.renderCopy(source)
	if err != nil {
		return result.fail(err)
	}

	result.Outcome = OutcomeSynced
	result.Changed = !bytes.Equal(content, in.Content)
	if !result.Changed || r.dryRun {
		return result
	}

	perm := filePerm
	if info, err := r.fs.Lstat(target); err == nil {
		perm = info.Mode().Perm()
	}
	if err := r.writeFile(target, content, perm); err != nil {
		return result.fail(errors.Wrapf(err, errors.ErrFileWrite, "cannot rewrite managed copy %s", target))
	}

	logger.Info().Msg("managed copy refreshed")
	return result
}
