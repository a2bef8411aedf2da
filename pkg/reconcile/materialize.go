package reconcile

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/inspect"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// Materialize makes target a symlink to source, or a managed copy when
// symlinks are unavailable (or the reconciler is in copy mode).
//
// Existing managed copies and links to the source are left as they are; a
// managed copy whose content has drifted is Sync's job. Foreign files and
// links pointing elsewhere are skipped. A dangling link is removed and the
// target is created afresh.
func (r *Reconciler) Materialize(source, target string) Result {
	logger := logging.GetLogger("reconcile.materialize").With().
		Str("source", source).
		Str("target", target).
		Logger()

	unlock := r.locks.lock(target)
	defer unlock()

	result := Result{Operation: OpMaterialize, Target: target, DryRun: r.dryRun}

	in := r.inspector.Inspect(target)
	result.Previous = in.State
	result.LinkDest = in.LinkDest

	switch in.State {
	case inspect.Absent:
		// create below

	case inspect.Symlink:
		if !in.Broken {
			if r.inspector.LinksTo(in, source) {
				logger.Debug().Msg("symlink already points at source")
				result.Outcome = OutcomeAlreadySatisfied
				return result
			}
			logger.Info().Str("resolved", in.Resolved).Msg("symlink points elsewhere, skipping")
			result.Outcome = OutcomeSkippedForeign
			return result
		}

		logger.Info().Str("dest", in.LinkDest).Msg("removing dangling symlink")
		result.Repaired = true
		if !r.dryRun {
			if err := r.fs.Remove(target); err != nil {
				return result.fail(errors.Wrapf(err, errors.ErrFileRemove, "cannot remove dangling symlink %s", target))
			}
		}

	case inspect.ManagedCopy:
		logger.Debug().Msg("managed copy already present")
		result.Outcome = OutcomeAlreadySatisfied
		return result

	case inspect.ForeignFile:
		if in.Err != nil {
			return result.fail(errors.Wrapf(in.Err, errors.ErrFileAccess, "cannot inspect %s", target))
		}
		logger.Info().Msg("target exists and is not managed, skipping")
		result.Outcome = OutcomeSkippedForeign
		return result
	}

	return r.create(source, target, result)
}

// create produces a fresh target; the caller has verified the path is free
func (r *Reconciler) create(source, target string, result Result) Result {
	logger := logging.GetLogger("reconcile.materialize").With().
		Str("source", source).
		Str("target", target).
		Logger()

	dest := linkDestination(source, target)

	if r.dryRun {
		if r.mode == ModeCopy {
			result.Outcome = OutcomeCreatedCopy
			result.LinkDest = ""
		} else {
			result.Outcome = OutcomeCreatedSymlink
			result.LinkDest = dest
			result.MayFallBack = r.mode == ModeAuto
		}
		return result
	}

	if err := r.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return result.fail(errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", target))
	}

	if r.mode != ModeCopy {
		err := r.fs.Symlink(dest, target)
		if err == nil {
			logger.Info().Str("dest", dest).Msg("created symlink")
			result.Outcome = OutcomeCreatedSymlink
			result.LinkDest = dest
			return result
		}
		if stderrors.Is(err, fs.ErrExist) {
			return result.fail(errors.Wrapf(err, errors.ErrSymlinkExists, "%s appeared while it was being created", target))
		}
		if r.mode == ModeSymlink {
			return result.fail(errors.Wrapf(err, errors.ErrSymlinkUnsupported, "cannot create symlink %s", target))
		}
		logger.Info().Err(err).Msg("symlink refused, falling back to managed copy")
	}

	content, err := r.renderCopy(source)
	if err != nil {
		return result.fail(err)
	}

	// Never replace something that showed up since the target was inspected.
	if _, err := r.fs.Lstat(target); err == nil {
		return result.fail(errors.Newf(errors.ErrSymlinkExists, "%s appeared while it was being created", target))
	} else if !os.IsNotExist(err) {
		return result.fail(errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", target))
	}

	if err := r.writeFile(target, content, filePerm); err != nil {
		return result.fail(errors.Wrapf(err, errors.ErrFileWrite, "cannot write managed copy %s", target))
	}

	logger.Info().Msg("created managed copy")
	result.Outcome = OutcomeCreatedCopy
	result.LinkDest = ""
	return result
}
