package reconcile

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/inspect"
	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/arthur-debert/agentlink/pkg/types"
)

// Mode selects how targets are created
type Mode string

const (
	// ModeAuto creates symlinks and falls back to managed copies
	ModeAuto Mode = "auto"
	// ModeSymlink creates symlinks only; a refused symlink is a failure
	ModeSymlink Mode = "symlink"
	// ModeCopy always creates managed copies
	ModeCopy Mode = "copy"
)

// ParseMode validates a mode name; "" means ModeAuto
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeSymlink:
		return ModeSymlink, nil
	case ModeCopy:
		return ModeCopy, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown mode %q (expected auto, symlink or copy)", s)
	}
}

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// Options configures a Reconciler
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS
	// Root is the project root; provenance lines name the source relative to it
	Root string
	Mode Mode
	// DryRun classifies and reports without writing anything
	DryRun bool
}

// Reconciler applies link/copy operations to individual targets
type Reconciler struct {
	fs        types.FS
	inspector *inspect.Inspector
	root      string
	mode      Mode
	dryRun    bool
	locks     *pathLocks
}

// New creates a Reconciler
func New(opts Options) *Reconciler {
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeAuto
	}
	return &Reconciler{
		fs:        fs,
		inspector: inspect.New(fs),
		root:      opts.Root,
		mode:      mode,
		dryRun:    opts.DryRun,
		locks:     newPathLocks(),
	}
}

// Mode returns the creation mode
func (r *Reconciler) Mode() Mode {
	return r.mode
}

// DryRun reports whether the reconciler writes to disk
func (r *Reconciler) DryRun() bool {
	return r.dryRun
}

// Inspect classifies target
func (r *Reconciler) Inspect(target string) inspect.Inspection {
	return r.inspector.Inspect(target)
}

// CheckSource verifies that source exists and is a regular file. A missing
// source is fatal for a whole batch, so drivers call this once up front.
func (r *Reconciler) CheckSource(source string) error {
	info, err := r.fs.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrSourceNotFound, "source file %s does not exist", source).
				WithDetail("source", source)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access source file %s", source).
			WithDetail("source", source)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrInvalidInput, "source %s is not a regular file", source).
			WithDetail("source", source)
	}
	return nil
}

// readSource reads the source content in full
func (r *Reconciler) readSource(source string) ([]byte, error) {
	content, err := r.fs.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "source file %s does not exist", source)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read source file %s", source)
	}
	return content, nil
}

// renderCopy builds the managed copy content for source
func (r *Reconciler) renderCopy(source string) ([]byte, error) {
	content, err := r.readSource(source)
	if err != nil {
		return nil, err
	}
	return marker.Render(r.provenance(source), content), nil
}

// provenance names source relative to the project root
func (r *Reconciler) provenance(source string) string {
	if r.root != "" {
		if rel, err := filepath.Rel(r.root, source); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.Base(source)
}

// linkDestination is the relative path from target's directory to source
func linkDestination(source, target string) string {
	rel, err := filepath.Rel(filepath.Dir(target), source)
	if err != nil {
		return source
	}
	return rel
}

// writeFile replaces path with data by writing a new sibling temp file and
// renaming it into place. The temp file is created exclusively, so nothing
// already on disk is truncated, and it is removed on every failure.
func (r *Reconciler) writeFile(path string, data []byte, perm os.FileMode) error {
	f, err := r.fs.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".agentlink-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = r.fs.Chmod(tmp, perm)
	}
	if err == nil {
		err = r.fs.Rename(tmp, path)
	}
	if err != nil {
		_ = r.fs.Remove(tmp)
		return err
	}
	return nil
}

// pathLocks serialises classify-then-act sequences on the same path
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the lock for path and returns its release function
func (p *pathLocks) lock(path string) func() {
	key := filepath.Clean(path)
	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
