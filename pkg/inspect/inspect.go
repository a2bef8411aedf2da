// Package inspect classifies what currently occupies a target path.
package inspect

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/arthur-debert/agentlink/pkg/types"
)

// State is the classification of a target path
type State int

const (
	// Absent means nothing exists at the path, not even a dangling link
	Absent State = iota
	// Symlink means the path is a symbolic link, wherever it points
	Symlink
	// ManagedCopy means a regular file carrying the managed marker
	ManagedCopy
	// ForeignFile means anything else: user content we must not touch
	ForeignFile
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Symlink:
		return "symlink"
	case ManagedCopy:
		return "managed-copy"
	case ForeignFile:
		return "foreign"
	default:
		return "unknown"
	}
}

// Inspection is the result of inspecting one path
type Inspection struct {
	Path  string
	State State

	// LinkDest is the raw link destination and Resolved its absolute form,
	// interpreted relative to the link's directory. Both are set for symlinks.
	LinkDest string
	Resolved string
	// Broken is true for symlinks whose destination cannot be reached
	Broken bool

	// Content holds the file content for managed copies
	Content []byte

	// Err records a probe failure. Lstat failures other than "not exist"
	// classify as ForeignFile so that nothing is ever overwritten blindly.
	Err error
}

// Inspector classifies paths on a filesystem
type Inspector struct {
	fs types.FS
}

// New creates an Inspector
func New(fs types.FS) *Inspector {
	return &Inspector{fs: fs}
}

// Inspect classifies path. It never returns an error: failures are folded
// into the Inspection, biased towards ForeignFile.
func (i *Inspector) Inspect(path string) Inspection {
	logger := logging.GetLogger("inspect")
	result := Inspection{Path: path}

	info, err := i.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.State = Absent
			return result
		}
		logger.Debug().Err(err).Str("path", path).Msg("lstat failed, treating as foreign")
		result.State = ForeignFile
		result.Err = err
		return result
	}

	// Symlink-ness is decided before any content is read.
	if info.Mode()&os.ModeSymlink != 0 {
		result.State = Symlink
		dest, err := i.fs.Readlink(path)
		if err != nil {
			result.Broken = true
			result.Err = err
			return result
		}
		result.LinkDest = dest
		result.Resolved = ResolveLink(path, dest)
		if _, err := i.fs.Stat(path); err != nil {
			result.Broken = true
		}
		return result
	}

	if info.IsDir() {
		result.State = ForeignFile
		return result
	}

	content, err := i.fs.ReadFile(path)
	if err != nil || !utf8.Valid(content) {
		logger.Debug().Err(err).Str("path", path).Msg("unreadable as text, treating as foreign")
		result.State = ForeignFile
		return result
	}

	if marker.IsManaged(content) {
		result.State = ManagedCopy
		result.Content = content
		return result
	}

	result.State = ForeignFile
	return result
}

// LinksTo reports whether an inspected symlink resolves to source
func (i *Inspector) LinksTo(in Inspection, source string) bool {
	if in.State != Symlink || in.Broken {
		return false
	}
	if filepath.Clean(in.Resolved) == filepath.Clean(source) {
		return true
	}
	// Same file reached through a different spelling (e.g. /var vs /private/var).
	linkInfo, err := i.fs.Stat(in.Path)
	if err != nil {
		return false
	}
	sourceInfo, err := i.fs.Stat(source)
	if err != nil {
		return false
	}
	return os.SameFile(linkInfo, sourceInfo)
}

// ResolveLink returns the absolute destination of a link at linkPath
func ResolveLink(linkPath, dest string) string {
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}
	return filepath.Join(filepath.Dir(linkPath), dest)
}
