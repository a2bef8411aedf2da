package types

import (
	"io"
	"io/fs"
)

// File is a file opened for writing through an FS
type File interface {
	io.WriteCloser
	Name() string
}

// FS is the filesystem interface the reconciler works against
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	// CreateTemp creates a new file in dir that did not exist before. The
	// last "*" in pattern is replaced by a random string.
	CreateTemp(dir, pattern string) (File, error)
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}
