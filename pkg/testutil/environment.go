package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no symlink support
	EnvIsolated                  // Real filesystem in temp directory
)

// DefaultSource is the source file name used by fixtures
const DefaultSource = "AGENTS.md"

// TestEnvironment is a project root with a source file
type TestEnvironment struct {
	Root   string
	Source string
	FS     types.FS
	Type   EnvType

	t *testing.T
}

// NewTestEnvironment creates an empty project; call WriteSource to add the source
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/project"
		env.FS = filesystem.NewMemoryFS()
		require.NoError(t, env.FS.MkdirAll(env.Root, 0755))
	case EnvIsolated:
		root, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		env.Root = root
		env.FS = filesystem.NewOS()
	}

	env.Source = filepath.Join(env.Root, DefaultSource)

	// Keep log files out of the user's state directory.
	t.Setenv("XDG_STATE_HOME", filepath.Join(os.TempDir(), "agentlink-test-state"))

	return env
}

// Path returns the absolute path of a project-relative path
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.Root, filepath.FromSlash(rel))
}

// WriteSource writes the source file
func (e *TestEnvironment) WriteSource(content string) {
	e.t.Helper()
	require.NoError(e.t, e.FS.WriteFile(e.Source, []byte(content), 0644))
}

// WriteFile writes a project file, creating parent directories
func (e *TestEnvironment) WriteFile(rel, content string) string {
	e.t.Helper()
	path := e.Path(rel)
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, e.FS.WriteFile(path, []byte(content), 0644))
	return path
}

// Symlink creates a symlink at rel pointing at dest (taken verbatim)
func (e *TestEnvironment) Symlink(rel, dest string) string {
	e.t.Helper()
	path := e.Path(rel)
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, e.FS.Symlink(dest, path))
	return path
}

// ReadFile returns the content of a project file, following links
func (e *TestEnvironment) ReadFile(rel string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(e.Path(rel))
	require.NoError(e.t, err)
	return string(data)
}

// Exists reports whether anything, including a dangling link, exists at rel
func (e *TestEnvironment) Exists(rel string) bool {
	_, err := e.FS.Lstat(e.Path(rel))
	return err == nil
}
