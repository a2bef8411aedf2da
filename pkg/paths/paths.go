package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/agentlink/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot overrides project root discovery
	EnvRoot = "AGENTLINK_ROOT"

	// EnvConfigDir overrides the XDG config directory for agentlink
	EnvConfigDir = "AGENTLINK_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name under the XDG base directories
	AppDirName = "agentlink"

	// UserConfigFile is the user-level config file inside UserConfigDir
	UserConfigFile = "config.toml"

	// LogFileName is the name of the log file inside StateDir
	LogFileName = "agentlink.log"
)

// ProjectConfigFiles are the project config file names, in lookup order
var ProjectConfigFiles = []string{".agentlink.toml", "agentlink.toml"}

// rootMarkers identify a project root when walking up from the working directory
var rootMarkers = append(append([]string{}, ProjectConfigFiles...), ".git")

// Paths provides the locations agentlink works with
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ProjectConfigPath() string
	UserConfigPath() string
	Resolve(rel string) string
	Rel(path string) string
}

type paths struct {
	projectRoot  string
	usedFallback bool
}

// New creates a Paths instance. An empty root is discovered from the
// environment and the working directory.
func New(root string) (Paths, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return newFrom(root, cwd)
}

func newFrom(root, cwd string) (Paths, error) {
	p := &paths{}

	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root != "" {
		p.projectRoot = expandHome(root)
	} else {
		p.projectRoot, p.usedFallback = findProjectRoot(cwd)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	info, err := os.Stat(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "project root %s is not accessible", p.projectRoot)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "project root %s is not a directory", p.projectRoot)
	}

	return p, nil
}

// UserConfigDir returns the agentlink config directory, which does not
// depend on the project root
func UserConfigDir() string {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		return expandHome(configDir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the agentlink state directory
func StateDir() string {
	// xdg caches StateHome at init; honour changes made afterwards
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// findProjectRoot walks up from start looking for a root marker. It falls
// back to start itself when none is found.
func findProjectRoot(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		for _, name := range rootMarkers {
			if _, err := os.Lstat(filepath.Join(dir, name)); err == nil {
				return dir, false
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, true
		}
		dir = parent
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is left alone
	return path
}

// ProjectRoot returns the absolute project root
func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// UsedFallback returns true if the working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ProjectConfigPath returns the first existing project config file, or the
// default name when none exists yet
func (p *paths) ProjectConfigPath() string {
	for _, name := range ProjectConfigFiles {
		path := filepath.Join(p.projectRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(p.projectRoot, ProjectConfigFiles[0])
}

// UserConfigPath returns the user-level config file path
func (p *paths) UserConfigPath() string {
	return filepath.Join(UserConfigDir(), UserConfigFile)
}

// Resolve turns a project-relative slash path into an absolute path
func (p *paths) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.projectRoot, filepath.FromSlash(rel))
}

// Rel returns path relative to the project root in slash form, or path
// unchanged when it lies outside the root
func (p *paths) Rel(path string) string {
	rel, err := filepath.Rel(p.projectRoot, path)
	if err != nil || !ContainsPath(p.projectRoot, path) {
		return path
	}
	return filepath.ToSlash(rel)
}
