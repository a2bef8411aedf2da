// Package targets turns the configured target list into the absolute paths
// a batch operates on.
package targets

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/bmatcuk/doublestar/v4"
)

// Target is one resolved target path
type Target struct {
	// Rel is the project-relative path in slash form
	Rel string `json:"path"`
	// Path is the absolute path
	Path string `json:"-"`
}

// Options describes the target set to resolve
type Options struct {
	Root string
	// Source is the project-relative source path; it is never a target
	Source  string
	Targets []string
	// Ignore holds doublestar patterns; matching targets are dropped
	Ignore []string
	// Only restricts the result to these targets, when non-empty
	Only []string
}

// Resolve validates, normalizes and filters the target list. Order follows
// the configured list; duplicates keep their first position.
func Resolve(opts Options) ([]Target, error) {
	logger := logging.GetLogger("targets")

	if err := ValidatePatterns(opts.Ignore); err != nil {
		return nil, err
	}

	source := ""
	if opts.Source != "" {
		source = paths.NormalizeProjectPath(opts.Source)
	}

	seen := make(map[string]bool, len(opts.Targets))
	resolved := make([]Target, 0, len(opts.Targets))

	for _, raw := range opts.Targets {
		if err := paths.ValidateProjectPath(raw); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid target %q", raw).
				WithDetail("target", raw)
		}
		rel := paths.NormalizeProjectPath(raw)

		if seen[rel] {
			logger.Debug().Str("target", rel).Msg("Skipping duplicate target")
			continue
		}
		seen[rel] = true

		if rel == source {
			logger.Warn().Str("target", rel).Msg("Target is the source file, skipping")
			continue
		}

		if pattern, ok := Ignored(rel, opts.Ignore); ok {
			logger.Debug().Str("target", rel).Str("pattern", pattern).Msg("Target ignored")
			continue
		}

		resolved = append(resolved, Target{
			Rel:  rel,
			Path: filepath.Join(opts.Root, filepath.FromSlash(rel)),
		})
	}

	if len(opts.Only) > 0 {
		return selectOnly(resolved, opts.Only)
	}
	return resolved, nil
}

// selectOnly keeps the targets named in only, in configured order
func selectOnly(all []Target, only []string) ([]Target, error) {
	known := make(map[string]bool, len(all))
	for _, t := range all {
		known[t.Rel] = true
	}

	want := make(map[string]bool, len(only))
	for _, o := range only {
		rel := paths.NormalizeProjectPath(o)
		if !known[rel] {
			return nil, errors.Newf(errors.ErrInvalidInput, "%q is not a configured target", o).
				WithDetail("target", o)
		}
		want[rel] = true
	}

	out := make([]Target, 0, len(want))
	for _, t := range all {
		if want[t.Rel] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Ignored reports whether rel matches any pattern, and which one. Patterns
// without a slash also match the base name.
func Ignored(rel string, patterns []string) (string, bool) {
	for _, pattern := range patterns {
		normalized := filepath.ToSlash(filepath.Clean(pattern))
		if matched, err := doublestar.Match(normalized, rel); err == nil && matched {
			return pattern, true
		}
		if !strings.Contains(normalized, "/") {
			if matched, err := doublestar.Match(normalized, filepath.Base(filepath.FromSlash(rel))); err == nil && matched {
				return pattern, true
			}
		}
	}
	return "", false
}

// ValidatePatterns checks that every ignore pattern is a valid glob
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if pattern == "" || !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return errors.Newf(errors.ErrConfigValid, "invalid ignore pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}
	return nil
}

// Paths returns the absolute paths of targets
func Paths(targets []Target) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.Path
	}
	return out
}
