package commands

import (
	"context"
	_ "embed"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
)

//go:embed templates/AGENTS.md
var sourceTemplate []byte

// SourceTemplate returns the template written by Init
func SourceTemplate() string {
	return string(sourceTemplate)
}

// InitOptions configures Init
type InitOptions struct {
	Options
	// Link runs link after the source is in place
	Link bool
}

// InitResult describes what Init did
type InitResult struct {
	// Source is the project-relative source path
	Source string `json:"source"`
	// Created is false when the source already existed
	Created bool         `json:"created"`
	DryRun  bool         `json:"dryRun,omitempty"`
	Link    *BatchResult `json:"-"`
}

// Init writes the source file from a template when it does not exist. An
// existing source is never overwritten.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands.init")

	env, err := LoadEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &InitResult{Source: env.Config.Source, DryRun: opts.DryRun}

	if fileExists(env.FS, env.Source) {
		logger.Info().Str("source", env.Source).Msg("Source already exists, leaving it untouched")
	} else {
		result.Created = true
		if !opts.DryRun {
			if err := ensureDir(env.FS, env.Source); err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", env.Source)
			}
			if err := env.FS.WriteFile(env.Source, sourceTemplate, 0644); err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", env.Source)
			}
			logger.Info().Str("source", env.Source).Msg("Created source from template")
		}
	}

	// Link would fail on the missing source in a dry run
	if opts.Link && !(opts.DryRun && result.Created) {
		linked, err := env.run(ctx, opts.Options, reconcile.OpMaterialize, logger)
		if err != nil {
			return nil, err
		}
		result.Link = linked
	}

	return result, nil
}
