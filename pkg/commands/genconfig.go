package commands

import (
	"github.com/arthur-debert/agentlink/pkg/config"
	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
)

// GenConfigOptions configures GenConfig
type GenConfigOptions struct {
	Options
	// Write saves the content to the project config file
	Write bool
	// Defaults emits the commented embedded defaults instead of the
	// effective configuration
	Defaults bool
}

// GenConfigResult holds the generated config
type GenConfigResult struct {
	Content string `json:"content"`
	// Path is set when Write was requested
	Path    string `json:"path,omitempty"`
	Written bool   `json:"written"`
}

// GenConfig outputs or writes a project configuration file. An existing
// project config is never overwritten.
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	env, err := LoadEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &GenConfigResult{}
	if opts.Defaults {
		result.Content = config.GenerateConfigContent()
	} else {
		data, err := config.Marshal(env.Config)
		if err != nil {
			return nil, err
		}
		result.Content = string(data)
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	result.Path = env.Paths.ProjectConfigPath()
	if fileExists(env.FS, result.Path) {
		logger.Warn().Str("path", result.Path).Msg("Config file already exists, skipping")
		return result, nil
	}
	if opts.DryRun {
		return result, nil
	}

	if err := env.FS.WriteFile(result.Path, []byte(result.Content), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", result.Path)
	}
	result.Written = true
	logger.Info().Str("path", result.Path).Msg("Written config file")

	return result, nil
}
