package commands

import (
	"os"

	"github.com/arthur-debert/agentlink/pkg/errors"
)

// ShowResult holds the source file content
type ShowResult struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// Show reads the source file
func Show(opts Options) (*ShowResult, error) {
	env, err := LoadEnvironment(opts)
	if err != nil {
		return nil, err
	}

	data, err := env.FS.ReadFile(env.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "source file %s does not exist", env.Config.Source).
				WithDetail("source", env.Config.Source)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read source file %s", env.Config.Source)
	}

	return &ShowResult{Source: env.Config.Source, Content: string(data)}, nil
}
