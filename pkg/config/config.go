package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/arthur-debert/agentlink/pkg/targets"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes configuration environment variables
const EnvPrefix = "AGENTLINK_"

// Config is the effective configuration
type Config struct {
	Source  string   `koanf:"source" toml:"source"`
	Targets []string `koanf:"targets" toml:"targets"`
	Ignore  []string `koanf:"ignore" toml:"ignore"`
	Mode    string   `koanf:"mode" toml:"mode"`
	Workers int      `koanf:"workers" toml:"workers"`
}

// envKeys are the config keys settable through the environment
var envKeys = map[string]bool{
	"source":  true,
	"targets": true,
	"ignore":  true,
	"mode":    true,
	"workers": true,
}

// LoadOptions names the files to layer over the defaults. Empty paths and
// missing files are skipped.
type LoadOptions struct {
	UserConfigPath    string
	ProjectConfigPath string
	// Overrides are applied last, keyed like the config file
	Overrides map[string]interface{}
}

// Load builds the effective configuration and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2-3. User and project files
	for _, path := range []string{opts.UserConfigPath, opts.ProjectConfigPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access config file %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !envKeys[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults
func Default() (*Config, error) {
	return Load(LoadOptions{})
}

// normalize trims list entries and drops blanks left by comma splitting
func (c *Config) normalize() {
	c.Source = strings.TrimSpace(c.Source)
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Targets = compact(c.Targets)
	c.Ignore = compact(c.Ignore)
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := paths.ValidateProjectPath(c.Source); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid source %q", c.Source).
			WithDetail("field", "source")
	}

	if _, err := reconcile.ParseMode(c.Mode); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid mode").
			WithDetail("field", "mode")
	}

	if c.Workers < 0 {
		return errors.Newf(errors.ErrConfigValid, "workers must not be negative (got %d)", c.Workers).
			WithDetail("field", "workers")
	}

	if err := targets.ValidatePatterns(c.Ignore); err != nil {
		return err
	}

	source := paths.NormalizeProjectPath(c.Source)
	seen := make(map[string]string, len(c.Targets))
	for _, t := range c.Targets {
		if err := paths.ValidateProjectPath(t); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid target %q", t).
				WithDetail("field", "targets")
		}
		norm := paths.NormalizeProjectPath(t)
		if norm == source {
			return errors.Newf(errors.ErrConfigValid, "target %q is the source file", t).
				WithDetail("field", "targets")
		}
		if first, dup := seen[norm]; dup {
			return errors.Newf(errors.ErrConfigValid, "target %q is listed twice (also as %q)", t, first).
				WithDetail("field", "targets")
		}
		seen[norm] = t
	}

	return nil
}

// ReconcileMode returns the parsed mode
func (c *Config) ReconcileMode() reconcile.Mode {
	mode, err := reconcile.ParseMode(c.Mode)
	if err != nil {
		return reconcile.ModeAuto
	}
	return mode
}
