// Package commands implements agentlink's commands on top of the reconcile
// engine. Each function loads the project environment (root, config and
// targets), runs the operation and returns a result for the CLI to render.
package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentlink/pkg/config"
	"github.com/arthur-debert/agentlink/pkg/executor"
	"github.com/arthur-debert/agentlink/pkg/filesystem"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/output"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/arthur-debert/agentlink/pkg/targets"
	"github.com/arthur-debert/agentlink/pkg/types"
	"github.com/rs/zerolog"
)

// Options are shared by every command
type Options struct {
	// Root is the project root; empty means discover it
	Root string
	// DryRun reports what would change without writing
	DryRun bool
	// Mode overrides the configured mode when set
	Mode string
	// Workers overrides the configured worker count when positive
	Workers int
	// Targets restricts a batch to these configured targets
	Targets []string
	// FS defaults to the OS filesystem
	FS types.FS
}

// Environment is the loaded project context
type Environment struct {
	Paths  paths.Paths
	Config *config.Config
	FS     types.FS
	// Source is the absolute source path
	Source string
}

// BatchResult is the outcome of link, sync, unlink or status
type BatchResult struct {
	Report  *executor.Report
	Display *output.Report
	Env     *Environment
}

// Failed reports whether any target failed
func (b *BatchResult) Failed() bool {
	return b.Report.HasFailures()
}

// Unhealthy reports whether a status batch found targets needing attention
func (b *BatchResult) Unhealthy() bool {
	return len(b.Report.Unhealthy()) > 0
}

// LoadEnvironment resolves the project root and loads configuration
func LoadEnvironment(opts Options) (*Environment, error) {
	p, err := paths.New(opts.Root)
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if opts.Mode != "" {
		overrides["mode"] = opts.Mode
	}
	if opts.Workers > 0 {
		overrides["workers"] = opts.Workers
	}

	cfg, err := config.Load(config.LoadOptions{
		UserConfigPath:    p.UserConfigPath(),
		ProjectConfigPath: p.ProjectConfigPath(),
		Overrides:         overrides,
	})
	if err != nil {
		return nil, err
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Environment{
		Paths:  p,
		Config: cfg,
		FS:     fs,
		Source: p.Resolve(cfg.Source),
	}, nil
}

// Link materializes every target
func Link(ctx context.Context, opts Options) (*BatchResult, error) {
	return runBatch(ctx, opts, reconcile.OpMaterialize)
}

// Sync refreshes managed copies from the source
func Sync(ctx context.Context, opts Options) (*BatchResult, error) {
	return runBatch(ctx, opts, reconcile.OpSync)
}

// Unlink removes every symlink and managed copy among the targets
func Unlink(ctx context.Context, opts Options) (*BatchResult, error) {
	return runBatch(ctx, opts, reconcile.OpRemove)
}

// Status reports the state of every target without changing anything
func Status(ctx context.Context, opts Options) (*BatchResult, error) {
	return runBatch(ctx, opts, reconcile.OpCheck)
}

func runBatch(ctx context.Context, opts Options, op reconcile.Operation) (*BatchResult, error) {
	logger := logging.GetLogger("commands")

	env, err := LoadEnvironment(opts)
	if err != nil {
		return nil, err
	}
	return env.run(ctx, opts, op, logger.With().Str("command", string(op)).Logger())
}

func (env *Environment) run(ctx context.Context, opts Options, op reconcile.Operation, logger zerolog.Logger) (*BatchResult, error) {
	resolved, err := targets.Resolve(targets.Options{
		Root:    env.Paths.ProjectRoot(),
		Source:  env.Config.Source,
		Targets: env.Config.Targets,
		Ignore:  env.Config.Ignore,
		Only:    opts.Targets,
	})
	if err != nil {
		return nil, err
	}

	// Check never writes, so dry run is meaningless for status
	dryRun := opts.DryRun && op != reconcile.OpCheck

	r := reconcile.New(reconcile.Options{
		FS:     env.FS,
		Root:   env.Paths.ProjectRoot(),
		Mode:   env.Config.ReconcileMode(),
		DryRun: dryRun,
	})
	ex := executor.New(executor.Options{
		Reconciler: r,
		Source:     env.Source,
		Workers:    env.Config.Workers,
		Logger:     logger,
	})

	logger.Info().
		Str("root", env.Paths.ProjectRoot()).
		Str("source", env.Config.Source).
		Int("targets", len(resolved)).
		Str("mode", string(r.Mode())).
		Bool("dry_run", dryRun).
		Msg("Running batch")

	report, err := ex.Execute(ctx, op, targets.Paths(resolved))
	if err != nil {
		return nil, err
	}

	return &BatchResult{
		Report:  report,
		Display: output.NewReport(report, env.Config.Source, env.Paths.Rel),
		Env:     env,
	}, nil
}

// fileExists reports whether anything exists at path, including a dangling link
func fileExists(fs types.FS, path string) bool {
	_, err := fs.Lstat(path)
	return err == nil
}

// ensureDir creates the parent directory of path
func ensureDir(fs types.FS, path string) error {
	return fs.MkdirAll(filepath.Dir(path), os.FileMode(0755))
}
