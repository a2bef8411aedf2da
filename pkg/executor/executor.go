package executor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options contains configuration for the executor
type Options struct {
	Reconciler *reconcile.Reconciler
	// Source is the absolute path of the canonical file
	Source string
	// Workers bounds concurrent targets; 0 means the number of CPUs
	Workers int
	Logger  zerolog.Logger
}

// Executor drives a Reconciler over a list of targets
type Executor struct {
	reconciler *reconcile.Reconciler
	source     string
	workers    int
	logger     zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	r := opts.Reconciler
	if r == nil {
		r = reconcile.New(reconcile.Options{})
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Executor{
		reconciler: r,
		source:     opts.Source,
		workers:    workers,
		logger:     logger,
	}
}

// Workers returns the worker pool size
func (e *Executor) Workers() int {
	return e.workers
}

// Execute runs op once per target. The returned error is non-nil only for
// batch-level problems: an unknown operation or a missing source. Per-target
// failures are reported in the Report.
func (e *Executor) Execute(ctx context.Context, op reconcile.Operation, targets []string) (*Report, error) {
	run, err := e.operation(op)
	if err != nil {
		return nil, err
	}

	if op != reconcile.OpRemove {
		if err := e.reconciler.CheckSource(e.source); err != nil {
			return nil, err
		}
	}

	done := logging.LogOperationStart(e.logger, string(op))
	defer done()

	start := time.Now()
	results := make([]reconcile.Result, len(targets))

	workers := e.workers
	if workers > len(targets) {
		workers = len(targets)
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = e.executeTarget(gctx, op, target, run)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{
		Operation: op,
		Source:    e.source,
		DryRun:    e.reconciler.DryRun(),
		Results:   results,
		Duration:  time.Since(start),
	}

	e.logger.Debug().
		Str("operation", string(op)).
		Int("targets", len(targets)).
		Int("failed", report.FailedCount()).
		Int("workers", workers).
		Msg("Batch finished")

	return report, nil
}

// executeTarget runs a single target behind a recover boundary
func (e *Executor) executeTarget(ctx context.Context, op reconcile.Operation, target string, run func(string) reconcile.Result) (result reconcile.Result) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error().
				Str("target", target).
				Interface("panic", p).
				Msg("Target panicked")
			result = failedResult(op, target, errors.Newf(errors.ErrInternal, "panic while processing %s: %v", target, p))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failedResult(op, target, errors.Wrap(err, errors.ErrInternal, "batch cancelled"))
	}

	result = run(target)

	if result.Failed() {
		e.logger.Error().
			Err(result.Err).
			Str("target", target).
			Msg("Target failed")
	} else {
		e.logger.Debug().
			Str("target", target).
			Str("outcome", string(result.Outcome)).
			Msg("Target processed")
	}
	return result
}

// operation maps op onto the reconciler entry point
func (e *Executor) operation(op reconcile.Operation) (func(string) reconcile.Result, error) {
	switch op {
	case reconcile.OpMaterialize:
		return func(target string) reconcile.Result {
			return e.reconciler.Materialize(e.source, target)
		}, nil
	case reconcile.OpSync:
		return func(target string) reconcile.Result {
			return e.reconciler.Sync(e.source, target)
		}, nil
	case reconcile.OpRemove:
		return e.reconciler.Remove, nil
	case reconcile.OpCheck:
		return func(target string) reconcile.Result {
			return e.reconciler.Check(e.source, target)
		}, nil
	default:
		return nil, errors.New(errors.ErrInvalidInput, fmt.Sprintf("unknown operation %q", op))
	}
}

func failedResult(op reconcile.Operation, target string, err error) reconcile.Result {
	return reconcile.Result{
		Operation: op,
		Target:    target,
		Outcome:   reconcile.OutcomeFailed,
		Err:       err,
	}
}
