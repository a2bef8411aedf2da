package executor_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/executor"
	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/arthur-debert/agentlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultTargets = []string{"CLAUDE.md", "GEMINI.md", ".github/copilot-instructions.md", ".cursorrules"}

func newExecutor(env *testutil.TestEnvironment, fsys types.FS, workers int) *executor.Executor {
	if fsys == nil {
		fsys = env.FS
	}
	r := reconcile.New(reconcile.Options{FS: fsys, Root: env.Root})
	return executor.New(executor.Options{Reconciler: r, Source: env.Source, Workers: workers})
}

func absTargets(env *testutil.TestEnvironment, rels []string) []string {
	out := make([]string, len(rels))
	for i, rel := range rels {
		out[i] = env.Path(rel)
	}
	return out
}

func TestExecute_LinkAllTargets(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteSource("Hello")

	report, err := newExecutor(env, nil, 2).Execute(context.Background(), reconcile.OpMaterialize, absTargets(env, defaultTargets))
	require.NoError(t, err)

	require.Len(t, report.Results, len(defaultTargets))
	assert.False(t, report.HasFailures())
	for i, rel := range defaultTargets {
		assert.Equal(t, env.Path(rel), report.Results[i].Target, "results keep target order")
		assert.Equal(t, reconcile.OutcomeCreatedSymlink, report.Results[i].Outcome)
		testutil.AssertSymlinkToSource(t, env, rel)
	}
	assert.Equal(t, len(defaultTargets), report.Counts()[reconcile.OutcomeCreatedSymlink])
}

func TestExecute_CopyFallbackForWholeBatch(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("Hello")
	env.WriteFile("GEMINI.md", "custom rules")

	report, err := newExecutor(env, nil, 0).Execute(context.Background(), reconcile.OpMaterialize, absTargets(env, defaultTargets))
	require.NoError(t, err)

	assert.False(t, report.HasFailures(), "skipped foreign files are not failures")
	assert.Equal(t, reconcile.OutcomeSkippedForeign, report.Results[1].Outcome)
	assert.Equal(t, 3, report.Counts()[reconcile.OutcomeCreatedCopy])
	testutil.AssertManagedCopy(t, env, ".github/copilot-instructions.md", "Hello")
	testutil.AssertFileContent(t, env, "GEMINI.md", "custom rules")
}

func TestExecute_MissingSourceIsFatal(t *testing.T) {
	for _, op := range []reconcile.Operation{reconcile.OpMaterialize, reconcile.OpSync, reconcile.OpCheck} {
		t.Run(string(op), func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

			report, err := newExecutor(env, nil, 1).Execute(context.Background(), op, absTargets(env, defaultTargets))
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
			assert.False(t, env.Exists("CLAUDE.md"))
		})
	}
}

func TestExecute_RemoveWithoutSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("Hello"))))

	report, err := newExecutor(env, nil, 1).Execute(context.Background(), reconcile.OpRemove, absTargets(env, []string{"CLAUDE.md", "GEMINI.md"}))
	require.NoError(t, err)

	assert.Equal(t, reconcile.OutcomeRemovedCopy, report.Results[0].Outcome)
	assert.Equal(t, reconcile.OutcomeAbsent, report.Results[1].Outcome)
	assert.False(t, env.Exists("CLAUDE.md"))
}

func TestExecute_UnknownOperation(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("Hello")

	_, err := newExecutor(env, nil, 1).Execute(context.Background(), reconcile.Operation("explode"), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

// panicFS panics when inspecting paths containing a marker string
type panicFS struct {
	types.FS
	trigger string
}

func (p panicFS) Lstat(name string) (fs.FileInfo, error) {
	if strings.Contains(name, p.trigger) {
		panic("disk on fire")
	}
	return p.FS.Lstat(name)
}

func TestExecute_PanicIsolatedToTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteSource("Hello")

	fsys := panicFS{FS: env.FS, trigger: "GEMINI"}
	report, err := newExecutor(env, fsys, 4).Execute(context.Background(), reconcile.OpMaterialize, absTargets(env, defaultTargets))
	require.NoError(t, err)

	assert.Equal(t, 1, report.FailedCount())
	failed := report.Results[1]
	assert.Equal(t, reconcile.OutcomeFailed, failed.Outcome)
	assert.True(t, errors.IsErrorCode(failed.Err, errors.ErrInternal))
	assert.Contains(t, failed.ErrorMessage(), "disk on fire")

	testutil.AssertSymlinkToSource(t, env, "CLAUDE.md")
	testutil.AssertSymlinkToSource(t, env, ".cursorrules")
}

func TestExecute_CancelledContext(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("Hello")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newExecutor(env, nil, 1).Execute(ctx, reconcile.OpMaterialize, absTargets(env, defaultTargets))
	require.NoError(t, err)
	assert.Equal(t, len(defaultTargets), report.FailedCount())
	assert.False(t, env.Exists("CLAUDE.md"))
}

func TestExecute_StatusReport(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteSource("Hello")
	env.Symlink("CLAUDE.md", "AGENTS.md")
	env.WriteFile("GEMINI.md", string(marker.Render("AGENTS.md", []byte("old"))))

	report, err := newExecutor(env, nil, 2).Execute(context.Background(), reconcile.OpCheck, absTargets(env, []string{"CLAUDE.md", "GEMINI.md", ".cursorrules"}))
	require.NoError(t, err)

	assert.False(t, report.HasFailures())
	unhealthy := report.Unhealthy()
	require.Len(t, unhealthy, 2)
	assert.Equal(t, reconcile.OutcomeCopyStale, unhealthy[0].Outcome)
	assert.Equal(t, reconcile.OutcomeMissing, unhealthy[1].Outcome)
}

func TestExecute_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("Hello")
	ex := newExecutor(env, nil, 3)
	targets := absTargets(env, defaultTargets)

	_, err := ex.Execute(context.Background(), reconcile.OpMaterialize, targets)
	require.NoError(t, err)
	second, err := ex.Execute(context.Background(), reconcile.OpMaterialize, targets)
	require.NoError(t, err)

	assert.Equal(t, len(targets), second.Counts()[reconcile.OutcomeAlreadySatisfied])
}

func TestNew_DefaultWorkers(t *testing.T) {
	ex := executor.New(executor.Options{})
	assert.GreaterOrEqual(t, ex.Workers(), 1)
}
