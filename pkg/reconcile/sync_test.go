package reconcile_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync(t *testing.T) {
	tests := []struct {
		name    string
		envType testutil.EnvType
		setup   func(env *testutil.TestEnvironment)
		want    reconcile.Outcome
		check   func(t *testing.T, env *testutil.TestEnvironment)
	}{
		{
			name:    "absent target is a no-op",
			envType: testutil.EnvIsolated,
			setup:   func(env *testutil.TestEnvironment) {},
			want:    reconcile.OutcomeAbsent,
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				assert.False(t, env.Exists("CLAUDE.md"))
			},
		},
		{
			name:    "symlink needs no refresh",
			envType: testutil.EnvIsolated,
			setup: func(env *testutil.TestEnvironment) {
				env.Symlink("CLAUDE.md", "AGENTS.md")
			},
			want: reconcile.OutcomeIsSymlink,
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				testutil.AssertSymlinkToSource(t, env, "CLAUDE.md")
			},
		},
		{
			name:    "symlink to managed content is still a symlink",
			envType: testutil.EnvIsolated,
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("copy.md", string(marker.Render("AGENTS.md", []byte("old"))))
				env.Symlink("CLAUDE.md", "copy.md")
			},
			want: reconcile.OutcomeIsSymlink,
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				testutil.AssertManagedCopy(t, env, "copy.md", "old")
			},
		},
		{
			name:    "foreign file is never overwritten",
			envType: testutil.EnvMemoryOnly,
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", "custom rules")
			},
			want: reconcile.OutcomeNotManaged,
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				testutil.AssertFileContent(t, env, "CLAUDE.md", "custom rules")
			},
		},
		{
			name:    "managed copy is rewritten",
			envType: testutil.EnvMemoryOnly,
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("old"))))
			},
			want: reconcile.OutcomeSynced,
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				testutil.AssertManagedCopy(t, env, "CLAUDE.md", "new content")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, tt.envType)
			env.WriteSource("new content")
			tt.setup(env)

			r := newReconciler(env, reconcile.ModeAuto)
			result := r.Sync(env.Source, env.Path("CLAUDE.md"))

			require.NoError(t, result.Err)
			assert.Equal(t, tt.want, result.Outcome)
			tt.check(t, env)
		})
	}
}

func TestSync_RoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("first\n")

	r := newReconciler(env, reconcile.ModeAuto)
	require.Equal(t, reconcile.OutcomeCreatedCopy, r.Materialize(env.Source, env.Path("CLAUDE.md")).Outcome)

	env.WriteSource("second\n\nwith a paragraph\n")
	result := r.Sync(env.Source, env.Path("CLAUDE.md"))
	assert.Equal(t, reconcile.OutcomeSynced, result.Outcome)
	assert.True(t, result.Changed)

	body, ok := marker.Strip([]byte(env.ReadFile("CLAUDE.md")))
	require.True(t, ok)
	assert.Equal(t, "second\n\nwith a paragraph\n", string(body))

	again := r.Sync(env.Source, env.Path("CLAUDE.md"))
	assert.Equal(t, reconcile.OutcomeSynced, again.Outcome)
	assert.False(t, again.Changed, "an up to date copy is not rewritten")
}

func TestSync_PreservesPermissions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteSource("new")
	path := env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("old"))))
	require.NoError(t, os.Chmod(path, 0600))

	r := newReconciler(env, reconcile.ModeAuto)
	require.Equal(t, reconcile.OutcomeSynced, r.Sync(env.Source, path).Outcome)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSync_MissingSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("old"))))

	r := newReconciler(env, reconcile.ModeAuto)
	result := r.Sync(env.Source, env.Path("CLAUDE.md"))

	assert.True(t, result.Failed())
	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrSourceNotFound))
	testutil.AssertManagedCopy(t, env, "CLAUDE.md", "old")
}

func TestSync_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("new")
	env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("old"))))

	r := reconcile.New(reconcile.Options{FS: env.FS, Root: env.Root, DryRun: true})
	result := r.Sync(env.Source, env.Path("CLAUDE.md"))

	assert.Equal(t, reconcile.OutcomeSynced, result.Outcome)
	assert.True(t, result.Changed)
	testutil.AssertManagedCopy(t, env, "CLAUDE.md", "old")
}
