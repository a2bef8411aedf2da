package reconcile_test

import (
	"testing"

	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(env *testutil.TestEnvironment)
		want      reconcile.Outcome
		remaining bool
	}{
		{
			name:  "absent",
			setup: func(env *testutil.TestEnvironment) {},
			want:  reconcile.OutcomeAbsent,
		},
		{
			name: "symlink to source",
			setup: func(env *testutil.TestEnvironment) {
				env.Symlink("CLAUDE.md", "AGENTS.md")
			},
			want: reconcile.OutcomeRemovedSymlink,
		},
		{
			name: "symlink elsewhere is still removed",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("OTHER.md", "other")
				env.Symlink("CLAUDE.md", "OTHER.md")
			},
			want: reconcile.OutcomeRemovedSymlink,
		},
		{
			name: "dangling symlink",
			setup: func(env *testutil.TestEnvironment) {
				env.Symlink("CLAUDE.md", "nowhere.md")
			},
			want: reconcile.OutcomeRemovedSymlink,
		},
		{
			name: "managed copy",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("Hello"))))
			},
			want: reconcile.OutcomeRemovedCopy,
		},
		{
			name: "foreign file",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", "custom rules")
			},
			want:      reconcile.OutcomeNotManaged,
			remaining: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			env.WriteSource("Hello")
			tt.setup(env)

			r := newReconciler(env, reconcile.ModeAuto)
			result := r.Remove(env.Path("CLAUDE.md"))

			require.NoError(t, result.Err)
			assert.Equal(t, tt.want, result.Outcome)
			assert.Equal(t, tt.remaining, env.Exists("CLAUDE.md"))
			assert.Equal(t, "Hello", env.ReadFile("AGENTS.md"), "source must never be touched")
		})
	}
}

func TestRemove_KeepsLinkDestination(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteSource("Hello")
	env.WriteFile("OTHER.md", "other")
	env.Symlink("CLAUDE.md", "OTHER.md")

	r := newReconciler(env, reconcile.ModeAuto)
	result := r.Remove(env.Path("CLAUDE.md"))

	assert.Equal(t, reconcile.OutcomeRemovedSymlink, result.Outcome)
	assert.Equal(t, "OTHER.md", result.LinkDest)
	testutil.AssertFileContent(t, env, "OTHER.md", "other")
}

func TestRemove_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteSource("Hello")
	env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("Hello"))))

	r := reconcile.New(reconcile.Options{FS: env.FS, Root: env.Root, DryRun: true})
	result := r.Remove(env.Path("CLAUDE.md"))

	assert.Equal(t, reconcile.OutcomeRemovedCopy, result.Outcome)
	assert.True(t, result.DryRun)
	assert.True(t, env.Exists("CLAUDE.md"))
}
