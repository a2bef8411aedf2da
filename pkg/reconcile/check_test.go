package reconcile_test

import (
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/arthur-debert/agentlink/pkg/reconcile"
	"github.com/arthur-debert/agentlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(env *testutil.TestEnvironment)
		want    reconcile.Outcome
		healthy bool
	}{
		{
			name:  "missing",
			setup: func(env *testutil.TestEnvironment) {},
			want:  reconcile.OutcomeMissing,
		},
		{
			name: "linked",
			setup: func(env *testutil.TestEnvironment) {
				env.Symlink("CLAUDE.md", "AGENTS.md")
			},
			want:    reconcile.OutcomeLinked,
			healthy: true,
		},
		{
			name: "linked elsewhere",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("OTHER.md", "other")
				env.Symlink("CLAUDE.md", "OTHER.md")
			},
			want: reconcile.OutcomeLinkedElsewhere,
		},
		{
			name: "broken link",
			setup: func(env *testutil.TestEnvironment) {
				env.Symlink("CLAUDE.md", "gone.md")
			},
			want: reconcile.OutcomeBrokenLink,
		},
		{
			name: "current copy",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("Hello"))))
			},
			want:    reconcile.OutcomeCopyCurrent,
			healthy: true,
		},
		{
			name: "stale copy",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("Goodbye"))))
			},
			want: reconcile.OutcomeCopyStale,
		},
		{
			name: "copy with a different provenance is current",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", string(marker.Render("docs/AGENTS.md", []byte("Hello"))))
			},
			want:    reconcile.OutcomeCopyCurrent,
			healthy: true,
		},
		{
			name: "marker outside the first line is stale",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", "note\n"+string(marker.Render("AGENTS.md", []byte("Hello"))))
			},
			want: reconcile.OutcomeCopyStale,
		},
		{
			name: "foreign",
			setup: func(env *testutil.TestEnvironment) {
				env.WriteFile("CLAUDE.md", "custom rules")
			},
			want: reconcile.OutcomeForeign,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			env.WriteSource("Hello")
			tt.setup(env)
			before := env.Exists("CLAUDE.md")

			r := newReconciler(env, reconcile.ModeAuto)
			result := r.Check(env.Source, env.Path("CLAUDE.md"))

			assert.NoError(t, result.Err)
			assert.Equal(t, tt.want, result.Outcome)
			assert.Equal(t, tt.healthy, result.Outcome.IsHealthy())
			assert.Equal(t, before, env.Exists("CLAUDE.md"), "check must not modify the target")
		})
	}
}

func TestCheck_CopyWithMissingSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("CLAUDE.md", string(marker.Render("AGENTS.md", []byte("Hello"))))

	r := newReconciler(env, reconcile.ModeAuto)
	result := r.Check(env.Source, env.Path("CLAUDE.md"))

	assert.True(t, result.Failed())
	assert.True(t, errors.IsErrorCode(result.Err, errors.ErrSourceNotFound))
}
