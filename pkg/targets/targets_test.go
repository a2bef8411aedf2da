package targets

import (
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rels(ts []Target) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Rel
	}
	return out
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "keeps configured order",
			opts: Options{Targets: []string{"GEMINI.md", "CLAUDE.md", ".cursorrules"}},
			want: []string{"GEMINI.md", "CLAUDE.md", ".cursorrules"},
		},
		{
			name: "drops duplicates after normalizing",
			opts: Options{Targets: []string{"CLAUDE.md", "./CLAUDE.md", "docs/../CLAUDE.md", "GEMINI.md"}},
			want: []string{"CLAUDE.md", "GEMINI.md"},
		},
		{
			name: "excludes the source",
			opts: Options{Source: "AGENTS.md", Targets: []string{"AGENTS.md", "CLAUDE.md"}},
			want: []string{"CLAUDE.md"},
		},
		{
			name: "ignore by base name",
			opts: Options{
				Targets: []string{"CLAUDE.md", ".amazonq/rules/AGENTS.md", ".kiro/steering/AGENTS.md"},
				Ignore:  []string{"AGENTS.md"},
			},
			want: []string{"CLAUDE.md"},
		},
		{
			name: "ignore with doublestar",
			opts: Options{
				Targets: []string{"CLAUDE.md", ".github/copilot-instructions.md", ".kiro/steering/AGENTS.md"},
				Ignore:  []string{".kiro/**", "**/copilot-*"},
			},
			want: []string{"CLAUDE.md"},
		},
		{
			name: "only selects a subset",
			opts: Options{
				Targets: []string{"CLAUDE.md", "GEMINI.md", ".cursorrules"},
				Only:    []string{".cursorrules", "./CLAUDE.md"},
			},
			want: []string{"CLAUDE.md", ".cursorrules"},
		},
		{
			name: "empty list",
			opts: Options{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Root = "/project"
			got, err := Resolve(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rels(got))
		})
	}
}

func TestResolve_AbsolutePaths(t *testing.T) {
	got, err := Resolve(Options{Root: "/project", Targets: []string{".github/copilot-instructions.md"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/project/.github/copilot-instructions.md", got[0].Path)
	assert.Equal(t, []string{"/project/.github/copilot-instructions.md"}, Paths(got))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.ErrorCode
	}{
		{name: "absolute target", opts: Options{Targets: []string{"/etc/CLAUDE.md"}}, code: errors.ErrConfigValid},
		{name: "escaping target", opts: Options{Targets: []string{"../CLAUDE.md"}}, code: errors.ErrConfigValid},
		{name: "bad pattern", opts: Options{Targets: []string{"CLAUDE.md"}, Ignore: []string{"[oops"}}, code: errors.ErrConfigValid},
		{name: "empty pattern", opts: Options{Targets: []string{"CLAUDE.md"}, Ignore: []string{""}}, code: errors.ErrConfigValid},
		{name: "unknown only", opts: Options{Targets: []string{"CLAUDE.md"}, Only: []string{"GEMINI.md"}}, code: errors.ErrInvalidInput},
		{name: "only names an ignored target", opts: Options{Targets: []string{"CLAUDE.md"}, Ignore: []string{"CLAUDE.md"}, Only: []string{"CLAUDE.md"}}, code: errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Root = "/project"
			_, err := Resolve(tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
		})
	}
}

func TestIgnored(t *testing.T) {
	pattern, ok := Ignored(".github/copilot-instructions.md", []string{"*.txt", ".github/*"})
	assert.True(t, ok)
	assert.Equal(t, ".github/*", pattern)

	_, ok = Ignored("CLAUDE.md", []string{"*.txt", ".github/*"})
	assert.False(t, ok)
}
