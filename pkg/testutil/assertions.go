package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/inspect"
	"github.com/arthur-debert/agentlink/pkg/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlinkToSource checks that rel is a symlink resolving to the source
func AssertSymlinkToSource(t *testing.T, env *TestEnvironment, rel string) {
	t.Helper()

	info, err := env.FS.Lstat(env.Path(rel))
	require.NoError(t, err, "%s should exist", rel)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s should be a symlink", rel)

	in := inspect.New(env.FS)
	assert.True(t, in.LinksTo(in.Inspect(env.Path(rel)), env.Source), "%s should link to the source", rel)
}

// AssertManagedCopy checks that rel is a managed copy of the given content
func AssertManagedCopy(t *testing.T, env *TestEnvironment, rel, sourceContent string) {
	t.Helper()

	info, err := env.FS.Lstat(env.Path(rel))
	require.NoError(t, err, "%s should exist", rel)
	require.Zero(t, info.Mode()&os.ModeSymlink, "%s should not be a symlink", rel)

	content := env.ReadFile(rel)
	assert.True(t, strings.HasPrefix(content, marker.Header(DefaultSource)), "%s should start with the managed header", rel)

	body, ok := marker.Strip([]byte(content))
	require.True(t, ok)
	assert.Equal(t, sourceContent, string(body))
}

// AssertFileContent checks that rel is a regular file with exactly content
func AssertFileContent(t *testing.T, env *TestEnvironment, rel, content string) {
	t.Helper()

	info, err := env.FS.Lstat(env.Path(rel))
	require.NoError(t, err, "%s should exist", rel)
	require.True(t, info.Mode().IsRegular(), "%s should be a regular file", rel)
	assert.Equal(t, content, env.ReadFile(rel))
}
