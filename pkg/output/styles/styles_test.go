package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStyles(t *testing.T) {
	for _, name := range []string{"Header", "Target", "Success", "Changed", "Skipped", "Drift", "Error", "Muted", "DryRun"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %s should be defined", name)
	}
	assert.True(t, GetStyle("Error").GetBold())
	assert.True(t, GetStyle("DryRun").GetItalic())
}

func TestGetStyle_Unknown(t *testing.T) {
	style := GetStyle("NoSuchStyle")
	assert.Equal(t, "text", style.Render("text"))
}

func TestLoadStyles(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, LoadStylesFromBytes(defaultStyles))
	})

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  red: {light: "#ff0000", dark: "#ff0000"}
styles:
  Error:
    underline: true
    foreground: red
`), 0644))

	require.NoError(t, LoadStyles(path))
	assert.True(t, GetStyle("Error").GetUnderline())
	assert.False(t, GetStyle("Error").GetBold())
	_, ok := StyleRegistry["Success"]
	assert.False(t, ok, "a custom file replaces the defaults")
}

func TestLoadStyles_Errors(t *testing.T) {
	before := len(StyleRegistry)

	assert.Error(t, LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, LoadStylesFromBytes([]byte("styles: [not, a, map]")))
	assert.Equal(t, before, len(StyleRegistry), "registry unchanged after a failed load")
}
