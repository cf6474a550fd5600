package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comform/internal/token"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 88, s.LineLength)
	assert.Equal(t, "auto", s.Formatter)
	assert.True(t, s.Safe)
	assert.Equal(t, 8, s.TabWidth)
	assert.Equal(t, token.DefaultPragmas, s.EffectivePragmas())
	assert.NoError(t, s.Validate())
}

func TestLoadComformTable(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[project]
name = "demo"

[tool.black]
line-length = 100

[tool.comform]
line-length = 72
formatter = "ruff"
safe = false
tab-width = 4
extend-pragmas = ["nosec"]
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 72, s.LineLength)
	assert.Equal(t, "ruff", s.Formatter)
	assert.False(t, s.Safe)
	assert.Equal(t, 4, s.TabWidth)
	assert.Equal(t, path, s.Path)
	assert.Contains(t, s.EffectivePragmas(), "nosec")
	assert.Contains(t, s.EffectivePragmas(), "noqa")
}

func TestLoadFallsBackToBlack(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[tool.black]\nline-length = 120\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, s.LineLength)
	assert.True(t, s.Safe)
}

func TestLoadPragmasReplaceDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[tool.comform]\npragmas = []\nextend-pragmas = [\"keep:\"]\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep:"}, s.EffectivePragmas())

	path = writeFile(t, t.TempDir(), "[tool.comform]\npragmas = []\n")
	s, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{}, s.EffectivePragmas())
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":      "[tool.comform\n",
		"unknown key": "[tool.comform]\nline_length = 80\n",
		"bad length":  "[tool.comform]\nline-length = 0\n",
		"bad tab":     "[tool.comform]\ntab-width = -1\n",
		"wrong type":  "[tool.comform]\nline-length = \"wide\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), body)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "[tool.comform]\n")
	nested := filepath.Join(root, "pkg", "sub")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path, got)

	s, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path)
}
