package helpers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileGlobs(t *testing.T) {
	globs, err := CompileGlobs([]string{"*_pb2.py", ".venv"}, "exclude")
	require.NoError(t, err)
	assert.True(t, MatchAny(globs, "api_pb2.py"))
	assert.True(t, MatchAny(globs, ".venv"))
	assert.False(t, MatchAny(globs, "main.py"))

	_, err = CompileGlobs([]string{"[a-"}, "exclude")
	assert.ErrorContains(t, err, "invalid exclude pattern")
}

func TestUniqueScanRoots(t *testing.T) {
	root := t.TempDir()
	roots := UniqueScanRoots([]string{
		filepath.Join(root, "b"),
		filepath.Join(root, "a"),
		filepath.Join(root, "b", "."),
	})
	assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "b")}, roots)
}

func TestFindContainingRoot(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")

	got, err := FindContainingRoot(filepath.Join(src, "pkg", "mod.py"), []string{filepath.Join(root, "docs"), src})
	require.NoError(t, err)
	assert.Equal(t, src, got)

	_, err = FindContainingRoot(filepath.Join(root, "other.py"), []string{src})
	assert.Error(t, err)
}

func TestDisplayPath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	tests := []struct {
		name string
		root string
		path string
		want string
	}{
		{"inside", root, filepath.Join(root, "pkg", "a.py"), "pkg/a.py"},
		{"outside", root, filepath.Join(string(filepath.Separator), "elsewhere", "a.py"), filepath.Join(string(filepath.Separator), "elsewhere", "a.py")},
		{"no root", "", "a.py", "a.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayPath(tt.root, tt.path))
		})
	}
}
