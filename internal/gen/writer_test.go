package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	files := []GeneratedFile{
		{Filename: "a_cmpby.go", Dir: filepath.Join(dir, "a"), Content: []byte("package a\n")},
		{Filename: "b_cmpby.go", Dir: filepath.Join(dir, "b"), Content: []byte("package b\n")},
	}

	require.NoError(t, WriteFiles(files, ""))

	content, err := os.ReadFile(filepath.Join(dir, "a", "a_cmpby.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(content))
	assert.FileExists(t, filepath.Join(dir, "b", "b_cmpby.go"))
}

func TestWriteFiles_OutputDirOverride(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	files := []GeneratedFile{{Filename: "a_cmpby.go", Dir: filepath.Join(dir, "a"), Content: []byte("package a\n")}}

	require.NoError(t, WriteFiles(files, out))

	assert.FileExists(t, filepath.Join(out, "a_cmpby.go"))
	assert.NoDirExists(t, filepath.Join(dir, "a"))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "notes_cmpby.go", []byte("package notes\nfunc {")))
	assert.FileExists(t, filepath.Join(dir, "notes_cmpby.unformatted.go"))

	require.NoError(t, writeDebugUnformatted("", "notes_cmpby.go", nil))
}
