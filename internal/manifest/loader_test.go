package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const colorsYAML = `
version: "1"
package: colors
definitions:
  - name: RGB
    kind: array
    cmpby: ["Luma()", "_fields"]
    hashby: "Luma()"
    members:
      - {type: uint8, markers: cmpby}
      - {type: uint8}
      - {type: uint8, markers: [cmpby, hashby]}
    types:
      "Luma()": float64
  - name: Shape
    derive: [cmpby, hashby]
    variants:
      - name: Circle
        members:
          - {name: R, type: float64, markers: [cmpby, hashby]}
      - name: Square
        pointer: true
        members:
          - {name: Side, type: int, markers: cmpby}
  - name: Scene
    derive: cmpby
    members:
      - {name: Main, type: Shape, markers: cmpby}
      - {name: Title, type: string}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(colorsYAML))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "colors", f.Package)
	assert.Equal(t, "colors", f.PkgPath)
	require.Len(t, f.Definitions, 3)

	rgb := f.Definitions[0]
	assert.Equal(t, StringOrArray{"Luma()", "_fields"}, rgb.Cmpby)
	assert.Equal(t, StringOrArray{"Luma()"}, rgb.Hashby)
	assert.Equal(t, StringOrArray{"cmpby"}, rgb.Members[0].Markers)
	assert.Empty(t, rgb.Members[1].Markers)
	assert.Equal(t, "float64", rgb.Types["Luma()"])
	assert.Equal(t, 5, rgb.Line)

	shape := f.Definitions[1]
	assert.Equal(t, KindUnion, shape.Kind, "kind is inferred from variants")
	assert.True(t, shape.Variants[1].Pointer)
	assert.Equal(t, 18, shape.Variants[0].Line)

	scene := f.Definitions[2]
	assert.Equal(t, KindStruct, scene.Kind)
	assert.Equal(t, StringOrArray{"cmpby"}, scene.Derive)
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(`
dir: ./pkg/colors
definitions:
  - name: RGB
    members:
      - {type: uint8}
`))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "colors", f.Package)
	assert.Equal(t, KindArray, f.Definitions[0].Kind)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("definitions: {name: [}"))
	require.Error(t, err)

	_, err = Parse([]byte(`
definitions:
  - name: X
    cmpby: {a: b}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmpby.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: colors\ndir: out\n"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path)
	assert.Equal(t, filepath.Join(dir, "out"), f.Dir)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	f, err := Parse([]byte(colorsYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(f, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Single-element lists are written back as scalars.
	assert.Contains(t, string(data), "hashby: Luma()")
	assert.NotContains(t, string(data), "line")

	again, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Definitions[0].Cmpby, again.Definitions[0].Cmpby)
	assert.Equal(t, f.Definitions[1].Variants[1].Name, again.Definitions[1].Variants[1].Name)
}
