package strategy

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSrc = `package p

import (
	"cmp"
	"hash/maphash"
)

type Version struct{ Major int }

func (v Version) Compare(o Version) int { return cmp.Compare(v.Major, o.Major) }

func (v Version) Hash(h *maphash.Hash) { maphash.WriteComparable(h, v.Major) }

type Note interface{ note() }

type Rec struct{ A int }

type Fields struct {
	I  int
	S  string
	B  bool
	C  complex128
	V  Version
	PV *Version
	SV []Version
	PI *int
	SI []string
	PB *bool
	N  Note
	R  Rec
	M  map[string]int
	SB []bool
	F  float64
	PF *float32
	SF []float64
	T  Temp
}

type Temp float64

type Box[T cmp.Ordered] struct{ V T }

type Any[T any] struct{ V T }
`

func loadFixture(t *testing.T) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", fixtureSrc, 0)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("p", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	return pkg
}

func fieldType(t *testing.T, pkg *types.Package, typeName, field string) types.Type {
	t.Helper()

	st, ok := pkg.Scope().Lookup(typeName).Type().Underlying().(*types.Struct)
	require.True(t, ok)

	for i := range st.NumFields() {
		if st.Field(i).Name() == field {
			return st.Field(i).Type()
		}
	}

	require.FailNow(t, "field not found", field)

	return nil
}

func TestFromType(t *testing.T) {
	pkg := loadFixture(t)
	known := KnownMap{
		"Note": {Compare: true, Hash: true, Union: true},
		"Rec":  {Compare: true},
	}

	tests := []struct {
		field        string
		compare      CompareKind
		hash         HashKind
		compareIssue bool
		hashIssue    bool
	}{
		{field: "I", compare: CompareOrdered, hash: HashComparable},
		{field: "S", compare: CompareOrdered, hash: HashComparable},
		{field: "B", compare: CompareBool, hash: HashComparable},
		{field: "C", compare: CompareOrdered, hash: HashComparable, compareIssue: true},
		{field: "V", compare: CompareMethod, hash: HashMethod},
		{field: "PV", compare: CompareMethodPointer, hash: HashMethodPointer},
		{field: "SV", compare: CompareMethodSlice, hash: HashMethodSlice},
		{field: "PI", compare: CompareOrderedPointer, hash: HashComparablePointer},
		{field: "SI", compare: CompareOrderedSlice, hash: HashComparableSlice},
		{field: "PB", compare: CompareBoolPointer, hash: HashComparablePointer},
		{field: "N", compare: CompareFunc, hash: HashFunc},
		{field: "R", compare: CompareMethod, hash: HashComparable},
		{field: "M", compare: CompareOrdered, hash: HashComparable, compareIssue: true, hashIssue: true},
		{field: "SB", compare: CompareOrdered, hash: HashComparableSlice, compareIssue: true},
		{field: "F", compare: CompareOrdered, hash: HashOrdered},
		{field: "PF", compare: CompareOrderedPointer, hash: HashOrderedPointer},
		{field: "SF", compare: CompareOrderedSlice, hash: HashOrderedSlice},
		{field: "T", compare: CompareOrdered, hash: HashOrdered},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			s := FromType(fieldType(t, pkg, "Fields", tt.field), pkg, known)
			assert.Equal(t, tt.compare, s.Compare, "compare kind %s", s.Compare)
			assert.Equal(t, tt.hash, s.Hash, "hash kind %s", s.Hash)
			assert.Equal(t, tt.compareIssue, s.CompareIssue != "", s.CompareIssue)
			assert.Equal(t, tt.hashIssue, s.HashIssue != "", s.HashIssue)
		})
	}
}

func TestFromType_UnionFuncNames(t *testing.T) {
	pkg := loadFixture(t)
	known := KnownMap{"Note": {Compare: true, Hash: true, Union: true}}

	s := FromType(fieldType(t, pkg, "Fields", "N"), pkg, known)
	assert.Equal(t, "CompareNote", s.CompareFunc)
	assert.Equal(t, "HashNote", s.HashFunc)
	assert.Equal(t, "Note", s.Type)
}

func TestFromType_TypeParams(t *testing.T) {
	pkg := loadFixture(t)

	ordered := FromType(fieldType(t, pkg, "Box", "V"), pkg, nil)
	assert.Equal(t, CompareOrdered, ordered.Compare)
	assert.Empty(t, ordered.CompareIssue)
	assert.Equal(t, HashOrdered, ordered.Hash)

	anything := FromType(fieldType(t, pkg, "Any", "V"), pkg, nil)
	assert.Equal(t, CompareOrdered, anything.Compare)
	assert.Contains(t, anything.CompareIssue, "type parameter T")
	assert.NotEmpty(t, anything.HashIssue)
}

func TestFromType_UnknownNamesIgnoredOutsidePackage(t *testing.T) {
	pkg := loadFixture(t)
	other := types.NewPackage("q", "q")
	known := KnownMap{"Rec": {Compare: true, Hash: true}}

	// Rec is looked up only for the package being generated.
	s := FromType(fieldType(t, pkg, "Fields", "R"), other, known)
	assert.Equal(t, CompareOrdered, s.Compare)
	assert.NotEmpty(t, s.CompareIssue)
}
