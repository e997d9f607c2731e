package fold

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"

	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/strategy"
)

func leaf(name string, s strategy.Strategy) Leaf {
	return Leaf{Key: keyexpr.Named(name, token.Position{}), Strategy: s}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name     string
		terms    []string
		expected string
	}{
		{"empty", nil, "return 0\n"},
		{"single", []string{"t1"}, "return t1\n"},
		{
			"several",
			[]string{"t1", "t2", "t3"},
			"if c := t1; c != 0 {\nreturn c\n}\nif c := t2; c != 0 {\nreturn c\n}\nreturn t3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Chain(tt.terms))
		})
	}
}

func TestSplice(t *testing.T) {
	top := []string{"x", "y"}
	members := []string{"a", "b"}

	assert.Equal(t, []string{"a", "b", "x", "y"}, Splice(top, 0, members))
	assert.Equal(t, []string{"x", "a", "b", "y"}, Splice(top, 1, members))
	assert.Equal(t, []string{"x", "y", "a", "b"}, Splice(top, 2, members))
	assert.Equal(t, []string{"x", "y", "a", "b"}, Splice(top, -1, members))
	assert.Equal(t, []string{"a", "b"}, Splice(nil, -1, members))
	assert.Equal(t, []string{"x", "y"}, top, "outer slice must not be modified")
}

func TestCompareTerms(t *testing.T) {
	leaves := []Leaf{
		leaf("A", strategy.Ordered("int")),
		{Key: keyexpr.Key{Segments: []keyexpr.Segment{{Name: "Pitch", Call: true}}}, Strategy: strategy.Method("Pitch")},
	}

	terms := CompareTerms(leaves, "s", "other", "ordering")
	assert.Equal(t, []string{"cmp.Compare(s.A, other.A)", "s.Pitch().Compare(other.Pitch())"}, terms)
	assert.Equal(t, strategy.NeedsCmp, CompareNeeds(leaves))
}

func TestHashStmts(t *testing.T) {
	leaves := []Leaf{
		leaf("A", strategy.Ordered("int")),
		leaf("C", strategy.Pointer(strategy.Ordered("string"))),
	}

	body := Accumulate(HashStmts(leaves, "h", "s", "ordering"))
	assert.Equal(t, "maphash.WriteComparable(h, s.A)\nordering.HashPointer(h, s.C)\n", body)

	needs := HashNeeds(leaves)
	assert.True(t, needs.Has(strategy.NeedsMaphash))
	assert.True(t, needs.Has(strategy.NeedsRuntime))
	assert.False(t, needs.Has(strategy.NeedsCmp))
}

// Swapping independent keys only changes the order of the chain, never
// which terms take part in it.
func TestChain_SwappedKeysKeepTerms(t *testing.T) {
	a := leaf("A", strategy.Ordered("int"))
	b := leaf("B", strategy.Ordered("int"))

	ab := Chain(CompareTerms([]Leaf{a, b}, "s", "other", "ordering"))
	ba := Chain(CompareTerms([]Leaf{b, a}, "s", "other", "ordering"))

	assert.NotEqual(t, ab, ba)
	assert.Contains(t, ab, "cmp.Compare(s.B, other.B)")
	assert.Contains(t, ba, "if c := cmp.Compare(s.B, other.B); c != 0")
}
