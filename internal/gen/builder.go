package gen

import (
	"strconv"

	"cmpby-generator/internal/common"
	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/fold"
	"cmpby-generator/internal/keyexpr"
	"cmpby-generator/internal/parse"
	"cmpby-generator/internal/strategy"
)

// builder renders one valid derivation.
type builder struct {
	config GeneratorConfig
	unit   *Unit
	def    *definition.Definition
	input  *parse.ParsedInput
	rt     string
	diags  *diagnostic.Diagnostics
	kind   DeriveKind
	needs  needs
	// extra are imports the declaration itself needs.
	extra []string
	// unreadable collects keys that cannot be read from their owner.
	unreadable diagnostic.List
}

type needs strategy.Needs

func (n needs) imports(runtime string) []string {
	var out []string

	s := strategy.Needs(n)
	if s.Has(strategy.NeedsCmp) {
		out = append(out, "cmp")
	}

	if s.Has(strategy.NeedsSlices) {
		out = append(out, "slices")
	}

	if s.Has(strategy.NeedsMaphash) {
		out = append(out, "hash/maphash")
	}

	if s.Has(strategy.NeedsRuntime) {
		out = append(out, runtime)
	}

	return out
}

// leaves resolves the strategy of every key read from owner, reporting
// fallbacks as warnings and unreadable keys as errors.
func (b *builder) leaves(owner string, keys []keyexpr.Key) []fold.Leaf {
	out := make([]fold.Leaf, 0, len(keys))

	for _, k := range keys {
		s := strategy.Fallback(common.UnknownStr, "no type information")
		if b.unit.Typer != nil {
			s = b.unit.Typer.KeyStrategy(owner, k)
		}

		if s.Unreadable != "" {
			b.unreadable = append(b.unreadable,
				diagnostic.Errorf(k.Pos, diagnostic.CodeUnknownKey, "key `%s`: %s", k.String(), s.Unreadable))

			continue
		}

		warning := s.CompareWarning(k.String())
		if b.kind == DeriveHash {
			warning = s.HashWarning(k.String())
		}

		if warning != "" {
			b.diags.AddWarning(k.Pos, diagnostic.CodeUnresolvedType, warning, b.def.Name)
		}

		out = append(out, fold.Leaf{Key: k, Strategy: s})
	}

	if b.kind == DeriveHash {
		b.needs |= needs(fold.HashNeeds(out))
	} else {
		b.needs |= needs(fold.CompareNeeds(out))
	}

	return out
}

func (b *builder) receiver(reserved ...string) string {
	for _, p := range b.def.Generics.Params {
		reserved = append(reserved, p.Name)
	}

	return common.ReceiverName(b.def.Name, reserved...)
}

func (b *builder) recordCompare() (string, error) {
	recv := b.receiver("other", "c")

	top := b.leaves(b.def.Name, b.input.TopKeys.Keys)
	members := b.leaves(b.def.Name, b.input.Fields.Record)

	terms := fold.Splice(
		fold.CompareTerms(top, recv, "other", b.rt),
		b.input.TopKeys.Splice,
		fold.CompareTerms(members, recv, "other", b.rt),
	)

	return execute(recordCompareTemplate, recordData{
		Recv:     recv,
		Type:     b.def.Instance(),
		Body:     fold.Chain(terms),
		Comments: b.config.GenerateComments,
	})
}

func (b *builder) recordHash() (string, error) {
	recv := b.receiver("h")
	b.needs |= needs(strategy.NeedsMaphash)

	top := b.leaves(b.def.Name, b.input.TopKeys.Keys)
	members := b.leaves(b.def.Name, b.input.Fields.Record)

	stmts := fold.Splice(
		fold.HashStmts(top, "h", recv, b.rt),
		-1,
		fold.HashStmts(members, "h", recv, b.rt),
	)

	return execute(recordHashTemplate, recordData{
		Recv:     recv,
		Type:     b.def.Instance(),
		Body:     fold.Accumulate(stmts),
		Comments: b.config.GenerateComments,
	})
}

func (b *builder) unionCompare() (string, error) {
	name := b.def.Name
	args := b.def.Generics.Arguments()

	b.extra = b.def.Generics.Imports()

	data := unionData{
		Name:       name,
		Compare:    common.FuncName("Compare", name),
		Equal:      common.FuncName("Equal", name),
		Less:       common.FuncName("Less", name),
		Dispatch:   "compare" + common.ExportedName(name) + "Variants",
		TypeParams: b.def.Generics.Declaration(),
		Type:       b.def.Instance(),
		Comments:   b.config.GenerateComments,
	}

	top := fold.CompareTerms(b.leaves(name, b.input.TopKeys.Keys), "x", "y", b.rt)

	for _, vk := range b.input.Fields.Variants {
		if len(vk.Keys) == 0 {
			continue
		}

		leaves := b.leaves(vk.Variant.Name, vk.Keys)
		body := fold.Chain(fold.CompareTerms(leaves, "a", "b", b.rt))

		for _, c := range vk.Variant.CaseTypes(args) {
			data.Arms = append(data.Arms, armData{Case: c, Body: body})
		}
	}

	var dispatch []string
	if len(data.Arms) > 0 {
		dispatch = []string{data.Dispatch + "(x, y)"}
	}

	data.Body = fold.Chain(fold.Splice(top, b.input.TopKeys.Splice, dispatch))

	return execute(unionCompareTemplate, data)
}

func (b *builder) unionHash() (string, error) {
	name := b.def.Name
	args := b.def.Generics.Arguments()
	b.needs |= needs(strategy.NeedsMaphash)
	b.extra = b.def.Generics.Imports()

	data := unionData{
		Name:       name,
		Hash:       common.FuncName("Hash", name),
		TypeParams: b.def.Generics.Declaration(),
		Type:       b.def.Instance(),
		Comments:   b.config.GenerateComments,
	}

	data.Body = fold.Accumulate(fold.HashStmts(b.leaves(name, b.input.TopKeys.Keys), "h", "x", b.rt))

	for _, vk := range b.input.Fields.Variants {
		if len(vk.Keys) == 0 {
			continue
		}

		leaves := b.leaves(vk.Variant.Name, vk.Keys)
		stmts := append([]string{ordinalStmt(vk.Variant.Ordinal)}, fold.HashStmts(leaves, "h", "a", b.rt)...)
		body := fold.Accumulate(stmts)

		for _, c := range vk.Variant.CaseTypes(args) {
			data.Arms = append(data.Arms, armData{Case: c, Body: body})
		}
	}

	return execute(unionHashTemplate, data)
}

// ordinalStmt writes the variant ordinal that separates equal keys of
// different variants.
func ordinalStmt(ordinal int) string {
	if ordinal <= 0xff {
		return "_ = h.WriteByte(" + strconv.Itoa(ordinal) + ")"
	}

	return "maphash.WriteComparable(h, " + strconv.Itoa(ordinal) + ")"
}
