package strategy

import (
	"go/ast"
	"go/parser"
)

var orderedNames = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "string": true, "byte": true, "rune": true,
}

var floatNames = map[string]bool{"float32": true, "float64": true}

// FromTypeString classifies a type written as Go source text, as found in
// a manifest. params maps type parameter names to their constraint text.
// Named types that are neither predeclared, known nor type parameters are
// assumed to have a Compare method and to be comparable.
func FromTypeString(typ string, params map[string]string, known Known) Strategy {
	if typ == "" {
		return Fallback("unknown", "no type information")
	}

	expr, err := parser.ParseExpr(typ)
	if err != nil {
		return Fallback(typ, "invalid type expression")
	}

	s := fromExpr(expr, params, known)
	s.Type = typ

	return s
}

func fromExpr(expr ast.Expr, params map[string]string, known Known) Strategy {
	switch e := expr.(type) {
	case *ast.Ident:
		return fromIdent(e.Name, params, known)
	case *ast.SelectorExpr:
		return foreign()
	case *ast.IndexExpr, *ast.IndexListExpr:
		return foreign()
	case *ast.StarExpr:
		return Pointer(fromExpr(e.X, params, known))
	case *ast.ArrayType:
		if e.Len == nil {
			return Slice(fromExpr(e.Elt, params, known))
		}

		return Strategy{Compare: CompareOrdered, Hash: HashComparable, CompareIssue: "arrays are not ordered"}
	case *ast.ParenExpr:
		return fromExpr(e.X, params, known)
	}

	return Fallback("", "unsupported type expression")
}

func fromIdent(name string, params map[string]string, known Known) Strategy {
	switch {
	case name == "bool":
		return Bool(name)
	case floatNames[name]:
		return MaybeNaN(name)
	case orderedNames[name]:
		return Ordered(name)
	}

	if constraint, ok := params[name]; ok {
		switch constraint {
		case "cmp.Ordered":
			return MaybeNaN(name)
		case "comparable":
			return Strategy{Compare: CompareOrdered, Hash: HashComparable,
				CompareIssue: "type parameter " + name + " is only comparable"}
		}

		return Fallback(name, "type parameter "+name+" has constraint "+constraint)
	}

	if known != nil {
		if g, ok := known.Lookup(name); ok {
			return fromGenerated(name, g)
		}
	}

	switch name {
	case "any", "error", "complex64", "complex128":
		return Fallback(name, name+" is not ordered")
	}

	return foreign()
}

func fromGenerated(name string, g Generated) Strategy {
	s := Strategy{Type: name, Compare: CompareMethod, Hash: HashMethod}
	if g.Union {
		s = Union(name, name)
	}

	if !g.Compare {
		s.Compare, s.CompareFunc, s.CompareIssue = CompareOrdered, "", name+" has no //cmpby directive"
	}

	if !g.Hash {
		s.Hash, s.HashFunc = HashComparable, ""
		if g.Union {
			s.HashIssue = name + " has no //hashby directive"
		}
	}

	return s
}

func foreign() Strategy {
	return Strategy{Compare: CompareMethod, Hash: HashComparable}
}
