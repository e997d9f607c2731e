package keyexpr

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"cmpby-generator/internal/definition"
	"cmpby-generator/internal/diagnostic"
)

// DefaultSentinel is the splice placeholder recognised in comparator lists.
const DefaultSentinel = "_fields"

// allowedForms is appended to every malformed key diagnostic.
const allowedForms = "allowed forms: `Field`, `Method()`, `Inner.Field`, `Inner.Method()`"

// callPrefix wraps the argument text so go/parser sees a call expression.
const callPrefix = "f("

// Options controls parsing of a key list.
type Options struct {
	// Sentinel is the splice placeholder. Empty disables it, and the
	// placeholder text is then rejected like any other malformed item.
	Sentinel string
	// RejectedSentinel is reported with a dedicated message when Sentinel
	// is empty, so hash lists explain why the placeholder is refused.
	RejectedSentinel string
}

// Parse parses the raw argument text of one directive. pos is the position
// of the first character of text. The returned error, if any, is a
// diagnostic.List holding one entry per malformed item.
func Parse(text string, pos token.Position, opts Options) (List, error) {
	list := List{Splice: -1}
	if strings.TrimSpace(text) == "" {
		return list, nil
	}

	fset := token.NewFileSet()
	src := callPrefix + text + ")"

	expr, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return List{Splice: -1}, diagnostic.List{
			diagnostic.Errorf(pos, diagnostic.CodeMalformedKey,
				"cannot parse key list %q: %v", strings.TrimSpace(text), firstLine(err)),
		}
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok || call.Ellipsis.IsValid() {
		return List{Splice: -1}, diagnostic.List{
			diagnostic.Errorf(pos, diagnostic.CodeMalformedKey, "cannot parse key list %q", strings.TrimSpace(text)),
		}
	}

	var errs diagnostic.List

	for _, arg := range call.Args {
		start := fset.Position(arg.Pos()).Offset - len(callPrefix)
		end := fset.Position(arg.End()).Offset - len(callPrefix)
		itemText := text[start:end]
		itemPos := shift(pos, start)

		if opts.Sentinel != "" && itemText == opts.Sentinel {
			if list.HasSplice() {
				errs = append(errs, diagnostic.Errorf(itemPos, diagnostic.CodeMalformedKey,
					"`%s` may appear at most once", opts.Sentinel))

				continue
			}

			list.Splice = len(list.Keys)

			continue
		}

		if opts.Sentinel == "" && opts.RejectedSentinel != "" && itemText == opts.RejectedSentinel {
			errs = append(errs, diagnostic.Errorf(itemPos, diagnostic.CodeMalformedKey,
				"`%s` is only valid in comparator key lists", opts.RejectedSentinel))

			continue
		}

		segments, ok := segmentsOf(arg)
		if !ok {
			errs = append(errs, diagnostic.Errorf(itemPos, diagnostic.CodeMalformedKey,
				"invalid form: `%s`; %s", itemText, allowedForms))

			continue
		}

		list.Keys = append(list.Keys, Key{Segments: segments, Pos: itemPos})
	}

	if len(errs) > 0 {
		return List{Splice: -1}, errs
	}

	return list, nil
}

// ParseDirectives parses every directive in order and concatenates the
// results. Diagnostics from all directives are returned together.
func ParseDirectives(dirs []definition.Directive, opts Options) (List, error) {
	out := List{Splice: -1}

	var errs diagnostic.List

	for _, dir := range dirs {
		list, err := Parse(dir.Args, dir.Pos, opts)
		if err != nil {
			errs = append(errs, diagnostic.FromError(err)...)
			continue
		}

		if list.HasSplice() {
			if out.HasSplice() {
				errs = append(errs, diagnostic.Errorf(dir.Pos, diagnostic.CodeMalformedKey,
					"`%s` may appear at most once", opts.Sentinel))
			} else {
				out.Splice = len(out.Keys) + list.Splice
			}
		}

		out.Keys = append(out.Keys, list.Keys...)
	}

	if len(errs) > 0 {
		return List{Splice: -1}, errs
	}

	return out, nil
}

// segmentsOf accepts identifiers, selector chains and zero-argument calls.
func segmentsOf(e ast.Expr) ([]Segment, bool) {
	switch x := e.(type) {
	case *ast.Ident:
		if x.Name == "_" {
			return nil, false
		}

		return []Segment{{Name: x.Name}}, true

	case *ast.SelectorExpr:
		head, ok := segmentsOf(x.X)
		if !ok || x.Sel.Name == "_" {
			return nil, false
		}

		return append(head, Segment{Name: x.Sel.Name}), true

	case *ast.CallExpr:
		if len(x.Args) > 0 || x.Ellipsis.IsValid() {
			return nil, false
		}

		head, ok := segmentsOf(x.Fun)
		if !ok || head[len(head)-1].Call {
			return nil, false
		}

		head[len(head)-1].Call = true

		return head, true

	default:
		return nil, false
	}
}

// shift moves pos by n bytes on the same line.
func shift(pos token.Position, n int) token.Position {
	if !pos.IsValid() {
		return pos
	}

	pos.Offset += n
	pos.Column += n

	return pos
}

func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}

	return msg
}

// Format renders the list with the placeholder back in place, e.g.
// "Channel(), _fields".
func (l List) Format(sentinel string) string {
	parts := make([]string, 0, len(l.Keys)+1)
	for i, k := range l.Keys {
		if i == l.Splice {
			parts = append(parts, sentinel)
		}

		parts = append(parts, k.String())
	}

	if l.Splice == len(l.Keys) {
		parts = append(parts, sentinel)
	}

	return strings.Join(parts, ", ")
}
