package analyze

import (
	"go/ast"
	"go/token"
	"strings"

	"cmpby-generator/internal/definition"
)

// reasonSeparator starts free text after a directive, as in
// "//cmpby -- ordered for the index".
const reasonSeparator = " --"

// parseDirective recognises "//marker", "//marker args" and
// "//marker:verb args" for one of markers.
//
// gofmt rewrites a bare "//marker" line of a top-level doc comment to
// "// marker" since it is not a toolchain directive, so the spaced form is
// accepted too, but only for a bare marker or a marker with a verb.
func parseDirective(fset *token.FileSet, c *ast.Comment, markers []string) (definition.Directive, bool) {
	if !strings.HasPrefix(c.Text, "//") {
		return definition.Directive{}, false
	}

	content := strings.TrimLeft(c.Text[2:], " \t")
	spaced := len(content) != len(c.Text)-2

	for _, marker := range markers {
		if !strings.HasPrefix(content, marker) {
			continue
		}

		rest := content[len(marker):]
		offset := len(c.Text) - len(content) + len(marker)
		dir := definition.Directive{Name: marker}

		switch {
		case rest == "" || spaced && strings.TrimSpace(rest) == "":
			rest = ""
		case rest[0] == ':':
			verb, args := rest[1:], ""
			if i := strings.IndexAny(verb, " \t"); i >= 0 {
				verb, args = verb[:i], verb[i:]
			}

			dir.Verb = verb
			offset += 1 + len(verb)
			rest = args
		case spaced:
			// Prose such as "// cmpby orders by key".
			continue
		case rest[0] == ' ' || rest[0] == '\t':
		default:
			// "//cmpbyfoo" is some other directive.
			continue
		}

		if i := strings.Index(rest, reasonSeparator); i >= 0 {
			rest = rest[:i]
		}

		trimmed := strings.TrimLeft(rest, " \t")
		offset += len(rest) - len(trimmed)
		dir.Args = strings.TrimRight(trimmed, " \t")
		dir.Pos = fset.Position(c.Slash + token.Pos(offset))

		return dir, true
	}

	return definition.Directive{}, false
}

// directives collects the directives of the given comment groups in
// source order. Nil groups are skipped.
func directives(fset *token.FileSet, markers []string, groups ...*ast.CommentGroup) []definition.Directive {
	var out []definition.Directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if dir, ok := parseDirective(fset, c, markers); ok {
				out = append(out, dir)
			}
		}
	}

	return out
}

// markers converts member-level directives to markers.
func markers(dirs []definition.Directive) []definition.Marker {
	out := make([]definition.Marker, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, definition.Marker{Name: d.Name, Verb: d.Verb, Pos: d.Pos})
	}

	return out
}
