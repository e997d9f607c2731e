package gen

import (
	"text/template"
)

type importSpec struct {
	Path string
}

// fileData holds the blocks of one generated file.
type fileData struct {
	PackageName string
	Imports     []importSpec
	Blocks      []string

	imports map[string]bool
}

type recordData struct {
	Recv     string
	Type     string
	Body     string
	Comments bool
}

type unionData struct {
	Name       string
	Compare    string
	Equal      string
	Less       string
	Hash       string
	Dispatch   string
	TypeParams string
	Type       string
	Body       string
	Arms       []armData
	Comments   bool
}

// armData is one case of a variant type switch.
type armData struct {
	Case string
	Body string
}

type failureData struct {
	Type   string
	Action string
	Ident  string
	Lines  []string
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by cmpby-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.Path}}"
{{end}})
{{end}}
{{range .Blocks}}
{{.}}
{{end}}`))

var recordCompareTemplate = template.Must(template.New("record_compare").Parse(`
{{- if .Comments}}// Compare returns a negative number when {{.Recv}} orders before other, a
// positive number when it orders after, and zero when they are equal.
{{end}}func ({{.Recv}} {{.Type}}) Compare(other {{.Type}}) int {
{{.Body}}}
{{if .Comments}}
// Equal reports whether {{.Recv}} and other compare equal.
{{end}}func ({{.Recv}} {{.Type}}) Equal(other {{.Type}}) bool {
	return {{.Recv}}.Compare(other) == 0
}
{{if .Comments}}
// Less reports whether {{.Recv}} orders before other.
{{end}}func ({{.Recv}} {{.Type}}) Less(other {{.Type}}) bool {
	return {{.Recv}}.Compare(other) < 0
}
{{if .Comments}}
// LessOrEqual reports whether {{.Recv}} does not order after other.
{{end}}func ({{.Recv}} {{.Type}}) LessOrEqual(other {{.Type}}) bool {
	return {{.Recv}}.Compare(other) <= 0
}
{{if .Comments}}
// Greater reports whether {{.Recv}} orders after other.
{{end}}func ({{.Recv}} {{.Type}}) Greater(other {{.Type}}) bool {
	return {{.Recv}}.Compare(other) > 0
}
{{if .Comments}}
// GreaterOrEqual reports whether {{.Recv}} does not order before other.
{{end}}func ({{.Recv}} {{.Type}}) GreaterOrEqual(other {{.Type}}) bool {
	return {{.Recv}}.Compare(other) >= 0
}
`))

var recordHashTemplate = template.Must(template.New("record_hash").Parse(`
{{- if .Comments}}// Hash writes the keys of {{.Recv}} to h.
{{end}}func ({{.Recv}} {{.Type}}) Hash(h *maphash.Hash) {
{{.Body}}}
`))

var unionCompareTemplate = template.Must(template.New("union_compare").Parse(`
{{- if .Comments}}// {{.Compare}} returns a negative number when x orders before y, a
// positive number when it orders after, and zero when they are equal.
{{end}}func {{.Compare}}{{.TypeParams}}(x, y {{.Type}}) int {
	switch {
	case x == nil && y == nil:
		return 0
	case x == nil:
		return -1
	case y == nil:
		return 1
	}

{{.Body}}}
{{if .Comments}}
// {{.Equal}} reports whether x and y compare equal.
{{end}}func {{.Equal}}{{.TypeParams}}(x, y {{.Type}}) bool {
	return {{.Compare}}(x, y) == 0
}
{{if .Comments}}
// {{.Less}} reports whether x orders before y.
{{end}}func {{.Less}}{{.TypeParams}}(x, y {{.Type}}) bool {
	return {{.Compare}}(x, y) < 0
}
{{if .Arms}}
// {{.Dispatch}} compares the keys of x and y when both hold the same
// variant. Different or unmarked variants compare equal.
func {{.Dispatch}}{{.TypeParams}}(x, y {{.Type}}) int {
	switch a := x.(type) {
{{range .Arms}}	case {{.Case}}:
		if b, ok := y.({{.Case}}); ok {
{{.Body}}		}
{{end}}	}

	return 0
}
{{end}}`))

var unionHashTemplate = template.Must(template.New("union_hash").Parse(`
{{- if .Comments}}// {{.Hash}} writes the keys of x to h.
{{end}}func {{.Hash}}{{.TypeParams}}(h *maphash.Hash, x {{.Type}}) {
	if x == nil {
		_ = h.WriteByte(0)
		return
	}
	_ = h.WriteByte(1)
{{.Body}}{{if .Arms}}	switch a := x.(type) {
{{range .Arms}}	case {{.Case}}:
{{.Body}}{{end}}	}
{{end}}}
`))

var failureTemplate = template.Must(template.New("failure").Parse(`// {{.Type}}: {{.Action}} generation failed:
{{range .Lines}}//	{{.}}
{{end}}var _ = {{.Ident}}
`))
