package keyexpr

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies the shape of a Key.
type Kind int

const (
	KindNamed      Kind = iota // a
	KindPositional             // [0]
	KindPath                   // a.b
	KindCall                   // a()
	KindPathCall               // a.b(), a().b
)
