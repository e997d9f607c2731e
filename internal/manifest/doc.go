// Package manifest reads definitions from a YAML file instead of Go source.
//
// A manifest describes the shape of each type, its type-level key lists and
// the markers of its members, so definitions can be fed to the generator
// without loading a package. It is also the only way to mark the members of
// a positional record, which have no syntax to carry a comment.
//
// # Schema Overview
//
//	version: "1"
//	package: colors
//	dir: ./colors
//	definitions:
//	  - name: RGB
//	    kind: array                # struct | array | union | unit | open
//	    cmpby: ["Luma()"]          # one entry per type-level directive
//	    hashby: "Luma()"
//	    members:
//	      - {type: uint8, markers: cmpby}
//	      - {type: uint8, markers: [cmpby, hashby]}
//	    types:
//	      "Luma()": float64        # key type hints
//	  - name: Note
//	    kind: union
//	    derive: [cmpby, hashby]    # request generation without type keys
//	    variants:
//	      - name: NoteOn
//	        members:
//	          - {name: Velocity, type: uint8, markers: cmpby}
//
// # Key types
//
// Keys are typed from the "types" hints first, then from the declared type
// of a single named or positional member. Anything else falls back to
// cmp.Compare with an unresolved_type warning.
package manifest
