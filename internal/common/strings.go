package common

import (
	"unicode"
	"unicode/utf8"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// ReceiverName returns the conventional single-letter receiver name for a
// type, avoiding the names in reserved.
func ReceiverName(typeName string, reserved ...string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "x"
	}

	name := string(unicode.ToLower(r))
	for _, res := range reserved {
		if res == name {
			return "x"
		}
	}

	return name
}

// ExportedName upper-cases the first letter of s.
func ExportedName(s string) string {
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}

// FuncName builds the name of a generated package-level function for a
// type: FuncName("Compare", "Note") is "CompareNote" and
// FuncName("Compare", "note") is "compareNote", so the function is
// exported exactly when the type is.
func FuncName(prefix, typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if unicode.IsUpper(r) {
		return ExportedName(prefix) + typeName
	}

	return lowerFirst(prefix) + ExportedName(typeName)
}

func lowerFirst(s string) string {
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToLower(r)) + s[size:]
}
