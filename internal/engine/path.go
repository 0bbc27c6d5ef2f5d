package engine

import "strconv"

// Field paths are rendered as dotted/bracketed accessors:
//
//	sections[0].questions[2].text
//	meta["content-type"]
//
// Names that are not plain identifiers are quoted inside brackets so that
// the rendering stays unambiguous.

// JoinField appends a property name to base.
func JoinField(base, name string) string {
	if !isIdent(name) {
		return base + "[" + strconv.Quote(name) + "]"
	}
	if base == "" {
		return name
	}
	return base + "." + name
}

// JoinIndex appends an array index to base.
func JoinIndex(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

func isIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for _, r := range s {
		switch {
		case r == '_', r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
