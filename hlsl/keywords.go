// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "strings"

// reservedKeywords holds HLSL keywords that cannot be used as generated
// identifiers. Matching is case-insensitive.
var reservedKeywords = map[string]struct{}{
	"bool":     {},
	"break":    {},
	"buffer":   {},
	"case":     {},
	"cbuffer":  {},
	"const":    {},
	"continue": {},
	"default":  {},
	"discard":  {},
	"do":       {},
	"double":   {},
	"else":     {},
	"false":    {},
	"float":    {},
	"for":      {},
	"half":     {},
	"if":       {},
	"in":       {},
	"inline":   {},
	"inout":    {},
	"int":      {},
	"matrix":   {},
	"out":      {},
	"register": {},
	"return":   {},
	"sampler":  {},
	"static":   {},
	"struct":   {},
	"switch":   {},
	"texture":  {},
	"true":     {},
	"uint":     {},
	"uniform":  {},
	"vector":   {},
	"void":     {},
	"while":    {},
}

// Escape turns an arbitrary name into a valid HLSL identifier: invalid
// characters become underscores, a leading digit gets an underscore
// prefix, and reserved keywords get an underscore suffix.
func Escape(name string) string {
	if name == "" {
		return "unnamed"
	}

	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	escaped := b.String()
	if _, reserved := reservedKeywords[strings.ToLower(escaped)]; reserved {
		return escaped + "_"
	}
	return escaped
}
