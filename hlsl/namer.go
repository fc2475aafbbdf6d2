// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"
)

// namer generates unique identifiers for HLSL output. It tracks used
// names case-insensitively, matching HLSL's keyword rules.
type namer struct {
	usedNames map[string]struct{}
	counter   uint32
}

// newNamer creates a namer with the generation-reserved names taken.
func newNamer(reserved ...string) *namer {
	n := &namer{
		usedNames: make(map[string]struct{}),
	}
	for _, name := range reserved {
		n.reserve(name)
	}
	return n
}

// call generates a unique identifier based on the given base name.
func (n *namer) call(base string) string {
	escaped := Escape(base)

	lower := strings.ToLower(escaped)
	if _, used := n.usedNames[lower]; !used {
		n.usedNames[lower] = struct{}{}
		return escaped
	}

	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", escaped, n.counter)
		lowerCandidate := strings.ToLower(candidate)
		if _, used := n.usedNames[lowerCandidate]; !used {
			n.usedNames[lowerCandidate] = struct{}{}
			return candidate
		}
	}
}

// reserve marks a name as used without returning it.
func (n *namer) reserve(name string) {
	n.usedNames[strings.ToLower(name)] = struct{}{}
}
