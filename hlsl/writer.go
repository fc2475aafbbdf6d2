// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// writer assembles the final HLSL source from a completed translator.
type writer struct {
	t   *Translator
	out strings.Builder
}

// newWriter creates a writer over a translator.
func newWriter(t *Translator) *writer {
	return &writer{t: t}
}

// String returns the generated HLSL source.
func (w *writer) String() string {
	return w.out.String()
}

// writeModule generates the full output: banner, parameter cbuffer, then
// accessor functions in registration order.
func (w *writer) writeModule() error {
	if w.t.options.Banner {
		w.out.WriteString("// Generated by shadergraph. Do not edit.\n\n")
	}

	w.writeParameters()

	for i, a := range w.t.accessors {
		if i > 0 || len(w.t.params) > 0 {
			w.out.WriteString("\n")
		}
		if err := w.writeAccessor(a); err != nil {
			return err
		}
	}

	return nil
}

// writeParameters emits the cbuffer declaring all referenced parameters.
func (w *writer) writeParameters() {
	if len(w.t.params) == 0 {
		return
	}
	fmt.Fprintf(&w.out, "cbuffer %s\n{\n", w.t.options.ConstantBufferName)
	for _, p := range w.t.params {
		fmt.Fprintf(&w.out, "    %s %s;\n", typeName(p.size), p.name)
	}
	w.out.WriteString("};\n")
}

// writeAccessor emits one Get<FunctionName><index> function.
func (w *writer) writeAccessor(a accessor) error {
	body := fmt.Sprintf("(%s)0", typeName(a.size))
	if a.value != graph.NoHandle {
		e, ok := w.t.expr(a.value)
		if !ok {
			return NewError(ErrInternalError, fmt.Sprintf("accessor %s references expression %d outside the arena", a.name, a.value))
		}
		body = e.code
	}

	fmt.Fprintf(&w.out, "%s %s(%s)\n{\n    return %s;\n}\n", typeName(a.size), a.name, w.t.options.Context, body)
	return nil
}

// typeName maps a component count to its HLSL type.
func typeName(size int) string {
	switch size {
	case 2, 3, 4:
		return fmt.Sprintf("float%d", size)
	default:
		return "float"
	}
}
