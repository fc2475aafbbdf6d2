// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// Options configures GLSL accessor generation.
type Options struct {
	// Version is the #version directive emitted at the top of the
	// generated source. Empty omits the directive, for inclusion into a
	// larger compilation unit. Defaults to "330 core".
	Version string

	// Banner emits a generated-source comment header.
	Banner bool
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() *Options {
	return &Options{
		Version: "330 core",
		Banner:  true,
	}
}

type expression struct {
	code string
	size int
}

type parameter struct {
	name string
	size int
}

type accessor struct {
	name  string
	size  int
	value graph.Handle
}

// Translator lowers graph nodes to GLSL fragments. It implements
// graph.Compiler; one instance serves exactly one compilation pass.
type Translator struct {
	registry *graph.Registry
	options  *Options
	result   *graph.Result

	exprs      []expression
	params     []parameter
	paramIndex map[string]graph.Handle
	paramNames map[string]struct{}
	accessors  []accessor
}

// NewTranslator creates a translator for one compilation pass.
func NewTranslator(registry *graph.Registry, options *Options) *Translator {
	if options == nil {
		options = DefaultOptions()
	}
	return &Translator{
		registry:   registry,
		options:    options,
		result:     graph.NewResult(),
		paramIndex: make(map[string]graph.Handle),
		paramNames: make(map[string]struct{}),
	}
}

// Result returns the pass result.
func (t *Translator) Result() *graph.Result {
	return t.result
}

// Invoke marks the contract as used; the returned handle is always
// graph.NoHandle. Repeated invocations dedup against the presence flag.
func (t *Translator) Invoke(id graph.ContractID) graph.Handle {
	if _, ok := t.registry.Lookup(id); !ok {
		t.result.Diagnose("", graph.SeverityError, fmt.Sprintf("unknown contract id %d invoked", id))
		return graph.NoHandle
	}
	if !t.result.Present(id) {
		t.result.RecordInvoke(id)
	}
	return graph.NoHandle
}

// RegisterOutput emits the accessor for one output index of a contract
// node and records the contract's output count.
func (t *Translator) RegisterOutput(node graph.Node, outputIndex int, value graph.Handle) graph.Handle {
	cn, ok := node.(graph.ContractNode)
	if !ok {
		t.Diagnose(node, graph.SeverityError, "node has no output contract")
		return graph.NoHandle
	}
	c, ok := t.registry.Lookup(cn.ContractID())
	if !ok {
		t.Diagnose(node, graph.SeverityError, fmt.Sprintf("unknown contract id %d", cn.ContractID()))
		return graph.NoHandle
	}

	size := 1
	if e, ok := t.expr(value); ok {
		size = e.size
	}

	t.result.RecordOutput(c.FunctionName, outputIndex, c.OutputCount)
	t.accessors = append(t.accessors, accessor{
		name:  fmt.Sprintf("Get%s%d", c.FunctionName, outputIndex),
		size:  size,
		value: value,
	})
	return value
}

// Constant lowers a scalar literal.
func (t *Translator) Constant(v float64) graph.Handle {
	return t.push(formatFloat(v), 1)
}

// Constant3 lowers a three-component vector literal.
func (t *Translator) Constant3(x, y, z float64) graph.Handle {
	return t.push(fmt.Sprintf("vec3(%s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z)), 3)
}

// Constant4 lowers a four-component vector literal.
func (t *Translator) Constant4(x, y, z, w float64) graph.Handle {
	return t.push(fmt.Sprintf("vec4(%s, %s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z), formatFloat(w)), 4)
}

// Parameter lowers a named uniform reference, deduplicated by name.
func (t *Translator) Parameter(name string, size int) graph.Handle {
	if h, ok := t.paramIndex[name]; ok {
		return h
	}
	if size != 1 && size != 3 && size != 4 {
		t.result.Diagnose(name, graph.SeverityError, fmt.Sprintf("parameter %q has unsupported size %d", name, size))
		return graph.NoHandle
	}
	id := t.uniqueName(name)
	t.params = append(t.params, parameter{name: id, size: size})
	h := t.push(id, size)
	t.paramIndex[name] = h
	return h
}

// Binary lowers a componentwise arithmetic operation.
func (t *Translator) Binary(op graph.BinaryOp, left, right graph.Handle) graph.Handle {
	l, lok := t.expr(left)
	r, rok := t.expr(right)
	if !lok || !rok {
		t.result.Diagnose("", graph.SeverityError, "arithmetic on missing value")
		return graph.NoHandle
	}
	size := l.size
	if r.size > size {
		size = r.size
	}
	return t.push(fmt.Sprintf("(%s %s %s)", l.code, op, r.code), size)
}

// Append concatenates the components of two values.
func (t *Translator) Append(left, right graph.Handle) graph.Handle {
	l, lok := t.expr(left)
	r, rok := t.expr(right)
	if !lok || !rok {
		t.result.Diagnose("", graph.SeverityError, "append of missing value")
		return graph.NoHandle
	}
	size := l.size + r.size
	if size > 4 {
		t.result.Diagnose("", graph.SeverityError, fmt.Sprintf("append produces %d components, at most 4 supported", size))
		return graph.NoHandle
	}
	return t.push(fmt.Sprintf("vec%d(%s, %s)", size, l.code, r.code), size)
}

// Diagnose records an advisory diagnostic on the pass result.
func (t *Translator) Diagnose(node graph.Node, severity graph.Severity, message string) {
	caption := ""
	if node != nil {
		caption = node.Caption()
	}
	t.result.Diagnose(caption, severity, message)
}

func (t *Translator) push(code string, size int) graph.Handle {
	h := graph.Handle(len(t.exprs))
	t.exprs = append(t.exprs, expression{code: code, size: size})
	return h
}

func (t *Translator) expr(h graph.Handle) (expression, bool) {
	if h < 0 || int(h) >= len(t.exprs) {
		return expression{}, false
	}
	return t.exprs[h], true
}

// uniqueName sanitizes a parameter name and suffixes it on collision.
func (t *Translator) uniqueName(base string) string {
	escaped := escape(base)
	name := escaped
	for i := 1; ; i++ {
		if _, used := t.paramNames[name]; !used {
			t.paramNames[name] = struct{}{}
			return name
		}
		name = fmt.Sprintf("%s_%d", escaped, i)
	}
}

// Compile generates GLSL accessor source from a node graph. Semantics
// match hlsl.Compile: advisory diagnostics never fail the pass.
func Compile(g *graph.Graph, registry *graph.Registry, options *Options) (string, *graph.Result, error) {
	if g == nil {
		return "", nil, fmt.Errorf("glsl: graph is nil")
	}
	if registry == nil {
		return "", nil, fmt.Errorf("glsl: contract registry is nil")
	}
	if options == nil {
		options = DefaultOptions()
	}

	t := NewTranslator(registry, options)
	for _, n := range g.Nodes() {
		cn, ok := n.(graph.ContractNode)
		if !ok {
			continue
		}
		for idx := 0; idx < cn.NumOutputs(); idx++ {
			cn.Compile(t, idx)
		}
	}

	return t.write(), t.Result(), nil
}

// write assembles the generated source.
func (t *Translator) write() string {
	var out strings.Builder

	if t.options.Version != "" {
		fmt.Fprintf(&out, "#version %s\n\n", t.options.Version)
	}
	if t.options.Banner {
		out.WriteString("// Generated by shadergraph. Do not edit.\n\n")
	}

	for _, p := range t.params {
		fmt.Fprintf(&out, "uniform %s %s;\n", typeName(p.size), p.name)
	}

	for i, a := range t.accessors {
		if i > 0 || len(t.params) > 0 {
			out.WriteString("\n")
		}
		body := fmt.Sprintf("%s(0.0)", typeName(a.size))
		if e, ok := t.expr(a.value); ok {
			body = e.code
		}
		fmt.Fprintf(&out, "%s %s()\n{\n    return %s;\n}\n", typeName(a.size), a.name, body)
	}

	return out.String()
}

// typeName maps a component count to its GLSL type.
func typeName(size int) string {
	switch size {
	case 2, 3, 4:
		return fmt.Sprintf("vec%d", size)
	default:
		return "float"
	}
}

// glslKeywords holds reserved words that cannot name uniforms.
var glslKeywords = map[string]struct{}{
	"attribute": {}, "bool": {}, "break": {}, "const": {}, "continue": {},
	"discard": {}, "do": {}, "else": {}, "false": {}, "float": {},
	"for": {}, "if": {}, "in": {}, "int": {}, "inout": {}, "mat3": {},
	"mat4": {}, "out": {}, "return": {}, "sampler2D": {}, "struct": {},
	"true": {}, "uniform": {}, "varying": {}, "vec2": {}, "vec3": {},
	"vec4": {}, "void": {}, "while": {},
}

// escape turns an arbitrary name into a valid GLSL identifier.
func escape(name string) string {
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
	if _, reserved := glslKeywords[escaped]; reserved {
		return escaped + "_"
	}
	return escaped
}

// formatFloat renders a float literal with an explicit decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
