// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// expression is one entry in the translator's value arena.
type expression struct {
	code string
	size int // component count
}

// parameter is a named uniform referenced by the generated source.
type parameter struct {
	name string // escaped identifier
	size int
}

// accessor is one generated Get<FunctionName><index> function.
type accessor struct {
	name  string
	size  int
	value graph.Handle
}

// Translator lowers graph nodes to HLSL fragments. It implements
// graph.Compiler and is bound to exactly one compilation pass: create one
// per pass and discard it with the pass.
type Translator struct {
	registry *graph.Registry
	options  *Options
	result   *graph.Result
	namer    *namer

	exprs      []expression
	params     []parameter
	paramIndex map[string]graph.Handle
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
		namer:      newNamer(options.ConstantBufferName, "Ctx"),
		paramIndex: make(map[string]graph.Handle),
	}
}

// Result returns the pass result. Read-only once compilation completes.
func (t *Translator) Result() *graph.Result {
	return t.result
}

// Invoke marks the contract as used in the pass result. The returned
// handle is always graph.NoHandle; the call exists for its side effect.
// Repeated invocations of the same contract are deduplicated against the
// presence flag.
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
// node and records the contract's output count for symbol derivation.
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
	code := fmt.Sprintf("float3(%s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z))
	return t.push(code, 3)
}

// Constant4 lowers a four-component vector literal.
func (t *Translator) Constant4(x, y, z, w float64) graph.Handle {
	code := fmt.Sprintf("float4(%s, %s, %s, %s)", formatFloat(x), formatFloat(y), formatFloat(z), formatFloat(w))
	return t.push(code, 4)
}

// Parameter lowers a named uniform reference. Repeated references to the
// same parameter share one declaration and one handle.
func (t *Translator) Parameter(name string, size int) graph.Handle {
	if h, ok := t.paramIndex[name]; ok {
		return h
	}
	if size != 1 && size != 3 && size != 4 {
		t.result.Diagnose(name, graph.SeverityError, fmt.Sprintf("parameter %q has unsupported size %d", name, size))
		return graph.NoHandle
	}
	id := t.namer.call(name)
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
	return t.push(fmt.Sprintf("float%d(%s, %s)", size, l.code, r.code), size)
}

// Diagnose records an advisory diagnostic on the pass result.
func (t *Translator) Diagnose(node graph.Node, severity graph.Severity, message string) {
	caption := ""
	if node != nil {
		caption = node.Caption()
	}
	t.result.Diagnose(caption, severity, message)
}

// push appends an expression to the arena and returns its handle.
func (t *Translator) push(code string, size int) graph.Handle {
	h := graph.Handle(len(t.exprs))
	t.exprs = append(t.exprs, expression{code: code, size: size})
	return h
}

// expr resolves a handle against the arena.
func (t *Translator) expr(h graph.Handle) (expression, bool) {
	if h < 0 || int(h) >= len(t.exprs) {
		return expression{}, false
	}
	return t.exprs[h], true
}

// formatFloat renders a float literal with an explicit decimal point, so
// generated source is stable and unambiguously floating point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
