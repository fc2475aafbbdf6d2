package graph

import (
	"fmt"
	"strings"
)

// Define is one preprocessor-style key to integer binding.
type Define struct {
	Name  string
	Value int
}

// Environment is the ordered key-to-integer define table consumed by
// hand-written shader templates through standard conditional-compilation
// directives. Insertion order is preserved so serialization is
// deterministic across identical passes.
type Environment struct {
	defines []Define
	index   map[string]int
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		index: make(map[string]int),
	}
}

// Set binds a name to an integer value, overwriting an existing binding
// in place.
func (e *Environment) Set(name string, value int) {
	if i, ok := e.index[name]; ok {
		e.defines[i].Value = value
		return
	}
	e.index[name] = len(e.defines)
	e.defines = append(e.defines, Define{Name: name, Value: value})
}

// Lookup finds a binding by name.
func (e *Environment) Lookup(name string) (int, bool) {
	i, ok := e.index[name]
	if !ok {
		return 0, false
	}
	return e.defines[i].Value, true
}

// Defines returns all bindings in insertion order.
func (e *Environment) Defines() []Define {
	return e.defines
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.defines)
}

// String serializes the environment as preprocessor define directives,
// one per line.
func (e *Environment) String() string {
	var b strings.Builder
	for _, d := range e.defines {
		fmt.Fprintf(&b, "#define %s %d\n", d.Name, d.Value)
	}
	return b.String()
}

// DeriveEnvironment builds the shader environment from a completed pass.
//
// Two symbol families are derived independently:
//
//   - for every contract invoked during the pass, the contract's presence
//     symbol is bound to 1, in first-invocation order;
//   - for every function name registered during the pass, the symbol
//     NUM_OUTPUTS_<UPPER(NAME)> is bound to the declared output count, in
//     first-registration order.
//
// The families may disagree when a node registers outputs without ever
// invoking its contract. Templates should prefer the output-count symbol,
// which tracks actual codegen; the presence flag is only as reliable as
// the node's discipline in invoking it.
func DeriveEnvironment(reg *Registry, res *Result) *Environment {
	env := NewEnvironment()

	for _, id := range res.PresentContracts() {
		c, ok := reg.Lookup(id)
		if !ok {
			continue
		}
		env.Set(c.Symbol(), 1)
	}

	for _, oc := range res.OutputCounts() {
		env.Set("NUM_OUTPUTS_"+strings.ToUpper(oc.FunctionName), oc.Count)
	}

	return env
}
