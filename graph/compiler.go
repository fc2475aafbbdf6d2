package graph

// Severity classifies a compile diagnostic.
type Severity uint8

const (
	// SeverityWarning marks an informational diagnostic.
	SeverityWarning Severity = iota

	// SeverityError marks an advisory compile error. Advisory errors are
	// surfaced to the graph author but never abort the pass; compilation
	// degrades to defaults.
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// BinaryOp is an arithmetic operator applied componentwise.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator's source form.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Compiler is the dispatch surface every backend implements. A Compiler
// instance is bound to exactly one backend for the duration of a single
// compilation pass and is never retained beyond it.
//
// Contract extension points dispatch through the single generic Invoke
// entry point keyed by ContractID, so registering a new contract requires
// no backend or decorator edits.
type Compiler interface {
	// Invoke marks the contract as used in the pass result. The call
	// exists purely for its side effect on shared pass state; the returned
	// handle is always NoHandle and is ignored by callers. Repeated calls
	// for the same contract within a pass are deduplicated by the backend.
	Invoke(id ContractID) Handle

	// RegisterOutput emits the named accessor for one output index of a
	// contract node and records its metadata in the pass result. Returns
	// a handle usable by callers that reference the value elsewhere in
	// the same pass.
	RegisterOutput(node Node, outputIndex int, value Handle) Handle

	// Constant lowers a scalar literal.
	Constant(v float64) Handle

	// Constant3 lowers a three-component vector literal.
	Constant3(x, y, z float64) Handle

	// Constant4 lowers a four-component vector literal.
	Constant4(x, y, z, w float64) Handle

	// Parameter lowers a reference to a named uniform parameter with the
	// given component count.
	Parameter(name string, size int) Handle

	// Binary lowers a componentwise arithmetic operation.
	Binary(op BinaryOp, left, right Handle) Handle

	// Append concatenates the components of two values.
	Append(left, right Handle) Handle

	// Diagnose reports an advisory diagnostic for a node. Diagnostics
	// never abort the pass.
	Diagnose(node Node, severity Severity, message string)
}

// Proxy is a pass-through Compiler decorator. Every call forwards
// unchanged to Next; contract invocations forward by ID, so a new
// contract needs no proxy edit. Validation or dry-run compilers embed
// Proxy and override only the calls they care about.
type Proxy struct {
	Next Compiler
}

// Invoke forwards to the wrapped compiler.
func (p Proxy) Invoke(id ContractID) Handle {
	return p.Next.Invoke(id)
}

// RegisterOutput forwards to the wrapped compiler.
func (p Proxy) RegisterOutput(node Node, outputIndex int, value Handle) Handle {
	return p.Next.RegisterOutput(node, outputIndex, value)
}

// Constant forwards to the wrapped compiler.
func (p Proxy) Constant(v float64) Handle {
	return p.Next.Constant(v)
}

// Constant3 forwards to the wrapped compiler.
func (p Proxy) Constant3(x, y, z float64) Handle {
	return p.Next.Constant3(x, y, z)
}

// Constant4 forwards to the wrapped compiler.
func (p Proxy) Constant4(x, y, z, w float64) Handle {
	return p.Next.Constant4(x, y, z, w)
}

// Parameter forwards to the wrapped compiler.
func (p Proxy) Parameter(name string, size int) Handle {
	return p.Next.Parameter(name, size)
}

// Binary forwards to the wrapped compiler.
func (p Proxy) Binary(op BinaryOp, left, right Handle) Handle {
	return p.Next.Binary(op, left, right)
}

// Append forwards to the wrapped compiler.
func (p Proxy) Append(left, right Handle) Handle {
	return p.Next.Append(left, right)
}

// Diagnose forwards to the wrapped compiler.
func (p Proxy) Diagnose(node Node, severity Severity, message string) {
	p.Next.Diagnose(node, severity, message)
}
