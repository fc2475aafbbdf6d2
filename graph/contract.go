package graph

import (
	"fmt"
	"strings"
	"unicode"
)

// ContractID identifies a registered output contract.
type ContractID uint32

// Contract describes one compiler extension point: a stable function-name
// tag and the number of logical outputs it produces.
//
// FunctionName feeds two generated identifier namespaces: accessor
// functions Get<FunctionName><index> and the output-count symbol
// NUM_OUTPUTS_<UPPER(FunctionName)>. Contract names must therefore be
// unique across the whole registry.
type Contract struct {
	// FunctionName is the stable tag used as the generated-function prefix
	// and the output-count symbol suffix.
	FunctionName string

	// OutputCount is the fixed number of logical outputs. Must be positive.
	OutputCount int

	// DisplayName is presentation only.
	DisplayName string

	// SymbolName is the presence preprocessor symbol emitted when the
	// contract is invoked during a pass. When empty it is derived as the
	// upper-snake form of FunctionName.
	SymbolName string
}

// Symbol returns the presence preprocessor symbol for the contract.
func (c Contract) Symbol() string {
	if c.SymbolName != "" {
		return c.SymbolName
	}
	return UpperSnake(c.FunctionName)
}

// CountSymbol returns the output-count preprocessor symbol for the contract.
// Unlike Symbol, the function name is uppercased without word separation,
// matching the accessor naming convention consumed by shader templates.
func (c Contract) CountSymbol() string {
	return "NUM_OUTPUTS_" + strings.ToUpper(c.FunctionName)
}

// Registry holds the output contracts known to a compilation pass.
// Contracts are dispatched by ContractID through Compiler.Invoke; the
// registry is the single place a new extension point is declared.
type Registry struct {
	contracts []Contract
	byName    map[string]ContractID
}

// NewRegistry creates an empty contract registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]ContractID),
	}
}

// Register adds a contract and returns its ID.
//
// Registration fails when the function name is empty, the output count is
// not positive, or the function name collides with an already registered
// contract. Collisions would silently shadow generated defines, so they
// are rejected here, before any graph compiles.
func (r *Registry) Register(c Contract) (ContractID, error) {
	if c.FunctionName == "" {
		return 0, fmt.Errorf("graph: contract function name is empty")
	}
	if c.OutputCount < 1 {
		return 0, fmt.Errorf("graph: contract %q has output count %d, want at least 1", c.FunctionName, c.OutputCount)
	}
	if _, exists := r.byName[c.FunctionName]; exists {
		return 0, fmt.Errorf("graph: contract %q is already registered", c.FunctionName)
	}

	id := ContractID(len(r.contracts))
	r.contracts = append(r.contracts, c)
	r.byName[c.FunctionName] = id
	return id, nil
}

// MustRegister is like Register but panics on error. Intended for
// process-startup contract tables where a failure is a build bug.
func (r *Registry) MustRegister(c Contract) ContractID {
	id, err := r.Register(c)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup finds a contract by its ID.
func (r *Registry) Lookup(id ContractID) (Contract, bool) {
	if int(id) >= len(r.contracts) {
		return Contract{}, false
	}
	return r.contracts[id], true
}

// ByName finds a contract ID by function name.
func (r *Registry) ByName(name string) (ContractID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Contracts returns all registered contracts in registration order.
func (r *Registry) Contracts() []Contract {
	return r.contracts
}

// Count returns the number of registered contracts.
func (r *Registry) Count() int {
	return len(r.contracts)
}

// UpperSnake converts a CamelCase identifier to UPPER_SNAKE form.
// "ExampleOutput" becomes "EXAMPLE_OUTPUT"; acronym runs stay joined,
// so "HDROutput" becomes "HDR_OUTPUT".
func UpperSnake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
