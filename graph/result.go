package graph

import (
	"fmt"
	"strings"
)

// EventKind classifies a pass event.
type EventKind uint8

const (
	// EventContractInvoked records a Compiler.Invoke call.
	EventContractInvoked EventKind = iota

	// EventOutputRegistered records a Compiler.RegisterOutput call.
	EventOutputRegistered
)

// Event is one entry in a pass's ordered visit log.
type Event struct {
	Kind EventKind

	// Contract is set for EventContractInvoked.
	Contract ContractID

	// FunctionName, OutputIndex and DeclaredCount are set for
	// EventOutputRegistered. DeclaredCount is the contract's declared
	// output count at registration time.
	FunctionName  string
	OutputIndex   int
	DeclaredCount int
}

// Diagnostic is an advisory message attached to a pass.
type Diagnostic struct {
	Node     string
	Severity Severity
	Message  string
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Result is the per-pass record of contract presence and output metadata.
//
// It is an append-only log of visit events; presence flags and the
// function-name to output-count table are pure derivations over the event
// sequence, which makes presence trivially monotone within a pass. A
// Result is owned by the single thread running the pass and is read-only
// once the pass completes.
type Result struct {
	events []Event
	diags  []Diagnostic

	diagSeen map[string]struct{}
}

// NewResult creates an empty pass result.
func NewResult() *Result {
	return &Result{
		diagSeen: make(map[string]struct{}),
	}
}

// RecordInvoke appends a contract-invoked event.
func (r *Result) RecordInvoke(id ContractID) {
	r.events = append(r.events, Event{
		Kind:     EventContractInvoked,
		Contract: id,
	})
}

// RecordOutput appends an output-registered event.
func (r *Result) RecordOutput(functionName string, outputIndex, declaredCount int) {
	r.events = append(r.events, Event{
		Kind:          EventOutputRegistered,
		FunctionName:  functionName,
		OutputIndex:   outputIndex,
		DeclaredCount: declaredCount,
	})
}

// Diagnose appends an advisory diagnostic. Repeats of the same node and
// message within the pass are dropped, so a node compiled once per output
// index still surfaces each diagnostic exactly once.
func (r *Result) Diagnose(node string, severity Severity, message string) {
	key := node + "\x00" + message
	if _, seen := r.diagSeen[key]; seen {
		return
	}
	r.diagSeen[key] = struct{}{}
	r.diags = append(r.diags, Diagnostic{
		Node:     node,
		Severity: severity,
		Message:  message,
	})
}

// Events returns the ordered visit log.
func (r *Result) Events() []Event {
	return r.events
}

// Diagnostics returns the advisory diagnostics in report order.
func (r *Result) Diagnostics() []Diagnostic {
	return r.diags
}

// HasErrors reports whether any diagnostic has error severity. Advisory
// errors never abort a pass; this is for callers that want a stricter
// policy after the fact.
func (r *Result) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Present reports whether the contract was invoked during the pass.
// Derived from the event log: once true within a pass, always true.
func (r *Result) Present(id ContractID) bool {
	for _, ev := range r.events {
		if ev.Kind == EventContractInvoked && ev.Contract == id {
			return true
		}
	}
	return false
}

// PresentContracts returns the invoked contracts in first-invocation
// order, deduplicated.
func (r *Result) PresentContracts() []ContractID {
	var ids []ContractID
	seen := make(map[ContractID]struct{})
	for _, ev := range r.events {
		if ev.Kind != EventContractInvoked {
			continue
		}
		if _, dup := seen[ev.Contract]; dup {
			continue
		}
		seen[ev.Contract] = struct{}{}
		ids = append(ids, ev.Contract)
	}
	return ids
}

// OutputCounts returns the function-name to declared-output-count table
// in first-registration order. The table is derived independently of the
// presence flags; the two may disagree when a node registers outputs
// without invoking its contract.
func (r *Result) OutputCounts() []OutputCount {
	var counts []OutputCount
	seen := make(map[string]struct{})
	for _, ev := range r.events {
		if ev.Kind != EventOutputRegistered {
			continue
		}
		if _, dup := seen[ev.FunctionName]; dup {
			continue
		}
		seen[ev.FunctionName] = struct{}{}
		counts = append(counts, OutputCount{
			FunctionName: ev.FunctionName,
			Count:        ev.DeclaredCount,
		})
	}
	return counts
}

// OutputCount pairs a contract function name with its declared output
// count as recorded during registration.
type OutputCount struct {
	FunctionName string
	Count        int
}

// registeredIndices returns the distinct output indices registered for a
// function name.
func (r *Result) registeredIndices(functionName string) map[int]struct{} {
	indices := make(map[int]struct{})
	for _, ev := range r.events {
		if ev.Kind == EventOutputRegistered && ev.FunctionName == functionName {
			indices[ev.OutputIndex] = struct{}{}
		}
	}
	return indices
}

// AuditOutputCounts compares each registered contract's declared output
// count against the indices actually registered during the pass and
// returns an advisory warning per mismatch. The compile path itself never
// performs this check; downstream templates may rely on the lenient
// behavior, so the audit is strictly opt-in.
func AuditOutputCounts(reg *Registry, res *Result) []Diagnostic {
	var diags []Diagnostic
	for _, oc := range res.OutputCounts() {
		indices := res.registeredIndices(oc.FunctionName)
		if len(indices) == oc.Count {
			continue
		}
		name := oc.FunctionName
		if id, ok := reg.ByName(oc.FunctionName); ok {
			if c, ok := reg.Lookup(id); ok && c.DisplayName != "" {
				name = c.DisplayName
			}
		}
		diags = append(diags, Diagnostic{
			Node:     name,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%s declares %d outputs but registered %d; NUM_OUTPUTS_%s will not match the generated accessors",
				oc.FunctionName, oc.Count, len(indices), strings.ToUpper(oc.FunctionName)),
		})
	}
	return diags
}
