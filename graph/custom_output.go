package graph

import "fmt"

// CustomOutputNode injects the values of an output contract into the
// generated shader. It owns one input slot per contract output index;
// each slot compiles to its connected upstream expression or to its
// documented default.
type CustomOutputNode struct {
	contract ContractID
	caption  string
	slots    []InputSlot
}

// NewCustomOutputNode creates a contract node with the given caption and
// input slots. The slot count should match the contract's declared output
// count; a mismatch is not validated here (see AuditOutputCounts).
func NewCustomOutputNode(contract ContractID, caption string, slots ...InputSlot) *CustomOutputNode {
	return &CustomOutputNode{
		contract: contract,
		caption:  caption,
		slots:    slots,
	}
}

// Caption returns the node's display caption.
func (n *CustomOutputNode) Caption() string { return n.caption }

// ContractID returns the bound output contract.
func (n *CustomOutputNode) ContractID() ContractID { return n.contract }

// NumOutputs returns the number of input slots, one per output index.
func (n *CustomOutputNode) NumOutputs() int { return len(n.slots) }

// Slots returns the node's input slots.
func (n *CustomOutputNode) Slots() []*InputSlot {
	return slotRefs(n.slots)
}

// SlotByName finds an input slot by name.
func (n *CustomOutputNode) SlotByName(name string) *InputSlot {
	return slotByName(n.slots, name)
}

// Compile lowers one output index of the node.
//
// When no slot across the whole node is connected, an advisory error is
// reported and compilation proceeds with defaults; the diagnostic is
// deduplicated by the pass result so it surfaces once per pass no matter
// how many indices are compiled. The contract is invoked on every call;
// the backend dedups repeated invocations via the presence flag.
func (n *CustomOutputNode) Compile(c Compiler, outputIndex int) Handle {
	if outputIndex < 0 || outputIndex >= len(n.slots) {
		c.Diagnose(n, SeverityError, fmt.Sprintf("Output index %d out of range for %s.", outputIndex, n.caption))
		return NoHandle
	}

	if !n.anyConnected() {
		c.Diagnose(n, SeverityError, fmt.Sprintf("No inputs to %s.", n.caption))
	}

	value := n.slots[outputIndex].compile(c)

	c.Invoke(n.contract)
	return c.RegisterOutput(n, outputIndex, value)
}

func (n *CustomOutputNode) anyConnected() bool {
	for i := range n.slots {
		if n.slots[i].Connected() {
			return true
		}
	}
	return false
}

func (n *CustomOutputNode) fingerprint(enc *fpEncoder) {
	enc.str("custom_output")
	enc.uint32(uint32(n.contract))
	enc.str(n.caption)
	enc.uint32(uint32(len(n.slots)))
	for i := range n.slots {
		enc.slot(&n.slots[i])
	}
}
