package graph

// ConstantNode produces an inline constant value.
type ConstantNode struct {
	Value Value
}

// NewConstantNode creates a constant node.
func NewConstantNode(v Value) *ConstantNode {
	return &ConstantNode{Value: v}
}

// Caption returns the node caption.
func (n *ConstantNode) Caption() string { return "Constant" }

// NumOutputs returns 1.
func (n *ConstantNode) NumOutputs() int { return 1 }

// Compile lowers the constant.
func (n *ConstantNode) Compile(c Compiler, outputIndex int) Handle {
	return n.Value.compile(c)
}

func (n *ConstantNode) fingerprint(enc *fpEncoder) {
	enc.str("constant")
	enc.value(n.Value)
}

// ParameterNode produces a reference to a named uniform parameter.
type ParameterNode struct {
	// Name is the uniform's identifier in the generated source.
	Name string

	// Size is the component count: 1, 3 or 4.
	Size int
}

// NewParameterNode creates a parameter node.
func NewParameterNode(name string, size int) *ParameterNode {
	return &ParameterNode{Name: name, Size: size}
}

// Caption returns the node caption.
func (n *ParameterNode) Caption() string { return n.Name }

// NumOutputs returns 1.
func (n *ParameterNode) NumOutputs() int { return 1 }

// Compile lowers the parameter reference.
func (n *ParameterNode) Compile(c Compiler, outputIndex int) Handle {
	return c.Parameter(n.Name, n.Size)
}

func (n *ParameterNode) fingerprint(enc *fpEncoder) {
	enc.str("parameter")
	enc.str(n.Name)
	enc.uint32(uint32(n.Size))
}

// ArithmeticNode applies a componentwise binary operation to its two
// inputs. Unconnected inputs fall back to their slot defaults without a
// diagnostic; arithmetic over defaults is a legitimate authoring state.
type ArithmeticNode struct {
	Op    BinaryOp
	slots []InputSlot
}

// NewArithmeticNode creates an arithmetic node with scalar-zero defaults
// on both inputs. OpMul and OpDiv default the right input to one so an
// unconnected factor is the identity.
func NewArithmeticNode(op BinaryOp) *ArithmeticNode {
	right := Scalar(0)
	if op == OpMul || op == OpDiv {
		right = Scalar(1)
	}
	return &ArithmeticNode{
		Op: op,
		slots: []InputSlot{
			NewSlot("A", Scalar(0)),
			NewSlot("B", right),
		},
	}
}

// Caption returns the node caption.
func (n *ArithmeticNode) Caption() string { return n.Op.String() }

// NumOutputs returns 1.
func (n *ArithmeticNode) NumOutputs() int { return 1 }

// Slots returns the node's input slots.
func (n *ArithmeticNode) Slots() []*InputSlot {
	return slotRefs(n.slots)
}

// SlotByName finds an input slot by name.
func (n *ArithmeticNode) SlotByName(name string) *InputSlot {
	return slotByName(n.slots, name)
}

// Compile lowers both inputs and applies the operation.
func (n *ArithmeticNode) Compile(c Compiler, outputIndex int) Handle {
	left := n.slots[0].compile(c)
	right := n.slots[1].compile(c)
	return c.Binary(n.Op, left, right)
}

func (n *ArithmeticNode) fingerprint(enc *fpEncoder) {
	enc.str("arithmetic")
	enc.uint32(uint32(n.Op))
	enc.slot(&n.slots[0])
	enc.slot(&n.slots[1])
}

// AppendNode concatenates the components of its two inputs into a wider
// vector.
type AppendNode struct {
	slots []InputSlot
}

// NewAppendNode creates an append node with scalar-zero defaults.
func NewAppendNode() *AppendNode {
	return &AppendNode{
		slots: []InputSlot{
			NewSlot("A", Scalar(0)),
			NewSlot("B", Scalar(0)),
		},
	}
}

// Caption returns the node caption.
func (n *AppendNode) Caption() string { return "Append" }

// NumOutputs returns 1.
func (n *AppendNode) NumOutputs() int { return 1 }

// Slots returns the node's input slots.
func (n *AppendNode) Slots() []*InputSlot {
	return slotRefs(n.slots)
}

// SlotByName finds an input slot by name.
func (n *AppendNode) SlotByName(name string) *InputSlot {
	return slotByName(n.slots, name)
}

// Compile lowers both inputs and appends them.
func (n *AppendNode) Compile(c Compiler, outputIndex int) Handle {
	left := n.slots[0].compile(c)
	right := n.slots[1].compile(c)
	return c.Append(left, right)
}

func (n *AppendNode) fingerprint(enc *fpEncoder) {
	enc.str("append")
	enc.slot(&n.slots[0])
	enc.slot(&n.slots[1])
}

func slotRefs(slots []InputSlot) []*InputSlot {
	refs := make([]*InputSlot, len(slots))
	for i := range slots {
		refs[i] = &slots[i]
	}
	return refs
}

func slotByName(slots []InputSlot, name string) *InputSlot {
	for i := range slots {
		if slots[i].Name == name {
			return &slots[i]
		}
	}
	return nil
}
