package graph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// NodeHandle references a node inside a Graph's arena.
type NodeHandle uint32

// Handle references a compiled value inside a backend's expression arena.
type Handle int32

// NoHandle marks the absence of a compiled value. Compiler.Invoke returns
// it unconditionally; backends return it from operations that fail.
const NoHandle Handle = -1

// Node is an expression node. Compilation is a pure function of the node's
// current slot connectivity: compiling the same node twice without edits
// yields identical results.
type Node interface {
	// Caption returns the node's display caption.
	Caption() string

	// NumOutputs returns the number of output indices the node produces.
	NumOutputs() int

	// Compile lowers the given output index through the compiler and
	// returns a handle to the compiled value.
	Compile(c Compiler, outputIndex int) Handle

	// fingerprint contributes the node's identity and connectivity to a
	// graph content hash.
	fingerprint(enc *fpEncoder)
}

// ContractNode is implemented by nodes bound to an output contract.
// Backends resolve the contract through the pass registry when the node
// registers its outputs.
type ContractNode interface {
	Node
	ContractID() ContractID
}

// Connection binds an input slot to one output of an upstream node.
type Connection struct {
	From   Node
	Output int
}

// InputSlot is a named input owned by a node. A slot is either connected
// to an upstream node output or falls back to its default value during
// compilation. Slots never outlive their node.
type InputSlot struct {
	Name    string
	Default Value

	conn *Connection
}

// NewSlot creates an unconnected slot with the given default.
func NewSlot(name string, def Value) InputSlot {
	return InputSlot{Name: name, Default: def}
}

// Connect binds the slot to an upstream node output.
func (s *InputSlot) Connect(from Node, output int) {
	s.conn = &Connection{From: from, Output: output}
}

// Disconnect clears the slot's connection.
func (s *InputSlot) Disconnect() {
	s.conn = nil
}

// Connected reports whether the slot has an upstream connection.
func (s *InputSlot) Connected() bool {
	return s.conn != nil
}

// Source returns the slot's connection, or nil when unconnected.
func (s *InputSlot) Source() *Connection {
	return s.conn
}

// compile resolves the slot to a compiled value: the upstream expression
// when connected, the slot default otherwise.
func (s *InputSlot) compile(c Compiler) Handle {
	if s.conn != nil {
		return s.conn.From.Compile(c, s.conn.Output)
	}
	return s.Default.compile(c)
}

// Value is a constant float vector with 1, 3 or 4 components. It serves
// both as inline node constants and as per-slot defaults.
type Value struct {
	X, Y, Z, W float64

	// Size is the component count: 1, 3 or 4.
	Size int
}

// Scalar returns a one-component value.
func Scalar(v float64) Value {
	return Value{X: v, Size: 1}
}

// Vec3 returns a three-component value.
func Vec3(x, y, z float64) Value {
	return Value{X: x, Y: y, Z: z, Size: 3}
}

// Vec4 returns a four-component value.
func Vec4(x, y, z, w float64) Value {
	return Value{X: x, Y: y, Z: z, W: w, Size: 4}
}

// compile lowers the value through the compiler's constant constructors.
func (v Value) compile(c Compiler) Handle {
	switch v.Size {
	case 3:
		return c.Constant3(v.X, v.Y, v.Z)
	case 4:
		return c.Constant4(v.X, v.Y, v.Z, v.W)
	default:
		return c.Constant(v.X)
	}
}

// Graph is an arena of expression nodes. Handles are stable for the life
// of the graph; nodes are never removed from the arena, removal from the
// authored graph is expressed by disconnecting slots.
type Graph struct {
	nodes []Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make([]Node, 0, 16)}
}

// Add appends a node to the arena and returns its handle.
func (g *Graph) Add(n Node) NodeHandle {
	h := NodeHandle(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return h
}

// Node finds a node by its handle.
func (g *Graph) Node(h NodeHandle) (Node, bool) {
	if int(h) >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[h], true
}

// Nodes returns all nodes in arena order.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Count returns the number of nodes in the arena.
func (g *Graph) Count() int {
	return len(g.nodes)
}

// Connect wires one output of the from node into a named slot of the to
// node. The target must implement SlotOwner.
func (g *Graph) Connect(to NodeHandle, slotName string, from NodeHandle, output int) error {
	dst, ok := g.Node(to)
	if !ok {
		return fmt.Errorf("graph: no node with handle %d", to)
	}
	src, ok := g.Node(from)
	if !ok {
		return fmt.Errorf("graph: no node with handle %d", from)
	}
	if output < 0 || output >= src.NumOutputs() {
		return fmt.Errorf("graph: output %d out of range for %s", output, src.Caption())
	}
	owner, ok := dst.(SlotOwner)
	if !ok {
		return fmt.Errorf("graph: node %s has no input slots", dst.Caption())
	}
	slot := owner.SlotByName(slotName)
	if slot == nil {
		return fmt.Errorf("graph: node %s has no slot %q", dst.Caption(), slotName)
	}
	slot.Connect(src, output)
	return nil
}

// SlotOwner is implemented by nodes that own named input slots.
type SlotOwner interface {
	Node
	Slots() []*InputSlot
	SlotByName(name string) *InputSlot
}

// Fingerprint returns a hex SHA-256 content hash of the graph: node kinds,
// inline parameters and slot connectivity in arena order. Two graphs with
// identical structure hash identically, making the fingerprint a stable
// cache key for compiled permutations.
func (g *Graph) Fingerprint() string {
	enc := &fpEncoder{ids: make(map[Node]NodeHandle, len(g.nodes))}
	for h, n := range g.nodes {
		enc.ids[n] = NodeHandle(h)
	}
	for _, n := range g.nodes {
		n.fingerprint(enc)
	}
	sum := sha256.Sum256(enc.buf)
	return hex.EncodeToString(sum[:])
}

// fpEncoder accumulates the canonical byte encoding behind Fingerprint.
type fpEncoder struct {
	buf []byte
	ids map[Node]NodeHandle
}

func (e *fpEncoder) str(s string) {
	e.uint32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *fpEncoder) uint32(v uint32) {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
}

func (e *fpEncoder) float(v float64) {
	e.buf = binary.BigEndian.AppendUint64(e.buf, math.Float64bits(v))
}

func (e *fpEncoder) value(v Value) {
	e.uint32(uint32(v.Size))
	e.float(v.X)
	e.float(v.Y)
	e.float(v.Z)
	e.float(v.W)
}

func (e *fpEncoder) slot(s *InputSlot) {
	e.str(s.Name)
	e.value(s.Default)
	if s.conn == nil {
		e.uint32(0xffffffff)
		return
	}
	e.uint32(uint32(e.ids[s.conn.From]))
	e.uint32(uint32(s.conn.Output))
}
