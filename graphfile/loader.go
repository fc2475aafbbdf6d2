// Package graphfile loads shader graph documents written in HCL.
//
// A document declares output contracts and nodes:
//
//	contract "VirtualTexture" {
//	  outputs      = 2
//	  display_name = "Runtime Virtual Texture Output"
//	}
//
//	node "parameter" "Roughness" {
//	  size = 1
//	}
//
//	node "custom_output" "vt" {
//	  contract = "VirtualTexture"
//	  slot "BaseColor" {
//	    default = [0, 0, 0]
//	    from    = "Roughness"
//	  }
//	  slot "Normal" {
//	    default = [0, 0, 1]
//	  }
//	}
//
// Connections reference upstream nodes by name, with an optional output
// index as "name:index".
package graphfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/gogpu/shadergraph/graph"
)

// Document is a loaded graph file.
type Document struct {
	Graph    *graph.Graph
	Registry *graph.Registry

	// Names maps node names to their graph handles, in document order.
	Names map[string]graph.NodeHandle
}

// Load reads and builds a graph document from a file.
func Load(path string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphfile: %w", diags)
	}
	return build(file)
}

// Parse builds a graph document from source bytes. The filename is used
// in diagnostics only.
func Parse(src []byte, filename string) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("graphfile: %w", diags)
	}
	return build(file)
}

func build(file *hcl.File) (*Document, error) {
	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, fmt.Errorf("graphfile: %w", diags)
	}

	doc := &Document{
		Graph:    graph.NewGraph(),
		Registry: graph.NewRegistry(),
		Names:    make(map[string]graph.NodeHandle),
	}

	for _, c := range schema.Contracts {
		_, err := doc.Registry.Register(graph.Contract{
			FunctionName: c.Name,
			OutputCount:  c.Outputs,
			DisplayName:  c.DisplayName,
			SymbolName:   c.Symbol,
		})
		if err != nil {
			return nil, fmt.Errorf("graphfile: %w", err)
		}
	}

	// First pass creates the nodes so forward references resolve; the
	// second pass wires connections.
	pending := make([]func() error, 0, len(schema.Nodes))
	for _, nb := range schema.Nodes {
		if _, dup := doc.Names[nb.Name]; dup {
			return nil, fmt.Errorf("graphfile: duplicate node name %q", nb.Name)
		}
		node, wire, err := buildNode(doc, nb)
		if err != nil {
			return nil, err
		}
		doc.Names[nb.Name] = doc.Graph.Add(node)
		if wire != nil {
			pending = append(pending, wire)
		}
	}
	for _, wire := range pending {
		if err := wire(); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// buildNode creates one node and returns an optional deferred wiring step.
func buildNode(doc *Document, nb *nodeBlock) (graph.Node, func() error, error) {
	switch nb.Kind {
	case "constant":
		var body constantBody
		if diags := gohcl.DecodeBody(nb.Body, nil, &body); diags.HasErrors() {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, diags)
		}
		v, err := decodeValue(body.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, err)
		}
		return graph.NewConstantNode(v), nil, nil

	case "parameter":
		var body parameterBody
		if diags := gohcl.DecodeBody(nb.Body, nil, &body); diags.HasErrors() {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, diags)
		}
		size := body.Size
		if size == 0 {
			size = 1
		}
		return graph.NewParameterNode(nb.Name, size), nil, nil

	case "arithmetic":
		var body arithmeticBody
		if diags := gohcl.DecodeBody(nb.Body, nil, &body); diags.HasErrors() {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, diags)
		}
		op, err := parseOp(body.Op)
		if err != nil {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, err)
		}
		node := graph.NewArithmeticNode(op)
		return node, wireInputs(doc, nb.Name, node, body.Inputs), nil

	case "append":
		var body appendBody
		if diags := gohcl.DecodeBody(nb.Body, nil, &body); diags.HasErrors() {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, diags)
		}
		node := graph.NewAppendNode()
		return node, wireInputs(doc, nb.Name, node, body.Inputs), nil

	case "custom_output":
		var body customOutputBody
		if diags := gohcl.DecodeBody(nb.Body, nil, &body); diags.HasErrors() {
			return nil, nil, fmt.Errorf("graphfile: node %q: %w", nb.Name, diags)
		}
		id, ok := doc.Registry.ByName(body.Contract)
		if !ok {
			return nil, nil, fmt.Errorf("graphfile: node %q references unknown contract %q", nb.Name, body.Contract)
		}
		caption := body.Caption
		if caption == "" {
			caption = nb.Name
		}
		slots := make([]graph.InputSlot, 0, len(body.Slots))
		for _, sb := range body.Slots {
			def := graph.Scalar(0)
			if sb.Default != nil {
				v, err := decodeValue(*sb.Default)
				if err != nil {
					return nil, nil, fmt.Errorf("graphfile: node %q slot %q: %w", nb.Name, sb.Name, err)
				}
				def = v
			}
			slots = append(slots, graph.NewSlot(sb.Name, def))
		}
		node := graph.NewCustomOutputNode(id, caption, slots...)

		wire := func() error {
			for _, sb := range body.Slots {
				if sb.From == "" {
					continue
				}
				if err := connect(doc, node, sb.Name, sb.From); err != nil {
					return fmt.Errorf("graphfile: node %q slot %q: %w", nb.Name, sb.Name, err)
				}
			}
			return nil
		}
		return node, wire, nil

	default:
		return nil, nil, fmt.Errorf("graphfile: node %q has unknown kind %q", nb.Name, nb.Kind)
	}
}

// wireInputs defers connection of input blocks until all nodes exist.
func wireInputs(doc *Document, name string, node graph.SlotOwner, inputs []*inputBlock) func() error {
	return func() error {
		for _, in := range inputs {
			if err := connect(doc, node, in.Name, in.From); err != nil {
				return fmt.Errorf("graphfile: node %q input %q: %w", name, in.Name, err)
			}
		}
		return nil
	}
}

// connect resolves a "name" or "name:index" reference and wires it into
// the named slot. Slot names match case-insensitively.
func connect(doc *Document, node graph.SlotOwner, slotName, ref string) error {
	fromName, output := ref, 0
	if i := strings.LastIndexByte(ref, ':'); i >= 0 {
		fromName = ref[:i]
		n, err := strconv.Atoi(ref[i+1:])
		if err != nil {
			return fmt.Errorf("invalid output index in reference %q", ref)
		}
		output = n
	}

	handle, ok := doc.Names[fromName]
	if !ok {
		return fmt.Errorf("unknown node %q", fromName)
	}
	from, _ := doc.Graph.Node(handle)
	if output < 0 || output >= from.NumOutputs() {
		return fmt.Errorf("output %d out of range for node %q", output, fromName)
	}

	var slot *graph.InputSlot
	for _, s := range node.Slots() {
		if strings.EqualFold(s.Name, slotName) {
			slot = s
			break
		}
	}
	if slot == nil {
		return fmt.Errorf("no slot named %q", slotName)
	}
	slot.Connect(from, output)
	return nil
}

// parseOp maps an operator name to its BinaryOp.
func parseOp(name string) (graph.BinaryOp, error) {
	switch name {
	case "add":
		return graph.OpAdd, nil
	case "sub":
		return graph.OpSub, nil
	case "mul":
		return graph.OpMul, nil
	case "div":
		return graph.OpDiv, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", name)
	}
}

// decodeValue converts an HCL value to a graph constant: a number becomes
// a scalar, a 3- or 4-element tuple becomes a vector.
func decodeValue(v cty.Value) (graph.Value, error) {
	if v.Type() == cty.Number {
		f, _ := v.AsBigFloat().Float64()
		return graph.Scalar(f), nil
	}
	if v.Type().IsTupleType() || v.Type().IsListType() {
		var comps []float64
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.Type() != cty.Number {
				return graph.Value{}, fmt.Errorf("vector component is not a number")
			}
			f, _ := ev.AsBigFloat().Float64()
			comps = append(comps, f)
		}
		switch len(comps) {
		case 3:
			return graph.Vec3(comps[0], comps[1], comps[2]), nil
		case 4:
			return graph.Vec4(comps[0], comps[1], comps[2], comps[3]), nil
		default:
			return graph.Value{}, fmt.Errorf("vector has %d components, want 3 or 4", len(comps))
		}
	}
	return graph.Value{}, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
}
