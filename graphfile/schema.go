package graphfile

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileSchema is the top-level structure of a graph document.
type fileSchema struct {
	Contracts []*contractBlock `hcl:"contract,block"`
	Nodes     []*nodeBlock     `hcl:"node,block"`
}

// contractBlock declares one output contract.
type contractBlock struct {
	Name        string `hcl:"name,label"`
	Outputs     int    `hcl:"outputs"`
	DisplayName string `hcl:"display_name,optional"`
	Symbol      string `hcl:"symbol,optional"`
}

// nodeBlock declares one node. The body is decoded per kind.
type nodeBlock struct {
	Kind string   `hcl:"kind,label"`
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// constantBody is the body of a `node "constant"` block.
type constantBody struct {
	Value cty.Value `hcl:"value"`
}

// parameterBody is the body of a `node "parameter"` block.
type parameterBody struct {
	Size int `hcl:"size,optional"`
}

// inputBlock wires a named input of an arithmetic or append node.
type inputBlock struct {
	Name string `hcl:"name,label"`
	From string `hcl:"from"`
}

// arithmeticBody is the body of a `node "arithmetic"` block.
type arithmeticBody struct {
	Op     string        `hcl:"op"`
	Inputs []*inputBlock `hcl:"input,block"`
}

// appendBody is the body of a `node "append"` block.
type appendBody struct {
	Inputs []*inputBlock `hcl:"input,block"`
}

// slotBlock declares one input slot of a custom output node.
type slotBlock struct {
	Name    string     `hcl:"name,label"`
	Default *cty.Value `hcl:"default,optional"`
	From    string     `hcl:"from,optional"`
}

// customOutputBody is the body of a `node "custom_output"` block.
type customOutputBody struct {
	Contract string       `hcl:"contract"`
	Caption  string       `hcl:"caption,optional"`
	Slots    []*slotBlock `hcl:"slot,block"`
}
