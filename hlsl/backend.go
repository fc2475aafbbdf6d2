// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/shadergraph/graph"
)

// Options configures HLSL accessor generation.
type Options struct {
	// Context is the parameter list every generated accessor receives.
	// Defaults to "FMaterialContext Ctx".
	Context string

	// ConstantBufferName is the name of the cbuffer holding graph
	// parameters. Defaults to "MaterialParameters".
	ConstantBufferName string

	// Banner emits a generated-source comment header.
	Banner bool
}

// DefaultOptions returns sensible default options for HLSL generation.
func DefaultOptions() *Options {
	return &Options{
		Context:            "FMaterialContext Ctx",
		ConstantBufferName: "MaterialParameters",
		Banner:             true,
	}
}

// Compile generates HLSL accessor source from a node graph.
//
// Every contract node in the graph is compiled once per output index, in
// arena order. Advisory diagnostics (unconnected inputs and the like)
// never fail compilation; they are collected on the returned Result along
// with contract presence and output metadata. The pass owns the Translator
// and Result exclusively; independent permutations may compile
// concurrently with no shared state.
func Compile(g *graph.Graph, registry *graph.Registry, options *Options) (string, *graph.Result, error) {
	if g == nil {
		return "", nil, NewError(ErrInvalidGraph, "graph is nil")
	}
	if registry == nil {
		return "", nil, NewError(ErrInvalidGraph, "contract registry is nil")
	}
	if options == nil {
		options = DefaultOptions()
	}

	t := NewTranslator(registry, options)

	for _, n := range g.Nodes() {
		cn, ok := n.(graph.ContractNode)
		if !ok {
			continue
		}
		for idx := 0; idx < cn.NumOutputs(); idx++ {
			cn.Compile(t, idx)
		}
	}

	w := newWriter(t)
	if err := w.writeModule(); err != nil {
		return "", nil, err
	}

	return w.String(), t.Result(), nil
}
