// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl generates HLSL accessor source from a shadergraph node
// graph.
//
// The Translator implements graph.Compiler. Each contract node compiles
// to one accessor function per output index, named
// Get<FunctionName><index>, zero-based with no gaps. Contract presence
// and output counts are recorded in a graph.Result, from which the
// preprocessor environment for hand-written shader templates is derived.
package hlsl
