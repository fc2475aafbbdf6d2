// Package graph defines the expression-node graph and the compiler
// extension surface for shadergraph.
//
// A Graph is an arena of expression nodes. Nodes that carry an output
// Contract compile themselves through the Compiler interface; the active
// backend records contract usage and output metadata into a per-pass
// Result, from which the preprocessor Environment consumed by shader
// templates is derived.
//
// Contracts are registered in a Registry and dispatched by ContractID
// through the single generic Compiler.Invoke entry point, so adding a
// contract never requires touching backend or decorator code.
package graph
