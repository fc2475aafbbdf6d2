// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL accessor source from a shadergraph node
// graph.
//
// It implements the same graph.Compiler surface as the hlsl package with
// GLSL syntax: parameters become uniforms and accessors return vecN.
// Contracts dispatch by ID through the shared registry, so a contract
// added for one backend is automatically available to this one.
package glsl
