// Package shadergraph compiles visual shader node graphs to generated
// shader source.
//
// A graph of expression nodes (package graph) compiles through a backend
// translator (packages hlsl, glsl). Nodes carrying an output contract
// inject accessor functions named Get<FunctionName><index> into the
// generated source; the pass result records which contracts were used and
// how many outputs each produces, and that metadata is serialized as
// preprocessor symbols for hand-written shader templates to branch on.
//
// Example usage:
//
//	reg := graph.NewRegistry()
//	id := reg.MustRegister(graph.Contract{FunctionName: "BentNormal", OutputCount: 1})
//
//	g := graph.NewGraph()
//	out := g.Add(graph.NewCustomOutputNode(id, "Bent Normal",
//		graph.NewSlot("Normal", graph.Vec3(0, 0, 1))))
//	_ = out
//
//	artifact, err := shadergraph.Compile(g, reg, shadergraph.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(artifact.Source)
//	fmt.Println(artifact.Environment.String())
package shadergraph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/hlsl"
	"github.com/gogpu/shadergraph/log"
)

// Target selects the backend translator.
type Target uint8

const (
	// TargetHLSL generates HLSL accessor source.
	TargetHLSL Target = iota

	// TargetGLSL generates GLSL accessor source.
	TargetGLSL
)

// String returns the target's name.
func (t Target) String() string {
	switch t {
	case TargetHLSL:
		return "hlsl"
	case TargetGLSL:
		return "glsl"
	default:
		return "unknown"
	}
}

// ParseTarget parses a target name.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "hlsl":
		return TargetHLSL, nil
	case "glsl":
		return TargetGLSL, nil
	default:
		return 0, fmt.Errorf("shadergraph: unknown target %q", s)
	}
}

// Options configures graph compilation.
type Options struct {
	// Target selects the backend.
	Target Target

	// HLSL configures the HLSL backend. Nil uses hlsl.DefaultOptions.
	HLSL *hlsl.Options

	// GLSL configures the GLSL backend. Nil uses glsl.DefaultOptions.
	GLSL *glsl.Options
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{Target: TargetHLSL}
}

// Artifact is the output of one compilation pass.
type Artifact struct {
	// Source is the generated shader source.
	Source string

	// Result is the pass record of contract presence, output metadata and
	// advisory diagnostics. Read-only.
	Result *graph.Result

	// Environment holds the preprocessor symbols derived from Result.
	Environment *graph.Environment
}

// Compile runs one compilation pass over the graph.
//
// The pass is a synchronous depth-first descent over the node graph: it
// runs to completion and advisory diagnostics never abort it. The graph
// and registry are only read, so independent passes over the same graph
// may run concurrently.
func Compile(g *graph.Graph, registry *graph.Registry, opts Options) (*Artifact, error) {
	var (
		source string
		result *graph.Result
		err    error
	)

	switch opts.Target {
	case TargetHLSL:
		source, result, err = hlsl.Compile(g, registry, opts.HLSL)
	case TargetGLSL:
		source, result, err = glsl.Compile(g, registry, opts.GLSL)
	default:
		return nil, fmt.Errorf("shadergraph: unknown target %d", opts.Target)
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Source:      source,
		Result:      result,
		Environment: graph.DeriveEnvironment(registry, result),
	}, nil
}

// Permutation names one independent compilation of the same graph, for
// example per target language or quality level.
type Permutation struct {
	Name    string
	Options Options
}

// CompilePermutations compiles every permutation of the graph on up to
// workers goroutines. Each pass owns its translator and result; passes
// share no mutable state. A pass that has started always runs to
// completion, so cancellation takes effect between passes, not inside
// one. Artifacts are returned in permutation order.
func CompilePermutations(ctx context.Context, g *graph.Graph, registry *graph.Registry, perms []Permutation, workers int) ([]*Artifact, error) {
	if workers < 1 {
		workers = 1
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	artifacts := make([]*Artifact, len(perms))
	for i, p := range perms {
		i, p := i, p
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			passID := uuid.NewString()
			log.Debugf("compiling permutation %q pass=%s target=%s", p.Name, passID, p.Options.Target)

			a, err := Compile(g, registry, p.Options)
			if err != nil {
				return fmt.Errorf("permutation %q: %w", p.Name, err)
			}
			for _, d := range a.Result.Diagnostics() {
				log.Warnf("permutation %q pass=%s: %s", p.Name, passID, d)
			}
			artifacts[i] = a
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
