package shadergraph

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/gogpu/shadergraph/graph"
)

// ---------------------------------------------------------------------------
// Benchmark graphs at different complexity levels
// ---------------------------------------------------------------------------

// smallGraph is a single output node compiling entirely from defaults.
func smallGraph() (*graph.Graph, *graph.Registry) {
	reg := graph.NewRegistry()
	id := reg.MustRegister(graph.Contract{FunctionName: "ExampleOutput", OutputCount: 2})

	g := graph.NewGraph()
	g.Add(graph.NewCustomOutputNode(id, "Example Output",
		graph.NewSlot("Color", graph.Vec3(0, 0, 0)),
		graph.NewSlot("Normal", graph.Vec3(0, 0, 1)),
	))
	return g, reg
}

// mediumGraph feeds an output through parameters and arithmetic.
func mediumGraph() (*graph.Graph, *graph.Registry) {
	reg := graph.NewRegistry()
	id := reg.MustRegister(graph.Contract{FunctionName: "VirtualTexture", OutputCount: 2})

	g := graph.NewGraph()
	tint := g.Add(graph.NewParameterNode("BaseTint", 3))
	scale := g.Add(graph.NewParameterNode("Intensity", 1))
	mul := g.Add(graph.NewArithmeticNode(graph.OpMul))
	out := g.Add(graph.NewCustomOutputNode(id, "Virtual Texture",
		graph.NewSlot("BaseColor", graph.Vec3(0, 0, 0)),
		graph.NewSlot("Normal", graph.Vec3(0, 0, 1)),
	))
	g.Connect(mul, "A", tint, 0)
	g.Connect(mul, "B", scale, 0)
	g.Connect(out, "BaseColor", mul, 0)
	return g, reg
}

// largeGraph drives several contracts through chained arithmetic.
func largeGraph() (*graph.Graph, *graph.Registry) {
	reg := graph.NewRegistry()

	g := graph.NewGraph()
	for i := 0; i < 8; i++ {
		id := reg.MustRegister(graph.Contract{
			FunctionName: fmt.Sprintf("Layer%dOutput", i),
			OutputCount:  3,
		})

		base := g.Add(graph.NewParameterNode(fmt.Sprintf("Base%d", i), 3))
		gain := g.Add(graph.NewParameterNode(fmt.Sprintf("Gain%d", i), 1))
		prev := base
		for j := 0; j < 4; j++ {
			mul := g.Add(graph.NewArithmeticNode(graph.OpMul))
			g.Connect(mul, "A", prev, 0)
			g.Connect(mul, "B", gain, 0)
			prev = mul
		}

		out := g.Add(graph.NewCustomOutputNode(id, fmt.Sprintf("Layer %d", i),
			graph.NewSlot("Color", graph.Vec3(0, 0, 0)),
			graph.NewSlot("Normal", graph.Vec3(0, 0, 1)),
			graph.NewSlot("Mask", graph.Scalar(1)),
		))
		g.Connect(out, "Color", prev, 0)
	}
	return g, reg
}

type graphCase struct {
	name  string
	build func() (*graph.Graph, *graph.Registry)
}

var graphsByComplexity = []graphCase{
	{"small_defaults", smallGraph},
	{"medium_tinted", mediumGraph},
	{"large_layered", largeGraph},
}

// ---------------------------------------------------------------------------
// End-to-End: compilation benchmarks by complexity and target
// ---------------------------------------------------------------------------

// BenchmarkCompile benchmarks full graph-to-source compilation grouped by
// graph complexity. Reports allocations.
func BenchmarkCompile(b *testing.B) {
	for _, gc := range graphsByComplexity {
		g, reg := gc.build()
		b.Run(gc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			var artifact *Artifact
			for i := 0; i < b.N; i++ {
				var err error
				artifact, err = Compile(g, reg, Options{Target: TargetHLSL})
				if err != nil {
					b.Fatalf("compile failed: %v", err)
				}
			}
			runtime.KeepAlive(artifact)
		})
	}
}

// BenchmarkCompileAllTargets benchmarks the same medium graph compiled to
// both text backends for cross-target comparison.
func BenchmarkCompileAllTargets(b *testing.B) {
	g, reg := mediumGraph()

	for _, target := range []Target{TargetHLSL, TargetGLSL} {
		b.Run(target.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			var artifact *Artifact
			for i := 0; i < b.N; i++ {
				var err error
				artifact, err = Compile(g, reg, Options{Target: target})
				if err != nil {
					b.Fatalf("compile failed: %v", err)
				}
			}
			runtime.KeepAlive(artifact)
		})
	}
}

// BenchmarkCompilePermutations benchmarks concurrent permutation fan-out
// over the large graph.
func BenchmarkCompilePermutations(b *testing.B) {
	g, reg := largeGraph()

	perms := []Permutation{
		{Name: "hlsl_a", Options: Options{Target: TargetHLSL}},
		{Name: "hlsl_b", Options: Options{Target: TargetHLSL}},
		{Name: "glsl_a", Options: Options{Target: TargetGLSL}},
		{Name: "glsl_b", Options: Options{Target: TargetGLSL}},
	}

	b.ReportAllocs()
	b.ResetTimer()

	var artifacts []*Artifact
	for i := 0; i < b.N; i++ {
		var err error
		artifacts, err = CompilePermutations(context.Background(), g, reg, perms, 4)
		if err != nil {
			b.Fatalf("permutations failed: %v", err)
		}
	}
	runtime.KeepAlive(artifacts)
}

// BenchmarkFingerprint benchmarks cache-key derivation for graphs of
// different complexity.
func BenchmarkFingerprint(b *testing.B) {
	for _, gc := range graphsByComplexity {
		g, _ := gc.build()
		b.Run(gc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			var fp string
			for i := 0; i < b.N; i++ {
				fp = g.Fingerprint()
			}
			runtime.KeepAlive(fp)
		})
	}
}
