package shadergraph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/graph"
)

func buildExample(t *testing.T) (*graph.Graph, *graph.Registry) {
	t.Helper()

	reg := graph.NewRegistry()
	id := reg.MustRegister(graph.Contract{
		FunctionName: "ExampleOutput",
		OutputCount:  2,
		DisplayName:  "Example Output",
	})

	g := graph.NewGraph()
	tint := g.Add(graph.NewParameterNode("BaseTint", 3))
	out := g.Add(graph.NewCustomOutputNode(id, "Example Output",
		graph.NewSlot("Color", graph.Vec3(0, 0, 0)),
		graph.NewSlot("Normal", graph.Vec3(0, 0, 1)),
	))
	if err := g.Connect(out, "Color", tint, 0); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	return g, reg
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    shadergraph.Target
		wantErr bool
	}{
		{"hlsl", shadergraph.TargetHLSL, false},
		{"glsl", shadergraph.TargetGLSL, false},
		{"msl", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := shadergraph.ParseTarget(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTarget(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseTarget(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompileTargets(t *testing.T) {
	g, reg := buildExample(t)

	hlslArtifact, err := shadergraph.Compile(g, reg, shadergraph.Options{Target: shadergraph.TargetHLSL})
	if err != nil {
		t.Fatalf("Compile(hlsl) error: %v", err)
	}
	if !strings.Contains(hlslArtifact.Source, "float3 GetExampleOutput0") {
		t.Errorf("hlsl source missing accessor:\n%s", hlslArtifact.Source)
	}

	glslArtifact, err := shadergraph.Compile(g, reg, shadergraph.Options{Target: shadergraph.TargetGLSL})
	if err != nil {
		t.Fatalf("Compile(glsl) error: %v", err)
	}
	if !strings.Contains(glslArtifact.Source, "vec3 GetExampleOutput0") {
		t.Errorf("glsl source missing accessor:\n%s", glslArtifact.Source)
	}

	// Contract metadata is backend-independent.
	if diff := cmp.Diff(hlslArtifact.Environment.Defines(), glslArtifact.Environment.Defines()); diff != "" {
		t.Errorf("environment mismatch across backends (-hlsl +glsl):\n%s", diff)
	}
}

func TestCompileUnknownTarget(t *testing.T) {
	g, reg := buildExample(t)
	if _, err := shadergraph.Compile(g, reg, shadergraph.Options{Target: shadergraph.Target(9)}); err == nil {
		t.Error("Compile() with unknown target succeeded")
	}
}

// Concurrent permutation compilation must be equivalent to compiling each
// permutation serially: passes share no mutable state.
func TestCompilePermutations(t *testing.T) {
	g, reg := buildExample(t)

	perms := []shadergraph.Permutation{
		{Name: "pc_high", Options: shadergraph.Options{Target: shadergraph.TargetHLSL}},
		{Name: "pc_low", Options: shadergraph.Options{Target: shadergraph.TargetHLSL}},
		{Name: "gl", Options: shadergraph.Options{Target: shadergraph.TargetGLSL}},
	}

	artifacts, err := shadergraph.CompilePermutations(context.Background(), g, reg, perms, 3)
	if err != nil {
		t.Fatalf("CompilePermutations() error: %v", err)
	}
	if len(artifacts) != len(perms) {
		t.Fatalf("got %d artifacts, want %d", len(artifacts), len(perms))
	}

	for i, p := range perms {
		serial, err := shadergraph.Compile(g, reg, p.Options)
		if err != nil {
			t.Fatalf("serial Compile(%s) error: %v", p.Name, err)
		}
		if diff := cmp.Diff(serial.Source, artifacts[i].Source); diff != "" {
			t.Errorf("permutation %s source differs from serial compile:\n%s", p.Name, diff)
		}
		if diff := cmp.Diff(serial.Environment.Defines(), artifacts[i].Environment.Defines()); diff != "" {
			t.Errorf("permutation %s environment differs:\n%s", p.Name, diff)
		}
	}
}

func TestCompilePermutationsCancelled(t *testing.T) {
	g, reg := buildExample(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	perms := []shadergraph.Permutation{
		{Name: "a", Options: shadergraph.DefaultOptions()},
	}
	if _, err := shadergraph.CompilePermutations(ctx, g, reg, perms, 1); err == nil {
		t.Error("CompilePermutations() with cancelled context succeeded")
	}
}

func TestFingerprintAsCacheKey(t *testing.T) {
	g, reg := buildExample(t)
	_ = reg

	first := g.Fingerprint()
	second := g.Fingerprint()
	if first != second {
		t.Errorf("fingerprint unstable: %s vs %s", first, second)
	}
}
