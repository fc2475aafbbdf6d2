// Package snapshot_test provides golden snapshot tests for the shadergraph
// backends.
//
// For each graph document in testdata/in/, the test compiles through both
// text backends (HLSL, GLSL), derives the preprocessor environment, and
// compares output to golden files stored in testdata/golden/{hlsl,glsl,env}/.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/graphfile"
	"github.com/gogpu/shadergraph/hlsl"
)

// ---------------------------------------------------------------------------
// Test Runner
// ---------------------------------------------------------------------------

// graphInput is an input graph document loaded from disk.
type graphInput struct {
	name string // base name without extension (e.g., "tinted_output")
	path string
}

// TestSnapshots is the main golden snapshot test. It loads all graph
// documents, compiles each through both backends, and compares with golden
// files.
func TestSnapshots(t *testing.T) {
	inputs := loadInputs(t, "testdata/in")
	if len(inputs) == 0 {
		t.Fatal("no input graphs found in testdata/in/")
	}

	for i := range inputs {
		input := &inputs[i]
		t.Run(input.name, func(t *testing.T) {
			doc, err := graphfile.Load(input.path)
			if err != nil {
				t.Fatalf("[%s] load failed: %v", input.name, err)
			}

			t.Run("hlsl", func(t *testing.T) {
				source, _, err := hlsl.Compile(doc.Graph, doc.Registry, nil)
				if err != nil {
					t.Fatalf("hlsl compile failed: %v", err)
				}
				compareGolden(t, filepath.Join("testdata", "golden", "hlsl", input.name+".hlsl"), source)
			})

			t.Run("glsl", func(t *testing.T) {
				source, _, err := glsl.Compile(doc.Graph, doc.Registry, nil)
				if err != nil {
					t.Fatalf("glsl compile failed: %v", err)
				}
				compareGolden(t, filepath.Join("testdata", "golden", "glsl", input.name+".glsl"), source)
			})

			t.Run("env", func(t *testing.T) {
				_, result, err := hlsl.Compile(doc.Graph, doc.Registry, nil)
				if err != nil {
					t.Fatalf("hlsl compile failed: %v", err)
				}
				env := graph.DeriveEnvironment(doc.Registry, result)
				compareGolden(t, filepath.Join("testdata", "golden", "env", input.name+".def"), env.String())
			})
		})
	}
}

// ---------------------------------------------------------------------------
// Input Loading
// ---------------------------------------------------------------------------

// loadInputs lists all .hcl documents in the given directory.
func loadInputs(t *testing.T, dir string) []graphInput {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var inputs []graphInput
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hcl") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".hcl")
		inputs = append(inputs, graphInput{name: name, path: filepath.Join(dir, entry.Name())})
	}

	// Sort for deterministic test order
	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].name < inputs[j].name
	})

	return inputs
}

// ---------------------------------------------------------------------------
// Golden File Comparison
// ---------------------------------------------------------------------------

// compareGolden compares actual output with the golden file at path.
// If UPDATE_GOLDEN is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, truncate(actual, 500))
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	// Normalize line endings for cross-platform comparison.
	// Git may convert \n to \r\n on Windows checkout.
	expectedStr := strings.ReplaceAll(string(expected), "\r\n", "\n")
	actualStr := strings.ReplaceAll(actual, "\r\n", "\n")

	if expectedStr != actualStr {
		t.Errorf("output differs from golden %s:\n%s", path, diffStrings(expectedStr, actualStr))
	}
}

// diffStrings produces a simple line-by-line diff showing the first difference
// and surrounding context.
func diffStrings(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var sb strings.Builder
	maxLines := len(expectedLines)
	if len(actualLines) > maxLines {
		maxLines = len(actualLines)
	}

	const contextLines = 3
	firstDiff := -1
	for i := 0; i < maxLines; i++ {
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			firstDiff = i
			break
		}
	}

	if firstDiff < 0 {
		return "(no difference found)"
	}

	fmt.Fprintf(&sb, "first difference at line %d:\n", firstDiff+1)
	fmt.Fprintf(&sb, "  expected lines: %d\n", len(expectedLines))
	fmt.Fprintf(&sb, "  actual lines:   %d\n\n", len(actualLines))

	start := firstDiff - contextLines
	if start < 0 {
		start = 0
	}
	end := firstDiff + contextLines + 1
	if end > maxLines {
		end = maxLines
	}

	for i := start; i < end; i++ {
		prefix := " "
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			prefix = "!"
		}
		fmt.Fprintf(&sb, "%s %4d expected: %s\n", prefix, i+1, truncate(eLine, 120))
		if eLine != aLine {
			fmt.Fprintf(&sb, "%s %4d actual:   %s\n", prefix, i+1, truncate(aLine, 120))
		}
	}

	return sb.String()
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
