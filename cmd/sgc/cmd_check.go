package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/graphfile"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <graph.hcl>",
	Short: "Validate a graph document and report compile diagnostics",
	Long: "check runs a full compilation pass and prints every advisory\n" +
		"diagnostic, including the opt-in audit comparing declared output\n" +
		"counts against registered accessors.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit non-zero when any diagnostic is reported")
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := graphfile.Load(args[0])
	if err != nil {
		return err
	}

	artifact, err := shadergraph.Compile(doc.Graph, doc.Registry, shadergraph.DefaultOptions())
	if err != nil {
		return err
	}

	diags := artifact.Result.Diagnostics()
	diags = append(diags, graph.AuditOutputCounts(doc.Registry, artifact.Result)...)

	for _, d := range diags {
		fmt.Printf("%s\n", d)
	}
	if len(diags) == 0 {
		fmt.Println("ok")
		return nil
	}
	if checkStrict {
		return fmt.Errorf("%d diagnostic(s) reported", len(diags))
	}
	return nil
}
