package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/graphfile"
)

var envTarget string

var envCmd = &cobra.Command{
	Use:   "env <graph.hcl>",
	Short: "Print the preprocessor defines derived from a graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnv,
}

func init() {
	envCmd.Flags().StringVarP(&envTarget, "target", "t", "hlsl", "backend target (hlsl, glsl)")
}

func runEnv(cmd *cobra.Command, args []string) error {
	target, err := shadergraph.ParseTarget(envTarget)
	if err != nil {
		return err
	}

	doc, err := graphfile.Load(args[0])
	if err != nil {
		return err
	}

	artifact, err := shadergraph.Compile(doc.Graph, doc.Registry, shadergraph.Options{Target: target})
	if err != nil {
		return err
	}

	fmt.Print(artifact.Environment.String())
	return nil
}
