package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/cache"
	"github.com/gogpu/shadergraph/graphfile"
	"github.com/gogpu/shadergraph/log"
)

var (
	compileTarget  string
	compileOut     string
	compileEnvOut  string
	compileCacheDB string
)

var compileCmd = &cobra.Command{
	Use:   "compile <graph.hcl>",
	Short: "Compile a graph document to shader source",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileTarget, "target", "t", "hlsl", "backend target (hlsl, glsl)")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "write generated source to file (default stdout)")
	compileCmd.Flags().StringVar(&compileEnvOut, "env", "", "write preprocessor defines to file")
	compileCmd.Flags().StringVar(&compileCacheDB, "cache", "", "path to a permutation cache database")
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	target, err := shadergraph.ParseTarget(compileTarget)
	if err != nil {
		return err
	}

	doc, err := graphfile.Load(args[0])
	if err != nil {
		return err
	}

	var db *cache.Cache
	fingerprint := doc.Graph.Fingerprint()
	if compileCacheDB != "" {
		db, err = cache.Open(compileCacheDB)
		if err != nil {
			return err
		}
		defer db.Close()

		if entry, ok, err := db.Get(ctx, fingerprint, target.String()); err != nil {
			return err
		} else if ok {
			log.Debugf("cache hit for %s target=%s", fingerprint[:12], target)
			return writeOutputs(entry.Source, entry.Defines)
		}
	}

	artifact, err := shadergraph.Compile(doc.Graph, doc.Registry, shadergraph.Options{Target: target})
	if err != nil {
		return err
	}
	for _, d := range artifact.Result.Diagnostics() {
		log.Warnf("%s", d)
	}

	defines := artifact.Environment.String()
	if db != nil {
		if err := db.Put(ctx, fingerprint, target.String(), &cache.Entry{
			Source:  artifact.Source,
			Defines: defines,
		}); err != nil {
			return err
		}
	}

	return writeOutputs(artifact.Source, defines)
}

// writeOutputs routes the generated source and defines to their
// destinations: files when requested, stdout for the source otherwise.
func writeOutputs(source, defines string) error {
	if compileOut != "" {
		if err := os.WriteFile(compileOut, []byte(source), 0o644); err != nil {
			return err
		}
	} else {
		fmt.Print(source)
	}

	if compileEnvOut != "" {
		if err := os.WriteFile(compileEnvOut, []byte(defines), 0o644); err != nil {
			return err
		}
	}
	return nil
}
