package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/shadergraph/log"
)

// version is set at build time via -ldflags.
var version = "dev"

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "sgc",
	Short: "Compile shader node graphs to generated shader source",
	Long: "sgc compiles HCL shader graph documents through the shadergraph\n" +
		"backends and derives the preprocessor environment consumed by\n" +
		"hand-written shader templates.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.SetLevel(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
