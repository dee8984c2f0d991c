// Package cmd implements the bpetok command-line interface: train, encode,
// decode, show, repl and import, wired together as a spf13/cobra command
// tree.
package cmd

import (
	"fmt"
	"strings"

	"github.com/7blacky7/bpetok/envconfig"
	"github.com/spf13/cobra"
)

// NewCLI builds the root command and wires up every subcommand.
func NewCLI() *cobra.Command {
	root := &cobra.Command{
		Use:           "bpetok",
		Short:         "A byte-level BPE tokenizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(
		newTrainCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newShowCmd(),
		newReplCmd(),
		newImportCmd(),
	)

	appendEnvDocs(root)
	return root
}

// appendEnvDocs appends the recognized BPETOK_* environment variables to the
// root command's usage template, the way the teacher's CLI documents its own
// environment configuration inline.
func appendEnvDocs(root *cobra.Command) {
	envVars := envconfig.AsMap()
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}

	var b strings.Builder
	b.WriteString("\nEnvironment Variables:\n")
	for _, name := range names {
		v := envVars[name]
		fmt.Fprintf(&b, "  %-20s %s\n", v.Name, v.Description)
	}

	root.SetUsageTemplate(root.UsageTemplate() + b.String())
}
