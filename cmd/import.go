package cmd

import (
	"fmt"

	"github.com/7blacky7/bpetok/bpe/hfimport"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var outPrefix string

	c := &cobra.Command{
		Use:   "import <tokenizer.json>",
		Short: "Import a HuggingFace-style tokenizer.json into our model format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := hfimport.FromFile(args[0])
			if err != nil {
				return err
			}
			if err := tok.Save(outPrefix); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d merges, vocab size %d, wrote %s.model and %s.vocab\n",
				tok.NumMerges(), tok.VocabSize(), outPrefix, outPrefix)
			return nil
		},
	}

	c.Flags().StringVarP(&outPrefix, "output", "o", "tokenizer", "output file prefix")
	return c
}
