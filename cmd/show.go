package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/7blacky7/bpetok/bpe"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "show <model-file>",
		Short: "Print a model's pattern, special tokens, and vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := bpe.Load(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pattern:     %s\n", tok.Pattern())
			fmt.Fprintf(w, "vocab size:  %d\n", tok.VocabSize())
			fmt.Fprintf(w, "merges:      %d\n", tok.NumMerges())
			fmt.Fprintln(w)

			special := tableFor(w, "Special tokens")
			special.SetHeader([]string{"token", "id"})
			for token, id := range tok.SpecialTokens() {
				special.Append([]string{token, strconv.Itoa(int(id))})
			}
			special.Render()
			fmt.Fprintln(w)

			vocab := tableFor(w, "Vocabulary")
			vocab.SetHeader([]string{"id", "token", "left", "right"})
			for _, e := range tok.VocabEntries() {
				if limit > 0 && int(e.Id) >= limit {
					break
				}
				row := []string{strconv.Itoa(int(e.Id)), e.Token, "", ""}
				if e.IsMerge {
					row[2] = strconv.Itoa(int(e.Left))
					row[3] = strconv.Itoa(int(e.Right))
				}
				vocab.Append(row)
			}
			vocab.Render()
			return nil
		},
	}

	c.Flags().IntVar(&limit, "limit", 50, "max vocab rows to print (0 = all)")
	return c
}

func tableFor(w io.Writer, title string) *tablewriter.Table {
	fmt.Fprintln(w, title+":")
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}
