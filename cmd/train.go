package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/7blacky7/bpetok/bpe"
	"github.com/7blacky7/bpetok/envconfig"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var vocabSize int
	var pattern string
	var specialFlag string
	var outPrefix string
	var verbose bool

	c := &cobra.Command{
		Use:   "train <text-file>",
		Short: "Learn a BPE vocabulary from a text corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read corpus: %w", err)
			}

			tok, err := bpe.New(pattern)
			if err != nil {
				return err
			}

			if err := tok.Train(string(text), vocabSize, verbose); err != nil {
				return err
			}

			if specialFlag != "" {
				special, err := parseSpecialAssignments(specialFlag)
				if err != nil {
					return err
				}
				if err := tok.RegisterSpecialTokens(special); err != nil {
					return err
				}
			}

			if err := tok.Save(outPrefix); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "trained %d merges, vocab size %d, wrote %s.model and %s.vocab\n",
				tok.NumMerges(), tok.VocabSize(), outPrefix, outPrefix)
			return nil
		},
	}

	c.Flags().IntVar(&vocabSize, "vocab-size", envconfig.VocabSize(), "target vocabulary size (>= 256)")
	c.Flags().StringVar(&pattern, "pattern", envconfig.Pattern(), "pre-tokenizer split pattern override")
	c.Flags().StringVar(&specialFlag, "special", "", "comma-separated token=id special-token assignments")
	c.Flags().StringVarP(&outPrefix, "output", "o", "tokenizer", "output file prefix")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each merge as it's learned")

	return c
}

// parseSpecialAssignments parses the --special value "tok1=id1,tok2=id2"
// into a map.
func parseSpecialAssignments(s string) (map[string]bpe.Id, error) {
	out := make(map[string]bpe.Id)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		token, idStr, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed special-token assignment %q, want token=id", part)
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("malformed special-token id in %q: %w", part, err)
		}
		out[token] = bpe.Id(id)
	}
	return out, nil
}
