package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/7blacky7/bpetok/bpe"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "decode <model-file> <id,id,id,...>",
		Short: "Decode a comma-separated list of token ids back into text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := bpe.Load(args[0])
			if err != nil {
				return err
			}

			fields := strings.Split(args[1], ",")
			ids := make([]bpe.Id, 0, len(fields))
			for _, f := range fields {
				f = strings.TrimSpace(f)
				if f == "" {
					continue
				}
				n, err := strconv.Atoi(f)
				if err != nil {
					return fmt.Errorf("malformed id %q: %w", f, err)
				}
				ids = append(ids, bpe.Id(n))
			}

			text, err := tok.Decode(ids)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	return c
}
