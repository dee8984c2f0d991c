package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/7blacky7/bpetok/bpe"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var allowedSpecialFlag string

	c := &cobra.Command{
		Use:   "encode <model-file> [text]",
		Short: "Encode text into token ids",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := bpe.Load(args[0])
			if err != nil {
				return err
			}

			text, err := readTextArg(cmd, args)
			if err != nil {
				return err
			}

			allowed, err := parseAllowedSpecial(allowedSpecialFlag)
			if err != nil {
				return err
			}

			ids, err := tok.Encode(text, allowed)
			if err != nil {
				return err
			}

			strs := make([]string, len(ids))
			for i, id := range ids {
				strs[i] = strconv.Itoa(int(id))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(strs, ","))
			return nil
		},
	}

	c.Flags().StringVar(&allowedSpecialFlag, "allowed-special", "none",
		`which special tokens to recognize: "all", "none", "none_raise", or a comma-separated token list`)

	return c
}

// readTextArg reads the text to encode either from the second positional
// argument, or from stdin when it is omitted or "-".
func readTextArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 && args[1] != "-" {
		return args[1], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func parseAllowedSpecial(s string) (bpe.AllowedSpecial, error) {
	switch s {
	case "all":
		return bpe.AllSpecial(), nil
	case "", "none":
		return bpe.NoSpecial(), nil
	case "none_raise":
		return bpe.NoSpecialRaise(), nil
	default:
		tokens := strings.Split(s, ",")
		for i, t := range tokens {
			tokens[i] = strings.TrimSpace(t)
		}
		return bpe.SpecialSet(tokens...), nil
	}
}
