package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/7blacky7/bpetok/bpe"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "repl <model-file>",
		Short: "Interactive encode/decode loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := bpe.Load(args[0])
			if err != nil {
				return err
			}
			return runRepl(cmd.OutOrStdout(), cmd.InOrStdin(), tok)
		},
	}
	return c
}

// runRepl drives the encode/decode loop over a plain bufio.Scanner. Plain
// input lines are encoded and the resulting ids printed; a leading
// ":decode " treats the rest of the line as a comma-separated id list to
// decode back into text.
func runRepl(w io.Writer, r io.Reader, tok *bpe.Tokenizer) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, ">>> ")
		if !sc.Scan() {
			return sc.Err()
		}
		if dispatchReplLine(w, tok, sc.Text()) {
			return nil
		}
	}
}

// dispatchReplLine handles one input line and reports whether the session
// should end.
func dispatchReplLine(w io.Writer, tok *bpe.Tokenizer, line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case line == ":quit" || line == ":q":
		return true
	case strings.HasPrefix(line, ":decode "):
		replDecode(w, tok, strings.TrimPrefix(line, ":decode "))
	default:
		replEncode(w, tok, line)
	}
	return false
}

func replEncode(w io.Writer, tok *bpe.Tokenizer, text string) {
	ids, err := tok.Encode(text, bpe.AllSpecial())
	if err != nil {
		fmt.Fprintln(w, "error:", err)
		return
	}
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(int(id))
	}
	fmt.Fprintln(w, strings.Join(strs, ","))
}

func replDecode(w io.Writer, tok *bpe.Tokenizer, idList string) {
	fields := strings.Split(idList, ",")
	ids := make([]bpe.Id, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			fmt.Fprintln(w, "error: malformed id", f)
			return
		}
		ids = append(ids, bpe.Id(n))
	}
	text, err := tok.Decode(ids)
	if err != nil {
		fmt.Fprintln(w, "error:", err)
		return
	}
	fmt.Fprintln(w, text)
}
