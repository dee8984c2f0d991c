// Package hfimport builds a *bpe.Tokenizer from a HuggingFace-style
// tokenizer.json, so a byte-level BPE vocabulary trained elsewhere can be
// loaded without retraining. Only the ByteLevel BPE model shape is
// supported: a byte-to-id vocab plus an ordered merges list, the format
// produced by the GPT-2/GPT-4/Llama tokenizer family.
package hfimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/7blacky7/bpetok/bpe"
)

// tokenizerJSON mirrors the subset of tokenizer.json this package consumes.
type tokenizerJSON struct {
	AddedTokens []addedToken `json:"added_tokens"`
	Model       struct {
		Type   string          `json:"type"`
		Vocab  map[string]int  `json:"vocab"`
		Merges json.RawMessage `json:"merges"`
	} `json:"model"`
	PreTokenizer struct {
		PreTokenizers []struct {
			Type    string `json:"type"`
			Pattern struct {
				Regex string `json:"Regex"`
			} `json:"pattern"`
		} `json:"pretokenizers"`
	} `json:"pre_tokenizer"`
}

type addedToken struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Special bool   `json:"special"`
}

// FromFile reads a tokenizer.json file directly.
func FromFile(path string) (*bpe.Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hfimport: open %s: %w", path, err)
	}
	defer f.Close()
	return decode(f)
}

// FromFS reads "tokenizer.json" out of fsys, the same directory layout a
// HuggingFace model repository checkout uses.
func FromFS(fsys fs.FS) (*bpe.Tokenizer, error) {
	f, err := fsys.Open("tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("hfimport: open tokenizer.json: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (*bpe.Tokenizer, error) {
	var tt tokenizerJSON
	if err := json.NewDecoder(r).Decode(&tt); err != nil {
		return nil, fmt.Errorf("hfimport: parse tokenizer.json: %w", err)
	}

	if tt.Model.Type != "" && tt.Model.Type != "BPE" {
		return nil, fmt.Errorf("hfimport: unsupported model type %q, want BPE", tt.Model.Type)
	}

	mergeStrings, err := parseMerges(tt.Model.Merges)
	if err != nil {
		return nil, err
	}

	byteDecoder := make(map[string]byte, 256)
	for b, s := range byteLevelAlphabet() {
		byteDecoder[s] = byte(b)
	}

	// Replay the merge list to derive, for every vocab string, the id
	// bpe.Import will independently assign it: base alphabet characters
	// decode to their byte id (0-255), and the k-th merge's result takes
	// id 256+k, exactly mirroring Train's assignment. This lets the
	// (otherwise foreign) HuggingFace vocab ids be discarded entirely in
	// favor of ids that are correct by construction for bpe.Import.
	idOf := make(map[string]bpe.Id, len(tt.Model.Vocab))
	for ch, b := range byteDecoder {
		idOf[ch] = bpe.Id(b)
	}

	mergeOrder := make([]bpe.Pair, 0, len(mergeStrings))
	for k, m := range mergeStrings {
		left, right, ok := strings.Cut(m, " ")
		if !ok {
			return nil, fmt.Errorf("hfimport: malformed merge entry %q", m)
		}
		leftID, ok1 := idOf[left]
		rightID, ok2 := idOf[right]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("hfimport: merge %q references a token not derivable from earlier merges", m)
		}
		mergeOrder = append(mergeOrder, bpe.Pair{Left: leftID, Right: rightID})
		idOf[left+right] = bpe.Id(256 + k)
	}

	special := make(map[string]bpe.Id)
	for _, t := range tt.AddedTokens {
		if t.Special {
			special[t.Content] = bpe.Id(t.ID)
		}
	}

	pattern := bpe.DefaultPattern
	if p := detectSplitPattern(&tt); p != "" {
		pattern = p
	}

	tok, err := bpe.Import(pattern, mergeOrder, special)
	if err != nil {
		return nil, fmt.Errorf("hfimport: %w", err)
	}
	return tok, nil
}

func parseMerges(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		return asStrings, nil
	}
	var asPairs [][]string
	if err := json.Unmarshal(raw, &asPairs); err != nil {
		return nil, errors.New("hfimport: merges field is neither []string nor [][]string")
	}
	out := make([]string, len(asPairs))
	for i, p := range asPairs {
		out[i] = strings.Join(p, " ")
	}
	return out, nil
}

// detectSplitPattern inspects the pre_tokenizer.pretokenizers list for a
// Split stage's regex, reusing whichever one is present rather than
// assuming the GPT-4 pattern.
func detectSplitPattern(tt *tokenizerJSON) string {
	for _, pt := range tt.PreTokenizer.PreTokenizers {
		if pt.Type == "Split" && pt.Pattern.Regex != "" {
			return pt.Pattern.Regex
		}
	}
	return ""
}

// byteLevelAlphabet returns GPT-2's byte-to-printable-rune remapping: bytes
// in the printable ASCII/Latin-1 ranges map to themselves, the rest map to
// codepoints starting at U+0100 in ascending byte order. This mirrors the
// well-known bytes_to_unicode() table every ByteLevel BPE vocab is built
// against.
func byteLevelAlphabet() map[int]string {
	var bs []int
	for b := '!'; b <= '~'; b++ {
		bs = append(bs, int(b))
	}
	for b := '¡'; b <= '¬'; b++ {
		bs = append(bs, int(b))
	}
	for b := '®'; b <= 'ÿ'; b++ {
		bs = append(bs, int(b))
	}
	have := make(map[int]bool, len(bs))
	for _, b := range bs {
		have[b] = true
	}

	out := make(map[int]string, 256)
	for _, b := range bs {
		out[b] = string(rune(b))
	}
	n := 0
	for b := 0; b < 256; b++ {
		if !have[b] {
			out[b] = string(rune(256 + n))
			n++
		}
	}
	return out
}
