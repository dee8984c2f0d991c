package hfimport

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleTokenizerJSON = `{
  "added_tokens": [
    {"id": 262, "content": "<|endoftext|>", "special": true}
  ],
  "model": {
    "type": "BPE",
    "vocab": {
      "!": 0,
      "a": 1,
      "b": 2,
      "ab": 3,
      "aba": 4
    },
    "merges": ["a b", "ab a"]
  },
  "pre_tokenizer": {
    "pretokenizers": [
      {"type": "Split", "pattern": {"Regex": "\\s+|\\S+"}}
    ]
  }
}`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tokenizer.json")
	if err := os.WriteFile(path, []byte(sampleTokenizerJSON), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestFromFileBuildsTokenizer(t *testing.T) {
	tok, err := FromFile(writeSample(t))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if tok.NumMerges() != 2 {
		t.Fatalf("NumMerges() = %d, want 2", tok.NumMerges())
	}
	if tok.Pattern() != `\s+|\S+` {
		t.Errorf("Pattern() = %q, want the imported Split regex", tok.Pattern())
	}
	if _, ok := tok.SpecialTokens()["<|endoftext|>"]; !ok {
		t.Error("expected <|endoftext|> to be registered as a special token")
	}
}

func TestFromFileRejectsMissingFile(t *testing.T) {
	if _, err := FromFile("/nonexistent/tokenizer.json"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestFromFileRejectsNonBPEModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokenizer.json")
	if err := os.WriteFile(path, []byte(`{"model":{"type":"WordPiece"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := FromFile(path); err == nil {
		t.Fatal("expected an error for a non-BPE model type")
	}
}
