package bpe

import (
	"strings"
	"testing"
)

func TestTrainRejectsSmallVocab(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.Train("hello", 255, false); err == nil {
		t.Fatal("expected an error for vocab_size < 256")
	}
}

func TestTrainLearnsMostFrequentPair(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// "aaabdaaabac" repeats the byte pair (a,a) more than any other
	// adjacent pair, so the first learned merge must combine 'a','a'.
	text := "aaabdaaabac"
	if err := tok.Train(text, 257, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if tok.NumMerges() != 1 {
		t.Fatalf("NumMerges() = %d, want 1", tok.NumMerges())
	}
	if got, want := tok.mergeOrder[0], (Pair{'a', 'a'}); got != want {
		t.Errorf("first merge = %v, want %v", got, want)
	}
}

func TestTrainDeterministicTieBreak(t *testing.T) {
	tok1, _ := New()
	tok2, _ := New()

	// Every adjacent pair in "abcd" occurs once, before and after the first
	// merge, so both merges are decided by the tie-break.
	text := "abcd"
	if err := tok1.Train(text, 256+2, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := tok2.Train(text, 256+2, false); err != nil {
		t.Fatalf("Train: %v", err)
	}

	if len(tok1.mergeOrder) != len(tok2.mergeOrder) {
		t.Fatalf("merge counts differ: %d vs %d", len(tok1.mergeOrder), len(tok2.mergeOrder))
	}
	for i := range tok1.mergeOrder {
		if tok1.mergeOrder[i] != tok2.mergeOrder[i] {
			t.Errorf("merge %d differs across repeated training runs: %v vs %v", i, tok1.mergeOrder[i], tok2.mergeOrder[i])
		}
	}
}

func TestTrainStopsEarlyWhenNoPairsRemain(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A corpus of one repeated letter is a single chunk that collapses to
	// one id after four merges; no adjacent pair remains after that, so
	// training must stop well short of the target.
	if err := tok.Train("aaaaaaaaaa", 256+100, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if tok.NumMerges() >= 100 {
		t.Fatalf("NumMerges() = %d, expected early stop below 100", tok.NumMerges())
	}
}

func TestTrainVocabInvariant(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.Train(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20), 300, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if tok.VocabSize() != 256+tok.NumMerges() {
		t.Errorf("VocabSize() = %d, want 256+NumMerges() = %d", tok.VocabSize(), 256+tok.NumMerges())
	}
	for i := 0; i < 256; i++ {
		b, ok := tok.vocab[Id(i)]
		if !ok || len(b) != 1 || b[0] != byte(i) {
			t.Fatalf("vocab[%d] = %v, want single byte %d", i, b, i)
		}
	}
}

func TestTrainRetainsSpecialTokensAcrossRetrain(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.RegisterSpecialTokens(map[string]Id{"<|endoftext|>": 100000}); err != nil {
		t.Fatalf("RegisterSpecialTokens: %v", err)
	}
	if err := tok.Train("aaaa bbbb cccc", 260, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if _, ok := tok.special["<|endoftext|>"]; !ok {
		t.Fatal("special token was dropped by Train")
	}
	if _, ok := tok.vocab[100000]; !ok {
		t.Fatal("special token id missing from vocab after Train")
	}
}
