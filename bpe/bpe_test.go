package bpe

import "testing"

func TestNewDefaults(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tok.Pattern() != DefaultPattern {
		t.Errorf("Pattern() = %q, want the default pattern", tok.Pattern())
	}
	if tok.VocabSize() != 256 {
		t.Errorf("VocabSize() = %d, want 256", tok.VocabSize())
	}
	if tok.NumMerges() != 0 {
		t.Errorf("NumMerges() = %d, want 0", tok.NumMerges())
	}
	if len(tok.SpecialTokens()) != 0 {
		t.Errorf("SpecialTokens() = %v, want empty", tok.SpecialTokens())
	}
}

func TestNewCustomPattern(t *testing.T) {
	tok, err := New(`\s+|\S+`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tok.Pattern() != `\s+|\S+` {
		t.Errorf("Pattern() = %q", tok.Pattern())
	}
}

func TestNewInvalidPattern(t *testing.T) {
	if _, err := New("("); err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestSpecialTokensReturnsACopy(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.RegisterSpecialTokens(map[string]Id{"<|a|>": 500}); err != nil {
		t.Fatalf("RegisterSpecialTokens: %v", err)
	}

	snapshot := tok.SpecialTokens()
	snapshot["<|b|>"] = 501

	if _, ok := tok.SpecialTokens()["<|b|>"]; ok {
		t.Error("mutating the map returned by SpecialTokens must not affect the tokenizer")
	}
}

func TestVocabEntriesOrderedAndTaggedCorrectly(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.Train("aaaa", 257, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	if err := tok.RegisterSpecialTokens(map[string]Id{"<|x|>": 900}); err != nil {
		t.Fatalf("RegisterSpecialTokens: %v", err)
	}

	entries := tok.VocabEntries()
	if len(entries) != tok.VocabSize() {
		t.Fatalf("len(VocabEntries()) = %d, want %d", len(entries), tok.VocabSize())
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Id >= entries[i].Id {
			t.Fatalf("VocabEntries() not sorted by id at index %d", i)
		}
	}

	var sawMerge, sawSpecial bool
	for _, e := range entries {
		if e.Id == 256 {
			sawMerge = true
			if !e.IsMerge {
				t.Error("id 256 should be tagged IsMerge")
			}
		}
		if e.Id == 900 {
			sawSpecial = true
			if !e.IsSpecial {
				t.Error("id 900 should be tagged IsSpecial")
			}
		}
	}
	if !sawMerge || !sawSpecial {
		t.Fatalf("expected entries for both the learned merge and the special token, sawMerge=%v sawSpecial=%v", sawMerge, sawSpecial)
	}
}
