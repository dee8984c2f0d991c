package bpe

import (
	"strings"
	"testing"
)

func trainedFixture(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	corpus := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 50)
	if err := tok.Train(corpus, 256+80, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return tok
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tok := trainedFixture(t)
	cases := []string{
		"the quick brown fox",
		"",
		"a completely unseen sentence with novel words",
		"日本語のテキストです",
		"symbols !@#$%^&*()",
		"the the the the",
	}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			ids, err := tok.EncodeOrdinary(text)
			if err != nil {
				t.Fatalf("EncodeOrdinary(%q): %v", text, err)
			}
			got, err := tok.Decode(ids)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != text {
				t.Errorf("round trip %q -> %v -> %q", text, ids, got)
			}
		})
	}
}

func TestEncodeByteFallback(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// With no merges learned, every rune's UTF-8 bytes come through as
	// individual byte ids.
	text := "héllo"
	ids, err := tok.EncodeOrdinary(text)
	if err != nil {
		t.Fatalf("EncodeOrdinary: %v", err)
	}
	if len(ids) != len(text) {
		t.Errorf("len(ids) = %d, want %d (byte length of %q)", len(ids), len(text), text)
	}
	for i, id := range ids {
		if id >= 256 {
			t.Errorf("id[%d] = %d, want a raw byte id < 256", i, id)
		}
	}
}

func TestEncodeSpecialTokenHandling(t *testing.T) {
	tok := trainedFixture(t)
	if err := tok.RegisterSpecialTokens(map[string]Id{"<|endoftext|>": 100000}); err != nil {
		t.Fatalf("RegisterSpecialTokens: %v", err)
	}

	text := "the quick<|endoftext|>brown fox"

	t.Run("all special", func(t *testing.T) {
		ids, err := tok.Encode(text, AllSpecial())
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == 100000 {
				found = true
			}
		}
		if !found {
			t.Error("expected the special token id 100000 in the output")
		}
	})

	t.Run("no special", func(t *testing.T) {
		ids, err := tok.Encode(text, NoSpecial())
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		for _, id := range ids {
			if id == 100000 {
				t.Error("NoSpecial must not emit the special token id")
			}
		}
		got, err := tok.Decode(ids)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != text {
			t.Errorf("NoSpecial round trip = %q, want %q", got, text)
		}
	})

	t.Run("none raise", func(t *testing.T) {
		if _, err := tok.Encode(text, NoSpecialRaise()); err == nil {
			t.Error("expected NoSpecialRaise to fail when text contains a registered special token")
		}
		if _, err := tok.Encode("plain text with no special tokens", NoSpecialRaise()); err != nil {
			t.Errorf("NoSpecialRaise on clean text: %v", err)
		}
	})

	t.Run("explicit subset", func(t *testing.T) {
		ids, err := tok.Encode(text, SpecialSet("<|endoftext|>"))
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == 100000 {
				found = true
			}
		}
		if !found {
			t.Error("expected the explicitly-allowed special token id in the output")
		}
	})
}

func TestEncodeLongestSpecialTokenWins(t *testing.T) {
	tok := trainedFixture(t)
	if err := tok.RegisterSpecialTokens(map[string]Id{
		"<|im_start":   100001,
		"<|im_start|>": 100002,
	}); err != nil {
		t.Fatalf("RegisterSpecialTokens: %v", err)
	}

	ids, err := tok.Encode("<|im_start|>hello", AllSpecial())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids) == 0 || ids[0] != 100002 {
		t.Errorf("ids[0] = %v, want the longer token's id 100002 first", ids)
	}
}

func TestEncodeChunkPicksLowestRank(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tok.Train("aaaa", 258, false); err != nil {
		t.Fatalf("Train: %v", err)
	}
	ids := tok.encodeChunk(bytesToIds([]byte("aaaa")))
	if len(ids) != 1 {
		t.Errorf("encodeChunk(\"aaaa\") = %v, want a single merged id", ids)
	}
}
