package bpe

import "unicode"

// RegisterSpecialTokens replaces the special-token table. Unlike the Python
// reference this implementation rebuilds vocab immediately (spec.md §9's
// recommended fix), so Decode behaves identically whether called right after
// registration or after a save/load round trip.
func (t *Tokenizer) RegisterSpecialTokens(tokens map[string]Id) error {
	for s := range tokens {
		if containsWhitespace(s) {
			return newErr("RegisterSpecialTokens", KindInvalidInput, ErrInvalidInput, "special token %q contains whitespace, which the model file format cannot represent", s)
		}
	}

	special := make(map[string]Id, len(tokens))
	for k, v := range tokens {
		special[k] = v
	}

	vocab, err := buildVocab(t.mergeOrder, t.mergeID, special)
	if err != nil {
		return err
	}

	inverse := make(map[Id]string, len(special))
	for k, v := range special {
		inverse[v] = k
	}

	t.special = special
	t.inverseSpecial = inverse
	t.vocab = vocab
	return nil
}

func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
