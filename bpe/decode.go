package bpe

import (
	"strings"
	"unicode/utf8"
)

// Decode concatenates the byte-strings for ids and decodes the result as
// UTF-8, replacing malformed byte sequences with U+FFFD. The replacement
// policy is mandatory: individual learned tokens frequently represent
// partial UTF-8 sequences on their own, and only become valid once
// concatenated with their neighbors.
func (t *Tokenizer) Decode(ids []Id) (string, error) {
	var sb strings.Builder
	for _, id := range ids {
		if b, ok := t.vocab[id]; ok {
			sb.Write(b)
			continue
		}
		if s, ok := t.inverseSpecial[id]; ok {
			sb.WriteString(s)
			continue
		}
		return "", newErr("Decode", KindUnknownId, ErrUnknownId, "id %d is not in vocab or the special-token table", id)
	}
	return decodeUTF8Replace(sb.String()), nil
}

// decodeUTF8Replace walks raw, byte-string-concatenated data and substitutes
// U+FFFD for each malformed byte, matching Python's decode(errors="replace")
// one-replacement-per-bad-byte granularity rather than Go's
// strings.ToValidUTF8, which collapses a whole invalid run into one
// replacement.
func decodeUTF8Replace(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			i++
			continue
		}
		sb.WriteString(s[i : i+size])
		i += size
	}
	return sb.String()
}
