package bpe

import (
	"strings"
	"unicode"
)

// buildVocab derives the id->bytes table from merges (in emission order) and
// special tokens, per the invariants in spec.md §3:
//   - vocab[i] = byte i for i in [0,256)
//   - vocab[merges[k].id] = vocab[left] ++ vocab[right], left/right already present
//   - vocab[special.id] = UTF-8(special string), and must not collide with an
//     existing id
func buildVocab(mergeOrder []Pair, mergeID map[Pair]Id, special map[string]Id) (map[Id][]byte, error) {
	vocab := make(map[Id][]byte, 256+len(mergeOrder)+len(special))
	for i := 0; i < 256; i++ {
		vocab[Id(i)] = []byte{byte(i)}
	}

	for _, pair := range mergeOrder {
		idx := mergeID[pair]
		left, ok := vocab[pair.Left]
		if !ok {
			return nil, newErr("buildVocab", KindVocabConflict, ErrVocabConflict, "merge parent %d not in vocab", pair.Left)
		}
		right, ok := vocab[pair.Right]
		if !ok {
			return nil, newErr("buildVocab", KindVocabConflict, ErrVocabConflict, "merge parent %d not in vocab", pair.Right)
		}
		merged := make([]byte, 0, len(left)+len(right))
		merged = append(merged, left...)
		merged = append(merged, right...)
		vocab[idx] = merged
	}

	for token, idx := range special {
		if _, exists := vocab[idx]; exists {
			return nil, newErr("buildVocab", KindVocabConflict, ErrVocabConflict, "special token %q id %d collides with an existing id", token, idx)
		}
		vocab[idx] = []byte(token)
	}

	return vocab, nil
}

// renderToken converts a token's raw bytes into a form safe to print: valid
// UTF-8 with the replacement character standing in for malformed sequences,
// and Unicode Control/Other-category runes escaped as \uXXXX so the vocab
// file never contains raw control bytes.
func renderToken(b []byte) string {
	s := string(b) // Go decodes invalid UTF-8 to U+FFFD per rune automatically below
	var sb strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.C, r) {
			sb.WriteString(escapeRune(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func escapeRune(r rune) string {
	const hex = "0123456789abcdef"
	out := []byte{'\\', 'u', 0, 0, 0, 0}
	for i := 3; i >= 0; i-- {
		out[2+i] = hex[r&0xf]
		r >>= 4
	}
	return string(out)
}
