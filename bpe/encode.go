package bpe

import (
	"regexp"
	"strings"
)

// AllowedSpecial selects which registered special tokens Encode treats as
// atomic. It is the idiomatic Go stand-in for the reference implementation's
// union of the string literals "all"/"none"/"none_raise" and an explicit set
// of token strings.
type AllowedSpecial interface {
	allowedSpecial()
}

type allowedSpecialAll struct{}
type allowedSpecialNone struct{}
type allowedSpecialNoneRaise struct{}
type allowedSpecialSet map[string]struct{}

func (allowedSpecialAll) allowedSpecial()       {}
func (allowedSpecialNone) allowedSpecial()      {}
func (allowedSpecialNoneRaise) allowedSpecial() {}
func (allowedSpecialSet) allowedSpecial()       {}

// AllSpecial recognizes every registered special token.
func AllSpecial() AllowedSpecial { return allowedSpecialAll{} }

// NoSpecial treats special-token strings as ordinary text.
func NoSpecial() AllowedSpecial { return allowedSpecialNone{} }

// NoSpecialRaise treats special-token strings as ordinary text, but fails
// with InvalidInput if any registered special token string appears as a
// substring of the input.
func NoSpecialRaise() AllowedSpecial { return allowedSpecialNoneRaise{} }

// SpecialSet recognizes only the named subset of registered special tokens.
func SpecialSet(tokens ...string) AllowedSpecial {
	s := make(allowedSpecialSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// EncodeOrdinary encodes text, ignoring special tokens entirely: it
// pre-tokenizes into chunks and greedily merges each chunk's UTF-8 bytes
// independently.
func (t *Tokenizer) EncodeOrdinary(text string) ([]Id, error) {
	chunks, err := t.pre.split(text)
	if err != nil {
		return nil, err
	}

	var ids []Id
	for _, c := range chunks {
		ids = append(ids, t.encodeChunk(bytesToIds([]byte(c)))...)
	}
	return ids, nil
}

// encodeChunk repeatedly merges the lowest-rank applicable adjacent pair in
// a single chunk's ids until no registered pair applies. Confluent: at every
// step the chosen pair has strictly lower rank than any pair that could only
// arise from a later merge's id, so the result does not depend on traversal
// order among equally-ranked candidates (there are none, ranks are unique).
func (t *Tokenizer) encodeChunk(ids []Id) []Id {
	for len(ids) >= 2 {
		bestRank := -1
		var bestPair Pair
		for i := 0; i+1 < len(ids); i++ {
			p := Pair{ids[i], ids[i+1]}
			if rank, ok := t.mergeRank[p]; ok && (bestRank == -1 || rank < bestRank) {
				bestRank, bestPair = rank, p
			}
		}
		if bestRank == -1 {
			break
		}
		ids = applyMerge(ids, bestPair, t.mergeID[bestPair])
	}
	return ids
}

// Encode encodes text, honoring allowedSpecial's selection of which
// registered special tokens are recognized as atomic.
func (t *Tokenizer) Encode(text string, allowedSpecial AllowedSpecial) ([]Id, error) {
	var active map[string]Id

	switch v := allowedSpecial.(type) {
	case allowedSpecialAll:
		active = t.special
	case allowedSpecialNone:
		active = nil
	case allowedSpecialNoneRaise:
		// The substring scan checks every registered special token
		// regardless of how allowedSpecial narrows the active set - this
		// matches the reference's documented (if slightly surprising)
		// behavior: none_raise is a blanket guard, not scoped to a subset.
		for token := range t.special {
			if strings.Contains(text, token) {
				return nil, newErr("Encode", KindInvalidInput, ErrInvalidInput, "text contains registered special token %q under none_raise", token)
			}
		}
		active = nil
	case allowedSpecialSet:
		active = make(map[string]Id, len(v))
		for token := range v {
			if id, ok := t.special[token]; ok {
				active[token] = id
			}
		}
	default:
		return nil, newErr("Encode", KindInvalidInput, ErrInvalidInput, "unrecognized AllowedSpecial value %T", allowedSpecial)
	}

	if len(active) == 0 {
		return t.EncodeOrdinary(text)
	}

	splitter := specialSplitter(active)
	matches := splitter.FindAllStringIndex(text, -1)

	var ids []Id
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			chunkIds, err := t.EncodeOrdinary(text[pos:m[0]])
			if err != nil {
				return nil, err
			}
			ids = append(ids, chunkIds...)
		}
		ids = append(ids, active[text[m[0]:m[1]]])
		pos = m[1]
	}
	if pos < len(text) {
		chunkIds, err := t.EncodeOrdinary(text[pos:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, chunkIds...)
	}
	return ids, nil
}

// specialSplitter builds a regex alternation of the literal-escaped special
// token strings, used to split text into alternating ordinary/special
// segments while preserving the separators (spec.md §4.4 step 1-2). The
// standard library's regexp (RE2) is sufficient here: the pattern is a plain
// literal alternation with no possessive quantifiers or lookaround.
func specialSplitter(active map[string]Id) *regexp.Regexp {
	tokens := make([]string, 0, len(active))
	for token := range active {
		tokens = append(tokens, token)
	}
	// Longest-first so a special token that is a prefix of another (e.g.
	// "<|im_start" vs "<|im_start|>") doesn't shadow the longer match.
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && len(tokens[j-1]) < len(tokens[j]); j-- {
			tokens[j-1], tokens[j] = tokens[j], tokens[j-1]
		}
	}
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(strings.Join(escaped, "|"))
}
