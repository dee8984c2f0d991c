// Package bpe implements a byte-level Byte-Pair Encoding tokenizer: a
// reversible mapping between Unicode text and token id sequences, trained by
// iteratively coalescing the most frequent adjacent symbol pair into a new
// symbol.
//
// A Tokenizer is not safe for concurrent mutation (Train,
// RegisterSpecialTokens, Load all replace in-memory state). Concurrent
// read-only Encode/Decode calls on an already-trained-or-loaded instance are
// safe: the compiled pattern is shared read-only and regexp2's matcher is
// reentrant for matching.
package bpe

// Tokenizer holds a byte-level BPE vocabulary: the learned merge table, the
// derived id->bytes vocabulary, and any registered special tokens.
type Tokenizer struct {
	pre *preTokenizer

	// mergeOrder records merges in emission order; mergeOrder[k] corresponds
	// to id 256+k. Go maps have no stable iteration order, so rank can never
	// be read back out of mergeRank alone - mergeOrder is the source of
	// truth for rank.
	mergeOrder []Pair
	mergeRank  map[Pair]int // Pair -> rank (lower = higher priority)
	mergeID    map[Pair]Id  // Pair -> id produced by merging it

	vocab map[Id][]byte

	special        map[string]Id
	inverseSpecial map[Id]string
}

// New returns a tokenizer with 256 byte ids, no merges, no special tokens,
// and the given pre-tokenizer pattern (or the default GPT-4 style pattern if
// pattern is omitted).
func New(pattern ...string) (*Tokenizer, error) {
	p := ""
	if len(pattern) > 0 {
		p = pattern[0]
	}
	pre, err := newPreTokenizer(p)
	if err != nil {
		return nil, err
	}

	t := &Tokenizer{
		pre:            pre,
		mergeRank:      make(map[Pair]int),
		mergeID:        make(map[Pair]Id),
		special:        make(map[string]Id),
		inverseSpecial: make(map[Id]string),
	}
	vocab, err := buildVocab(nil, nil, nil)
	if err != nil {
		return nil, err
	}
	t.vocab = vocab
	return t, nil
}

// Pattern returns the tokenizer's pre-tokenization pattern string.
func (t *Tokenizer) Pattern() string {
	return t.pre.source
}

// VocabSize returns the total number of ids currently in the vocabulary
// (bytes + learned merges + registered specials).
func (t *Tokenizer) VocabSize() int {
	return len(t.vocab)
}

// NumMerges returns the number of learned merges.
func (t *Tokenizer) NumMerges() int {
	return len(t.mergeOrder)
}

// SpecialTokens returns a copy of the registered special-token table.
func (t *Tokenizer) SpecialTokens() map[string]Id {
	out := make(map[string]Id, len(t.special))
	for k, v := range t.special {
		out[k] = v
	}
	return out
}

// VocabEntry describes a single vocabulary id for display purposes.
type VocabEntry struct {
	Id        Id
	Token     string // renderToken output: printable, control runes escaped
	IsSpecial bool
	IsMerge   bool
	Left      Id // valid only when IsMerge
	Right     Id // valid only when IsMerge
}

// VocabEntries returns every vocabulary entry in id order, for tools like
// `bpetok show` that need a printable dump without reaching into the
// tokenizer's internal maps.
func (t *Tokenizer) VocabEntries() []VocabEntry {
	mergeOf := make(map[Id]Pair, len(t.mergeOrder))
	for _, p := range t.mergeOrder {
		mergeOf[t.mergeID[p]] = p
	}

	ids := make([]Id, 0, len(t.vocab))
	for id := range t.vocab {
		ids = append(ids, id)
	}
	sortIds(ids)

	entries := make([]VocabEntry, len(ids))
	for i, id := range ids {
		e := VocabEntry{Id: id, Token: renderToken(t.vocab[id])}
		if _, ok := t.inverseSpecial[id]; ok {
			e.IsSpecial = true
		}
		if p, ok := mergeOf[id]; ok {
			e.IsMerge = true
			e.Left, e.Right = p.Left, p.Right
		}
		entries[i] = e
	}
	return entries
}
