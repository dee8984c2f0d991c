package bpe

// fromMergeOrder builds a Tokenizer from an explicit, already-ordered merge
// list. Rank and id are positional: the k-th pair in mergeOrder gets rank k
// and id 256+k. Both Load and Import funnel through here so a model loaded
// from disk and one imported from a foreign vocabulary format are assembled
// identically.
func fromMergeOrder(pattern string, mergeOrder []Pair, special map[string]Id) (*Tokenizer, error) {
	mergeRank := make(map[Pair]int, len(mergeOrder))
	mergeID := make(map[Pair]Id, len(mergeOrder))
	for k, p := range mergeOrder {
		mergeRank[p] = k
		mergeID[p] = Id(256 + k)
	}

	vocab, err := buildVocab(mergeOrder, mergeID, special)
	if err != nil {
		return nil, err
	}

	pre, err := newPreTokenizer(pattern)
	if err != nil {
		return nil, err
	}

	inverse := make(map[Id]string, len(special))
	for token, id := range special {
		inverse[id] = token
	}

	specialCopy := make(map[string]Id, len(special))
	for k, v := range special {
		specialCopy[k] = v
	}

	return &Tokenizer{
		pre:            pre,
		mergeOrder:     mergeOrder,
		mergeRank:      mergeRank,
		mergeID:        mergeID,
		vocab:          vocab,
		special:        specialCopy,
		inverseSpecial: inverse,
	}, nil
}

// Import builds a Tokenizer from a merge list and special tokens obtained
// from a foreign format (see the hfimport subpackage), rather than from Train
// or Load; the vocabulary is derived from the merges. mergeOrder must list merges in the order they were learned: id
// 256+k is assigned to the k-th entry, exactly as if Train had produced it.
func Import(pattern string, mergeOrder []Pair, special map[string]Id) (*Tokenizer, error) {
	return fromMergeOrder(pattern, mergeOrder, special)
}
