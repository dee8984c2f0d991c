package bpe

import (
	"log/slog"
)

// Train learns merges from text until the vocabulary reaches vocabSize ids
// (256 bytes + len(merges)), overwriting any previously learned merges and
// vocab. Special tokens are not learned; register them separately with
// RegisterSpecialTokens after training.
//
// Training may terminate early, with fewer than vocabSize total ids, if at
// some iteration every chunk has collapsed to length <= 1 and no adjacent
// pair remains to merge.
func (t *Tokenizer) Train(text string, vocabSize int, verbose bool) error {
	if vocabSize < 256 {
		return newErr("Train", KindInvalidInput, ErrInvalidInput, "vocab_size %d must be >= 256", vocabSize)
	}
	numMerges := vocabSize - 256

	rawChunks, err := t.pre.split(text)
	if err != nil {
		return err
	}

	chunks := make([][]Id, len(rawChunks))
	for i, c := range rawChunks {
		chunks[i] = bytesToIds([]byte(c))
	}

	mergeOrder := make([]Pair, 0, numMerges)
	mergeRank := make(map[Pair]int, numMerges)
	mergeID := make(map[Pair]Id, numMerges)

	for i := 0; i < numMerges; i++ {
		counts := make(map[Pair]int)
		for _, c := range chunks {
			countPairs(c, counts)
		}

		best, bestCount, found := pickWinner(counts)
		if !found || bestCount == 0 {
			if verbose {
				slog.Info("train: no more adjacent pairs, stopping early", "merges_done", i, "target", numMerges)
			}
			break
		}

		newID := Id(256 + i)
		for j, c := range chunks {
			chunks[j] = applyMerge(c, best, newID)
		}

		mergeOrder = append(mergeOrder, best)
		mergeRank[best] = i
		mergeID[best] = newID

		if verbose {
			slog.Info("train: merge", "step", i+1, "of", numMerges, "pair", best, "id", newID, "occurrences", bestCount)
		}
	}

	vocab, err := buildVocab(mergeOrder, mergeID, nil)
	if err != nil {
		return err
	}

	t.mergeOrder = mergeOrder
	t.mergeRank = mergeRank
	t.mergeID = mergeID
	t.vocab = vocab
	// training replaces merges/vocab; special tokens carry over untouched,
	// but any special-token ids now need re-validating against the fresh
	// vocab, so rebuild through the same path RegisterSpecialTokens uses.
	if len(t.special) > 0 {
		return t.RegisterSpecialTokens(t.special)
	}
	return nil
}

// pickWinner selects the most frequent pair, breaking ties on the
// lexicographically smallest (Left, Right) pair for reproducibility across
// Go's randomized map iteration order (spec.md §9).
func pickWinner(counts map[Pair]int) (Pair, int, bool) {
	var best Pair
	bestCount := -1
	found := false
	for p, c := range counts {
		if c > bestCount || (c == bestCount && p.less(best)) {
			best, bestCount, found = p, c, true
		}
	}
	return best, bestCount, found
}

func bytesToIds(b []byte) []Id {
	ids := make([]Id, len(b))
	for i, c := range b {
		ids[i] = Id(c)
	}
	return ids
}
