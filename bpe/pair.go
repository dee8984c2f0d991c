package bpe

// Id is a token id. Ids in [0,256) are reserved for raw bytes; learned ids
// start at 256 and are assigned densely in merge-emission order; special
// tokens use caller-supplied ids outside both ranges.
type Id = int32

// Pair is an ordered pair of adjacent ids.
type Pair struct {
	Left, Right Id
}

// less orders pairs lexicographically on (Left, Right), used to break count
// ties deterministically during training.
func (p Pair) less(o Pair) bool {
	if p.Left != o.Left {
		return p.Left < o.Left
	}
	return p.Right < o.Right
}

// countPairs increments, in acc, the count of every adjacent pair in ids.
// A sequence of length n contributes exactly max(0, n-1) observations.
func countPairs(ids []Id, acc map[Pair]int) {
	for i := 0; i+1 < len(ids); i++ {
		acc[Pair{ids[i], ids[i+1]}]++
	}
}

// applyMerge returns a new slice where every non-overlapping adjacent
// occurrence of pair is replaced by newID, scanning left to right. A run of
// (a,a,a) under pair (a,a) becomes (newID, a): once a pair is consumed, both
// its positions are skipped.
func applyMerge(ids []Id, pair Pair, newID Id) []Id {
	out := make([]Id, 0, len(ids))
	for i := 0; i < len(ids); i++ {
		if i+1 < len(ids) && ids[i] == pair.Left && ids[i+1] == pair.Right {
			out = append(out, newID)
			i++
			continue
		}
		out = append(out, ids[i])
	}
	return out
}
