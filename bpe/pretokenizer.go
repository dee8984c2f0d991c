package bpe

import (
	"github.com/dlclark/regexp2"
)

// DefaultPattern is the GPT-4 style pre-tokenizer split pattern: letter/number
// runs, contractions, punctuation runs, and whitespace, each kept as its own
// chunk so merges never cross a chunk boundary.
const DefaultPattern = `'(?i:[sdmt]|ll|ve|re)|[^\r\n\p{L}\p{N}]?+\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]++[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`

// defaultPatternCompiled is DefaultPattern with its possessive quantifiers
// (`?+`, `++`) written as the equivalent atomic groups, which regexp2 can
// compile. Pattern() and saved model files keep DefaultPattern verbatim.
const defaultPatternCompiled = `'(?i:[sdmt]|ll|ve|re)|(?>[^\r\n\p{L}\p{N}]?)\p{L}+|\p{N}{1,3}| ?(?>[^\s\p{L}\p{N}]+)[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`

// preTokenizer holds a compiled split pattern.
type preTokenizer struct {
	source   string
	compiled *regexp2.Regexp
}

func newPreTokenizer(pattern string) (*preTokenizer, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	expr := pattern
	if pattern == DefaultPattern {
		expr = defaultPatternCompiled
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, newErr("new", KindInvalidInput, ErrInvalidInput, "compile pattern %q: %v", pattern, err)
	}
	return &preTokenizer{source: pattern, compiled: re}, nil
}

// split returns the ordered sequence of match spans covering text. Per
// spec, the concatenation of all chunks must equal the input; if the
// compiled pattern leaves a gap (an engine quirk around possessive
// quantifiers, say), the gap is folded in verbatim as its own chunk so the
// cover invariant holds regardless of the underlying engine's behavior.
func (p *preTokenizer) split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	// regexp2 matches over runes (it ports .NET's string model), so Index
	// and Length on a Match are rune offsets, not byte offsets. Convert once
	// up front and slice the rune buffer, not the original string.
	runes := []rune(text)

	var chunks []string
	pos := 0
	m, err := p.compiled.FindStringMatch(text)
	for {
		if err != nil {
			return nil, newErr("split", KindInvalidInput, ErrInvalidInput, "match pattern: %v", err)
		}
		if m == nil {
			break
		}
		start := m.Index
		if start > pos {
			chunks = append(chunks, string(runes[pos:start]))
		}
		chunks = append(chunks, m.String())
		pos = start + m.Length

		m, err = p.compiled.FindNextMatch(m)
	}
	if pos < len(runes) {
		chunks = append(chunks, string(runes[pos:]))
	}
	return chunks, nil
}
