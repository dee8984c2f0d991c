package bpe

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const magic = "BPEtokenizer Tokenizer v1"

// Save writes filePrefix+".model" (the canonical, reloadable file) and
// filePrefix+".vocab" (a human-readable rendering, never consumed by Load).
// Both files are opened, fully written, and closed before Save returns.
func (t *Tokenizer) Save(filePrefix string) error {
	if err := t.saveModel(filePrefix + ".model"); err != nil {
		return err
	}
	return t.saveVocab(filePrefix + ".vocab")
}

func (t *Tokenizer) saveModel(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return newErr("Save", KindIoError, ErrIoError, "create %s: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, magic)
	fmt.Fprintln(w, t.pre.source)
	fmt.Fprintln(w, len(t.special))
	for token, id := range t.special {
		fmt.Fprintf(w, "%s %d\n", token, id)
	}
	for _, p := range t.mergeOrder {
		fmt.Fprintf(w, "%d %d\n", p.Left, p.Right)
	}
	if err := w.Flush(); err != nil {
		return newErr("Save", KindIoError, ErrIoError, "write %s: %v", path, err)
	}
	return nil
}

func (t *Tokenizer) saveVocab(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return newErr("Save", KindIoError, ErrIoError, "create %s: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	inverted := make(map[Id]Pair, len(t.mergeOrder))
	for _, p := range t.mergeOrder {
		inverted[t.mergeID[p]] = p
	}

	ids := make([]Id, 0, len(t.vocab))
	for id := range t.vocab {
		ids = append(ids, id)
	}
	sortIds(ids)

	for _, id := range ids {
		token := t.vocab[id]
		s := renderToken(token)
		if pair, ok := inverted[id]; ok {
			s0 := renderToken(t.vocab[pair.Left])
			s1 := renderToken(t.vocab[pair.Right])
			fmt.Fprintf(w, "[%s][%s] -> [%s] %d\n", s0, s1, s, id)
		} else {
			fmt.Fprintf(w, "[%s] %d\n", s, id)
		}
	}
	if err := w.Flush(); err != nil {
		return newErr("Save", KindIoError, ErrIoError, "write %s: %v", path, err)
	}
	return nil
}

func sortIds(ids []Id) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// Load reads a canonical model file (written by Save) and returns a fresh
// Tokenizer. modelPath must end in ".model". On any error Load stops reading
// and the file is closed before the error is returned; no partial state
// escapes.
func Load(modelPath string) (*Tokenizer, error) {
	if !strings.HasSuffix(modelPath, ".model") {
		return nil, newErr("Load", KindInvalidInput, ErrInvalidInput, "model path %q must end with .model", modelPath)
	}

	f, err := os.Open(modelPath)
	if err != nil {
		return nil, newErr("Load", KindIoError, ErrIoError, "open %s: %v", modelPath, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return nil, newErr("Load", KindBadFormat, ErrBadFormat, "empty model file")
	}
	if sc.Text() != magic {
		return nil, newErr("Load", KindBadMagic, ErrBadMagic, "got %q", sc.Text())
	}

	if !sc.Scan() {
		return nil, newErr("Load", KindBadFormat, ErrBadFormat, "missing pattern line")
	}
	pattern := sc.Text()

	if !sc.Scan() {
		return nil, newErr("Load", KindBadFormat, ErrBadFormat, "missing special-token count line")
	}
	numSpecial, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, newErr("Load", KindBadFormat, ErrBadFormat, "malformed special-token count: %v", err)
	}

	special := make(map[string]Id, numSpecial)
	for i := 0; i < numSpecial; i++ {
		if !sc.Scan() {
			return nil, newErr("Load", KindBadFormat, ErrBadFormat, "truncated file: expected %d special tokens, got %d", numSpecial, i)
		}
		line := sc.Text()
		sep := strings.LastIndex(line, " ")
		if sep < 0 {
			return nil, newErr("Load", KindBadFormat, ErrBadFormat, "malformed special-token line %q", line)
		}
		token := line[:sep]
		id, err := strconv.Atoi(strings.TrimSpace(line[sep+1:]))
		if err != nil {
			return nil, newErr("Load", KindBadFormat, ErrBadFormat, "malformed special-token id in %q: %v", line, err)
		}
		special[token] = Id(id)
	}

	var mergeOrder []Pair
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, newErr("Load", KindBadFormat, ErrBadFormat, "malformed merge line %q", line)
		}
		left, err1 := strconv.Atoi(fields[0])
		right, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			return nil, newErr("Load", KindBadFormat, ErrBadFormat, "merge line %q does not parse as two integers", line)
		}
		mergeOrder = append(mergeOrder, Pair{Id(left), Id(right)})
	}
	if err := sc.Err(); err != nil {
		return nil, newErr("Load", KindIoError, ErrIoError, "read %s: %v", modelPath, err)
	}

	return fromMergeOrder(pattern, mergeOrder, special)
}

// Load replaces t's entire state with the model at modelPath, atomically: a
// fresh tokenizer is built in full before anything is swapped in, so a
// failed Load never mutates t.
func (t *Tokenizer) Load(modelPath string) error {
	fresh, err := Load(modelPath)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}
