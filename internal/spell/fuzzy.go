package spell

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sajari/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fuzzy is a dictionary corrector backed by symmetric-delete fuzzy models.
// It is safe for concurrent use once constructed.
type Fuzzy struct {
	lexicons []*lexicon
	depth    int
}

// lexicon is one trained model together with the counts it was trained on.
// It is read-only once built.
type lexicon struct {
	model *fuzzy.Model
	freq  map[string]int
}

func newLexicon(depth int) *lexicon {
	m := fuzzy.NewModel()
	m.SetThreshold(1)
	m.SetDepth(depth)
	m.SetUseAutocomplete(false)
	return &lexicon{model: m, freq: make(map[string]int)}
}

func (l *lexicon) add(word string, count int) {
	l.freq[word] += count
	l.model.SetCount(word, l.freq[word], true)
}

// The embedded lexicon is trained once per depth and shared by every Fuzzy.
var embedded = struct {
	mu      sync.Mutex
	byDepth map[int]*lexicon
}{byDepth: make(map[int]*lexicon)}

func embeddedLexicon(depth int) (*lexicon, error) {
	embedded.mu.Lock()
	defer embedded.mu.Unlock()
	if l, ok := embedded.byDepth[depth]; ok {
		return l, nil
	}

	words, err := EmbeddedFrequencies()
	if err != nil {
		return nil, fmt.Errorf("embedded word list: %w", err)
	}
	if len(words) == 0 {
		return nil, errors.New("embedded word list is empty")
	}
	l := newLexicon(depth)
	for _, wc := range words {
		l.add(wc.Word, wc.Count)
	}
	embedded.byDepth[depth] = l
	slog.Debug("Spelling model trained", "terms", len(l.freq), "depth", depth)
	return l, nil
}

// NewFuzzy builds a corrector on the embedded English list plus cfg.Dictionaries.
func NewFuzzy(cfg Config) (*Fuzzy, error) {
	if cfg.Depth < 1 || cfg.Depth > 2 {
		return nil, fmt.Errorf("invalid spell depth: %d (must be 1 or 2)", cfg.Depth)
	}

	base, err := embeddedLexicon(cfg.Depth)
	if err != nil {
		return nil, err
	}
	f := &Fuzzy{
		lexicons: []*lexicon{base},
		depth:    cfg.Depth,
	}

	if len(cfg.Dictionaries) > 0 {
		user := newLexicon(cfg.Depth)
		for _, path := range cfg.Dictionaries {
			words, err := LoadDictionary(path)
			if err != nil {
				return nil, err
			}
			for _, w := range words {
				user.add(w, 1)
			}
			slog.Debug("Loaded spelling dictionary", "path", path, "words", len(words))
		}
		f.lexicons = append(f.lexicons, user)
	}
	return f, nil
}

// count is how often word occurs across all lexicons.
func (f *Fuzzy) count(word string) int {
	n := 0
	for _, l := range f.lexicons {
		n += l.freq[word]
	}
	return n
}

// Known reports whether word (any case) is in the dictionary.
func (f *Fuzzy) Known(word string) bool {
	return f.count(toLower(word)) > 0
}

// Correct fixes every word of text independently. Characters between words
// (spaces, punctuation, digits) are kept verbatim, and a word touching a digit
// is left alone. A word with no suggestion keeps its original spelling.
func (f *Fuzzy) Correct(text string) string {
	text = norm.NFC.String(text)
	runes := []rune(text)

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && (unicode.IsLetter(runes[j]) || (runes[j] == '\'' && j+1 < len(runes) && unicode.IsLetter(runes[j+1]))) {
			j++
		}
		word := string(runes[i:j])
		if (i > 0 && unicode.IsDigit(runes[i-1])) || (j < len(runes) && unicode.IsDigit(runes[j])) {
			b.WriteString(word)
		} else {
			b.WriteString(f.CorrectWord(word))
		}
		i = j
	}
	return b.String()
}

// CorrectWord returns the best dictionary match for a single word, carrying
// over its capitalisation (lower, Title or UPPER).
func (f *Fuzzy) CorrectWord(word string) string {
	if len([]rune(word)) < 2 {
		return word
	}
	lower := toLower(word)
	if f.count(lower) > 0 {
		return word
	}
	// Possessives and unlisted contractions: correct the stem, keep the suffix.
	if i := strings.IndexByte(word, '\''); i > 0 {
		stem := word[:i]
		if f.count(toLower(stem)) > 0 {
			return word
		}
		return f.CorrectWord(stem) + word[i:]
	}

	best := f.best(lower)
	if best == "" {
		return word
	}
	return f.restoreCase(word, best)
}

// best picks the closest suggestion. Ties go to restoring a doubled letter
// (OCR often merges "ll" or "ss" into one glyph), then a matching first
// letter, then the more frequent word, then alphabetical order.
func (f *Fuzzy) best(lower string) string {
	var (
		best       string
		bestDist   = f.depth + 1
		bestDouble bool
		bestHead   bool
		bestFreq   int
	)
	first, _ := firstRune(lower)
	seen := make(map[string]struct{})
	for _, l := range f.lexicons {
		for _, cand := range l.model.Suggestions(lower, true) {
			if _, ok := seen[cand]; ok {
				continue
			}
			seen[cand] = struct{}{}

			dist := fuzzy.Levenshtein(&lower, &cand)
			if dist == 0 || dist > f.depth {
				continue
			}
			double := restoresDouble(lower, cand)
			c, _ := firstRune(cand)
			head := c == first
			freq := f.count(cand)

			var better bool
			switch {
			case best == "":
				better = true
			case dist != bestDist:
				better = dist < bestDist
			case double != bestDouble:
				better = double
			case head != bestHead:
				better = head
			case freq != bestFreq:
				better = freq > bestFreq
			default:
				better = cand < best
			}
			if better {
				best, bestDist, bestDouble, bestHead, bestFreq = cand, dist, double, head, freq
			}
		}
	}
	return best
}

// restoresDouble reports whether cand is word with one letter doubled.
func restoresDouble(word, cand string) bool {
	w, c := []rune(word), []rune(cand)
	if len(c) != len(w)+1 {
		return false
	}
	for i := 1; i < len(c); i++ {
		if c[i] == c[i-1] && string(c[:i])+string(c[i+1:]) == word {
			return true
		}
	}
	return false
}

func (f *Fuzzy) restoreCase(original, suggestion string) string {
	switch casePattern(original) {
	case caseUpper:
		return strings.ToUpper(suggestion)
	case caseTitle:
		return cases.Title(language.English).String(suggestion)
	default:
		return suggestion
	}
}

type caseKind int

const (
	caseLower caseKind = iota
	caseTitle
	caseUpper
)

func casePattern(s string) caseKind {
	var upper, letters int
	firstUpper := false
	for i, r := range []rune(s) {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
			if i == 0 {
				firstUpper = true
			}
		}
	}
	switch {
	case letters > 1 && upper == letters:
		return caseUpper
	case firstUpper:
		return caseTitle
	default:
		return caseLower
	}
}

// toLower folds s with a fresh Caser; Casers carry state and are not shared.
func toLower(s string) string {
	return cases.Lower(language.English).String(s)
}

func firstRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return r, size > 0
}
