package spell

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

//go:embed words_en.txt
var embeddedWords string

// WordCount is a dictionary word and how often it occurs.
type WordCount struct {
	Word  string
	Count int
}

// EmbeddedFrequencies returns the built-in English frequency list, most
// frequent first.
func EmbeddedFrequencies() ([]WordCount, error) {
	return ReadFrequencies(strings.NewReader(embeddedWords))
}

// ReadFrequencies reads "word count" lines. Lines starting with '#' are
// comments, a missing count means 1 and repeated words add up. Order of first
// appearance is kept.
func ReadFrequencies(r io.Reader) ([]WordCount, error) {
	var out []WordCount
	index := make(map[string]int)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		word := strings.ToLower(fields[0])
		if !isWord(word) {
			return nil, fmt.Errorf("line %d: invalid word %q", line, fields[0])
		}
		count := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("line %d: invalid count %q", line, fields[1])
			}
			count = n
		}
		if i, ok := index[word]; ok {
			out[i].Count += count
			continue
		}
		index[word] = len(out)
		out = append(out, WordCount{Word: word, Count: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frequency list: %w", err)
	}
	return out, nil
}

// ReadWords reads a plain-text word list. Lines starting with '#' are comments;
// every other line may hold any number of words. Words are lowercased and
// stripped of surrounding punctuation; tokens with non-letters inside are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			w := strings.ToLower(strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r)
			}))
			if w == "" || !isWord(w) {
				continue
			}
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// LoadDictionary reads a word list file.
func LoadDictionary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return words, nil
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '\'' {
			return false
		}
	}
	return true
}
