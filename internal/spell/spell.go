// Package spell corrects likely OCR misreads against an English dictionary.
package spell

// Corrector maps a recognised string to its most likely correct spelling.
// Implementations never return an empty string for non-empty input.
type Corrector interface {
	Correct(text string) string
}

// Nop leaves text unchanged.
type Nop struct{}

// Correct returns text as-is.
func (Nop) Correct(text string) string { return text }

// Config controls the dictionary corrector.
type Config struct {
	Enabled      bool
	Dictionaries []string // extra word lists, merged with the embedded one
	Depth        int      // maximum edit distance considered, 1 or 2
}

// DefaultConfig returns the corrector defaults.
func DefaultConfig() Config {
	return Config{Enabled: true, Depth: 2}
}

// New returns the corrector described by cfg: Nop when disabled, a Fuzzy
// corrector otherwise.
func New(cfg Config) (Corrector, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	return NewFuzzy(cfg)
}
