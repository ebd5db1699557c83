package document

import (
	"errors"
	"fmt"

	"github.com/Yara1604/InnovNation-Hackathon/internal/highlight"
)

// ErrInvalidHighlight is returned for a colour outside the highlight enumeration
// or one that WordprocessingML cannot represent.
var ErrInvalidHighlight = errors.New("invalid highlight color")

// stHighlightColor is the ST_HighlightColor value set of WordprocessingML.
var stHighlightColor = map[string]struct{}{
	"black": {}, "blue": {}, "cyan": {}, "green": {}, "magenta": {}, "red": {},
	"yellow": {}, "white": {}, "darkBlue": {}, "darkCyan": {}, "darkGreen": {},
	"darkMagenta": {}, "darkRed": {}, "darkYellow": {}, "darkGray": {},
	"lightGray": {}, "none": {},
}

// HighlightValue maps a highlight colour to its w:highlight value. None maps to
// the empty string, meaning the run carries no highlight.
func HighlightValue(c highlight.Color) (string, error) {
	var v string
	switch c {
	case highlight.None:
		return "", nil
	case highlight.Yellow:
		v = "yellow"
	case highlight.Green:
		v = "green"
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidHighlight, c)
	}
	if _, ok := stHighlightColor[v]; !ok {
		return "", fmt.Errorf("%w: %q is not a WordprocessingML highlight", ErrInvalidHighlight, v)
	}
	return v, nil
}

// colorFromValue is the inverse of HighlightValue for values this package writes.
func colorFromValue(v string) (highlight.Color, error) {
	switch v {
	case "", "none":
		return highlight.None, nil
	case "yellow":
		return highlight.Yellow, nil
	case "green":
		return highlight.Green, nil
	default:
		return highlight.None, fmt.Errorf("%w: unsupported value %q", ErrInvalidHighlight, v)
	}
}
