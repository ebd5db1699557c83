package highlight

import (
	"fmt"
	"strings"
)

// Color is the closed set of highlighter colours the detector can report.
type Color int

const (
	// None marks text that is not covered by any highlight.
	None Color = iota
	Yellow
	Green
)

// Colors lists the highlight colours in their canonical order.
var Colors = []Color{Yellow, Green}

func (c Color) String() string {
	switch c {
	case None:
		return "none"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Valid reports whether c is a member of the enumeration.
func (c Color) Valid() bool {
	return c == None || c == Yellow || c == Green
}

// ParseColor converts a name ("yellow", "green", "none") into a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "yellow":
		return Yellow, nil
	case "green":
		return Green, nil
	default:
		return None, fmt.Errorf("unknown highlight color %q (must be one of: yellow, green, none)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid highlight color %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
