package highlight

import "fmt"

// Band is a closed HSV range that classifies pixels as one highlight colour.
type Band struct {
	Color Color
	Lower HSV
	Upper HSV
}

// DefaultBands returns the yellow and green marker ranges.
func DefaultBands() []Band {
	return []Band{
		{Color: Yellow, Lower: HSV{H: 20, S: 100, V: 100}, Upper: HSV{H: 30, S: 255, V: 255}},
		{Color: Green, Lower: HSV{H: 40, S: 40, V: 40}, Upper: HSV{H: 90, S: 255, V: 255}},
	}
}

// Contains reports whether p lies inside the band (bounds inclusive).
func (b Band) Contains(p HSV) bool {
	return p.H >= b.Lower.H && p.H <= b.Upper.H &&
		p.S >= b.Lower.S && p.S <= b.Upper.S &&
		p.V >= b.Lower.V && p.V <= b.Upper.V
}

// Validate checks the band's colour and bounds.
func (b Band) Validate() error {
	if b.Color != Yellow && b.Color != Green {
		return fmt.Errorf("band color must be yellow or green, got %s", b.Color)
	}
	if b.Upper.H > 179 {
		return fmt.Errorf("%s band: hue upper bound %d exceeds 179", b.Color, b.Upper.H)
	}
	if b.Lower.H > b.Upper.H || b.Lower.S > b.Upper.S || b.Lower.V > b.Upper.V {
		return fmt.Errorf("%s band: lower bound %v exceeds upper bound %v", b.Color, b.Lower, b.Upper)
	}
	return nil
}

// Overlaps reports whether two bands share at least one HSV value.
func (b Band) Overlaps(o Band) bool {
	return b.Lower.H <= o.Upper.H && o.Lower.H <= b.Upper.H &&
		b.Lower.S <= o.Upper.S && o.Lower.S <= b.Upper.S &&
		b.Lower.V <= o.Upper.V && o.Lower.V <= b.Upper.V
}
