package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBands(t *testing.T) {
	bands := DefaultBands()
	require.Len(t, bands, 2)

	assert.Equal(t, Yellow, bands[0].Color)
	assert.Equal(t, HSV{20, 100, 100}, bands[0].Lower)
	assert.Equal(t, HSV{30, 255, 255}, bands[0].Upper)

	assert.Equal(t, Green, bands[1].Color)
	assert.Equal(t, HSV{40, 40, 40}, bands[1].Lower)
	assert.Equal(t, HSV{90, 255, 255}, bands[1].Upper)

	assert.False(t, bands[0].Overlaps(bands[1]))
}

func TestBand_Contains(t *testing.T) {
	yellow := DefaultBands()[0]

	tests := []struct {
		name string
		p    HSV
		want bool
	}{
		{"lower corner", HSV{20, 100, 100}, true},
		{"upper corner", HSV{30, 255, 255}, true},
		{"marker", RGBToHSV(255, 240, 0), true},
		{"hue below", HSV{19, 200, 200}, false},
		{"hue above", HSV{31, 200, 200}, false},
		{"washed out", HSV{25, 99, 200}, false},
		{"too dark", HSV{25, 200, 99}, false},
		{"white paper", RGBToHSV(250, 250, 250), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, yellow.Contains(tt.p))
		})
	}
}

func TestBand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		band    Band
		wantErr string
	}{
		{"default yellow", DefaultBands()[0], ""},
		{"none color", Band{Color: None, Upper: HSV{10, 10, 10}}, "yellow or green"},
		{"hue too large", Band{Color: Green, Lower: HSV{40, 0, 0}, Upper: HSV{180, 255, 255}}, "exceeds 179"},
		{"inverted", Band{Color: Green, Lower: HSV{90, 0, 0}, Upper: HSV{40, 255, 255}}, "exceeds upper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.band.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBand_Overlaps(t *testing.T) {
	a := Band{Color: Yellow, Lower: HSV{20, 0, 0}, Upper: HSV{30, 255, 255}}
	b := Band{Color: Green, Lower: HSV{30, 0, 0}, Upper: HSV{40, 255, 255}}
	c := Band{Color: Green, Lower: HSV{31, 0, 0}, Upper: HSV{40, 255, 255}}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
}

func TestColor_ParseAndString(t *testing.T) {
	for _, c := range []Color{None, Yellow, Green} {
		parsed, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	c, err := ParseColor(" YELLOW ")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)

	c, err = ParseColor("")
	require.NoError(t, err)
	assert.Equal(t, None, c)

	_, err = ParseColor("purple")
	require.Error(t, err)

	assert.Equal(t, "color(7)", Color(7).String())
	assert.False(t, Color(7).Valid())
	_, err = Color(7).MarshalText()
	require.Error(t, err)

	var u Color
	require.NoError(t, u.UnmarshalText([]byte("green")))
	assert.Equal(t, Green, u)
	require.Error(t, u.UnmarshalText([]byte("blue")))
}
