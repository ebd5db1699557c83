package highlight

import (
	"image"
	"image/color"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSV
	}{
		{"black", 0, 0, 0, HSV{0, 0, 0}},
		{"white", 255, 255, 255, HSV{0, 0, 255}},
		{"red", 255, 0, 0, HSV{0, 255, 255}},
		{"green", 0, 255, 0, HSV{60, 255, 255}},
		{"blue", 0, 0, 255, HSV{120, 255, 255}},
		{"yellow", 255, 255, 0, HSV{30, 255, 255}},
		{"marker yellow", 255, 240, 0, HSV{28, 255, 255}},
		{"magenta", 255, 0, 255, HSV{150, 255, 255}},
		{"grey", 128, 128, 128, HSV{0, 0, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBToHSV(tt.r, tt.g, tt.b))
		})
	}
}

func TestToHSV_ImageTypes(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{R: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{G: 255, A: 255})

	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.Set(0, 0, color.NRGBA{R: 255, A: 255})
	nrgba.Set(1, 0, color.NRGBA{G: 255, A: 255})

	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 200})

	for name, img := range map[string]image.Image{"rgba": rgba, "nrgba": nrgba} {
		t.Run(name, func(t *testing.T) {
			px, w, h := toHSV(img)
			require.Equal(t, 2, w)
			require.Equal(t, 1, h)
			assert.Equal(t, HSV{0, 255, 255}, px[0])
			assert.Equal(t, HSV{60, 255, 255}, px[1])
		})
	}

	t.Run("gray", func(t *testing.T) {
		px, _, _ := toHSV(gray)
		assert.Equal(t, HSV{0, 0, 200}, px[0])
		assert.Equal(t, HSV{0, 0, 0}, px[1])
	})
}

func TestToHSV_SubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{B: 255, A: 255})

	sub := img.SubImage(image.Rect(2, 2, 4, 4))
	px, w, h := toHSV(sub)
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)
	assert.Equal(t, HSV{120, 255, 255}, px[0])
	assert.Equal(t, HSV{0, 0, 0}, px[3])
}

func TestRGBToHSV_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("hue stays on the 0..179 scale", prop.ForAll(
		func(r, g, b uint8) bool {
			return RGBToHSV(r, g, b).H < 180
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("value is the largest channel", prop.ForAll(
		func(r, g, b uint8) bool {
			return RGBToHSV(r, g, b).V == max(r, g, b)
		},
		gen.UInt8(), gen.UInt8(), gen.UInt8(),
	))

	properties.Property("greys carry no saturation", prop.ForAll(
		func(v uint8) bool {
			p := RGBToHSV(v, v, v)
			return p.S == 0 && p.H == 0
		},
		gen.UInt8(),
	))

	properties.TestingRun(t)
}
