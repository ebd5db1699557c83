package highlight

import (
	"image"
	"image/color"
	"math"
)

// HSV is a pixel in 8-bit hue/saturation/value space using the OpenCV scale:
// H in [0,179] (degrees / 2), S and V in [0,255].
type HSV struct {
	H uint8
	S uint8
	V uint8
}

// RGBToHSV converts an 8-bit RGB triple.
func RGBToHSV(r, g, b uint8) HSV {
	rf, gf, bf := float64(r), float64(g), float64(b)
	maxV := math.Max(rf, math.Max(gf, bf))
	minV := math.Min(rf, math.Min(gf, bf))
	delta := maxV - minV

	var s float64
	if maxV > 0 {
		s = delta * 255 / maxV
	}

	var h float64
	if delta > 0 {
		switch maxV {
		case rf:
			h = 60 * (gf - bf) / delta
		case gf:
			h = 120 + 60*(bf-rf)/delta
		default:
			h = 240 + 60*(rf-gf)/delta
		}
		if h < 0 {
			h += 360
		}
	}

	hh := math.Round(h / 2)
	if hh >= 180 {
		hh = 0
	}
	return HSV{H: uint8(hh), S: uint8(math.Round(s)), V: uint8(maxV)}
}

// toHSV converts the whole image into a row-major HSV buffer.
// Alpha is ignored, matching how 3-channel decoders read photos.
func toHSV(img image.Image) ([]HSV, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]HSV, w*h)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range h {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := range w {
				out[y*w+x] = RGBToHSV(row[x*4], row[x*4+1], row[x*4+2])
			}
		}
	case *image.RGBA:
		for y := range h {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := range w {
				out[y*w+x] = RGBToHSV(row[x*4], row[x*4+1], row[x*4+2])
			}
		}
	default:
		for y := range h {
			for x := range w {
				c, _ := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				out[y*w+x] = RGBToHSV(c.R, c.G, c.B)
			}
		}
	}
	return out, w, h
}
