package highlight

// buildMask marks every pixel whose HSV value lies in the band.
func buildMask(pixels []HSV, band Band) []bool {
	mask := make([]bool, len(pixels))
	for i, p := range pixels {
		mask[i] = band.Contains(p)
	}
	return mask
}

// openMask removes specks narrower than the kernel (erode then dilate).
func openMask(mask []bool, width, height, kernelSize int) []bool {
	if kernelSize <= 1 {
		return mask
	}
	return dilateMask(erodeMask(mask, width, height, kernelSize), width, height, kernelSize)
}

// erodeMask keeps a pixel only if the whole kernel around it is set.
// Pixels outside the image count as unset.
func erodeMask(mask []bool, width, height, kernelSize int) []bool {
	out := make([]bool, len(mask))
	half := kernelSize / 2
	for y := range height {
		for x := range width {
			if !mask[y*width+x] {
				continue
			}
			keep := true
			for ky := -half; ky <= half && keep; ky++ {
				for kx := -half; kx <= half; kx++ {
					nx, ny := x+kx, y+ky
					if nx < 0 || nx >= width || ny < 0 || ny >= height || !mask[ny*width+nx] {
						keep = false
						break
					}
				}
			}
			out[y*width+x] = keep
		}
	}
	return out
}

// dilateMask sets a pixel if any pixel in the kernel around it is set.
func dilateMask(mask []bool, width, height, kernelSize int) []bool {
	out := make([]bool, len(mask))
	half := kernelSize / 2
	for y := range height {
		for x := range width {
			if !mask[y*width+x] {
				continue
			}
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					nx, ny := x+kx, y+ky
					if nx >= 0 && nx < width && ny >= 0 && ny < height {
						out[ny*width+nx] = true
					}
				}
			}
		}
	}
	return out
}
