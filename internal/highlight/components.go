package highlight

// compStats holds the pixel count and bounds of one connected component.
// seedX is the column of its first pixel in raster order, which lies on row minY.
type compStats struct {
	count int
	seedX int
	minX  int
	minY  int
	maxX  int
	maxY  int
}

// neighbors8 lists the 8-connected offsets used for both labelling and tracing.
var neighbors8 = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// connectedComponents labels 8-connected components of the mask. Labels start
// at 1 in raster order of each component's first pixel; comps[i] belongs to label i+1.
func connectedComponents(mask []bool, w, h int) ([]compStats, []int) {
	labels := make([]int, w*h)
	var comps []compStats
	label := 1
	queue := make([]int, 0, 256)

	for y := range h {
		for x := range w {
			idx := y*w + x
			if !mask[idx] || labels[idx] != 0 {
				continue
			}
			comps = append(comps, floodComponent(mask, labels, w, h, x, y, label, queue[:0]))
			label++
		}
	}
	return comps, labels
}

// floodComponent runs a BFS from the seed pixel and returns its statistics.
func floodComponent(mask []bool, labels []int, w, h, startX, startY, label int, queue []int) compStats {
	st := compStats{seedX: startX, minX: startX, minY: startY, maxX: startX, maxY: startY}
	start := startY*w + startX
	labels[start] = label
	queue = append(queue, start)

	for head := 0; head < len(queue); head++ {
		ci := queue[head]
		cx, cy := ci%w, ci/w
		st.count++
		if cx < st.minX {
			st.minX = cx
		}
		if cy < st.minY {
			st.minY = cy
		}
		if cx > st.maxX {
			st.maxX = cx
		}
		if cy > st.maxY {
			st.maxY = cy
		}
		for _, d := range neighbors8 {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if mask[ni] && labels[ni] == 0 {
				labels[ni] = label
				queue = append(queue, ni)
			}
		}
	}
	return st
}

// outerBackground marks the unset pixels that are 4-connected to the image
// border. Unset pixels left false lie in a hole of some component.
func outerBackground(mask []bool, w, h int) []bool {
	outside := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))
	push := func(x, y int) {
		i := y*w + x
		if !mask[i] && !outside[i] {
			outside[i] = true
			queue = append(queue, i)
		}
	}
	for x := range w {
		push(x, 0)
		push(x, h-1)
	}
	for y := range h {
		push(0, y)
		push(w-1, y)
	}

	for head := 0; head < len(queue); head++ {
		ci := queue[head]
		cx, cy := ci%w, ci/w
		if cx > 0 {
			push(cx-1, cy)
		}
		if cx < w-1 {
			push(cx+1, cy)
		}
		if cy > 0 {
			push(cx, cy-1)
		}
		if cy < h-1 {
			push(cx, cy+1)
		}
	}
	return outside
}

// nested reports whether the component sits inside a hole of another one.
// The pixel above its first pixel is unset, so it is outer background exactly
// when the component is not enclosed.
func nested(st compStats, outside []bool, w int) bool {
	return st.minY > 0 && !outside[(st.minY-1)*w+st.seedX]
}
