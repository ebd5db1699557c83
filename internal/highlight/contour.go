package highlight

import "github.com/Yara1604/InnovNation-Hackathon/internal/utils"

// traceContour extracts the outer boundary of a labelled component with
// Moore-neighbour tracing. Points are pixel centres; collinear points are dropped.
func traceContour(labels []int, w, h, label int, st compStats) []utils.Point {
	if w <= 0 || h <= 0 || label <= 0 || len(labels) != w*h || st.count == 0 {
		return nil
	}
	if st.minX < 0 || st.maxX >= w || st.minY < 0 || st.minY >= h {
		return nil
	}

	// The first labelled pixel in raster order is always on the outer boundary
	// and its west neighbour is background.
	sx, sy := -1, -1
	for x := st.minX; x <= st.maxX; x++ {
		if labels[st.minY*w+x] == label {
			sx, sy = x, st.minY
			break
		}
	}
	if sx < 0 {
		return nil
	}

	pts := make([]utils.Point, 0, 64)
	addPoint := func(x, y int) {
		p := utils.Point{X: float64(x), Y: float64(y)}
		n := len(pts)
		if n > 0 && pts[n-1] == p {
			return
		}
		if n >= 2 {
			if collinear(pts[n-2], pts[n-1], p) {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, p)
	}

	isLabel := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && labels[y*w+x] == label
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy
	startBx, startBy := bx, by
	addPoint(cx, cy)

	firstX, firstY := -1, -1
	maxSteps := 4*st.count + 8
	for range maxSteps {
		nx, ny, nbx, nby, found := nextBoundaryPixel(isLabel, cx, cy, bx, by)
		if !found {
			break // isolated pixel
		}
		if cx == sx && cy == sy && nx == firstX && ny == firstY {
			break // about to repeat the first move
		}
		if firstX < 0 {
			firstX, firstY = nx, ny
		}
		cx, cy, bx, by = nx, ny, nbx, nby
		if cx == sx && cy == sy && bx == startBx && by == startBy {
			break
		}
		addPoint(cx, cy)
	}

	// The seam between the last and first point can leave a duplicate or a
	// collinear point on either side.
	for len(pts) >= 3 {
		n := len(pts)
		switch {
		case pts[n-1] == pts[0], collinear(pts[n-2], pts[n-1], pts[0]):
			pts = pts[:n-1]
		case collinear(pts[n-1], pts[0], pts[1]):
			pts = pts[1:]
		default:
			return pts
		}
	}
	return pts
}

func collinear(a, b, c utils.Point) bool {
	return (b.X-a.X)*(c.Y-b.Y)-(b.Y-a.Y)*(c.X-b.X) == 0
}

// dirIndex returns the index of the offset in neighbors8.
func dirIndex(dx, dy int) int {
	for i, d := range neighbors8 {
		if d[0] == dx && d[1] == dy {
			return i
		}
	}
	return 0
}

// nextBoundaryPixel scans the Moore neighbourhood of (cx,cy) clockwise starting
// just after the backtrack pixel (bx,by). It returns the next boundary pixel and
// the new backtrack, which is the last background pixel visited before it.
func nextBoundaryPixel(isLabel func(x, y int) bool, cx, cy, bx, by int) (int, int, int, int, bool) {
	start := (dirIndex(bx-cx, by-cy) + 1) % 8
	prevX, prevY := bx, by
	for k := range 8 {
		d := neighbors8[(start+k)%8]
		tx, ty := cx+d[0], cy+d[1]
		if isLabel(tx, ty) {
			return tx, ty, prevX, prevY, true
		}
		prevX, prevY = tx, ty
	}
	return 0, 0, bx, by, false
}

// contourArea is the area enclosed by the traced boundary polygon.
// A filled w x h rectangle yields (w-1)*(h-1).
func contourArea(pts []utils.Point) float64 {
	return utils.PolygonArea(pts)
}
