package geom

import "math"

// lineStep is the distance advanced along the ray between cell samples.
const lineStep = 0.04

// Line returns the cells crossed by the segment from origin towards target.
// The ray starts at the centre of origin and is sampled every lineStep cells;
// a cell is appended each time the sampled position enters a new cell.
//
// Walking stops when the ray reaches target (if stopAtTarget), when the king
// distance travelled reaches travelLimit, or before the ray leaves the map
// (unless allowOutside).
//
// Precondition: travelLimit >= 1.
// Postcondition: element 0 is origin; Line(p, p, ...) == []Pos{p}.
func Line(origin, target Pos, stopAtTarget bool, travelLimit int, allowOutside bool) []Pos {
	if origin == target {
		return []Pos{origin}
	}

	dx := float64(target.X - origin.X)
	dy := float64(target.Y - origin.Y)
	length := math.Hypot(dx, dy)
	xIncr := dx / length * lineStep
	yIncr := dy / length * lineStep

	startX := float64(origin.X) + 0.5
	startY := float64(origin.Y) + 0.5

	line := []Pos{origin}
	last := origin
	for k := 1; ; k++ {
		cur := Pos{
			X: int(math.Floor(startX + float64(k)*xIncr)),
			Y: int(math.Floor(startY + float64(k)*yIncr)),
		}
		if cur == last {
			continue
		}
		if !allowOutside && !InsideMap(cur) {
			return line
		}
		line = append(line, cur)
		last = cur
		if stopAtTarget && cur == target {
			return line
		}
		if KingDist(origin, cur) >= travelLimit {
			return line
		}
	}
}
