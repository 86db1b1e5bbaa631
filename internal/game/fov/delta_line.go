package fov

import (
	"math"

	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// MaxRadius is the largest |dx| or |dy| the delta-line table covers.
const MaxRadius = 16

const tableSide = 2*MaxRadius + 1

// deltaLines holds the ray from (0,0) to every offset within MaxRadius.
// It is filled once at package init and never written again.
var deltaLines = buildDeltaLines()

func buildDeltaLines() *[tableSide][tableSide][]geom.Pos {
	var table [tableSide][tableSide][]geom.Pos
	origin := geom.Pos{}
	for dx := -MaxRadius; dx <= MaxRadius; dx++ {
		for dy := -MaxRadius; dy <= MaxRadius; dy++ {
			target := geom.Pos{X: dx, Y: dy}
			table[dx+MaxRadius][dy+MaxRadius] = geom.Line(origin, target, true, 999, true)
		}
	}
	return &table
}

// DeltaLine returns the ray of offsets from (0,0) to delta, origin first.
// It returns nil when delta lies outside the table or when the euclidean
// length of delta, rounded down, exceeds maxDist.
//
// The returned slice is shared and must not be modified.
func DeltaLine(delta geom.Pos, maxDist float64) []geom.Pos {
	x := delta.X + MaxRadius
	y := delta.Y + MaxRadius
	if x < 0 || y < 0 || x >= tableSide || y >= tableSide {
		return nil
	}
	if math.Floor(math.Hypot(float64(delta.X), float64(delta.Y))) > maxDist {
		return nil
	}
	return deltaLines[x][y]
}
