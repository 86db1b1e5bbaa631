// Package geom provides the bounded grid coordinate system shared by the
// visibility, combat and actor packages.
package geom

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Map dimensions in cells.
const (
	MapW = 80
	MapH = 22
)

// Pos is an integer cell coordinate. Add and Sub are component-wise.
type Pos = gruid.Point

// Range is a half-open rectangle of cells.
type Range = gruid.Range

// MapRange covers every cell of the map.
var MapRange = gruid.NewRange(0, 0, MapW, MapH)

// Offsets to the eight neighbours of a cell, plus the cell itself, in the
// scan order used for corpse placement: x outer, y inner.
var Neighbourhood = func() []Pos {
	out := make([]Pos, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			out = append(out, Pos{X: dx, Y: dy})
		}
	}
	return out
}()

// KingDist returns the Chebyshev distance max(|dx|, |dy|) between a and b.
//
// Postcondition: KingDist(a, b) == KingDist(b, a) >= 0.
func KingDist(a, b Pos) int {
	return paths.DistanceChebyshev(a, b)
}

// InsideMap reports whether p lies on the map.
func InsideMap(p Pos) bool {
	return p.In(MapRange)
}

// WindowAround returns the square of radius r centred on p, clamped to the map.
//
// Postcondition: the returned range is a subset of MapRange.
func WindowAround(p Pos, r int) Range {
	return gruid.NewRange(p.X-r, p.Y-r, p.X+r+1, p.Y+r+1).Intersect(MapRange)
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
