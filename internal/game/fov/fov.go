// Package fov decides which cells an observer can see, given an obstruction
// grid and the map's light and darkness flags.
package fov

import (
	"github.com/cory-johannsen/crawl/internal/game/geom"
)

// StdRadius is the sight radius in cells.
const StdRadius = 8

// LightMap exposes the per-cell lighting flags consulted when darkness
// affects sight.
type LightMap interface {
	IsLit(p geom.Pos) bool
	IsDark(p geom.Pos) bool
}

// PlayerSight is a LightMap that also records which cells the player sees.
type PlayerSight interface {
	LightMap
	SetSeenByPlayer(p geom.Pos, seen bool)
}

// Visible reports whether cell can be seen from origin.
//
// The ray to cell is walked from origin. A cell strictly between origin and
// target that is obstructed blocks sight; obstruction on the target itself
// does not. When darkness is true, a ray step beyond the second one is
// blocked if neither it nor the target is lit and it or the previous step is
// dark. A nil light map never blocks on darkness.
//
// Precondition: obst is non-nil and origin is on the map.
// Postcondition: false whenever KingDist(origin, cell) > StdRadius.
func Visible(obst *geom.Grid, light LightMap, cell, origin geom.Pos, darkness bool) bool {
	if !geom.InsideMap(cell) {
		return false
	}
	if geom.KingDist(origin, cell) > StdRadius {
		return false
	}
	return walk(obst, light, cell, origin, darkness)
}

func walk(obst *geom.Grid, light LightMap, cell, origin geom.Pos, darkness bool) bool {
	ray := DeltaLine(cell.Sub(origin), StdRadius)
	if ray == nil {
		return false
	}
	darkness = darkness && light != nil
	targetLit := darkness && light.IsLit(cell)

	for i, d := range ray {
		cur := origin.Add(d)
		if darkness && i > 1 {
			prev := origin.Add(ray[i-1])
			if !light.IsLit(cur) && !targetLit && (light.IsDark(prev) || light.IsDark(cur)) {
				return false
			}
		}
		if cur == cell {
			return true
		}
		if i > 0 && obst.At(cur) {
			return false
		}
	}
	return false
}

// Field computes the visibility of every cell within StdRadius of origin.
//
// Precondition: origin is on the map.
// Postcondition: the origin is visible; cells outside the clamped window are not.
func Field(obst *geom.Grid, light LightMap, origin geom.Pos, darkness bool) geom.Grid {
	var out geom.Grid
	out.Set(origin, true)
	window := geom.WindowAround(origin, StdRadius)
	for x := window.Min.X; x < window.Max.X; x++ {
		for y := window.Min.Y; y < window.Max.Y; y++ {
			p := geom.Pos{X: x, Y: y}
			if walk(obst, light, p, origin, darkness) {
				out.Set(p, true)
			}
		}
	}
	return out
}

// PlayerField recomputes the player's view from origin and stores it in the
// map's seen-by-player flags. Every flag is cleared first, so cells outside
// the sight window end up unseen. Darkness always affects the player.
//
// Precondition: origin is on the map.
func PlayerField(obst *geom.Grid, m PlayerSight, origin geom.Pos) geom.Grid {
	field := Field(obst, m, origin, true)
	for x := 0; x < geom.MapW; x++ {
		for y := 0; y < geom.MapH; y++ {
			p := geom.Pos{X: x, Y: y}
			m.SetSeenByPlayer(p, field.At(p))
		}
	}
	return field
}
