package geom

// Grid is a boolean value over every map cell. It is a value type; copying a
// Grid copies all cells.
type Grid [MapW][MapH]bool

// At returns the value stored for p.
//
// Precondition: InsideMap(p).
func (g *Grid) At(p Pos) bool {
	return g[p.X][p.Y]
}

// Set stores v for p.
//
// Precondition: InsideMap(p).
func (g *Grid) Set(p Pos, v bool) {
	g[p.X][p.Y] = v
}

// Reset fills every cell with v.
//
// Postcondition: At(p) == v for all p on the map.
func (g *Grid) Reset(v bool) {
	for x := range g {
		for y := range g[x] {
			g[x][y] = v
		}
	}
}

// Cells returns every position holding v, in x-major order.
func (g *Grid) Cells(v bool) []Pos {
	var out []Pos
	for x := range g {
		for y := range g[x] {
			if g[x][y] == v {
				out = append(out, Pos{X: x, Y: y})
			}
		}
	}
	return out
}

// Count returns the number of cells holding v.
func (g *Grid) Count(v bool) int {
	n := 0
	for x := range g {
		for y := range g[x] {
			if g[x][y] == v {
				n++
			}
		}
	}
	return n
}
