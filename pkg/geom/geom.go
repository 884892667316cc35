// Package geom holds small, dependency-light geometry helpers shared by
// pkg/grid (clearance marking) and pkg/pathfinder (the A* heuristic).
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// BresenhamLine returns the integer grid cells on the line from (x0,y0) to
// (x1,y1), inclusive of both endpoints, using Bresenham's algorithm. This
// is the cell walk used to mark a trace segment or a board-edge keepout
// segment one cell at a time.
func BresenhamLine(x0, y0, x1, y1 int) []Cell {
	cells := make([]Cell, 0, chebyshevSteps(x0, y0, x1, y1)+1)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		cells = append(cells, Cell{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return cells
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

func chebyshevSteps(x0, y0, x1, y1 int) int {
	dx, dy := abs(x1-x0), abs(y1-y0)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Octile returns the octile distance between two grid cells: the cost of
// the shortest path using 8-directional moves where a diagonal step costs
// sqrt(2) times an orthogonal step.
func Octile(dx, dy int) float64 {
	ax, ay := abs(dx), abs(dy)
	lo, hi := ax, ay
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(hi-lo) + math.Sqrt2*float64(lo)
}

// Manhattan returns the L1 distance between two grid cells.
func Manhattan(dx, dy int) float64 {
	return float64(abs(dx) + abs(dy))
}

// Chebyshev returns the L-infinity (chessboard) distance between two
// grid cells: the number of king-moves needed to go from one to the
// other.
func Chebyshev(dx, dy int) int {
	ax, ay := abs(dx), abs(dy)
	if ax > ay {
		return ax
	}
	return ay
}

// WorldPoint is a planar (x, y) point in world units, backed by orb.Point
// so callers can feed it to the wider orb ecosystem (rendering, further
// geometric analysis) without a conversion step.
type WorldPoint = orb.Point

// PlanarDistance returns the Euclidean distance between two world points,
// via orb/planar so the same distance primitive used for any other
// planar geometry in a caller's pipeline is used here too.
func PlanarDistance(a, b WorldPoint) float64 {
	return planar.Distance(a, b)
}
