package grid

import "pcbroute/pkg/geom"

// MarkBlocked sets a single cell blocked, owned by net, with the given
// obstacle flag. Invalid coordinates are silently ignored.
func (g *Grid) MarkBlocked(x, y, layer, net int, isObstacle bool) {
	if !g.IsValid(x, y, layer) {
		return
	}
	c := &g.cells[g.index(x, y, layer)]
	c.Blocked = true
	c.Net = net
	c.IsObstacle = isObstacle
}

// MarkRectBlocked applies MarkBlocked to every cell in the axis-aligned
// rectangle [x1,x2] x [y1,y2] on layer, after clamping it into range.
func (g *Grid) MarkRectBlocked(x1, y1, x2, y2, layer, net int, isObstacle bool) {
	x1, x2 = clampPair(x1, x2, g.cols)
	y1, y2 = clampPair(y1, y2, g.rows)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			g.MarkBlocked(x, y, layer, net, isObstacle)
		}
	}
}

func clampPair(a, b, dim int) (int, int) {
	if a > b {
		a, b = b, a
	}
	if a < 0 {
		a = 0
	}
	if b >= dim {
		b = dim - 1
	}
	if a > b {
		// Entire range outside the grid: produce an empty, already-clamped
		// range rather than iterating.
		return 0, -1
	}
	return a, b
}

// markFootprint marks, on layer, every cell within a Chebyshev square of
// the given radius around each point of line, owned by net. A cell's
// congestion bucket is incremented exactly once, the moment that cell
// transitions from free to blocked.
func (g *Grid) markFootprint(line []geom.Cell, layer, net, radiusCells int) {
	for _, p := range line {
		for dy := -radiusCells; dy <= radiusCells; dy++ {
			for dx := -radiusCells; dx <= radiusCells; dx++ {
				x, y := p.X+dx, p.Y+dy
				if !g.IsValid(x, y, layer) {
					continue
				}
				c := &g.cells[g.index(x, y, layer)]
				if !c.Blocked {
					c.Net = net
					g.UpdateCongestion(x, y, layer, 1)
				}
				c.Blocked = true
			}
		}
	}
}

// unmarkFootprint reverses markFootprint's blocking for net, per cell:
// pad-blocked cells restore their original net and stay blocked;
// same-net cells clear; other nets' cells are untouched. Congestion
// counters are not decremented.
func (g *Grid) unmarkFootprint(line []geom.Cell, layer, net, radiusCells int) {
	for _, p := range line {
		for dy := -radiusCells; dy <= radiusCells; dy++ {
			for dx := -radiusCells; dx <= radiusCells; dx++ {
				x, y := p.X+dx, p.Y+dy
				if !g.IsValid(x, y, layer) {
					continue
				}
				c := &g.cells[g.index(x, y, layer)]
				switch {
				case c.PadBlocked:
					c.Net = c.OriginalNet
				case c.Net == net:
					c.Blocked = false
					c.Net = 0
				}
			}
		}
	}
}

// MarkSegment walks the Bresenham line from (x1,y1) to (x2,y2) (world
// coordinates) and marks a (2*clearanceCells+1)^2 square footprint around
// each line cell on layer, owned by net.
func (g *Grid) MarkSegment(x1, y1, x2, y2 float64, layer, net, clearanceCells int) {
	gx1, gy1 := g.WorldToGrid(x1, y1)
	gx2, gy2 := g.WorldToGrid(x2, y2)
	line := geom.BresenhamLine(gx1, gy1, gx2, gy2)
	g.markFootprint(line, layer, net, clearanceCells)
}

// UnmarkSegment reverses MarkSegment over the same footprint.
func (g *Grid) UnmarkSegment(x1, y1, x2, y2 float64, layer, net, clearanceCells int) {
	gx1, gy1 := g.WorldToGrid(x1, y1)
	gx2, gy2 := g.WorldToGrid(x2, y2)
	line := geom.BresenhamLine(gx1, gy1, gx2, gy2)
	g.unmarkFootprint(line, layer, net, clearanceCells)
}

// MarkVia marks a (2*radiusCells+1)^2 square footprint centered on (x,y)
// (world coordinates) on every layer, owned by net.
func (g *Grid) MarkVia(x, y float64, net, radiusCells int) {
	gx, gy := g.WorldToGrid(x, y)
	line := []geom.Cell{{X: gx, Y: gy}}
	for layer := 0; layer < g.layers; layer++ {
		g.markFootprint(line, layer, net, radiusCells)
	}
}

// UnmarkVia reverses MarkVia over the same footprint.
func (g *Grid) UnmarkVia(x, y float64, net, radiusCells int) {
	gx, gy := g.WorldToGrid(x, y)
	line := []geom.Cell{{X: gx, Y: gy}}
	for layer := 0; layer < g.layers; layer++ {
		g.unmarkFootprint(line, layer, net, radiusCells)
	}
}
