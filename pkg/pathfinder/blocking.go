package pathfinder

import "pcbroute/pkg/grid"

// singleCellBlocked applies the shared blocking policy to one grid cell:
// out-of-bounds blocks; a free cell never blocks; a blocked cell blocks
// if it's a static obstacle, or (without sharing) owned by a different
// net, or (with sharing) owned by a different net with no negotiated
// claim on it yet.
func singleCellBlocked(g *grid.Grid, x, y, layer, net int, allowSharing bool) bool {
	if !g.IsValid(x, y, layer) {
		return true
	}
	c := g.At(x, y, layer)
	if !c.Blocked {
		return false
	}
	if c.IsObstacle {
		return true
	}
	if !allowSharing {
		return c.Net != net
	}
	return c.Net != net && c.UsageCount == 0
}

// isTraceBlocked examines every cell in the trace footprint of radius
// traceRadius centered on (x,y,layer) and reports whether any of them
// blocks a trace of net there, under the given sharing policy.
func (p *Pathfinder) isTraceBlocked(x, y, layer, net int, allowSharing bool) bool {
	return p.footprintBlocked(x, y, layer, net, allowSharing, p.traceRadius)
}

func (p *Pathfinder) footprintBlocked(x, y, layer, net int, allowSharing bool, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if singleCellBlocked(p.grid, x+dx, y+dy, layer, net, allowSharing) {
				return true
			}
		}
	}
	return false
}

// isDiagonalBlocked is the corner-cutting guard: a diagonal step from
// (x,y) by (dx,dy) is blocked if either of the two orthogonal cells
// (x,y+dy) or (x+dx,y) is blocked under the shared single-cell policy.
func (p *Pathfinder) isDiagonalBlocked(x, y, dx, dy, layer, net int, allowSharing bool) bool {
	return singleCellBlocked(p.grid, x, y+dy, layer, net, allowSharing) ||
		singleCellBlocked(p.grid, x+dx, y, layer, net, allowSharing)
}

// isViaBlocked applies the trace-footprint policy, with the via's
// (larger) radius, on every layer of the grid.
func (p *Pathfinder) isViaBlocked(x, y, net int, allowSharing bool) bool {
	for layer := 0; layer < p.grid.Layers(); layer++ {
		if p.footprintBlocked(x, y, layer, net, allowSharing, p.viaRadius) {
			return true
		}
	}
	return false
}
