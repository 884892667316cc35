package pathfinder

import (
	"pcbroute/pkg/geom"
	"pcbroute/pkg/grid"
)

// routeConfig bundles the per-call parameters the cost model needs, kept
// out of Pathfinder itself so that, beyond the precomputed radii, the
// routable-layer list and the last call's statistics, a Pathfinder
// carries nothing from one route call into the next.
type routeConfig struct {
	negotiated        bool
	presentCostFactor float64
	// costMultiplier scales a net's entire step cost; 1.0 leaves the base
	// cost model untouched.
	costMultiplier float64

	// startGX/startGY/endGX/endGY are the start/end grid anchors, used to
	// exempt cells close to a pad from negotiated-penalty accrual on
	// ordinary trace moves.
	startGX, startGY int
	endGX, endGY     int
}

// padApproachRadius is the Chebyshev radius, in cells, around a route's
// start/end grid position within which negotiated-mode cost does not
// accrue a sharing penalty on a trace move. Adjacent same-net pads on a
// fine-pitch footprint can have overlapping clearance zones that would
// otherwise look like congestion right at the pad itself.
const padApproachRadius = 6

func (rc routeConfig) nearAnchor(x, y int) bool {
	return geom.Chebyshev(x-rc.startGX, y-rc.startGY) <= padApproachRadius ||
		geom.Chebyshev(x-rc.endGX, y-rc.endGY) <= padApproachRadius
}

// stepCost computes the cost of moving onto (x,y,layer) given the move's
// geometric multiplier (1.0 orthogonal, sqrt(2) diagonal), the parent
// node's last direction (pdx,pdy), and the new direction (dx,dy): a
// straight-line term scaled by the move multiplier, a turn penalty when
// the direction changes, congestion and negotiated-sharing penalties at
// the target cell, the whole sum finally scaled by the net's cost
// multiplier.
func (p *Pathfinder) stepCost(g *grid.Grid, x, y, layer int, pdx, pdy, dx, dy int, moveMult float64, rc routeConfig) float64 {
	cost := moveMult * p.rules.CostStraight

	if (pdx != 0 || pdy != 0) && (dx != pdx || dy != pdy) {
		cost += p.rules.CostTurn
	}

	cost += p.congestionPenalty(g, x, y, layer)
	cost += p.negotiatedPenalty(g, x, y, layer, rc, true)

	return rc.costMultiplier * cost
}

// viaCost computes the cost of a layer-changing move onto (x,y,toLayer):
// the via cost plus the congestion/negotiated terms at the target, no
// turn penalty, scaled by the net's cost multiplier. Unlike an ordinary
// trace step, a via accrues its negotiated penalty even near a pad: the
// pad-approach exemption only ever applied to 2-D neighbor moves.
func (p *Pathfinder) viaCost(g *grid.Grid, x, y, toLayer int, rc routeConfig) float64 {
	cost := p.rules.CostVia
	cost += p.congestionPenalty(g, x, y, toLayer)
	cost += p.negotiatedPenalty(g, x, y, toLayer, rc, false)
	return rc.costMultiplier * cost
}

func (p *Pathfinder) congestionPenalty(g *grid.Grid, x, y, layer int) float64 {
	c := g.GetCongestion(x, y, layer)
	if c <= p.rules.CongestionThreshold {
		return 0
	}
	return p.rules.CostCongestion * (1 + 2*(c-p.rules.CongestionThreshold))
}

// negotiatedPenalty returns the negotiated-sharing cost at (x,y,layer).
// exemptNearAnchor controls whether a cell close to the route's start or
// end is exempt from the penalty; trace moves get the exemption, via
// moves accrue the penalty unconditionally.
func (p *Pathfinder) negotiatedPenalty(g *grid.Grid, x, y, layer int, rc routeConfig, exemptNearAnchor bool) float64 {
	if !rc.negotiated {
		return 0
	}
	if exemptNearAnchor && rc.nearAnchor(x, y) {
		return 0
	}
	return g.GetNegotiatedCost(x, y, layer, rc.presentCostFactor)
}

// heuristic estimates the remaining cost from (x,y,layer) to the goal
// cell on targetLayer.
func (p *Pathfinder) heuristic(x, y, layer, goalX, goalY, targetLayer int) float64 {
	dx, dy := goalX-x, goalY-y

	var dist float64
	if p.diagonal {
		dist = geom.Octile(dx, dy)
	} else {
		dist = geom.Manhattan(dx, dy)
	}

	h := p.rules.CostStraight * dist
	if layer != targetLayer {
		h += p.rules.CostVia
	}
	return h
}
