// Package pathfinder implements the weighted A* search over a
// pkg/grid.Grid: neighbor generation, blocking predicates, the cost
// model, and path reconstruction into a pkg/route.RouteResult.
package pathfinder

import (
	"math"

	"pcbroute/pkg/grid"
	"pcbroute/pkg/route"
	"pcbroute/pkg/rules"
)

type neighborOffset struct {
	Dx, Dy int
	Mult   float64
}

// Pathfinder runs weighted A* over a Grid. It has no long-lived state
// beyond the precomputed footprint radii and routable-layer list; each
// Route call is a self-contained episode.
type Pathfinder struct {
	grid     *grid.Grid
	rules    rules.DesignRules
	diagonal bool

	traceRadius int
	viaRadius   int

	routableLayers []int
	neighbors      []neighborOffset

	iterations    int
	nodesExplored int
	lastRouteCost float64
}

// New creates a Pathfinder bound to grid, using rules for cost/geometry
// and enabling 45-degree diagonal moves when diagonal is true.
func New(g *grid.Grid, dr rules.DesignRules, diagonal bool) *Pathfinder {
	p := &Pathfinder{
		grid:     g,
		rules:    dr,
		diagonal: diagonal,
	}

	p.traceRadius = footprintRadius(dr.TraceWidth/2+dr.TraceClearance, dr.GridResolution)
	p.viaRadius = footprintRadius(dr.ViaDiameter/2+dr.ViaClearance, dr.GridResolution)

	p.neighbors = []neighborOffset{
		{Dx: 1, Dy: 0, Mult: 1.0},
		{Dx: -1, Dy: 0, Mult: 1.0},
		{Dx: 0, Dy: 1, Mult: 1.0},
		{Dx: 0, Dy: -1, Mult: 1.0},
	}
	if diagonal {
		const sqrt2 = math.Sqrt2
		p.neighbors = append(p.neighbors,
			neighborOffset{Dx: 1, Dy: 1, Mult: sqrt2},
			neighborOffset{Dx: 1, Dy: -1, Mult: sqrt2},
			neighborOffset{Dx: -1, Dy: 1, Mult: sqrt2},
			neighborOffset{Dx: -1, Dy: -1, Mult: sqrt2},
		)
	}

	p.routableLayers = make([]int, g.Layers())
	for i := range p.routableLayers {
		p.routableLayers[i] = i
	}

	return p
}

func footprintRadius(halfWidthPlusClearance, resolution float64) int {
	r := int(math.Ceil(halfWidthPlusClearance / resolution))
	if r < 1 {
		return 1
	}
	return r
}

// SetRoutableLayers overrides the layers a via may move the search onto,
// e.g. to skip a plane/ground layer. Trace steps stay on the layer they
// are taken from, and start layers are not checked against this list.
func (p *Pathfinder) SetRoutableLayers(layers []int) {
	p.routableLayers = append([]int(nil), layers...)
}

// Iterations returns the number of nodes popped from the open set during
// the most recent Route call.
func (p *Pathfinder) Iterations() int { return p.iterations }

// NodesExplored returns the closed-set size of the most recent Route
// call.
func (p *Pathfinder) NodesExplored() int { return p.nodesExplored }

// LastRouteCost returns the winning path's g-score from the most recent
// Route call, or +Inf if it failed.
func (p *Pathfinder) LastRouteCost() float64 { return p.lastRouteCost }

// RouteRequest bundles one route call's inputs.
type RouteRequest struct {
	StartX, StartY float64
	StartLayers    []int
	EndX, EndY     float64
	EndLayers      []int

	Net int

	Negotiated        bool
	PresentCostFactor float64

	// Weight is the A* heuristic weight; 1 is admissible, >1 trades
	// optimality for speed.
	Weight float64

	// CostMultiplier scales a net's entire step cost, for nets that
	// should prefer shorter or straighter paths than the default. Zero
	// is treated as 1.0, so a caller who never sets it gets the
	// unscaled cost model.
	CostMultiplier float64
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Route runs weighted A* from req.Start{X,Y} on any of req.StartLayers to
// req.End{X,Y} on any of req.EndLayers, bounded by cols*rows*4
// iterations.
func (p *Pathfinder) Route(req RouteRequest) route.RouteResult {
	p.iterations = 0
	p.nodesExplored = 0
	p.lastRouteCost = math.Inf(1)

	startGX, startGY := p.grid.WorldToGrid(req.StartX, req.StartY)
	endGX, endGY := p.grid.WorldToGrid(req.EndX, req.EndY)

	startLayers := req.StartLayers
	endLayers := req.EndLayers
	if len(startLayers) == 0 || len(endLayers) == 0 {
		return route.RouteResult{Net: req.Net, Success: false}
	}
	targetLayer := endLayers[0]

	costMultiplier := req.CostMultiplier
	if costMultiplier == 0 {
		costMultiplier = 1.0
	}
	rc := routeConfig{
		negotiated:        req.Negotiated,
		presentCostFactor: req.PresentCostFactor,
		costMultiplier:    costMultiplier,
		startGX:           startGX, startGY: startGY,
		endGX: endGX, endGY: endGY,
	}

	weight := req.Weight
	if weight == 0 {
		weight = 1
	}

	open := &openHeap{}
	gScores := make(map[cellKey]float64)
	closedSet := make(map[cellKey]int)
	var closedList []AStarNode

	for _, layer := range startLayers {
		h := p.heuristic(startGX, startGY, layer, endGX, endGY, targetLayer)
		node := AStarNode{
			F: weight * h, G: 0,
			X: startGX, Y: startGY, Layer: layer,
			Parent: -1,
		}
		key := cellKey{startGX, startGY, layer}
		gScores[key] = 0
		open.Push(node)
	}

	maxIterations := p.grid.Cols() * p.grid.Rows() * 4

	for open.Len() > 0 && p.iterations < maxIterations {
		p.iterations++
		current := open.Pop()
		key := cellKey{current.X, current.Y, current.Layer}
		if _, seen := closedSet[key]; seen {
			continue
		}

		closedIdx := len(closedList)
		closedSet[key] = closedIdx
		closedList = append(closedList, current)
		p.nodesExplored = len(closedList)

		if current.X == endGX && current.Y == endGY && containsInt(endLayers, current.Layer) {
			p.lastRouteCost = current.G
			return reconstruct(p.grid, closedList, closedIdx, req.StartX, req.StartY, req.EndX, req.EndY, p.rules.TraceWidth, p.rules.ViaDrill, p.rules.ViaDiameter, req.Net)
		}

		p.expandTraceNeighbors(current, closedIdx, startGX, startGY, startLayers, endGX, endGY, endLayers, req.Net, rc, weight, endGX, endGY, targetLayer, open, gScores)
		p.expandVias(current, closedIdx, req.Net, rc, weight, endGX, endGY, targetLayer, open, gScores)
	}

	return route.RouteResult{Net: req.Net, Success: false}
}

func (p *Pathfinder) expandTraceNeighbors(
	current AStarNode, closedIdx int,
	startGX, startGY int, startLayers []int,
	endGX, endGY int, endLayers []int,
	net int, rc routeConfig, weight float64,
	goalX, goalY, targetLayer int,
	open *openHeap, gScores map[cellKey]float64,
) {
	x, y, layer := current.X, current.Y, current.Layer

	for _, nb := range p.neighbors {
		nx, ny := x+nb.Dx, y+nb.Dy
		if !p.grid.IsValid(nx, ny, layer) {
			continue
		}

		isDiagonal := nb.Dx != 0 && nb.Dy != 0
		if isDiagonal && p.isDiagonalBlocked(x, y, nb.Dx, nb.Dy, layer, net, rc.negotiated) {
			continue
		}

		isStartException := nx == startGX && ny == startGY && containsInt(startLayers, layer)
		isEndException := nx == endGX && ny == endGY && containsInt(endLayers, layer)
		blocked := true
		if (isStartException || isEndException) && p.grid.At(nx, ny, layer).Net == net {
			blocked = false
		} else {
			blocked = p.isTraceBlocked(nx, ny, layer, net, rc.negotiated)
		}
		if blocked {
			continue
		}

		newG := current.G + p.stepCost(p.grid, nx, ny, layer, current.Dx, current.Dy, nb.Dx, nb.Dy, nb.Mult, rc)
		key := cellKey{nx, ny, layer}
		if best, ok := gScores[key]; ok && newG >= best {
			continue
		}
		gScores[key] = newG

		h := p.heuristic(nx, ny, layer, goalX, goalY, targetLayer)
		open.Push(AStarNode{
			F: newG + weight*h, G: newG,
			X: nx, Y: ny, Layer: layer,
			Parent: closedIdx,
			Dx:     nb.Dx, Dy: nb.Dy,
		})
	}
}

func (p *Pathfinder) expandVias(
	current AStarNode, closedIdx int,
	net int, rc routeConfig, weight float64,
	goalX, goalY, targetLayer int,
	open *openHeap, gScores map[cellKey]float64,
) {
	x, y, layer := current.X, current.Y, current.Layer

	if p.isViaBlocked(x, y, net, rc.negotiated) {
		return
	}

	for _, toLayer := range p.routableLayers {
		if toLayer == layer {
			continue
		}

		newG := current.G + p.viaCost(p.grid, x, y, toLayer, rc)
		key := cellKey{x, y, toLayer}
		if best, ok := gScores[key]; ok && newG >= best {
			continue
		}
		gScores[key] = newG

		h := p.heuristic(x, y, toLayer, goalX, goalY, targetLayer)
		open.Push(AStarNode{
			F: newG + weight*h, G: newG,
			X: x, Y: y, Layer: toLayer,
			Parent:        closedIdx,
			ViaFromParent: true,
		})
	}
}
