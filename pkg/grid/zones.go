package grid

import (
	"math"

	"pcbroute/pkg/geom"
	"pcbroute/pkg/rules"
)

// MarkZone marks cells as copper-fill on layer, owned by net, under
// zoneID. Zone cells are not obstacles: a same-net trace may enter them
// freely. Invalid cells are silently skipped.
func (g *Grid) MarkZone(cells []geom.Cell, layer, net int, zoneID string) {
	for _, p := range cells {
		if !g.IsValid(p.X, p.Y, layer) {
			continue
		}
		c := &g.cells[g.index(p.X, p.Y, layer)]
		c.IsZone = true
		c.Net = net
		g.zones[zoneID] = append(g.zones[zoneID], zoneCell{X: p.X, Y: p.Y, Layer: layer})
	}
}

// ClearZone clears the IsZone flag (and, for cells left otherwise
// unblocked, the net) of every cell previously marked under zoneID.
func (g *Grid) ClearZone(zoneID string) {
	for _, zc := range g.zones[zoneID] {
		if !g.IsValid(zc.X, zc.Y, zc.Layer) {
			continue
		}
		c := &g.cells[g.index(zc.X, zc.Y, zc.Layer)]
		c.IsZone = false
		if !c.Blocked {
			c.Net = 0
		}
	}
	delete(g.zones, zoneID)
}

// ClearZonesOnLayer clears every tracked zone that has at least one cell
// on layer.
func (g *Grid) ClearZonesOnLayer(layer int) {
	for id, cells := range g.zones {
		for _, zc := range cells {
			if zc.Layer == layer {
				g.ClearZone(id)
				break
			}
		}
	}
}

// ZoneCells returns the grid cells tracked under zoneID.
func (g *Grid) ZoneCells(zoneID string) []geom.Cell {
	tracked := g.zones[zoneID]
	out := make([]geom.Cell, len(tracked))
	for i, zc := range tracked {
		out[i] = geom.Cell{X: zc.X, Y: zc.Y}
	}
	return out
}

// Segment2D is a world-space line segment, used to describe one edge of a
// board outline for MarkEdgeKeepout.
type Segment2D struct {
	X1, Y1, X2, Y2 float64
}

// MarkEdgeKeepout walks each board-edge segment and blocks a
// clearance-wide obstacle footprint around it on every given layer (or
// every layer, if layers is empty). It returns the number of cells newly
// blocked. Edge keepout cells are obstacles (net 0): no net, including
// the copper pour of a zone, may reuse them.
func (g *Grid) MarkEdgeKeepout(edges []Segment2D, clearance float64, layers []int) int {
	if len(layers) == 0 {
		layers = make([]int, g.layers)
		for i := range layers {
			layers[i] = i
		}
	}
	radiusCells := int(math.Ceil(clearance / g.resolution))
	if radiusCells < 1 {
		radiusCells = 1
	}

	newlyBlocked := 0
	for _, e := range edges {
		gx1, gy1 := g.WorldToGrid(e.X1, e.Y1)
		gx2, gy2 := g.WorldToGrid(e.X2, e.Y2)
		line := geom.BresenhamLine(gx1, gy1, gx2, gy2)
		for _, layer := range layers {
			for _, p := range line {
				for dy := -radiusCells; dy <= radiusCells; dy++ {
					for dx := -radiusCells; dx <= radiusCells; dx++ {
						x, y := p.X+dx, p.Y+dy
						if !g.IsValid(x, y, layer) {
							continue
						}
						c := &g.cells[g.index(x, y, layer)]
						if !c.Blocked {
							newlyBlocked++
						}
						c.Blocked = true
						c.IsObstacle = true
						c.Net = 0
					}
				}
			}
		}
	}
	return newlyBlocked
}

// ResolutionForTargetCells returns the cell resolution that makes a
// width x height board of numLayers layers occupy approximately
// targetCells grid cells, clamped to [trace_clearance/2, 2*trace_width]
// so the result stays usable for routing at the given design rules.
func ResolutionForTargetCells(width, height float64, numLayers int, dr rules.DesignRules, targetCells int) float64 {
	if targetCells < 1 {
		targetCells = 1
	}
	res := math.Sqrt(width * height * float64(numLayers) / float64(targetCells))
	lo := dr.TraceClearance / 2
	hi := 2 * dr.TraceWidth
	if res < lo {
		res = lo
	}
	if res > hi {
		res = hi
	}
	return res
}

// ExpandedResolution returns a conservative resolution sized to the
// larger of trace width and trace clearance, favoring routing accuracy
// over cell count.
func ExpandedResolution(dr rules.DesignRules) float64 {
	if dr.TraceWidth > dr.TraceClearance {
		return dr.TraceWidth
	}
	return dr.TraceClearance
}
