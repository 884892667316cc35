package pathfinder

import (
	"math"

	"pcbroute/pkg/grid"
	"pcbroute/pkg/route"
)

// coordEpsilon is the 0.01mm threshold below which two world points are
// treated as the same point when reconstructing a path.
const coordEpsilon = 0.01

type pathEntry struct {
	X, Y  float64
	Layer int
	Via   bool
}

// reconstruct walks parent indices from closedList[goalIdx] back to a
// root, then emits the ordered Segments/Vias of the winning path.
func reconstruct(g *grid.Grid, closedList []AStarNode, goalIdx int, startX, startY, endX, endY, traceWidth float64, viaDrill, viaDiameter float64, net int) route.RouteResult {
	var raw []pathEntry
	for idx := goalIdx; idx != -1; {
		n := closedList[idx]
		wx, wy := g.GridToWorld(n.X, n.Y)
		raw = append(raw, pathEntry{X: wx, Y: wy, Layer: n.Layer, Via: n.ViaFromParent})
		idx = n.Parent
	}
	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}

	currentX, currentY := startX, startY
	currentLayer := raw[0].Layer

	var segments []route.Segment
	var vias []route.Via

	for _, e := range raw {
		if e.Via {
			vias = append(vias, route.Via{
				X: currentX, Y: currentY,
				FromLayer: currentLayer, ToLayer: e.Layer,
				Net:      net,
				Drill:    viaDrill,
				Diameter: viaDiameter,
			})
			currentLayer = e.Layer
			continue
		}
		if math.Abs(e.X-currentX) > coordEpsilon || math.Abs(e.Y-currentY) > coordEpsilon {
			segments = append(segments, route.Segment{
				X1: currentX, Y1: currentY,
				X2: e.X, Y2: e.Y,
				Layer: currentLayer, Width: traceWidth, Net: net,
			})
			currentX, currentY = e.X, e.Y
		}
	}

	if math.Abs(endX-currentX) > coordEpsilon || math.Abs(endY-currentY) > coordEpsilon {
		segments = append(segments, route.Segment{
			X1: currentX, Y1: currentY,
			X2: endX, Y2: endY,
			Layer: currentLayer, Width: traceWidth, Net: net,
		})
	}

	return route.RouteResult{Net: net, Success: true, Segments: mergeCollinear(segments), Vias: vias}
}

// mergeCollinear folds adjacent segments that share a layer, net and width
// and run in the same direction into a single segment, so a straight run of
// grid steps comes out as one Segment rather than one per cell.
func mergeCollinear(segments []route.Segment) []route.Segment {
	if len(segments) < 2 {
		return segments
	}
	merged := make([]route.Segment, 0, len(segments))
	cur := segments[0]
	for _, next := range segments[1:] {
		if cur.Layer == next.Layer && cur.Net == next.Net && cur.Width == next.Width &&
			math.Abs(cur.X2-next.X1) <= coordEpsilon && math.Abs(cur.Y2-next.Y1) <= coordEpsilon &&
			collinear(cur.X1, cur.Y1, cur.X2, cur.Y2, next.X2, next.Y2) {
			cur.X2, cur.Y2 = next.X2, next.Y2
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)
	return merged
}

// collinear reports whether (x2,y2) lies on the line through (x1,y1) and
// (x3,y3), and the two segments it splits point the same way rather than
// doubling back.
func collinear(x1, y1, x2, y2, x3, y3 float64) bool {
	cross := (x2-x1)*(y3-y2) - (y2-y1)*(x3-x2)
	if math.Abs(cross) > coordEpsilon {
		return false
	}
	dot := (x2-x1)*(x3-x2) + (y2-y1)*(y3-y2)
	return dot >= 0
}
