// Package route holds the value types returned across the Grid/Pathfinder
// boundary: the trace segments and vias that make up a completed route.
package route

import "pcbroute/pkg/geom"

// Segment is a straight copper trace on a single layer, in world units.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
	Layer  int
	Width  float64
	Net    int
}

// Via is a layer-changing drill at a single world-space point.
type Via struct {
	X, Y      float64
	FromLayer int
	ToLayer   int
	Net       int
	Drill     float64
	Diameter  float64
}

// RouteResult is the outcome of a single Pathfinder.Route call: either a
// complete, ordered list of segments and vias from start to end, or a
// failure (Success is false and Segments/Vias are empty). There is no
// error value; the search never returns one.
type RouteResult struct {
	Net      int
	Success  bool
	Segments []Segment
	Vias     []Via
}

// Length returns the total planar length of all segments in the route,
// using pkg/geom's orb-backed distance primitive. Vias contribute no
// length (they are a point). Used by tests checking that a detour around
// an obstacle is longer than the straight-line distance between its
// endpoints.
func (r RouteResult) Length() float64 {
	var total float64
	for _, s := range r.Segments {
		total += geom.PlanarDistance(
			geom.WorldPoint{s.X1, s.Y1},
			geom.WorldPoint{s.X2, s.Y2},
		)
	}
	return total
}
