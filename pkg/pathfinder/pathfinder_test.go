package pathfinder

import (
	"math"
	"testing"

	"pcbroute/pkg/grid"
	"pcbroute/pkg/rules"
)

func scenarioRules() rules.DesignRules {
	return rules.DesignRules{
		TraceWidth:     0.1,
		TraceClearance: 0.1,
		ViaDrill:       0.1,
		ViaDiameter:    0.2,
		ViaClearance:   0.0,
		GridResolution: 0.1,

		CostStraight:        1.0,
		CostTurn:            1.5,
		CostVia:             10.0,
		CostCongestion:      5.0,
		CongestionThreshold: 0.7,
	}
}

// Scenario 1: straight trace across an empty 20x20 single-layer grid.
func TestRouteStraightTraceIsOneSegment(t *testing.T) {
	g := grid.New(20, 20, 1, 0.1, 0, 0)
	p := New(g, scenarioRules(), true)

	result := p.Route(RouteRequest{
		StartX: 0.1, StartY: 1.0, StartLayers: []int{0},
		EndX: 1.9, EndY: 1.0, EndLayers: []int{0},
		Net: 7,
	})

	if !result.Success {
		t.Fatal("expected success on an empty grid")
	}
	if len(result.Vias) != 0 {
		t.Errorf("expected no vias, got %d", len(result.Vias))
	}
	if len(result.Segments) != 1 {
		t.Fatalf("expected exactly one merged Segment, got %d: %+v", len(result.Segments), result.Segments)
	}
	seg := result.Segments[0]
	if math.Abs(seg.X1-0.1) > 0.01 || math.Abs(seg.Y1-1.0) > 0.01 {
		t.Errorf("segment start = (%v,%v), want (0.1,1.0)", seg.X1, seg.Y1)
	}
	if math.Abs(seg.X2-1.9) > 0.01 || math.Abs(seg.Y2-1.0) > 0.01 {
		t.Errorf("segment end = (%v,%v), want (1.9,1.0)", seg.X2, seg.Y2)
	}
	if seg.Layer != 0 || seg.Net != 7 || seg.Width != scenarioRules().TraceWidth {
		t.Errorf("segment metadata = %+v, want layer=0 net=7 width=%v", seg, scenarioRules().TraceWidth)
	}
}

// Scenario 2: a wall forces a detour; the route must still succeed and
// come out longer than the straight-line distance.
func TestRouteObstacleForcesLongerDetour(t *testing.T) {
	g := grid.New(20, 20, 1, 1.0, 0, 0)
	// Wall at x=9 blocking rows 5..14; rows 0-4 and 15-19 stay open.
	g.MarkRectBlocked(9, 5, 9, 14, 0, 0, true)

	p := New(g, rules.DesignRules{
		TraceWidth: 0.1, TraceClearance: 0, GridResolution: 1.0,
		ViaDiameter: 0.1, ViaClearance: 0, ViaDrill: 0.1,
		CostStraight: 1.0, CostTurn: 1.5, CostVia: 10.0,
		CostCongestion: 5.0, CongestionThreshold: 0.7,
	}, true)

	result := p.Route(RouteRequest{
		StartX: 2, StartY: 10, StartLayers: []int{0},
		EndX: 17, EndY: 10, EndLayers: []int{0},
		Net: 1,
	})

	if !result.Success {
		t.Fatal("expected a route around the wall to succeed")
	}
	straight := math.Hypot(17-2, 0)
	if result.Length() <= straight {
		t.Errorf("detoured route length %v should exceed straight-line distance %v", result.Length(), straight)
	}
}

// Scenario 3: layer 0 is blocked everywhere except small pads at the
// start and end; the route must use a via down to layer 1 and back.
func TestRouteRequiresViaThroughBlockedLayer(t *testing.T) {
	g := grid.New(20, 20, 2, 0.1, 0, 0)
	g.MarkRectBlocked(0, 0, 19, 19, 0, 0, true)

	clearPatch := func(cx, cy int) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c := g.At(cx+dx, cy+dy, 0)
				c.Blocked = false
				c.IsObstacle = false
			}
		}
	}
	clearPatch(2, 10)
	clearPatch(17, 10)

	dr := rules.DesignRules{
		TraceWidth: 0.1, TraceClearance: 0, GridResolution: 0.1,
		ViaDiameter: 0.15, ViaClearance: 0, ViaDrill: 0.08,
		CostStraight: 1.0, CostTurn: 1.5, CostVia: 10.0,
		CostCongestion: 5.0, CongestionThreshold: 0.7,
	}
	p := New(g, dr, true)

	result := p.Route(RouteRequest{
		StartX: 0.2, StartY: 1.0, StartLayers: []int{0},
		EndX: 1.7, EndY: 1.0, EndLayers: []int{0},
		Net: 3,
	})

	if !result.Success {
		t.Fatal("expected via-assisted route to succeed")
	}
	if len(result.Vias) != 2 {
		t.Fatalf("expected 2 vias, got %d: %+v", len(result.Vias), result.Vias)
	}
	for _, v := range result.Vias {
		if v.Drill != dr.ViaDrill || v.Diameter != dr.ViaDiameter {
			t.Errorf("via geometry = %+v, want drill=%v diameter=%v", v, dr.ViaDrill, dr.ViaDiameter)
		}
	}
	if result.Vias[0].FromLayer != 0 || result.Vias[0].ToLayer != 1 {
		t.Errorf("first via = %+v, want 0->1", result.Vias[0])
	}
	if result.Vias[1].FromLayer != 1 || result.Vias[1].ToLayer != 0 {
		t.Errorf("second via = %+v, want 1->0", result.Vias[1])
	}
}

// Scenario 4: the start cell is fully surrounded by obstacles, so no
// route exists.
func TestRouteNoPathWhenStartIsSurrounded(t *testing.T) {
	g := grid.New(5, 5, 1, 1.0, 0, 0)
	g.MarkRectBlocked(0, 0, 4, 4, 0, 0, true)
	start := g.At(2, 2, 0)
	start.Blocked = false
	start.IsObstacle = false

	p := New(g, rules.DesignRules{
		TraceWidth: 0.1, TraceClearance: 0, GridResolution: 1.0,
		ViaDiameter: 0.1, ViaClearance: 0, ViaDrill: 0.1,
		CostStraight: 1.0, CostTurn: 1.5, CostVia: 10.0,
		CostCongestion: 5.0, CongestionThreshold: 0.7,
	}, true)

	result := p.Route(RouteRequest{
		StartX: 2, StartY: 2, StartLayers: []int{0},
		EndX: 4, EndY: 4, EndLayers: []int{0},
		Net: 99,
	})

	if result.Success {
		t.Fatal("expected no path from an isolated start cell")
	}
	if len(result.Segments) != 0 || len(result.Vias) != 0 {
		t.Errorf("failed route should carry no geometry, got %+v", result)
	}
}

// Scenario 5: negotiated rerouting. Rows 0-18 and 22-39 are blocked,
// leaving a three-row corridor; with a trace footprint of radius 1 only
// its middle row 20 is routable, so the winning path is forced along it.
// Adding history cost to an already-congested stretch of that row can
// only raise the winning path's cost, never lower it.
func TestRouteNegotiatedHistoryCostNeverDecreasesPathCost(t *testing.T) {
	g := grid.New(40, 40, 1, 1.0, 0, 0)
	g.MarkRectBlocked(0, 0, 39, 18, 0, 0, true)
	g.MarkRectBlocked(0, 22, 39, 39, 0, 0, true)

	for x := 10; x <= 29; x++ {
		g.IncrementUsage(x, 20, 0)
		g.IncrementUsage(x, 20, 0)
	}

	dr := rules.DesignRules{
		TraceWidth: 0.1, TraceClearance: 0, GridResolution: 1.0,
		ViaDiameter: 0.1, ViaClearance: 0, ViaDrill: 0.1,
		CostStraight: 1.0, CostTurn: 1.5, CostVia: 10.0,
		CostCongestion: 5.0, CongestionThreshold: 0.7,
	}
	p := New(g, dr, true)

	req := RouteRequest{
		StartX: 2, StartY: 20, StartLayers: []int{0},
		EndX: 37, EndY: 20, EndLayers: []int{0},
		Net: 5, Negotiated: true, PresentCostFactor: 1.0,
	}

	first := p.Route(req)
	if !first.Success {
		t.Fatal("expected the forced corridor to be routable")
	}
	cost1 := p.LastRouteCost()

	g.UpdateHistoryCosts(1.0)

	second := p.Route(req)
	if !second.Success {
		t.Fatal("expected the forced corridor to remain routable")
	}
	cost2 := p.LastRouteCost()

	if cost2 < cost1 {
		t.Errorf("cost after UpdateHistoryCosts (%v) dropped below prior cost (%v)", cost2, cost1)
	}
}

// Scenario 6 (corner-cutting guard): a diagonal move is rejected when
// either of its two orthogonal cells is blocked, even though the
// diagonal cell itself is free.
func TestDiagonalCornerCuttingGuard(t *testing.T) {
	g := grid.New(5, 5, 1, 1.0, 0, 0)
	g.MarkBlocked(1, 0, 0, 0, true)
	g.MarkBlocked(0, 1, 0, 0, true)

	p := New(g, scenarioRules(), true)

	if !p.isDiagonalBlocked(0, 0, 1, 1, 0, 42, false) {
		t.Error("diagonal move into (1,1) should be blocked when (1,0) and (0,1) are both obstacles")
	}

	g2 := grid.New(5, 5, 1, 1.0, 0, 0)
	p2 := New(g2, scenarioRules(), true)
	if p2.isDiagonalBlocked(0, 0, 1, 1, 0, 42, false) {
		t.Error("diagonal move should be unblocked when both orthogonal cells are free")
	}
}
