// Package rules holds the tunable design-rule parameters consulted by
// pkg/grid and pkg/pathfinder: trace/via geometry and the weights feeding
// the pathfinder's cost model.
package rules

// DesignRules bundles the geometry and cost-model parameters that govern
// a routing job. All distances are in the same world unit as the Grid's
// resolution and origin (millimeters in board-design practice).
type DesignRules struct {
	// Geometry.
	TraceWidth     float64
	TraceClearance float64
	ViaDrill       float64
	ViaDiameter    float64
	ViaClearance   float64
	GridResolution float64

	// Cost model.
	CostStraight         float64
	CostTurn             float64
	CostVia              float64
	CostCongestion       float64
	CongestionThreshold  float64
}

// DefaultDesignRules returns a DesignRules populated with values typical
// of a 2-layer, 0.25mm-pitch hobbyist board: 0.25mm traces, 0.2mm
// clearance, 0.3mm via drill with a 0.6mm pad, and a cost model that
// mildly discourages turns and vias relative to straight travel.
func DefaultDesignRules() DesignRules {
	return DesignRules{
		TraceWidth:     0.25,
		TraceClearance: 0.2,
		ViaDrill:       0.3,
		ViaDiameter:    0.6,
		ViaClearance:   0.2,
		GridResolution: 0.1,

		CostStraight:        1.0,
		CostTurn:            1.5,
		CostVia:             10.0,
		CostCongestion:      5.0,
		CongestionThreshold: 0.7,
	}
}
