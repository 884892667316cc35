package grid

// GridCell is the per-coordinate record stored in a Grid's flat buffer.
//
// Invariants: IsObstacle implies Blocked; PadBlocked implies Blocked;
// UsageCount >= 0; HistoryCost >= 0. When PadBlocked is true, unmarking
// must restore Net = OriginalNet rather than clear it.
type GridCell struct {
	Blocked     bool
	Net         int
	IsObstacle  bool
	PadBlocked  bool
	OriginalNet int
	IsZone      bool
	UsageCount  int
	HistoryCost float64
}
