package grid

import "math"

// ResetUsage clears every cell's usage count to 0, ahead of a fresh
// negotiated-routing iteration.
func (g *Grid) ResetUsage() {
	for i := range g.cells {
		g.cells[i].UsageCount = 0
	}
}

// IncrementUsage adds 1 to the usage count of a valid cell. Invalid
// coordinates are silently ignored.
func (g *Grid) IncrementUsage(x, y, layer int) {
	if !g.IsValid(x, y, layer) {
		return
	}
	g.cells[g.index(x, y, layer)].UsageCount++
}

// GetNegotiatedCost returns presentFactor*usage_count + history_cost for
// a valid, non-obstacle cell; +Inf for an invalid or obstacle cell.
func (g *Grid) GetNegotiatedCost(x, y, layer int, presentFactor float64) float64 {
	if !g.IsValid(x, y, layer) {
		return math.Inf(1)
	}
	c := &g.cells[g.index(x, y, layer)]
	if c.IsObstacle {
		return math.Inf(1)
	}
	return presentFactor*float64(c.UsageCount) + c.HistoryCost
}

// UpdateHistoryCosts adds increment*(usage_count-1) to history_cost for
// every cell whose usage_count exceeds 1 (i.e. every overused cell).
func (g *Grid) UpdateHistoryCosts(increment float64) {
	for i := range g.cells {
		if g.cells[i].UsageCount > 1 {
			g.cells[i].HistoryCost += increment * float64(g.cells[i].UsageCount-1)
		}
	}
}

// GetTotalOverflow returns sum(max(0, usage_count-1)) across all cells,
// used by an external scheduler to detect negotiated-routing convergence.
func (g *Grid) GetTotalOverflow() int {
	total := 0
	for i := range g.cells {
		if g.cells[i].UsageCount > 1 {
			total += g.cells[i].UsageCount - 1
		}
	}
	return total
}
