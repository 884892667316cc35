package grid

// GetCongestion returns the coarse congestion fraction, in [0,1], for the
// block enclosing (x,y,layer). Invalid coordinates return 0.
func (g *Grid) GetCongestion(x, y, layer int) float64 {
	if !g.IsValid(x, y, layer) {
		return 0
	}
	count := g.congestion[g.congestionIndex(x, y, layer)]
	frac := float64(count) / float64(congestionBlock*congestionBlock)
	if frac > 1 {
		return 1
	}
	return frac
}

// UpdateCongestion adds delta to the congestion count of the block
// enclosing (x,y,layer). Invalid coordinates are silently ignored.
func (g *Grid) UpdateCongestion(x, y, layer, delta int) {
	if !g.IsValid(x, y, layer) {
		return
	}
	g.congestion[g.congestionIndex(x, y, layer)] += int32(delta)
}
