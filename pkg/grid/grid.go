// Package grid implements the 3-D PCB routing grid: dense occupancy
// storage, obstacle/trace/via marking with clearance inflation, rip-up,
// coarse congestion tracking, and per-cell negotiated-routing bookkeeping.
//
// A Grid owns its cell storage exclusively. A Pathfinder (pkg/pathfinder)
// reads it through the query methods below during a route call and never
// mutates it; all mutation is caller-driven.
package grid

import (
	"math"
	"unsafe"

	"pcbroute/pkg/geom"
)

// congestionBlock is the side length, in cells, of one coarse congestion
// block.
const congestionBlock = 8

// Grid is a dense cols x rows x layers occupancy buffer addressed by
// layer-major index layer*rows*cols + y*cols + x.
type Grid struct {
	cols, rows, layers int
	resolution         float64
	originX, originY   float64

	cells []GridCell

	congestion         []int32
	congCols, congRows int

	zones map[string][]zoneCell

	discard GridCell // sentinel written/read for out-of-range At calls
}

type zoneCell struct {
	X, Y, Layer int
}

// New creates a Grid of the given dimensions. Dimensions and resolution
// are fixed for the Grid's lifetime.
func New(cols, rows, layers int, resolution, originX, originY float64) *Grid {
	congCols := cols / congestionBlock
	if congCols < 1 {
		congCols = 1
	}
	congRows := rows / congestionBlock
	if congRows < 1 {
		congRows = 1
	}

	return &Grid{
		cols:       cols,
		rows:       rows,
		layers:     layers,
		resolution: resolution,
		originX:    originX,
		originY:    originY,
		cells:      make([]GridCell, cols*rows*layers),
		congestion: make([]int32, layers*congRows*congCols),
		congCols:   congCols,
		congRows:   congRows,
		zones:      make(map[string][]zoneCell),
	}
}

func (g *Grid) index(x, y, layer int) int {
	return layer*g.rows*g.cols + y*g.cols + x
}

// congestionIndex maps a valid (x,y,layer) to its coarse block index. The
// block count is floor(dim/congestionBlock) clamped to >=1, which
// under-covers a final partial block when dim is not a multiple of
// congestionBlock; the clamp below folds any such overflowing column/row
// into the last block rather than indexing out of range.
func (g *Grid) congestionIndex(x, y, layer int) int {
	cx := x / congestionBlock
	if cx >= g.congCols {
		cx = g.congCols - 1
	}
	cy := y / congestionBlock
	if cy >= g.congRows {
		cy = g.congRows - 1
	}
	return layer*g.congRows*g.congCols + cy*g.congCols + cx
}

// IsValid reports whether (x,y,layer) lies within the grid's bounds.
func (g *Grid) IsValid(x, y, layer int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows && layer >= 0 && layer < g.layers
}

// IsValidAndFree reports whether (x,y,layer) is valid and either
// unblocked, or blocked by net and not a static obstacle.
func (g *Grid) IsValidAndFree(x, y, layer, net int) bool {
	if !g.IsValid(x, y, layer) {
		return false
	}
	c := &g.cells[g.index(x, y, layer)]
	if !c.Blocked {
		return true
	}
	return c.Net == net && !c.IsObstacle
}

// At returns a pointer to the cell at (x,y,layer). For an out-of-range
// coordinate it returns a pointer to a discarded sentinel cell, so reads
// see a zero cell and writes are silently lost — matching the rest of
// the API's "invalid coordinates are silently ignored" contract even
// though At returns a mutable pointer.
func (g *Grid) At(x, y, layer int) *GridCell {
	if !g.IsValid(x, y, layer) {
		g.discard = GridCell{}
		return &g.discard
	}
	return &g.cells[g.index(x, y, layer)]
}

// WorldToGrid converts a world-space point to grid coordinates, rounding
// (not truncating) to the nearest cell and clamping into range.
func (g *Grid) WorldToGrid(x, y float64) (int, int) {
	gx := int(math.Round((x - g.originX) / g.resolution))
	gy := int(math.Round((y - g.originY) / g.resolution))
	if gx < 0 {
		gx = 0
	} else if gx >= g.cols {
		gx = g.cols - 1
	}
	if gy < 0 {
		gy = 0
	} else if gy >= g.rows {
		gy = g.rows - 1
	}
	return gx, gy
}

// GridToWorld converts grid coordinates to world space (origin plus
// index*resolution on each axis): the point WorldToGrid rounds back onto
// (gx, gy), i.e. the centre of the range of world points mapped to it.
func (g *Grid) GridToWorld(gx, gy int) (float64, float64) {
	return g.originX + float64(gx)*g.resolution, g.originY + float64(gy)*g.resolution
}

// GridToWorldPoint is GridToWorld's orb.Point-returning sibling, for
// callers that want to hand the result straight to pkg/geom or the wider
// orb ecosystem instead of unpacking two floats.
func (g *Grid) GridToWorldPoint(gx, gy int) geom.WorldPoint {
	x, y := g.GridToWorld(gx, gy)
	return geom.WorldPoint{x, y}
}

// Cols returns the grid's column count.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid's row count.
func (g *Grid) Rows() int { return g.rows }

// Layers returns the grid's layer count.
func (g *Grid) Layers() int { return g.layers }

// Resolution returns the grid's millimetres-per-cell resolution.
func (g *Grid) Resolution() float64 { return g.resolution }

// TotalCells returns cols*rows*layers.
func (g *Grid) TotalCells() int { return g.cols * g.rows * g.layers }

// CountBlocked returns the number of cells with Blocked=true.
func (g *Grid) CountBlocked() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Blocked {
			n++
		}
	}
	return n
}

// MemoryMB estimates the grid's resident memory, in megabytes, from its
// cell and congestion buffers.
func (g *Grid) MemoryMB() float64 {
	cellBytes := float64(len(g.cells)) * float64(unsafe.Sizeof(GridCell{}))
	congBytes := float64(len(g.congestion)) * 4
	return (cellBytes + congBytes) / (1024 * 1024)
}

// Statistics summarizes a grid's occupancy for diagnostics.
type Statistics struct {
	Cols, Rows, Layers int
	Resolution         float64
	TotalCells         int
	BlockedCells       int
	PadBlockedCells    int
	BlockedFraction    float64
	MemoryMB           float64
}

// GetGridStatistics returns a snapshot summary of the grid's occupancy.
func (g *Grid) GetGridStatistics() Statistics {
	blocked, padBlocked := 0, 0
	for i := range g.cells {
		if g.cells[i].Blocked {
			blocked++
		}
		if g.cells[i].PadBlocked {
			padBlocked++
		}
	}
	total := g.TotalCells()
	frac := 0.0
	if total > 0 {
		frac = float64(blocked) / float64(total)
	}
	return Statistics{
		Cols: g.cols, Rows: g.rows, Layers: g.layers,
		Resolution:      g.resolution,
		TotalCells:      total,
		BlockedCells:    blocked,
		PadBlockedCells: padBlocked,
		BlockedFraction: frac,
		MemoryMB:        g.MemoryMB(),
	}
}
