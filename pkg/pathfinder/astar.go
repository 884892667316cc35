package pathfinder

// AStarNode is one entry in the open set / closed list. Parent is an
// integer index into the closed list, not a pointer, so nodes stay
// value-typed and immune to stale references when the open set
// reallocates.
type AStarNode struct {
	F, G          float64
	X, Y, Layer   int
	Parent        int // index into the closed list; -1 for a root
	ViaFromParent bool
	Dx, Dy        int // last step direction; (0,0) for a root or a via hop
}

type cellKey struct {
	X, Y, Layer int
}

// openHeap is a concrete-typed binary min-heap of AStarNode ordered by
// ascending F-score. It is hand-rolled rather than built on
// container/heap to avoid that package's interface-boxing cost on the
// search's hot loop, which repushes nodes on every cost-improving
// relaxation.
type openHeap struct {
	items []AStarNode
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Push(n AStarNode) {
	h.items = append(h.items, n)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the node with the lowest F-score.
func (h *openHeap) Pop() AStarNode {
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *openHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].F >= h.items[parent].F {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *openHeap) siftDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.items[left].F < h.items[smallest].F {
			smallest = left
		}
		if right < n && h.items[right].F < h.items[smallest].F {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
