package pathfinder

import (
	"math/rand"
	"testing"
)

func TestOpenHeapPopsAscendingF(t *testing.T) {
	h := &openHeap{}
	fs := []float64{5, 1, 9, 3, 7, 2, 8, 0, 6, 4}
	for _, f := range fs {
		h.Push(AStarNode{F: f})
	}
	var got []float64
	for h.Len() > 0 {
		got = append(got, h.Pop().F)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("heap popped out of order: %v", got)
		}
	}
	if len(got) != len(fs) {
		t.Fatalf("got %d items, want %d", len(got), len(fs))
	}
}

func TestOpenHeapMatchesSortedReference(t *testing.T) {
	h := &openHeap{}
	src := rand.NewSource(1)
	rng := rand.New(src)
	n := 200
	want := make([]float64, n)
	for i := 0; i < n; i++ {
		f := rng.Float64() * 1000
		want[i] = f
		h.Push(AStarNode{F: f, X: i})
	}
	sortFloats(want)

	for i := 0; i < n; i++ {
		got := h.Pop().F
		if got != want[i] {
			t.Fatalf("pop %d = %v, want %v", i, got, want[i])
		}
	}
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
