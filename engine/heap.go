package engine

import "github.com/mkvale/resolv/internal/clause"

// frontierItem is one entry of the best-first priority queue: a
// candidate clause awaiting admission, keyed by cost with a
// deterministic secondary key (the clause's own Key()) so that ties in
// the heap are broken the same way on every run.
type frontierItem struct {
	cost   int
	key    string
	clause clause.Clause
}

// frontierHeap is a container/heap.Interface min-heap over frontierItem.
type frontierHeap []*frontierItem

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].key < h[j].key
}

func (h frontierHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *frontierHeap) Push(x any) {
	*h = append(*h, x.(*frontierItem))
}

func (h *frontierHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
