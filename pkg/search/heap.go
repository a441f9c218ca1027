package search

// labelHeap is a concrete-typed priority queue of label handles.
// Avoids interface boxing overhead of container/heap.
type labelHeap struct {
	items []heapItem
}

// heapItem orders labels: more distinct vertices first, then older first.
type heapItem struct {
	handle int32
	size   int
	seq    uint64
}

func before(a, b heapItem) bool {
	if a.size != b.size {
		return a.size > b.size
	}
	return a.seq < b.seq
}

func (h *labelHeap) Len() int { return len(h.items) }

func (h *labelHeap) Push(it heapItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *labelHeap) Pop() heapItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *labelHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !before(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *labelHeap) siftDown(i int) {
	n := len(h.items)
	for {
		best := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && before(h.items[left], h.items[best]) {
			best = left
		}
		if right < n && before(h.items[right], h.items[best]) {
			best = right
		}
		if best == i {
			break
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
