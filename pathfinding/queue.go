package pathfinding

import "cmp"

// entry is a frontier item. cost is the tentative cost from the start
// recorded when the entry was pushed; key is the priority (cost for
// Dijkstra, cost plus heuristic for A*).
type entry struct {
	node int
	cost float64
	key  float64
}

// frontier implements heap.Interface as a min-heap on key.
// Equal keys pop the lowest node index first.
type frontier []entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if c := cmp.Compare(f[i].key, f[j].key); c != 0 {
		return c < 0
	}
	return f[i].node < f[j].node
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
}

func (f *frontier) Push(x any) {
	*f = append(*f, x.(entry))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}
