package dijkstra

import (
	"container/heap"
	"fmt"
	"math"
)

// InProcess is the in-process Solver. The zero value is not usable;
// construct with NewInProcess.
type InProcess struct {
	options Options
}

// NewInProcess returns an in-process solver with the given options applied
// over DefaultOptions.
func NewInProcess(opts ...Option) *InProcess {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &InProcess{options: cfg}
}

// Solve runs Dijkstra from source over the undirected edge list and returns
// the result triple for sink.
//
// Validation (in order): the vertex count must be positive, source and sink
// must be valid slots, every edge endpoint must be a valid slot, and every
// weight must be non-negative (NaN rejected). An unreachable sink returns
// ErrUnreachable.
func (s *InProcess) Solve(edges []Edge, numVertices, source, sink int) (*Result, error) {
	if numVertices <= 0 {
		return nil, ErrNoVertices
	}
	if source < 0 || source >= numVertices {
		return nil, fmt.Errorf("%w: source=%d", ErrBadVertex, source)
	}
	if sink < 0 || sink >= numVertices {
		return nil, fmt.Errorf("%w: sink=%d", ErrBadVertex, sink)
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= numVertices || e.V < 0 || e.V >= numVertices {
			return nil, fmt.Errorf("%w: edge %d–%d", ErrBadVertex, e.U, e.V)
		}
		if e.W < 0 || math.IsNaN(e.W) {
			return nil, fmt.Errorf("%w: edge %d–%d weight=%v", ErrNegativeWeight, e.U, e.V, e.W)
		}
	}

	// Adjacency slices: each undirected edge appears in both endpoint rows.
	type arc struct {
		to int
		w  float64
	}
	adj := make([][]arc, numVertices)
	for _, e := range edges {
		if e.W >= s.options.InfEdgeThreshold {
			continue // impassable wall
		}
		adj[e.U] = append(adj[e.U], arc{to: e.V, w: e.W})
		adj[e.V] = append(adj[e.V], arc{to: e.U, w: e.W})
	}

	dist := make([]float64, numVertices)
	prev := make([]int, numVertices)
	visited := make([]bool, numVertices)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[source] = 0

	pq := make(nodePQ, 0, numVertices)
	heap.Init(&pq)
	heap.Push(&pq, nodeItem{slot: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(nodeItem)
		u := item.slot
		if visited[u] {
			continue // stale lazy-decrease-key entry
		}
		if item.dist > s.options.MaxDistance {
			break
		}
		visited[u] = true
		for _, a := range adj[u] {
			nd := dist[u] + a.w
			if nd > s.options.MaxDistance || nd >= dist[a.to] {
				continue
			}
			dist[a.to] = nd
			prev[a.to] = u
			heap.Push(&pq, nodeItem{slot: a.to, dist: nd})
		}
	}

	if math.IsInf(dist[sink], 1) {
		return nil, fmt.Errorf("%w: sink=%d", ErrUnreachable, sink)
	}

	// Walk predecessors sink → source; the contract reports the path in
	// exactly that order.
	path := make([]int, 0, 16)
	for v := sink; v != -1; v = prev[v] {
		path = append(path, v)
	}

	return &Result{
		ShortestWeight: dist[sink],
		ShortestPath:   path,
		VertexWeights:  dist,
	}, nil
}

// nodeItem is one heap entry: a vertex slot and its tentative distance.
type nodeItem struct {
	slot int
	dist float64
}

// nodePQ is a min-heap over tentative distances. Lazy decrease-key: shorter
// distances push duplicates, stale entries are skipped via visited.
type nodePQ []nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
