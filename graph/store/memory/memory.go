package memory

import (
	"sync"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"golang.org/x/xerrors"
)

// Compile-time checks for the interfaces implemented by InMemoryGraph.
var (
	_ graph.Model = (*InMemoryGraph)(nil)
	_ graph.Store = (*InMemoryGraph)(nil)
)

type edgeKey struct {
	src, dst string
}

// InMemoryGraph is a directed graph that keeps nodes and edges in insertion
// order. It can be used both as a graph.Store and as the graph.Model handed
// to the PageRank engine.
type InMemoryGraph struct {
	mu sync.RWMutex

	nodes     []string
	nodeIndex map[string]int

	// outgoing edges per source node, in insertion order
	out       map[string][]*graph.Edge
	edgeIndex map[edgeKey]*graph.Edge
}

// NewInMemoryGraph creates a new, empty in-memory graph.
func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		nodeIndex: make(map[string]int),
		out:       make(map[string][]*graph.Edge),
		edgeIndex: make(map[edgeKey]*graph.Edge),
	}
}

// Source is the read-only part of graph.Store needed to take a snapshot.
type Source interface {
	AllNodes() (graph.NodeIterator, error)
	AllEdges() (graph.EdgeIterator, error)
}

// Snapshot copies every node and edge of src into a new InMemoryGraph,
// preserving the iteration order of the source store.
func Snapshot(src Source) (*InMemoryGraph, error) {
	g := NewInMemoryGraph()

	nodeIt, err := src.AllNodes()
	if err != nil {
		return nil, xerrors.Errorf("snapshot: %w", err)
	}
	for nodeIt.Next() {
		g.addNode(nodeIt.Node())
	}
	if err = nodeIt.Error(); err != nil {
		_ = nodeIt.Close()
		return nil, xerrors.Errorf("snapshot: %w", err)
	}
	if err = nodeIt.Close(); err != nil {
		return nil, xerrors.Errorf("snapshot: %w", err)
	}

	edgeIt, err := src.AllEdges()
	if err != nil {
		return nil, xerrors.Errorf("snapshot: %w", err)
	}
	for edgeIt.Next() {
		if err = g.UpsertEdge(edgeIt.Edge()); err != nil {
			_ = edgeIt.Close()
			return nil, xerrors.Errorf("snapshot: %w", err)
		}
	}
	if err = edgeIt.Error(); err != nil {
		_ = edgeIt.Close()
		return nil, xerrors.Errorf("snapshot: %w", err)
	}
	if err = edgeIt.Close(); err != nil {
		return nil, xerrors.Errorf("snapshot: %w", err)
	}
	return g, nil
}

// UpsertNode adds a node to the graph. Adding an existing node is a no-op.
func (s *InMemoryGraph) UpsertNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addNode(id)
	return nil
}

func (s *InMemoryGraph) addNode(id string) {
	if _, exists := s.nodeIndex[id]; exists {
		return
	}
	s.nodeIndex[id] = len(s.nodes)
	s.nodes = append(s.nodes, id)
}

func (s *InMemoryGraph) HasNode(id string) (bool, error) {
	s.mu.RLock()
	_, exists := s.nodeIndex[id]
	s.mu.RUnlock()
	return exists, nil
}

// UpsertEdge creates a new edge or replaces the attributes of the existing
// edge between the same pair of nodes. Both endpoints must already exist.
func (s *InMemoryGraph) UpsertEdge(edge *graph.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertEdge(edge)
}

func (s *InMemoryGraph) upsertEdge(edge *graph.Edge) error {
	_, srcExists := s.nodeIndex[edge.Src]
	_, dstExists := s.nodeIndex[edge.Dst]
	if !srcExists || !dstExists {
		return xerrors.Errorf("upsert edge %q -> %q: %w", edge.Src, edge.Dst, graph.ErrUnknownEdgeNodes)
	}

	key := edgeKey{src: edge.Src, dst: edge.Dst}
	if existing := s.edgeIndex[key]; existing != nil {
		existing.Attrs = copyAttrs(edge.Attrs)
		return nil
	}

	eCopy := cpEdge(edge)
	s.edgeIndex[key] = eCopy
	s.out[eCopy.Src] = append(s.out[eCopy.Src], eCopy)
	return nil
}

// AddUndirectedEdge inserts the two opposing directed edges a -> b and
// b -> a, both carrying attrs. A self-loop is inserted once. Missing
// endpoints are created.
func (s *InMemoryGraph) AddUndirectedEdge(a, b string, attrs map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addNode(a)
	s.addNode(b)
	if err := s.upsertEdge(&graph.Edge{Src: a, Dst: b, Attrs: attrs}); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	return s.upsertEdge(&graph.Edge{Src: b, Dst: a, Attrs: attrs})
}

// RemoveNode deletes a node together with every edge that starts or ends
// at it.
func (s *InMemoryGraph) RemoveNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, exists := s.nodeIndex[id]
	if !exists {
		return xerrors.Errorf("remove node %q: %w", id, graph.ErrNotFound)
	}

	s.nodes = append(s.nodes[:idx], s.nodes[idx+1:]...)
	delete(s.nodeIndex, id)
	for i := idx; i < len(s.nodes); i++ {
		s.nodeIndex[s.nodes[i]] = i
	}

	for _, e := range s.out[id] {
		delete(s.edgeIndex, edgeKey{src: e.Src, dst: e.Dst})
	}
	delete(s.out, id)

	for src, edges := range s.out {
		kept := edges[:0]
		for _, e := range edges {
			if e.Dst == id {
				delete(s.edgeIndex, edgeKey{src: e.Src, dst: e.Dst})
				continue
			}
			kept = append(kept, e)
		}
		s.out[src] = kept
	}
	return nil
}

// AllNodes returns an iterator over the nodes in insertion order.
func (s *InMemoryGraph) AllNodes() (graph.NodeIterator, error) {
	s.mu.RLock()
	list := make([]string, len(s.nodes))
	copy(list, s.nodes)
	s.mu.RUnlock()
	return &nodeIterator{nodes: list}, nil
}

// AllEdges returns an iterator over the edges grouped by source node, in
// node insertion order.
func (s *InMemoryGraph) AllEdges() (graph.EdgeIterator, error) {
	s.mu.RLock()
	var list []*graph.Edge
	for _, src := range s.nodes {
		for _, e := range s.out[src] {
			list = append(list, cpEdge(e))
		}
	}
	s.mu.RUnlock()
	return &edgeIterator{edges: list}, nil
}

// Nodes implements graph.Model.
func (s *InMemoryGraph) Nodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]string, len(s.nodes))
	copy(list, s.nodes)
	return list
}

// Neighbors implements graph.Model.
func (s *InMemoryGraph) Neighbors(id, weightKey string) []graph.Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := s.out[id]
	if len(edges) == 0 {
		return nil
	}
	list := make([]graph.Neighbor, len(edges))
	for i, e := range edges {
		list[i] = graph.Neighbor{ID: e.Dst, Weight: e.Weight(weightKey)}
	}
	return list
}

// OutWeight implements graph.Model.
func (s *InMemoryGraph) OutWeight(id, weightKey string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum float64
	for _, e := range s.out[id] {
		sum += e.Weight(weightKey)
	}
	return sum
}

// NumNodes returns the number of nodes in the graph.
func (s *InMemoryGraph) NumNodes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// NumEdges returns the number of directed edges in the graph.
func (s *InMemoryGraph) NumEdges() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edgeIndex)
}

func cpEdge(e *graph.Edge) *graph.Edge {
	return &graph.Edge{Src: e.Src, Dst: e.Dst, Attrs: copyAttrs(e.Attrs)}
}

func copyAttrs(attrs map[string]float64) map[string]float64 {
	if attrs == nil {
		return nil
	}
	c := make(map[string]float64, len(attrs))
	for k, v := range attrs {
		c[k] = v
	}
	return c
}
