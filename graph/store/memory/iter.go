package memory

import "github.com/Ahmed-Sermani/go-pagerank/graph"

// nodeIterator is a graph.NodeIterator over a snapshot of the node list.
type nodeIterator struct {
	nodes  []string
	curIdx int
}

func (i *nodeIterator) Next() bool {
	if i.curIdx >= len(i.nodes) {
		return false
	}
	i.curIdx++
	return true
}

func (i *nodeIterator) Node() string { return i.nodes[i.curIdx-1] }

func (i *nodeIterator) Error() error { return nil }

func (i *nodeIterator) Close() error { return nil }

// edgeIterator is a graph.EdgeIterator over edges that were cloned while
// holding the graph read lock, so callers never observe later updates.
type edgeIterator struct {
	edges  []*graph.Edge
	curIdx int
}

func (i *edgeIterator) Next() bool {
	if i.curIdx >= len(i.edges) {
		return false
	}
	i.curIdx++
	return true
}

func (i *edgeIterator) Edge() *graph.Edge { return i.edges[i.curIdx-1] }

func (i *edgeIterator) Error() error { return nil }

func (i *edgeIterator) Close() error { return nil }
