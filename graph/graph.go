/*
   Directed weighted graphs: the read-only model consumed by the PageRank
   engine and the persistence API implemented by the graph stores.
*/
package graph

import "golang.org/x/xerrors"

var (
	// ErrNotFound is returned when looking up a node that does not exist.
	ErrNotFound = xerrors.New("not found")

	// ErrUnknownEdgeNodes is returned when an edge refers to a node that is
	// not part of the graph.
	ErrUnknownEdgeNodes = xerrors.New("unknown source and/or destination for edge")
)

// DefaultWeight is the weight of an edge that carries no attribute for the
// requested weight key.
const DefaultWeight = 1.0

type Iterator interface {
	Next() bool
	Error() error
	Close() error
}

// Edge is a directed edge from Src to Dst. Attrs holds the numeric edge
// attributes; any of them can be selected as the edge weight.
type Edge struct {
	Src   string
	Dst   string
	Attrs map[string]float64
}

// Weight returns the value of the attribute stored under key or
// DefaultWeight if the edge has no such attribute.
func (e *Edge) Weight(key string) float64 {
	if w, ok := e.Attrs[key]; ok && key != "" {
		return w
	}
	return DefaultWeight
}

type NodeIterator interface {
	Iterator
	Node() string
}

type EdgeIterator interface {
	Iterator
	Edge() *Edge
}

// Neighbor is the destination of an outgoing edge together with the edge
// weight under a particular weight key.
type Neighbor struct {
	ID     string
	Weight float64
}

// Model is a read-only view of a directed weighted graph.
//
// Nodes and Neighbors must return their results in a stable order; the
// PageRank engine derives its accumulation order from them.
type Model interface {
	// Nodes returns every node of the graph.
	Nodes() []string

	// Neighbors returns the outgoing edges of id weighted by weightKey.
	Neighbors(id, weightKey string) []Neighbor

	// OutWeight returns the sum of the outgoing edge weights of id.
	OutWeight(id, weightKey string) float64
}

// Store is implemented by graph backends that persist nodes and edges.
type Store interface {
	UpsertNode(id string) error
	HasNode(id string) (bool, error)

	// UpsertEdge creates an edge or replaces the attributes of an existing
	// edge with the same source and destination.
	UpsertEdge(*Edge) error
	RemoveNode(id string) error

	// AllNodes iterates the stored nodes in a stable order.
	AllNodes() (NodeIterator, error)
	// AllEdges iterates the stored edges grouped by source node.
	AllEdges() (EdgeIterator, error)
}
