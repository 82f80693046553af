package pagerank

import (
	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"golang.org/x/xerrors"
)

// transitions is the right-stochastic form of a graph in compressed sparse
// row layout. The outgoing transitions of node i are
// targets[offsets[i]:offsets[i+1]] with the matching weights. Dangling
// nodes have an empty row.
type transitions struct {
	ids   []string
	index map[string]int

	offsets []int
	targets []int
	weights []float64

	dangling []int
}

func (t *transitions) numNodes() int { return len(t.ids) }

// normalize assigns every node of g an index following g.Nodes() and
// divides each outgoing edge weight by the total outgoing weight of its
// source. Nodes whose total outgoing weight is exactly zero are recorded as
// dangling and keep no transitions.
func normalize(g graph.Model, weightKey string) (*transitions, error) {
	ids := g.Nodes()
	t := &transitions{
		ids:     ids,
		index:   make(map[string]int, len(ids)),
		offsets: make([]int, 1, len(ids)+1),
	}
	for i, id := range ids {
		t.index[id] = i
	}

	for i, id := range ids {
		outWeight := g.OutWeight(id, weightKey)
		if outWeight == 0.0 {
			t.dangling = append(t.dangling, i)
			t.offsets = append(t.offsets, len(t.targets))
			continue
		}

		for _, nbr := range g.Neighbors(id, weightKey) {
			j, known := t.index[nbr.ID]
			if !known {
				return nil, xerrors.Errorf("normalize edge %q -> %q: %w", id, nbr.ID, graph.ErrUnknownEdgeNodes)
			}
			t.targets = append(t.targets, j)
			t.weights = append(t.weights, nbr.Weight/outWeight)
		}
		t.offsets = append(t.offsets, len(t.targets))
	}
	return t, nil
}
