/*
   Random graph generators producing undirected graphs whose edges are
   stored as pairs of opposing directed edges.
*/
package generator

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"golang.org/x/xerrors"
)

var (
	// ErrInvalidNodeCount is returned when the requested number of nodes
	// cannot host the requested attachment count.
	ErrInvalidNodeCount = xerrors.New("barabasi-albert graph requires 1 <= m < n")
)

// BarabasiAlbert returns a random graph with n nodes grown by preferential
// attachment: every new node is connected to m distinct existing nodes
// chosen with probability proportional to their degree.
//
// The first m nodes start without edges and the node with index m is linked
// to all of them. Node IDs are the decimal node indices. Generation is fully
// determined by seed.
func BarabasiAlbert(n, m int, seed int64) (*memory.InMemoryGraph, error) {
	if m < 1 || m >= n {
		return nil, xerrors.Errorf("n=%d, m=%d: %w", n, m, ErrInvalidNodeCount)
	}

	var (
		rng = rand.New(rand.NewSource(seed))
		g   = memory.NewInMemoryGraph()
	)
	for i := 0; i < n; i++ {
		if err := g.UpsertNode(strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}

	targets := make([]int, m)
	for i := range targets {
		targets[i] = i
	}

	// Every node appears here once per incident edge; sampling from it
	// uniformly is sampling proportionally to degree.
	repeated := make([]int, 0, 2*m*(n-m))
	for src := m; src < n; src++ {
		for _, dst := range targets {
			if err := g.AddUndirectedEdge(strconv.Itoa(src), strconv.Itoa(dst), nil); err != nil {
				return nil, xerrors.Errorf("barabasi-albert: %w", err)
			}
			repeated = append(repeated, dst, src)
		}
		targets = randomSubset(rng, repeated, m)
	}
	return g, nil
}

// randomSubset draws m distinct values from seq, where values occurring
// several times in seq are proportionally more likely to be drawn. The
// result is returned in ascending order.
func randomSubset(rng *rand.Rand, seq []int, m int) []int {
	picked := make(map[int]struct{}, m)
	for len(picked) < m {
		picked[seq[rng.Intn(len(seq))]] = struct{}{}
	}

	subset := make([]int, 0, m)
	for v := range picked {
		subset = append(subset, v)
	}
	sort.Ints(subset)
	return subset
}
