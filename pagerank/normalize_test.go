package pagerank

import (
	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(NormalizeTestSuite))

type NormalizeTestSuite struct{}

func (s *NormalizeTestSuite) TestRowsAreStochastic(c *gc.C) {
	t, err := normalize(makeTestGraph(c), DefaultWeightKey)
	c.Assert(err, gc.IsNil)
	c.Assert(t.ids, gc.DeepEquals, []string{"a", "b", "c", "d", "e"})
	c.Assert(t.offsets, gc.HasLen, t.numNodes()+1)
	c.Assert(t.dangling, gc.DeepEquals, []int{4})

	for i := 0; i < t.numNodes(); i++ {
		if t.offsets[i] == t.offsets[i+1] {
			continue
		}
		var rowSum float64
		for k := t.offsets[i]; k < t.offsets[i+1]; k++ {
			rowSum += t.weights[k]
		}
		assertClose(c, rowSum, 1.0, 1e-12)
	}

	// a -> b (1), a -> c (2)
	c.Assert(t.targets[t.offsets[0]:t.offsets[1]], gc.DeepEquals, []int{1, 2})
	assertClose(c, t.weights[0], 1.0/3.0, 1e-15)
	assertClose(c, t.weights[1], 2.0/3.0, 1e-15)
}

func (s *NormalizeTestSuite) TestZeroWeightNodeIsDangling(c *gc.C) {
	g := memory.NewInMemoryGraph()
	c.Assert(g.UpsertNode("a"), gc.IsNil)
	c.Assert(g.UpsertNode("b"), gc.IsNil)
	c.Assert(g.UpsertEdge(&graph.Edge{Src: "a", Dst: "b", Attrs: map[string]float64{"weight": 0}}), gc.IsNil)
	c.Assert(g.UpsertEdge(&graph.Edge{Src: "b", Dst: "a", Attrs: map[string]float64{"weight": 2}}), gc.IsNil)

	t, err := normalize(g, DefaultWeightKey)
	c.Assert(err, gc.IsNil)
	c.Assert(t.dangling, gc.DeepEquals, []int{0})
	c.Assert(t.offsets, gc.DeepEquals, []int{0, 0, 1})
	c.Assert(t.targets, gc.DeepEquals, []int{0})
	c.Assert(t.weights, gc.DeepEquals, []float64{1})
}

func (s *NormalizeTestSuite) TestUnweightedKey(c *gc.C) {
	t, err := normalize(makeTestGraph(c), "")
	c.Assert(err, gc.IsNil)

	// a -> b, a -> c with every edge counting as 1.
	c.Assert(t.weights[t.offsets[0]:t.offsets[1]], gc.DeepEquals, []float64{0.5, 0.5})
}

func (s *NormalizeTestSuite) TestUnknownNeighbor(c *gc.C) {
	_, err := normalize(brokenModel{}, DefaultWeightKey)
	c.Assert(xerrors.Is(err, graph.ErrUnknownEdgeNodes), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `normalize edge "a" -> "ghost": .*`)
}
