package graphtest

import (
	"fmt"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of graph-related tests that can
// be executed against any type that implements graph.Store.
type SuiteBase struct {
	g graph.Store
}

// SetGraph configures the test-suite to run all tests against g.
func (s *SuiteBase) SetGraph(g graph.Store) {
	s.g = g
}

func (s *SuiteBase) TestUpsertNode(c *gc.C) {
	c.Assert(s.g.UpsertNode("a"), gc.IsNil)
	c.Assert(s.g.UpsertNode("a"), gc.IsNil, gc.Commentf("re-inserting a node should be a no-op"))

	found, err := s.g.HasNode("a")
	c.Assert(err, gc.IsNil)
	c.Assert(found, gc.Equals, true)

	found, err = s.g.HasNode("b")
	c.Assert(err, gc.IsNil)
	c.Assert(found, gc.Equals, false)

	c.Assert(s.collectNodes(c), gc.DeepEquals, []string{"a"})
}

func (s *SuiteBase) TestUpsertEdge(c *gc.C) {
	for _, id := range []string{"a", "b", "c"} {
		c.Assert(s.g.UpsertNode(id), gc.IsNil)
	}

	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: "a", Dst: "b", Attrs: map[string]float64{"weight": 2}}), gc.IsNil)
	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: "a", Dst: "c"}), gc.IsNil)

	// Updating an existing edge replaces its attributes.
	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: "a", Dst: "b", Attrs: map[string]float64{"weight": 5, "cost": 1}}), gc.IsNil)

	edges := s.collectEdges(c)
	c.Assert(edges, gc.HasLen, 2)
	byDst := make(map[string]*graph.Edge)
	for _, e := range edges {
		c.Assert(e.Src, gc.Equals, "a")
		byDst[e.Dst] = e
	}
	c.Assert(byDst["b"].Weight("weight"), gc.Equals, 5.0)
	c.Assert(byDst["b"].Weight("cost"), gc.Equals, 1.0)
	c.Assert(byDst["c"].Weight("weight"), gc.Equals, graph.DefaultWeight)
}

func (s *SuiteBase) TestUpsertEdgeUnknownNodes(c *gc.C) {
	c.Assert(s.g.UpsertNode("a"), gc.IsNil)

	err := s.g.UpsertEdge(&graph.Edge{Src: "a", Dst: "missing"})
	c.Assert(xerrors.Is(err, graph.ErrUnknownEdgeNodes), gc.Equals, true, gc.Commentf("got %v", err))

	err = s.g.UpsertEdge(&graph.Edge{Src: "missing", Dst: "a"})
	c.Assert(xerrors.Is(err, graph.ErrUnknownEdgeNodes), gc.Equals, true, gc.Commentf("got %v", err))
}

func (s *SuiteBase) TestRemoveNode(c *gc.C) {
	for i := 0; i < 3; i++ {
		c.Assert(s.g.UpsertNode(fmt.Sprint(i)), gc.IsNil)
	}
	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: "0", Dst: "1"}), gc.IsNil)
	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: "1", Dst: "2"}), gc.IsNil)
	c.Assert(s.g.UpsertEdge(&graph.Edge{Src: "2", Dst: "0"}), gc.IsNil)

	c.Assert(s.g.RemoveNode("1"), gc.IsNil)

	nodes := s.collectNodes(c)
	c.Assert(nodes, gc.HasLen, 2)
	edges := s.collectEdges(c)
	c.Assert(edges, gc.HasLen, 1)
	c.Assert(edges[0].Src, gc.Equals, "2")
	c.Assert(edges[0].Dst, gc.Equals, "0")

	err := s.g.RemoveNode("1")
	c.Assert(xerrors.Is(err, graph.ErrNotFound), gc.Equals, true, gc.Commentf("got %v", err))
}

func (s *SuiteBase) TestIterationIsStable(c *gc.C) {
	for i := 0; i < 10; i++ {
		c.Assert(s.g.UpsertNode(fmt.Sprint(i)), gc.IsNil)
	}
	for i := 0; i < 10; i++ {
		c.Assert(s.g.UpsertEdge(&graph.Edge{Src: fmt.Sprint(i), Dst: fmt.Sprint((i + 1) % 10)}), gc.IsNil)
		c.Assert(s.g.UpsertEdge(&graph.Edge{Src: fmt.Sprint(i), Dst: fmt.Sprint((i + 3) % 10)}), gc.IsNil)
	}

	firstNodes, firstEdges := s.collectNodes(c), s.collectEdges(c)
	c.Assert(firstNodes, gc.HasLen, 10)
	c.Assert(firstEdges, gc.HasLen, 20)
	for i := 0; i < 3; i++ {
		c.Assert(s.collectNodes(c), gc.DeepEquals, firstNodes)
		c.Assert(s.collectEdges(c), gc.DeepEquals, firstEdges)
	}
}

func (s *SuiteBase) collectNodes(c *gc.C) []string {
	it, err := s.g.AllNodes()
	c.Assert(err, gc.IsNil)

	var list []string
	for it.Next() {
		list = append(list, it.Node())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	return list
}

func (s *SuiteBase) collectEdges(c *gc.C) []*graph.Edge {
	it, err := s.g.AllEdges()
	c.Assert(err, gc.IsNil)

	var list []*graph.Edge
	for it.Next() {
		list = append(list, it.Edge())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	return list
}
