package pagerank

import (
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(DistributionTestSuite))

type DistributionTestSuite struct {
	t *transitions
}

func (s *DistributionTestSuite) SetUpTest(c *gc.C) {
	var err error
	s.t, err = normalize(makeCycle(c, 4), DefaultWeightKey)
	c.Assert(err, gc.IsNil)
}

func (s *DistributionTestSuite) TestDefaultIsCopied(c *gc.C) {
	def := uniform(4)
	dist, err := resolveDistribution(s.t, VectorStart, nil, def)
	c.Assert(err, gc.IsNil)
	c.Assert(dist, gc.DeepEquals, []float64{0.25, 0.25, 0.25, 0.25})

	dist[0] = 42
	c.Assert(def[0], gc.Equals, 0.25, gc.Commentf("default distribution must not be aliased"))
}

func (s *DistributionTestSuite) TestNormalization(c *gc.C) {
	dist, err := resolveDistribution(s.t, VectorPersonalization, map[string]float64{"0": 2, "1": 2, "2": 4, "3": 0}, nil)
	c.Assert(err, gc.IsNil)
	c.Assert(dist, gc.DeepEquals, []float64{0.25, 0.25, 0.5, 0})
}

func (s *DistributionTestSuite) TestMissingAndUnknownNodes(c *gc.C) {
	_, err := resolveDistribution(s.t, VectorDangling, map[string]float64{"1": 1, "3": 1, "z": 1, "y": 1}, nil)
	c.Assert(xerrors.Is(err, ErrInvalidDistribution), gc.Equals, true)

	var vErr *ValidationError
	c.Assert(xerrors.As(err, &vErr), gc.Equals, true)
	c.Assert(vErr.Vector, gc.Equals, VectorDangling)
	c.Assert(vErr.Missing, gc.DeepEquals, []string{"0", "2"})
	c.Assert(vErr.Unknown, gc.DeepEquals, []string{"y", "z"})
	c.Assert(err, gc.ErrorMatches, `invalid dangling vector: missing nodes \[0 2\]; unknown nodes \[y z\]`)
}

func (s *DistributionTestSuite) TestNegativeValue(c *gc.C) {
	_, err := resolveDistribution(s.t, VectorStart, map[string]float64{"0": 1, "1": -1, "2": 1, "3": 1}, nil)
	c.Assert(err, gc.ErrorMatches, `invalid start vector: negative value -1 for node "1"`)
}

func (s *DistributionTestSuite) TestZeroSum(c *gc.C) {
	_, err := resolveDistribution(s.t, VectorPersonalization, map[string]float64{"0": 0, "1": 0, "2": 0, "3": 0}, nil)
	c.Assert(err, gc.ErrorMatches, `invalid personalization vector: values must sum to a positive number, got 0`)
}

func (s *DistributionTestSuite) TestDanglingDefaultsToPersonalization(c *gc.C) {
	p, err := resolveDistribution(s.t, VectorPersonalization, map[string]float64{"0": 1, "1": 0, "2": 0, "3": 3}, uniform(4))
	c.Assert(err, gc.IsNil)

	d, err := resolveDistribution(s.t, VectorDangling, nil, p)
	c.Assert(err, gc.IsNil)
	c.Assert(d, gc.DeepEquals, p)
}
