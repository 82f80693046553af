package scorestest

import (
	"fmt"

	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of score store tests that can be
// executed against any type that implements scores.Store.
type SuiteBase struct {
	s scores.Store
}

// SetStore configures the test suite to run all tests against s.
func (s *SuiteBase) SetStore(store scores.Store) {
	s.s = store
}

func (s *SuiteBase) TestUpdateScore(c *gc.C) {
	runID := uuid.New()
	score := &scores.Score{NodeID: "a", Value: 0.25, RunID: runID}
	c.Assert(s.s.UpdateScore(score), gc.IsNil)
	c.Assert(score.RankedAt.IsZero(), gc.Equals, false)

	got, err := s.s.FindByID("a")
	c.Assert(err, gc.IsNil)
	c.Assert(got.Value, gc.Equals, 0.25)
	c.Assert(got.RunID, gc.Equals, runID)

	// Re-ranking replaces the previous value.
	c.Assert(s.s.UpdateScore(&scores.Score{NodeID: "a", Value: 0.5}), gc.IsNil)
	got, err = s.s.FindByID("a")
	c.Assert(err, gc.IsNil)
	c.Assert(got.Value, gc.Equals, 0.5)
}

func (s *SuiteBase) TestUpdateScoreMissingNodeID(c *gc.C) {
	err := s.s.UpdateScore(&scores.Score{Value: 1})
	c.Assert(xerrors.Is(err, scores.ErrMissingNodeID), gc.Equals, true)
}

func (s *SuiteBase) TestFindByIDMissing(c *gc.C) {
	_, err := s.s.FindByID("nope")
	c.Assert(xerrors.Is(err, scores.ErrNotFound), gc.Equals, true)
}

func (s *SuiteBase) TestTopOrdering(c *gc.C) {
	values := map[string]float64{
		"a": 0.1,
		"b": 0.4,
		"c": 0.2,
		"d": 0.2,
		"e": 0.1,
	}
	for id, v := range values {
		c.Assert(s.s.UpdateScore(&scores.Score{NodeID: id, Value: v}), gc.IsNil)
	}

	it, err := s.s.Top(0)
	c.Assert(err, gc.IsNil)
	c.Assert(it.TotalCount(), gc.Equals, uint64(5))

	var got []string
	for it.Next() {
		got = append(got, it.Score().NodeID)
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	c.Assert(got, gc.DeepEquals, []string{"b", "c", "d", "a", "e"})
}

func (s *SuiteBase) TestTopPagination(c *gc.C) {
	numScores := 25
	for i := 0; i < numScores; i++ {
		score := &scores.Score{
			NodeID: fmt.Sprintf("n%02d", i),
			Value:  float64(numScores - i),
		}
		c.Assert(s.s.UpdateScore(score), gc.IsNil)
	}

	cases := []struct {
		offset  uint64
		expHits int
		first   string
	}{
		{offset: 0, expHits: 25, first: "n00"},
		{offset: 12, expHits: 13, first: "n12"},
		{offset: 24, expHits: 1, first: "n24"},
		{offset: 30, expHits: 0},
	}

	for caseIndex, tc := range cases {
		c.Logf("[case %d] offset %d", caseIndex, tc.offset)
		it, err := s.s.Top(tc.offset)
		c.Assert(err, gc.IsNil)

		var hits []string
		for it.Next() {
			hits = append(hits, it.Score().NodeID)
		}
		c.Assert(it.Error(), gc.IsNil)
		c.Assert(it.Close(), gc.IsNil)
		c.Assert(hits, gc.HasLen, tc.expHits)
		if tc.expHits > 0 {
			c.Assert(hits[0], gc.Equals, tc.first)
		}
	}
}
