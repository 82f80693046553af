package ranker

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/Ahmed-Sermani/go-pagerank/service/ranker/mocks"
	"github.com/golang/mock/gomock"
	"github.com/juju/clock/testclock"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(RankerTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type RankerTestSuite struct{}

func (s *RankerTestSuite) TestConfigValidation(c *gc.C) {
	cfg := Config{}
	_, err := NewService(cfg)
	c.Assert(err, gc.ErrorMatches, "(?s).*graph API has not been provided.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*score API has not been provided.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*invalid value for score writers.*")
	c.Assert(err, gc.ErrorMatches, "(?s).*invalid value for update interval.*")
}

func (s *RankerTestSuite) TestConfigDefaults(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	cfg := Config{
		GraphAPI:       mocks.NewMockGraphAPI(ctrl),
		ScoreAPI:       mocks.NewMockScoreAPI(ctrl),
		ScoreWriters:   1,
		UpdateInterval: time.Minute,
	}
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.Clock, gc.NotNil)
	c.Assert(cfg.Logger, gc.NotNil)
	c.Assert(cfg.PageRank.Alpha, gc.Equals, pagerank.DefaultAlpha)
	c.Assert(cfg.PageRank.MaxIter, gc.Equals, pagerank.DefaultMaxIter)
}

func (s *RankerTestSuite) TestRunPersistsScores(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	g := makeCycle(c, "a", "b", "c", "d")
	clk := testclock.NewClock(time.Now())
	mockScores := mocks.NewMockScoreAPI(ctrl)

	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()

	var (
		mu  sync.Mutex
		got = make(map[string]*scores.Score)
	)
	mockScores.EXPECT().UpdateScore(gomock.Any()).DoAndReturn(func(score *scores.Score) error {
		mu.Lock()
		defer mu.Unlock()
		got[score.NodeID] = score
		if len(got) == 4 {
			cancel()
		}
		return nil
	}).Times(4)

	svc, err := NewService(Config{
		GraphAPI:       g,
		ScoreAPI:       mockScores,
		Clock:          clk,
		UpdateInterval: time.Minute,
		ScoreWriters:   2,
	})
	c.Assert(err, gc.IsNil)

	go func() {
		c.Check(clk.WaitAdvance(time.Minute, 10*time.Second, 1), gc.IsNil)
	}()

	c.Assert(svc.Run(ctx), gc.IsNil)

	mu.Lock()
	defer mu.Unlock()
	c.Assert(got, gc.HasLen, 4)
	runID := got["a"].RunID
	for id, score := range got {
		c.Assert(math.Abs(score.Value-0.25) < 1e-9, gc.Equals, true, gc.Commentf("node %s: %v", id, score.Value))
		c.Assert(score.RunID, gc.Equals, runID)
	}
}

func (s *RankerTestSuite) TestRunSkipsUnconvergedUpdate(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	g := makeStar(c)
	clk := testclock.NewClock(time.Now())
	mockGraph := mocks.NewMockGraphAPI(ctrl)
	mockScores := mocks.NewMockScoreAPI(ctrl)

	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()

	calls := 0
	mockGraph.EXPECT().AllNodes().DoAndReturn(func() (graph.NodeIterator, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return g.AllNodes()
	}).Times(2)
	mockGraph.EXPECT().AllEdges().DoAndReturn(g.AllEdges).Times(2)

	prCfg := pagerank.DefaultConfig()
	prCfg.MaxIter = 1
	svc, err := NewService(Config{
		GraphAPI:       mockGraph,
		ScoreAPI:       mockScores,
		Clock:          clk,
		UpdateInterval: time.Minute,
		ScoreWriters:   1,
		PageRank:       &prCfg,
	})
	c.Assert(err, gc.IsNil)

	go func() {
		// The service must still be waiting for the next tick after the
		// first failed update.
		for i := 0; i < 2; i++ {
			c.Check(clk.WaitAdvance(time.Minute, 10*time.Second, 1), gc.IsNil)
		}
	}()

	c.Assert(svc.Run(ctx), gc.IsNil)
	c.Assert(calls, gc.Equals, 2)
}

func (s *RankerTestSuite) TestRunFailsOnGraphError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	clk := testclock.NewClock(time.Now())
	mockGraph := mocks.NewMockGraphAPI(ctrl)
	mockGraph.EXPECT().AllNodes().Return(nil, xerrors.New("connection refused"))

	svc, err := NewService(Config{
		GraphAPI:       mockGraph,
		ScoreAPI:       mocks.NewMockScoreAPI(ctrl),
		Clock:          clk,
		UpdateInterval: time.Minute,
		ScoreWriters:   1,
	})
	c.Assert(err, gc.IsNil)

	go func() {
		c.Check(clk.WaitAdvance(time.Minute, 10*time.Second, 1), gc.IsNil)
	}()

	err = svc.Run(context.TODO())
	c.Assert(err, gc.ErrorMatches, "update scores: snapshot: connection refused")
}

func (s *RankerTestSuite) TestUpdateScoresWriteError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	writeErr := xerrors.New("index is read-only")
	mockScores := mocks.NewMockScoreAPI(ctrl)
	mockScores.EXPECT().UpdateScore(gomock.Any()).Return(writeErr).MinTimes(1)

	svc, err := NewService(Config{
		GraphAPI:       makeCycle(c, "a", "b", "c"),
		ScoreAPI:       mockScores,
		UpdateInterval: time.Minute,
		ScoreWriters:   1,
	})
	c.Assert(err, gc.IsNil)

	err = svc.UpdateScores(context.TODO())
	c.Assert(xerrors.Is(err, writeErr), gc.Equals, true)
}

func (s *RankerTestSuite) TestUpdateScoresEmptyGraph(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	svc, err := NewService(Config{
		GraphAPI:       memory.NewInMemoryGraph(),
		ScoreAPI:       mocks.NewMockScoreAPI(ctrl),
		UpdateInterval: time.Minute,
		ScoreWriters:   1,
	})
	c.Assert(err, gc.IsNil)
	c.Assert(svc.UpdateScores(context.TODO()), gc.IsNil)
}

func makeCycle(c *gc.C, ids ...string) *memory.InMemoryGraph {
	g := memory.NewInMemoryGraph()
	for _, id := range ids {
		c.Assert(g.UpsertNode(id), gc.IsNil)
	}
	for i, id := range ids {
		next := ids[(i+1)%len(ids)]
		c.Assert(g.UpsertEdge(&graph.Edge{Src: id, Dst: next}), gc.IsNil)
	}
	return g
}

func makeStar(c *gc.C) *memory.InMemoryGraph {
	g := memory.NewInMemoryGraph()
	for _, leaf := range []string{"1", "2", "3", "4"} {
		c.Assert(g.AddUndirectedEdge("0", leaf, nil), gc.IsNil)
	}
	return g
}
