package es

import (
	"os"
	"strings"
	"testing"

	"github.com/Ahmed-Sermani/go-pagerank/scores/scorestest"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ESScoreStoreTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type ESScoreStoreTestSuite struct {
	scorestest.SuiteBase
	nodes []string
	store *ESScoreStore
}

func (s *ESScoreStoreTestSuite) SetUpSuite(c *gc.C) {
	nodesList := os.Getenv("ES_NODES")
	if nodesList == "" {
		c.Skip("Missing ES_NODES env; skipping es-based score store tests")
	}
	s.nodes = strings.Split(nodesList, ",")
}

func (s *ESScoreStoreTestSuite) SetUpTest(c *gc.C) {
	store, err := NewESScoreStore(s.nodes, true)
	c.Assert(err, gc.IsNil)

	// Start every test from an empty index.
	_, err = store.es.Indices.Delete([]string{indexName})
	c.Assert(err, gc.IsNil)
	c.Assert(ensureIndex(store.es), gc.IsNil)

	s.store = store
	s.SetStore(store)
}
