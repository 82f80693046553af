package memory

import (
	"sync"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/blevesearch/bleve"
	"golang.org/x/xerrors"
)

var _ scores.Store = (*InMemoryScoreStore)(nil)

const defaultBatchSize = 10

// InMemoryScoreStore keeps scores in memory and uses a bleve index to serve
// them in rank order.
type InMemoryScoreStore struct {
	mu     sync.RWMutex
	scores map[string]*scores.Score

	idx bleve.Index
}

// bleveDoc is the subset of a score that gets indexed.
type bleveDoc struct {
	NodeID string
	Value  float64
}

// NewInMemoryScoreStore creates a score store backed by a memory-only bleve
// index.
func NewInMemoryScoreStore() (*InMemoryScoreStore, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, err
	}
	return &InMemoryScoreStore{
		idx:    idx,
		scores: make(map[string]*scores.Score),
	}, nil
}

func (s *InMemoryScoreStore) UpdateScore(score *scores.Score) error {
	if score.NodeID == "" {
		return xerrors.Errorf("update score: %w", scores.ErrMissingNodeID)
	}
	score.RankedAt = time.Now()
	sCopy := cpScore(score)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idx.Index(sCopy.NodeID, bleveDoc{NodeID: sCopy.NodeID, Value: sCopy.Value}); err != nil {
		return xerrors.Errorf("update score: %w", err)
	}
	s.scores[sCopy.NodeID] = sCopy
	return nil
}

func (s *InMemoryScoreStore) FindByID(nodeID string) (*scores.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if score, found := s.scores[nodeID]; found {
		return cpScore(score), nil
	}
	return nil, xerrors.Errorf("find by id: %w", scores.ErrNotFound)
}

func (s *InMemoryScoreStore) Top(offset uint64) (scores.Iterator, error) {
	searchReq := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	searchReq.SortBy([]string{"-Value", "_id"})
	searchReq.Size = defaultBatchSize
	searchReq.From = int(offset)

	res, err := s.idx.Search(searchReq)
	if err != nil {
		return nil, xerrors.Errorf("top: %w", err)
	}
	return &memIterator{store: s, searchReq: searchReq, res: res, cumIdx: offset}, nil
}

func (s *InMemoryScoreStore) Close() error {
	return s.idx.Close()
}

func cpScore(score *scores.Score) *scores.Score {
	sCopy := new(scores.Score)
	*sCopy = *score
	return sCopy
}
