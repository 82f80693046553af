package memory

import (
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/blevesearch/bleve"
)

// memIterator pages through bleve search results and resolves each hit to
// the stored score.
type memIterator struct {
	store     *InMemoryScoreStore
	searchReq *bleve.SearchRequest

	cumIdx uint64
	resIdx int
	res    *bleve.SearchResult

	latchedScore *scores.Score
	lastErr      error
}

func (it *memIterator) Next() bool {
	if it.lastErr != nil || it.res == nil || it.cumIdx >= it.res.Total {
		return false
	}

	// Do we need to fetch the next batch?
	if it.resIdx >= it.res.Hits.Len() {
		it.searchReq.From += it.searchReq.Size
		if it.res, it.lastErr = it.store.idx.Search(it.searchReq); it.lastErr != nil {
			return false
		}
		if it.res.Hits.Len() == 0 {
			return false
		}
		it.resIdx = 0
	}

	nextID := it.res.Hits[it.resIdx].ID
	if it.latchedScore, it.lastErr = it.store.FindByID(nextID); it.lastErr != nil {
		return false
	}

	it.cumIdx++
	it.resIdx++
	return true
}

func (it *memIterator) Close() error {
	it.store = nil
	it.searchReq = nil
	if it.res != nil {
		it.cumIdx = it.res.Total
	}
	return nil
}

func (it *memIterator) Score() *scores.Score {
	return it.latchedScore
}

func (it *memIterator) Error() error {
	return it.lastErr
}

func (it *memIterator) TotalCount() uint64 {
	if it.res == nil {
		return 0
	}
	return it.res.Total
}
