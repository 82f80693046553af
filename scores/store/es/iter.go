package es

import (
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/elastic/go-elasticsearch/v8"
)

type esIterator struct {
	es        *elasticsearch.Client
	searchReq *esQuery

	cumIdx uint64
	rsIdx  int
	rs     *esSearchRes

	latchedScore *scores.Score
	lastErr      error
}

func (it *esIterator) Close() error {
	it.es = nil
	it.searchReq = nil
	it.cumIdx = it.rs.Hits.Total.Count
	return nil
}

func (it *esIterator) Next() bool {
	if it.lastErr != nil || it.rs == nil || it.cumIdx >= it.rs.Hits.Total.Count {
		return false
	}

	// Do we need to fetch the next batch?
	if it.rsIdx >= len(it.rs.Hits.HitList) {
		it.searchReq.From += it.searchReq.Size
		res, err := doSearch(it.es, it.searchReq)
		if err != nil {
			it.lastErr = err
			return false
		}

		esRes := &esSearchRes{}
		if it.lastErr = unmarshalResponse(res, esRes); it.lastErr != nil {
			return false
		}
		if len(esRes.Hits.HitList) == 0 {
			return false
		}
		it.rs = esRes
		it.rsIdx = 0
	}
	it.latchedScore = mapESDoc(it.rs.Hits.HitList[it.rsIdx].DocSource)
	it.cumIdx++
	it.rsIdx++
	return true
}

func (it *esIterator) Error() error {
	return it.lastErr
}

func (it *esIterator) Score() *scores.Score {
	return it.latchedScore
}

func (it *esIterator) TotalCount() uint64 {
	return it.rs.Hits.Total.Count
}
