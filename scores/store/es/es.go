package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

const indexName = "pagerank_scores"

const batchSize = 10

var _ scores.Store = (*ESScoreStore)(nil)

type esErrorRes struct {
	Err struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func (e esErrorRes) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Type, e.Err.Reason)
}

type esDoc struct {
	NodeID   string    `json:"NodeID"`
	Value    float64   `json:"Value"`
	RunID    string    `json:"RunID,omitempty"`
	RankedAt time.Time `json:"RankedAt"`
}

type esSort map[string]struct {
	Order string `json:"order"`
}

type esQuery struct {
	Query struct {
		MatchAll struct{} `json:"match_all"`
	} `json:"query"`
	Sort []esSort `json:"sort"`
	From int      `json:"from"`
	Size int      `json:"size"`
}

type esSearchRes struct {
	Hits struct {
		Total struct {
			Count uint64 `json:"value"`
		} `json:"total"`
		HitList []struct {
			DocSource esDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ESScoreStore persists scores in an elasticsearch index.
type ESScoreStore struct {
	es         *elasticsearch.Client
	refreshOpt func(*esapi.UpdateRequest)
}

// NewESScoreStore connects to the given elasticsearch nodes and makes sure
// the score index exists. When syncUpdates is set every write forces an
// index refresh so it becomes visible to Top immediately.
func NewESScoreStore(nodes []string, syncUpdates bool) (*ESScoreStore, error) {
	cfg := elasticsearch.Config{
		Addresses: nodes,
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if err = ensureIndex(es); err != nil {
		return nil, err
	}

	refreshOpt := es.Update.WithRefresh("false")
	if syncUpdates {
		refreshOpt = es.Update.WithRefresh("true")
	}
	return &ESScoreStore{es: es, refreshOpt: refreshOpt}, nil
}

func ensureIndex(es *elasticsearch.Client) error {
	const mapping = `
	{
		"mappings" : {
		  "properties": {
			"NodeID": {"type": "keyword"},
			"Value": {"type": "double"},
			"RunID": {"type": "keyword"},
			"RankedAt": {"type": "date"}
		  }
		}
	}`

	mappingReader := strings.NewReader(mapping)
	res, err := es.Indices.Create(indexName, es.Indices.Create.WithBody(mappingReader))
	if err != nil {
		return xerrors.Errorf("create index error: %w", err)
	} else if res.IsError() {
		defer res.Body.Close()
		var esErr esErrorRes
		if err := json.NewDecoder(res.Body).Decode(&esErr); err != nil {
			return err
		}
		if esErr.Err.Type == "resource_already_exists_exception" {
			return nil
		}
		return xerrors.Errorf("create index: %w", esErr)
	}
	return nil
}

func (s *ESScoreStore) UpdateScore(score *scores.Score) error {
	if score.NodeID == "" {
		return xerrors.Errorf("update score: %w", scores.ErrMissingNodeID)
	}
	score.RankedAt = time.Now()

	var buf bytes.Buffer
	doc := makeESDoc(score)
	update := map[string]interface{}{
		"doc":           doc,
		"doc_as_upsert": true,
	}
	if err := json.NewEncoder(&buf).Encode(update); err != nil {
		return xerrors.Errorf("update score: %w", err)
	}
	res, err := s.es.Update(indexName, doc.NodeID, &buf, s.refreshOpt)
	if err != nil {
		return xerrors.Errorf("update score: %w", err)
	}

	var updateRes struct {
		Result string `json:"result"`
	}
	if err := unmarshalResponse(res, &updateRes); err != nil {
		return xerrors.Errorf("update score: %w", err)
	}
	return nil
}

func (s *ESScoreStore) FindByID(nodeID string) (*scores.Score, error) {
	res, err := s.es.Get(indexName, nodeID)
	if err != nil {
		return nil, xerrors.Errorf("find by id: %w", err)
	}
	if res.StatusCode == 404 {
		_ = res.Body.Close()
		return nil, xerrors.Errorf("find by id: %w", scores.ErrNotFound)
	}

	var esRes struct {
		DocSource esDoc `json:"_source"`
	}
	if err := unmarshalResponse(res, &esRes); err != nil {
		return nil, xerrors.Errorf("find by id: %w", err)
	}
	return mapESDoc(esRes.DocSource), nil
}

func (s *ESScoreStore) Top(offset uint64) (scores.Iterator, error) {
	var query esQuery
	query.From = int(offset)
	query.Size = batchSize
	query.Sort = []esSort{
		{"Value": {Order: "desc"}},
		{"NodeID": {Order: "asc"}},
	}

	res, err := doSearch(s.es, &query)
	if err != nil {
		return nil, xerrors.Errorf("top: %w", err)
	}

	var esRes esSearchRes
	if err = unmarshalResponse(res, &esRes); err != nil {
		return nil, xerrors.Errorf("top: %w", err)
	}
	return &esIterator{es: s.es, searchReq: &query, rs: &esRes, cumIdx: offset}, nil
}

func doSearch(es *elasticsearch.Client, query *esQuery) (*esapi.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, xerrors.Errorf("search: %w", err)
	}

	return es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(indexName),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
	)
}

func makeESDoc(score *scores.Score) esDoc {
	doc := esDoc{
		NodeID:   score.NodeID,
		Value:    score.Value,
		RankedAt: score.RankedAt.UTC(),
	}
	if score.RunID != uuid.Nil {
		doc.RunID = score.RunID.String()
	}
	return doc
}

func mapESDoc(doc esDoc) *scores.Score {
	score := &scores.Score{
		NodeID:   doc.NodeID,
		Value:    doc.Value,
		RankedAt: doc.RankedAt.UTC(),
	}
	if doc.RunID != "" {
		if runID, err := uuid.Parse(doc.RunID); err == nil {
			score.RunID = runID
		}
	}
	return score
}

func unmarshalResponse(res *esapi.Response, to interface{}) error {
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var esErr esErrorRes
		if err := json.NewDecoder(res.Body).Decode(&esErr); err != nil {
			return err
		}
		return esErr
	}
	return json.NewDecoder(res.Body).Decode(to)
}
