package cdb

import (
	"database/sql"
	"encoding/json"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

var _ graph.Store = (*CockroachDBGraph)(nil)

const (
	schemaQuery = `
  CREATE TABLE IF NOT EXISTS nodes (
    id  TEXT PRIMARY KEY,
    seq BIGSERIAL
  );
  CREATE TABLE IF NOT EXISTS edges (
    src   TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    dst   TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    attrs JSONB NOT NULL DEFAULT '{}',
    seq   BIGSERIAL,
    PRIMARY KEY (src, dst)
  );
  `
	upsertNodeQuery = `
  INSERT INTO nodes (id) VALUES ($1)
  ON CONFLICT (id) DO NOTHING
  `
	hasNodeQuery = `
  SELECT 1 FROM nodes WHERE id=$1
  `
	upsertEdgeQuery = `
  INSERT INTO edges (src, dst, attrs) VALUES ($1, $2, $3)
  ON CONFLICT (src, dst) DO UPDATE SET attrs=EXCLUDED.attrs
  `
	removeNodeQuery = `
  DELETE FROM nodes WHERE id=$1
  `
	iterNodesQuery = `
  SELECT id FROM nodes ORDER BY seq, id
  `
	iterEdgesQuery = `
  SELECT e.src, e.dst, e.attrs FROM edges e
  JOIN nodes n ON n.id = e.src
  ORDER BY n.seq, n.id, e.seq, e.dst
  `
)

// CockroachDBGraph implements graph.Store on top of CockroachDB or any
// PostgreSQL-compatible database.
type CockroachDBGraph struct {
	db *sql.DB
}

// NewCockroachDBGraph opens a connection to the database described by dsn
// and makes sure the graph tables exist.
func NewCockroachDBGraph(dsn string) (*CockroachDBGraph, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec(schemaQuery); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("ensure schema: %w", err)
	}
	return &CockroachDBGraph{db}, nil
}

func (c *CockroachDBGraph) Close() error {
	return c.db.Close()
}

func (c *CockroachDBGraph) UpsertNode(id string) error {
	if _, err := c.db.Exec(upsertNodeQuery, id); err != nil {
		return xerrors.Errorf("upsert node: %w", err)
	}
	return nil
}

func (c *CockroachDBGraph) HasNode(id string) (bool, error) {
	var one int
	if err := c.db.QueryRow(hasNodeQuery, id).Scan(&one); err != nil {
		if xerrors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, xerrors.Errorf("has node: %w", err)
	}
	return true, nil
}

func (c *CockroachDBGraph) UpsertEdge(edge *graph.Edge) error {
	attrs, err := encodeAttrs(edge.Attrs)
	if err != nil {
		return xerrors.Errorf("upsert edge: %w", err)
	}

	if _, err = c.db.Exec(upsertEdgeQuery, edge.Src, edge.Dst, attrs); err != nil {
		if isForeignKeyError(err) {
			err = graph.ErrUnknownEdgeNodes
		}
		return xerrors.Errorf("upsert edge: %w", err)
	}
	return nil
}

func (c *CockroachDBGraph) RemoveNode(id string) error {
	res, err := c.db.Exec(removeNodeQuery, id)
	if err != nil {
		return xerrors.Errorf("remove node: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return xerrors.Errorf("remove node: %w", err)
	} else if affected == 0 {
		return xerrors.Errorf("remove node %q: %w", id, graph.ErrNotFound)
	}
	return nil
}

func (c *CockroachDBGraph) AllNodes() (graph.NodeIterator, error) {
	rows, err := c.db.Query(iterNodesQuery)
	if err != nil {
		return nil, xerrors.Errorf("nodes: %w", err)
	}
	return &nodeIterator{rows: rows}, nil
}

func (c *CockroachDBGraph) AllEdges() (graph.EdgeIterator, error) {
	rows, err := c.db.Query(iterEdgesQuery)
	if err != nil {
		return nil, xerrors.Errorf("edges: %w", err)
	}
	return &edgeIterator{rows: rows}, nil
}

func isForeignKeyError(err error) bool {
	var pqErr *pq.Error
	if !xerrors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code.Name() == "foreign_key_violation"
}

func encodeAttrs(attrs map[string]float64) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	buf, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func decodeAttrs(raw []byte) (map[string]float64, error) {
	attrs := make(map[string]float64)
	if len(raw) == 0 {
		return attrs, nil
	}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}
