package cdb

import (
	"database/sql"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"golang.org/x/xerrors"
)

type nodeIterator struct {
	rows        *sql.Rows
	lastErr     error
	latchedNode string
}

func (i *nodeIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	if i.lastErr = i.rows.Scan(&i.latchedNode); i.lastErr != nil {
		return false
	}
	return true
}

func (i *nodeIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *nodeIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("node iter: %w", err)
	}
	return nil
}

func (i *nodeIterator) Node() string {
	return i.latchedNode
}

type edgeIterator struct {
	rows        *sql.Rows
	lastErr     error
	latchedEdge *graph.Edge
}

func (i *edgeIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	var (
		edge     = &graph.Edge{}
		rawAttrs []byte
	)
	if i.lastErr = i.rows.Scan(&edge.Src, &edge.Dst, &rawAttrs); i.lastErr != nil {
		return false
	}
	if edge.Attrs, i.lastErr = decodeAttrs(rawAttrs); i.lastErr != nil {
		i.lastErr = xerrors.Errorf("edge %q -> %q: decode attributes: %w", edge.Src, edge.Dst, i.lastErr)
		return false
	}
	i.latchedEdge = edge
	return true
}

func (i *edgeIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *edgeIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("edge iter: %w", err)
	}
	return nil
}

func (i *edgeIterator) Edge() *graph.Edge {
	return i.latchedEdge
}
