/*
   Reads and writes graphs in a whitespace separated edge list format:

       # comment
       src dst [weight]
       node

   A line with a single token declares a node without adding edges.
*/
package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"golang.org/x/xerrors"
)

// ErrSyntax is returned for lines that cannot be parsed.
var ErrSyntax = xerrors.New("edge list syntax error")

// Options controls how an edge list is turned into a graph.
type Options struct {
	// Undirected expands every edge into two opposing directed edges.
	Undirected bool

	// WeightKey is the attribute that receives the optional third column.
	// Defaults to "weight".
	WeightKey string
}

// Read parses an edge list into a new in-memory graph. Nodes are added in
// order of first appearance.
func Read(r io.Reader, opts Options) (*memory.InMemoryGraph, error) {
	if opts.WeightKey == "" {
		opts.WeightKey = "weight"
	}

	var (
		g       = memory.NewInMemoryGraph()
		scanner = bufio.NewScanner(r)
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			if err := g.UpsertNode(fields[0]); err != nil {
				return nil, err
			}
			continue
		case 2, 3:
		default:
			return nil, xerrors.Errorf("line %d: expected 1 to 3 fields, got %d: %w", lineNo, len(fields), ErrSyntax)
		}

		var attrs map[string]float64
		if len(fields) == 3 {
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, xerrors.Errorf("line %d: invalid weight %q: %w", lineNo, fields[2], ErrSyntax)
			}
			attrs = map[string]float64{opts.WeightKey: w}
		}

		if err := addEdge(g, fields[0], fields[1], attrs, opts.Undirected); err != nil {
			return nil, xerrors.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("read edge list: %w", err)
	}
	return g, nil
}

func addEdge(g *memory.InMemoryGraph, src, dst string, attrs map[string]float64, undirected bool) error {
	if undirected {
		return g.AddUndirectedEdge(src, dst, attrs)
	}
	if err := g.UpsertNode(src); err != nil {
		return err
	}
	if err := g.UpsertNode(dst); err != nil {
		return err
	}
	return g.UpsertEdge(&graph.Edge{Src: src, Dst: dst, Attrs: attrs})
}

// Write serializes s with one declaration line per node, in store order,
// followed by every directed edge. Reading the output back yields the same
// node and neighbor order. The weight column is only written for edges
// carrying the weightKey attribute.
func Write(w io.Writer, s graph.Store, weightKey string) error {
	bw := bufio.NewWriter(w)

	nodeIt, err := s.AllNodes()
	if err != nil {
		return xerrors.Errorf("write edge list: %w", err)
	}
	for nodeIt.Next() {
		if _, err = fmt.Fprintln(bw, nodeIt.Node()); err != nil {
			_ = nodeIt.Close()
			return xerrors.Errorf("write edge list: %w", err)
		}
	}
	if err = nodeIt.Error(); err != nil {
		_ = nodeIt.Close()
		return xerrors.Errorf("write edge list: %w", err)
	}
	if err = nodeIt.Close(); err != nil {
		return xerrors.Errorf("write edge list: %w", err)
	}

	edgeIt, err := s.AllEdges()
	if err != nil {
		return xerrors.Errorf("write edge list: %w", err)
	}
	defer func() { _ = edgeIt.Close() }()
	for edgeIt.Next() {
		e := edgeIt.Edge()
		if wv, ok := e.Attrs[weightKey]; ok && weightKey != "" {
			_, err = fmt.Fprintf(bw, "%s %s %s\n", e.Src, e.Dst, strconv.FormatFloat(wv, 'g', -1, 64))
		} else {
			_, err = fmt.Fprintf(bw, "%s %s\n", e.Src, e.Dst)
		}
		if err != nil {
			return xerrors.Errorf("write edge list: %w", err)
		}
	}
	if err = edgeIt.Error(); err != nil {
		return xerrors.Errorf("write edge list: %w", err)
	}
	return bw.Flush()
}
