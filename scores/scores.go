/*
   Persistence of computed PageRank scores so they can be looked up per node
   or listed from the highest score down.
*/
package scores

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

var (
	// ErrNotFound is returned when looking up a node without a score.
	ErrNotFound = xerrors.New("not found")

	// ErrMissingNodeID is returned when attempting to store a score without
	// a node ID.
	ErrMissingNodeID = xerrors.New("score does not specify a node ID")
)

// Score is the PageRank score of a single node.
type Score struct {
	NodeID string
	Value  float64

	// RunID identifies the ranking pass that produced the score.
	RunID uuid.UUID

	// RankedAt is set by the store when the score is written.
	RankedAt time.Time
}

// Iterator is implemented by objects that can paginate ranked scores.
type Iterator interface {
	Close() error
	Next() bool
	Error() error
	Score() *Score

	// TotalCount returns the total number of stored scores.
	TotalCount() uint64
}

// Store is implemented by objects that persist scores.
type Store interface {
	// UpdateScore inserts or replaces the score of a node.
	UpdateScore(score *Score) error

	// FindByID looks up the score of a node.
	FindByID(nodeID string) (*Score, error)

	// Top returns an iterator over all scores ordered by descending value,
	// ties broken by ascending node ID, skipping the first offset entries.
	Top(offset uint64) (Iterator, error)
}
