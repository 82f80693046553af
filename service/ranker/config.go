package ranker

import (
	"io"
	"time"

	"github.com/Ahmed-Sermani/go-pagerank/graph"
	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/go-pagerank/service/ranker GraphAPI,ScoreAPI

// GraphAPI defines the set of API endpoints required by the ranker service
// for reading the graph to be ranked.
type GraphAPI interface {
	AllNodes() (graph.NodeIterator, error)
	AllEdges() (graph.EdgeIterator, error)
}

// ScoreAPI defines the set of API endpoints required by the ranker service
// for persisting computed scores.
type ScoreAPI interface {
	UpdateScore(score *scores.Score) error
}

// Config encapsulates the settings for configuring the ranker service.
type Config struct {
	// An API for reading the graph.
	GraphAPI GraphAPI

	// An API for persisting scores.
	ScoreAPI ScoreAPI

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The time between subsequent ranking passes.
	UpdateInterval time.Duration

	// The number of workers writing scores to the ScoreAPI.
	ScoreWriters int

	// Parameters for the PageRank engine. If not specified,
	// pagerank.DefaultConfig() will be used instead.
	PageRank *pagerank.Config

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.GraphAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("graph API has not been provided"))
	}
	if cfg.ScoreAPI == nil {
		err = multierror.Append(err, xerrors.Errorf("score API has not been provided"))
	}
	if cfg.ScoreWriters <= 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for score writers"))
	}
	if cfg.UpdateInterval <= 0 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for update interval"))
	}
	if cfg.PageRank == nil {
		defCfg := pagerank.DefaultConfig()
		cfg.PageRank = &defCfg
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}
