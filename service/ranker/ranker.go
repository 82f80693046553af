package ranker

import (
	"context"

	"github.com/Ahmed-Sermani/go-pagerank/graph/store/memory"
	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"github.com/Ahmed-Sermani/go-pagerank/pipeline/runners"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Service periodically snapshots the graph, ranks its nodes and persists the
// resulting scores.
type Service struct {
	cfg    Config
	writer *pipeline.Pipeline
}

// NewService creates a new ranker service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker service: config validation failed: %w", err)
	}

	return &Service{
		cfg: cfg,
		writer: pipeline.New(
			runners.FixedWorkerPool(&scoreWriter{scoreAPI: cfg.ScoreAPI}, cfg.ScoreWriters),
		),
	}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "ranker" }

// Run implements service.Service
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithField("update_interval", svc.cfg.UpdateInterval.String()).Info("starting service")
	defer svc.cfg.Logger.Info("stopped service")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
			if err := svc.UpdateScores(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				// Unrankable graphs are retried on the next tick.
				if xerrors.Is(err, pagerank.ErrNotConverged) || xerrors.Is(err, pagerank.ErrInvalidDistribution) {
					svc.cfg.Logger.WithError(err).Warn("skipping score update")
					continue
				}
				return err
			}
		}
	}
}

// UpdateScores runs a single ranking pass: it snapshots the graph, computes
// the PageRank scores and writes them through the score API.
func (svc *Service) UpdateScores(ctx context.Context) error {
	runID := uuid.New()
	logger := svc.cfg.Logger.WithField("run_id", runID.String())
	tick := svc.cfg.Clock.Now()

	g, err := memory.Snapshot(svc.cfg.GraphAPI)
	if err != nil {
		return xerrors.Errorf("update scores: %w", err)
	}

	res, err := pagerank.Run(g, *svc.cfg.PageRank)
	if err != nil {
		return xerrors.Errorf("update scores: %w", err)
	}

	src := &scoreSource{runID: runID, nodes: g.Nodes(), scores: res.Scores}
	sink := new(countingSink)
	if err = svc.writer.Process(ctx, src, sink); err != nil {
		return xerrors.Errorf("update scores: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return xerrors.Errorf("update scores: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"nodes":      g.NumNodes(),
		"edges":      g.NumEdges(),
		"scores":     sink.count,
		"iterations": res.Iterations,
		"l1_err":     res.Err,
		"duration":   svc.cfg.Clock.Now().Sub(tick).String(),
	}).Info("completed score update")
	return nil
}
