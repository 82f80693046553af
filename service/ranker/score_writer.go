package ranker

import (
	"context"
	"sync"

	"github.com/Ahmed-Sermani/go-pagerank/pagerank"
	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"github.com/Ahmed-Sermani/go-pagerank/scores"
	"github.com/google/uuid"
)

var (
	_ pipeline.Payload   = (*scorePayload)(nil)
	_ pipeline.Source    = (*scoreSource)(nil)
	_ pipeline.Processor = (*scoreWriter)(nil)

	payloadPool = sync.Pool{
		New: func() any { return new(scorePayload) },
	}
)

type scorePayload struct {
	RunID  uuid.UUID
	NodeID string
	Value  float64
}

func (p *scorePayload) Clone() pipeline.Payload {
	newp := payloadPool.Get().(*scorePayload)
	*newp = *p
	return newp
}

// MarkAsProcessed returns the payload to the pool.
func (p *scorePayload) MarkAsProcessed() {
	*p = scorePayload{}
	payloadPool.Put(p)
}

// scoreSource emits one payload per node, in graph order.
type scoreSource struct {
	runID  uuid.UUID
	nodes  []string
	scores pagerank.Scores

	idx int
}

func (s *scoreSource) Next(ctx context.Context) bool {
	if s.idx >= len(s.nodes) || ctx.Err() != nil {
		return false
	}
	s.idx++
	return true
}

func (s *scoreSource) Payload() pipeline.Payload {
	id := s.nodes[s.idx-1]
	p := payloadPool.Get().(*scorePayload)
	p.RunID = s.runID
	p.NodeID = id
	p.Value = s.scores[id]
	return p
}

func (s *scoreSource) Error() error { return nil }

// scoreWriter persists each payload and forwards it to the sink.
type scoreWriter struct {
	scoreAPI ScoreAPI
}

func (w *scoreWriter) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*scorePayload)
	err := w.scoreAPI.UpdateScore(&scores.Score{
		NodeID: payload.NodeID,
		Value:  payload.Value,
		RunID:  payload.RunID,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// countingSink counts the scores that were written. The pipeline feeds the
// sink from a single goroutine.
type countingSink struct {
	count int
}

func (s *countingSink) Consume(context.Context, pipeline.Payload) error {
	s.count++
	return nil
}
