/*
   A small multi-stage pipeline. Payloads pulled from a Source travel through
   a chain of StageRunners and the survivors are handed to a Sink. The ranker
   uses it to fan score writes out to a pool of workers.
*/
package pipeline

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Payload is a unit of work travelling through the pipeline.
type Payload interface {
	// Clone returns a deep copy of the payload.
	Clone() Payload

	// MarkAsProcessed is called once the payload leaves the pipeline, either
	// through the sink or because a stage dropped it.
	MarkAsProcessed()
}

// Processor transforms a single payload. Returning a nil Payload drops it.
type Processor interface {
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageParams is handed to StageRunner.Run and exposes the channels a stage
// is wired to.
type StageParams interface {
	// StageIndex is the position of the stage in the pipeline.
	StageIndex() int
	Input() <-chan Payload
	Output() chan<- Payload
	// Error accepts errors raised while processing. Writes must not block.
	Error() chan<- error
}

// StageRunner runs one stage of the pipeline. Run returns when its input
// channel is closed or the context is cancelled.
type StageRunner interface {
	Run(context.Context, StageParams)
}

// Source produces the payloads fed into the first stage.
type Source interface {
	// Next advances the source. It returns false when the source is
	// exhausted or failed.
	Next(context.Context) bool
	Payload() Payload
	Error() error
}

// Sink consumes the payloads emitted by the last stage.
type Sink interface {
	Consume(context.Context, Payload) error
}

// Pipeline is an ordered list of stages.
type Pipeline struct {
	stages []StageRunner
}

// New returns a Pipeline that sends every payload through stages in order.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process drains source through the stages into sink. It blocks until the
// source is exhausted, an error is raised or ctx is done, and returns every
// error collected on the way.
//
// Process may be called concurrently with different sources and sinks.
func (p *Pipeline) Process(ctx context.Context, source Source, sink Sink) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// links[i] feeds stage i; the extra link connects the last stage to the
	// sink.
	links := make([]chan Payload, len(p.stages)+1)
	for i := range links {
		links[i] = make(chan Payload)
	}
	errCh := make(chan error, len(p.stages)+2)

	var wg sync.WaitGroup
	wg.Add(len(p.stages) + 2)
	for i, stage := range p.stages {
		go func(i int, stage StageRunner) {
			defer wg.Done()
			stage.Run(ctx, &stageParams{
				index: i,
				in:    links[i],
				out:   links[i+1],
				errCh: errCh,
			})
			close(links[i+1])
		}(i, stage)
	}
	go func() {
		defer wg.Done()
		feed(ctx, source, links[0], errCh)
		close(links[0])
	}()
	go func() {
		defer wg.Done()
		drain(ctx, sink, links[len(links)-1], errCh)
	}()

	go func() {
		wg.Wait()
		close(errCh)
	}()

	var err error
	for stageErr := range errCh {
		err = multierror.Append(err, stageErr)
		cancel()
	}
	return err
}

type stageParams struct {
	index int
	in    <-chan Payload
	out   chan<- Payload
	errCh chan<- error
}

func (sp *stageParams) StageIndex() int        { return sp.index }
func (sp *stageParams) Input() <-chan Payload  { return sp.in }
func (sp *stageParams) Output() chan<- Payload { return sp.out }
func (sp *stageParams) Error() chan<- error    { return sp.errCh }
