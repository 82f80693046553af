/*
   StageRunner implementations for the pipeline package.
*/
package runners

import (
	"context"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
	"golang.org/x/xerrors"
)

type fifo struct {
	proc pipeline.Processor
}

// FIFO returns a StageRunner that processes payloads one at a time, in the
// order they arrive.
func FIFO(proc pipeline.Processor) pipeline.StageRunner {
	return fifo{proc: proc}
}

func (r fifo) Run(ctx context.Context, params pipeline.StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, open := <-params.Input():
			if !open {
				return
			}
			out, ok := r.process(ctx, params, in)
			if !ok {
				continue
			}
			select {
			case params.Output() <- out:
			case <-ctx.Done():
				return
			}
		}
	}
}

// process runs the processor on in. It reports false when the payload
// was dropped or failed, in which case it has already been released.
func (r fifo) process(ctx context.Context, params pipeline.StageParams, in pipeline.Payload) (pipeline.Payload, bool) {
	out, err := r.proc.Process(ctx, in)
	if err != nil {
		wErr := xerrors.Errorf("pipeline stage %d: %w", params.StageIndex(), err)
		select {
		case params.Error() <- wErr:
		default: // error channel is full.
		}
		in.MarkAsProcessed()
		return nil, false
	}
	if out == nil {
		in.MarkAsProcessed()
		return nil, false
	}
	return out, true
}
