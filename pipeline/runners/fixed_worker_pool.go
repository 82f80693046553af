package runners

import (
	"context"
	"sync"

	"github.com/Ahmed-Sermani/go-pagerank/pipeline"
)

type fixedWorkerPool struct {
	worker     pipeline.StageRunner
	numWorkers int
}

// FixedWorkerPool returns a StageRunner that runs numWorkers FIFO workers
// sharing the same input and output channels. Output order is not
// preserved.
func FixedWorkerPool(proc pipeline.Processor, numWorkers int) pipeline.StageRunner {
	if numWorkers <= 0 {
		panic("FixedWorkerPool: numWorkers must be greater than 0")
	}
	return &fixedWorkerPool{worker: FIFO(proc), numWorkers: numWorkers}
}

func (p *fixedWorkerPool) Run(ctx context.Context, params pipeline.StageParams) {
	var wg sync.WaitGroup
	wg.Add(p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		go func() {
			defer wg.Done()
			p.worker.Run(ctx, params)
		}()
	}
	wg.Wait()
}
