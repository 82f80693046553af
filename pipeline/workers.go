package pipeline

import (
	"context"

	"golang.org/x/xerrors"
)

// feed pushes every payload of source into out.
func feed(ctx context.Context, source Source, out chan<- Payload, errCh chan<- error) {
	for source.Next(ctx) {
		select {
		case out <- source.Payload():
		case <-ctx.Done():
			return
		}
	}

	if err := source.Error(); err != nil {
		trySend(errCh, xerrors.Errorf("pipeline source: %w", err))
	}
}

// drain hands every payload arriving on in to sink and releases it.
func drain(ctx context.Context, sink Sink, in <-chan Payload, errCh chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, open := <-in:
			if !open {
				return
			}
			if err := sink.Consume(ctx, payload); err != nil {
				trySend(errCh, xerrors.Errorf("pipeline sink: %w", err))
			}
			payload.MarkAsProcessed()
		}
	}
}

// trySend reports err unless the error channel is already full.
func trySend(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}
