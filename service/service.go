/*
   Long-running services and a group that runs them together.
*/
package service

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"
)

// Service is implemented by long-running components such as the ranker.
type Service interface {
	Name() string

	// Run executes the service and blocks until the context gets cancelled
	// or an error occurs.
	Run(context.Context) error
}

// ServiceGroup is a list of Service instances that can be executed in
// parallel.
type ServiceGroup []Service

// Run starts every service of the group with a shared context and blocks
// until all of them have returned. The first failing service cancels the
// others. Errors are reported prefixed with the service name.
func (g ServiceGroup) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		err error
	)
	for _, svc := range g {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()
			svcErr := svc.Run(runCtx)
			if svcErr == nil {
				return
			}
			mu.Lock()
			err = multierror.Append(err, xerrors.Errorf("%s: %w", svc.Name(), svcErr))
			mu.Unlock()
			cancel()
		}(svc)
	}

	wg.Wait()
	return err
}
