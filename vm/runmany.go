package vm

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunMany starts several independently-owned machines concurrently
// and waits for all of them to finish, returning the first error
// encountered (if any). Each machine is still single-threaded
// internally per §5 — this only parallelizes across machines, which
// §5 explicitly allows ("Multiple independent machines may coexist").
//
// ctx cancellation does not stop an in-flight machine (the core has no
// intrinsic cancellation point per §5); it only stops RunMany from
// waiting on machines that haven't started yet.
func RunMany(ctx context.Context, machines ...*Machine) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range machines {
		m := m
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return m.Start()
		})
	}
	return g.Wait()
}
