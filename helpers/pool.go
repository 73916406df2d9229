package helpers

import (
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/clipmap"
)

// parallelRows runs fn(y) for each y in [0,rows), scheduled onto pool's
// worker goroutines and joined with an errgroup so the first error any
// row returns aborts the remaining rows' results (they still run — the
// pool has already committed to them — but their errors are discarded
// once the first is captured) and is returned to the caller.
func parallelRows(pool *clipmap.WorkerPool, rows int, fn func(y int) error) error {
	if rows <= 0 {
		return nil
	}
	if pool == nil {
		pool = clipmap.NewWorkerPool(1)
	}

	g := new(errgroup.Group)
	g.SetLimit(pool.Workers())
	for y := 0; y < rows; y++ {
		y := y
		g.Go(func() error {
			done := make(chan error, 1)
			pool.Submit(func() { done <- fn(y) })
			return <-done
		})
	}
	return g.Wait()
}
