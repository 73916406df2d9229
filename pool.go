package clipmap

import "github.com/gogpu/clipmap/internal/parallel"

// WorkerPool is a work-stealing fork-join pool for the data-parallel
// helper tasks spec.md §5 describes (smoothing, mipmap generation,
// road carving in package helpers): each parallel region operates on a
// disjoint index range of a single array, so no locks are required, and
// the caller joins before continuing. It is never used by
// [ClipmapUpdater], which is cooperative single-threaded per spec.md §5
// and is the only thing allowed to call a [RasterBackend].
type WorkerPool = parallel.WorkerPool

// NewWorkerPool creates a pool with the given number of workers (0 or
// negative uses GOMAXPROCS).
func NewWorkerPool(workers int) *WorkerPool {
	return parallel.NewWorkerPool(workers)
}
