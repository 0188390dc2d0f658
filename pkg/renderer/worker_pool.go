package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// workerPool runs one task per tile on at most numWorkers goroutines
type workerPool struct {
	numWorkers int
}

// newWorkerPool creates a pool; a non-positive size uses every CPU
func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &workerPool{numWorkers: numWorkers}
}

// run renders every tile and calls onDone on the calling goroutine as each
// tile finishes. It returns once all tasks have completed; the first task
// error is returned.
func (wp *workerPool) run(tiles []*Tile, render func(*Tile) error, onDone func(*Tile)) error {
	var group errgroup.Group
	group.SetLimit(wp.numWorkers)

	finished := make(chan *Tile, len(tiles))
	var waitErr error

	go func() {
		for _, tile := range tiles {
			tile := tile
			group.Go(func() error {
				if err := render(tile); err != nil {
					return err
				}
				finished <- tile
				return nil
			})
		}
		waitErr = group.Wait()
		close(finished)
	}()

	for tile := range finished {
		if onDone != nil {
			onDone(tile)
		}
	}
	return waitErr
}
