// Package worker implements the single-image worker pool (spec C3): N
// workers sharing one tile.Scheduler, each looping Next()+kernel.Apply until
// the image is exhausted. Grounded on the teacher's b_tile_parallel.go /
// c/tile_image_parallel.go goroutine-plus-WaitGroup shape, regeared from
// tile-extraction-with-padding-and-reassembly onto disjoint in-place writes
// into one shared destination raster (spec.md §4.1's tile contract).
package worker

import (
	"sync"
	"time"

	"bmpconv/internal/filter"
	"bmpconv/internal/image"
	"bmpconv/internal/kernel"
	"bmpconv/internal/tile"
)

// RunSingleImage spawns n workers that partition src under mode/block and
// apply f, writing into a freshly allocated destination raster of the same
// dimensions. It returns the result and the wall-clock spent processing
// (spawn to join), per spec.md §4.3. n must be >= 1; n == 1 runs the
// scheduler loop directly without spawning, as the spec allows.
func RunSingleImage(n int, src *image.Raster, f *filter.Filter, mode tile.Mode, block int) (*image.Raster, time.Duration) {
	dst := image.NewRaster(src.W, src.H)
	sched := tile.NewScheduler(mode, block, src.W, src.H)

	start := time.Now()
	if n <= 1 {
		runWorker(sched, src, dst, f)
		return dst, time.Since(start)
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			runWorker(sched, src, dst, f)
		}()
	}
	wg.Wait()

	return dst, time.Since(start)
}

func runWorker(sched *tile.Scheduler, src, dst *image.Raster, f *filter.Filter) {
	for {
		t, ok := sched.Next()
		if !ok {
			return
		}
		kernel.Apply(t, src, dst, f)
	}
}
