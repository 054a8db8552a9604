// Package pipeline implements the multi-reader/worker/writer pipeline (spec
// C5): R readers loading files into a bounded input queue, W workers pulling
// tiles through the shared kernel, T writers draining a bounded output queue.
// Grounded on original_source/src/qmt-mode/threads.c's reader/worker/writer
// thread bodies, restructured from pthread_create/pthread_join plus a
// pthread_barrier_t into goroutines, a sync.WaitGroup per role, and the
// Barrier type in this package.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"bmpconv/internal/bmpio"
	"bmpconv/internal/filter"
	"bmpconv/internal/image"
	"bmpconv/internal/kernel"
	"bmpconv/internal/queue"
	"bmpconv/internal/tile"
	"bmpconv/internal/timinglog"
)

// Config is the subset of run parameters the pipeline driver needs, kept
// separate from internal/config.Config so this package doesn't import the
// CLI layer.
type Config struct {
	Filter       *filter.Filter
	Mode         tile.Mode
	BlockSize    int
	Readers      int
	Workers      int
	Writers      int
	QueueCap     int
	QueueMemCap  int64
	Files        []string
	OutputPrefix string
}

// Driver runs one end-to-end pipeline over Config.Files.
type Driver struct {
	Cfg  Config
	Sink *timinglog.Sink
}

// NewDriver constructs a Driver. sink may be nil, in which case timing
// events are silently discarded.
func NewDriver(cfg Config, sink *timinglog.Sink) *Driver {
	if sink == nil {
		sink = timinglog.Open("", false)
	}
	return &Driver{Cfg: cfg, Sink: sink}
}

// sentinelItem is the termination marker the reader barrier's serial winner
// pushes, one per worker, once every input file has been claimed:
// zero-dimension raster, empty filename. A worker that sees it exits its
// loop without forwarding.
func sentinelItem() queue.Item {
	return queue.Item{Raster: &image.Raster{W: 0, H: 0}, Filename: ""}
}

// poisonItem carries only a filename: pushed by a reader that failed to load
// a file, or by a worker whose kernel pass on that file failed with a
// recoverable AllocationFailure. It still counts toward written_done so the
// pipeline's total-files accounting stays correct, but nothing is persisted
// for it (spec.md §9, reader-load-failure Open Question).
func poisonItem(filename string) queue.Item {
	return queue.Item{Raster: &image.Raster{W: 0, H: 0}, Filename: filename}
}

func isTermination(it queue.Item) bool {
	return it.Raster.Sentinel() && it.Filename == ""
}

func isPoison(it queue.Item) bool {
	return it.Raster.Sentinel() && it.Filename != ""
}

// Run drives one pipeline pass over Cfg.Files to completion. It returns once
// every reader, worker, and writer has exited. ctx is checked cooperatively
// between files/images so Ctrl-C (cmd/bmpconv cancels ctx on SIGINT/SIGTERM)
// stops new work reasonably promptly; it is process-level responsiveness
// layered around the core, not a replacement for the written_done >=
// len(files) termination condition the core loops still use (spec.md §5).
func (d *Driver) Run(ctx context.Context) error {
	cfg := d.Cfg
	total := len(cfg.Files)
	if total == 0 {
		return fmt.Errorf("pipeline: no input files")
	}

	inputQ := queue.New(cfg.QueueCap, cfg.QueueMemCap)
	outputQ := queue.New(cfg.QueueCap, cfg.QueueMemCap)

	var readClaimed atomic.Uint64
	var writtenDone atomic.Uint64
	barrier := NewBarrier(cfg.Readers)

	var readerWG, workerWG, writerWG sync.WaitGroup

	readerWG.Add(cfg.Readers)
	for i := 0; i < cfg.Readers; i++ {
		go func() {
			defer readerWG.Done()
			d.readerLoop(ctx, cfg.Files, &readClaimed, inputQ, barrier, cfg.Workers)
		}()
	}

	workerWG.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer workerWG.Done()
			d.workerLoop(ctx, inputQ, outputQ, &writtenDone, total)
		}()
	}

	writerWG.Add(cfg.Writers)
	for i := 0; i < cfg.Writers; i++ {
		go func() {
			defer writerWG.Done()
			d.writerLoop(outputQ, &writtenDone, total)
		}()
	}

	readerWG.Wait()
	workerWG.Wait()
	writerWG.Wait()
	return nil
}

// readerLoop implements spec.md §4.5's reader body: claim the next file
// index with an atomic fetch-add, load it, push it (or a poison item on
// failure), and repeat until every index is claimed; then wait on the
// reader barrier and, if chosen as the barrier's serial winner, push one
// termination sentinel per worker.
func (d *Driver) readerLoop(ctx context.Context, files []string, readClaimed *atomic.Uint64, inputQ *queue.ImageQueue, barrier *Barrier, workerCount int) {
	total := uint64(len(files))
	for {
		if ctx.Err() != nil {
			break
		}
		i := readClaimed.Add(1) - 1
		if i >= total {
			readClaimed.Add(^uint64(0)) // undo the overshoot, mirrors the C fetch_sub
			break
		}

		path := files[i]
		start := time.Now()
		raster, topDown, err := bmpio.Load(path)
		if err != nil {
			log.Printf("pipeline: reader: %v", err)
			inputQ.Push(poisonItem(path))
			continue
		}
		inputQ.Push(queue.Item{Raster: raster, Filename: path, TopDown: topDown})
		d.Sink.PipelineEvent(timinglog.Reader, time.Since(start).Seconds())
	}

	if barrier.Wait() {
		// A cancelled run still owes the pipeline len(files) accounted
		// items, so written_done's generic exit condition keeps working
		// for every worker and writer: poison the files no reader got to.
		if ctx.Err() != nil {
			for {
				i := readClaimed.Add(1) - 1
				if i >= total {
					readClaimed.Add(^uint64(0))
					break
				}
				inputQ.Push(poisonItem(files[i]))
			}
		}
		for i := 0; i < workerCount; i++ {
			inputQ.Push(sentinelItem())
		}
	}
}

// workerLoop implements spec.md §4.5's worker body: pop an item, exit on the
// termination sentinel, forward a poison item unprocessed, otherwise run the
// full tile.Scheduler + kernel.Apply pass and push the result downstream.
// A recovered kernel.InvariantBreach is re-panicked (process abort); any
// other panic during the kernel pass is treated as an AllocationFailure —
// logged, the file counted done via a poison forward, and the loop
// continues (spec.md §7, AllocationFailure is fatal to the image, not the
// process, in pipeline mode).
func (d *Driver) workerLoop(ctx context.Context, inputQ, outputQ *queue.ImageQueue, writtenDone *atomic.Uint64, total int) {
	sched := tile.NewScheduler(d.Cfg.Mode, d.Cfg.BlockSize, 1, 1)
	for {
		if ctx.Err() != nil && writtenDone.Load() >= uint64(total) {
			return
		}
		item, ok := inputQ.Pop(total, writtenDone)
		if !ok {
			return
		}
		if isTermination(item) {
			return
		}
		if isPoison(item) {
			outputQ.Push(item)
			continue
		}

		start := time.Now()
		dst, err := d.processImage(sched, item)
		if err != nil {
			log.Printf("pipeline: worker: %v", err)
			outputQ.Push(poisonItem(item.Filename))
			continue
		}
		outputQ.Push(queue.Item{Raster: dst, Filename: item.Filename, TopDown: item.TopDown})
		d.Sink.PipelineEvent(timinglog.Worker, time.Since(start).Seconds())
	}
}

func (d *Driver) processImage(sched *tile.Scheduler, item queue.Item) (dst *image.Raster, err error) {
	defer func() {
		if r := recover(); r != nil {
			if breach, ok := r.(kernel.InvariantBreach); ok {
				panic(breach)
			}
			err = fmt.Errorf("recovered panic processing %s: %v", item.Filename, r)
		}
	}()

	dst = image.NewRaster(item.Raster.W, item.Raster.H)
	sched.Reset(item.Raster.W, item.Raster.H)
	for {
		t, ok := sched.Next()
		if !ok {
			break
		}
		kernel.Apply(t, item.Raster, dst, d.Cfg.Filter)
	}
	return dst, nil
}

// writerLoop implements spec.md §4.5's writer body: exit once written_done
// has reached total, otherwise pop-or-exit, persist (poison items are
// counted without a file write), and repeat. On the way out it drains any
// items already sitting in the queue so memory accounting stays correct
// even though the queue itself outlives this call.
func (d *Driver) writerLoop(outputQ *queue.ImageQueue, writtenDone *atomic.Uint64, total int) {
	for {
		if writtenDone.Load() >= uint64(total) {
			d.drainResiduals(outputQ, writtenDone)
			return
		}
		item, ok := outputQ.Pop(total, writtenDone)
		if !ok {
			d.drainResiduals(outputQ, writtenDone)
			return
		}
		d.writeOne(item, writtenDone)
	}
}

func (d *Driver) writeOne(item queue.Item, writtenDone *atomic.Uint64) {
	if isPoison(item) {
		writtenDone.Add(1)
		return
	}

	start := time.Now()
	out := outputPath(d.Cfg.OutputPrefix, item.Filename)
	if err := bmpio.Save(out, item.Raster, item.TopDown); err != nil {
		log.Printf("pipeline: writer: %v", err)
	}
	writtenDone.Add(1)
	d.Sink.PipelineEvent(timinglog.Writer, time.Since(start).Seconds())
}

// drainResiduals pops any items left in q without blocking, so a writer that
// is exiting because written_done reached total still accounts for (and, for
// real images, persists) whatever already arrived in the queue.
func (d *Driver) drainResiduals(q *queue.ImageQueue, writtenDone *atomic.Uint64) {
	for {
		item, ok := q.TryPop()
		if !ok {
			return
		}
		if isTermination(item) {
			continue
		}
		d.writeOne(item, writtenDone)
	}
}

// outputPath implements spec.md §6's pipeline output layout: with a prefix,
// test-img/<prefix>_<input_name>; without one, test-img/<input_name>.
func outputPath(prefix, inputPath string) string {
	name := filepath.Base(inputPath)
	if prefix == "" {
		return filepath.Join("test-img", name)
	}
	return filepath.Join("test-img", prefix+"_"+name)
}
