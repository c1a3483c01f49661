package gol

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

var ErrWorkerFailed = errors.New("simulation worker failed")

// Run evolves cfg for cfg.Iterations generations using p.Threads workers.
// Validation happens before any goroutine is started; once workers are running the
// first failure of any of them aborts the whole run.
func Run(cfg Config, p Params) (Result, error) {

	// Validate before spawning anything
	board, err := NewBoardFromCells(cfg.Rows, cfg.Cols, cfg.Alive)
	if err != nil {
		return Result{}, err
	}
	if cfg.Iterations < 0 {
		return Result{}, fmt.Errorf("negative iteration count %d", cfg.Iterations)
	}
	partitions, err := Partitions(cfg.Rows, p.Threads)
	if err != nil {
		return Result{}, err
	}
	barrier, err := NewBarrier(p.Threads)
	if err != nil {
		return Result{}, err
	}

	// Create workers
	var diagnostics io.Writer
	if p.PrintPartitions {
		out := p.Diagnostics
		if out == nil {
			out = os.Stdout
		}
		diagnostics = &lineWriter{w: out}
	}
	workers := make([]*worker, len(partitions))
	for i, partition := range partitions {
		workers[i] = newWorker(partition, board, barrier, cfg.Iterations)
		workers[i].diagnostics = diagnostics
		workers[i].trace = p.trace
	}
	workers[0].reporter = p.Reporter

	// Board is owned by the workers from here until Wait returns
	start := time.Now()
	var group errgroup.Group
	for _, w := range workers {
		w := w
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d panicked: %v", w.partition.Worker, r)
				}
				if err != nil {
					barrier.Break(err)
				}
			}()
			return w.run()
		})
	}
	err = group.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	}
	if err := barrier.Close(); err != nil {
		return Result{}, err
	}

	result := Result{
		Board:      board,
		Elapsed:    elapsed,
		Partitions: partitions,
		Iterations: cfg.Iterations,
	}

	// Write file
	if p.ImageDir != "" {
		path, err := writeImage(p.ImageDir, board, cfg.Iterations)
		if err != nil {
			return result, err
		}
		result.ImagePath = path
		log.Printf("Final board written to %s", path)
	}
	return result, nil
}

// lineWriter serialises whole writes from several workers onto one writer.
type lineWriter struct {
	mutex sync.Mutex
	w     io.Writer
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.mutex.Lock()
	defer lw.mutex.Unlock()
	return lw.w.Write(p)
}
