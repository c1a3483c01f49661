package gol

import (
	"fmt"
	"io"
)

type phase uint8

const (
	phaseCompute phase = iota
	phaseApply
	phaseReport
	phaseDiagnostics
)

func (ph phase) String() string {
	switch ph {
	case phaseCompute:
		return "compute"
	case phaseApply:
		return "apply"
	case phaseReport:
		return "report"
	default:
		return "diagnostics"
	}
}

type worker struct {
	partition   Partition
	board       *Board    // Shared by all workers, written only inside partition
	barrier     *Barrier  // Shared rendezvous sized to the number of workers
	iterations  int       // Number of generations to evaluate
	reporter    Reporter  // Non-nil for worker 0 only
	diagnostics io.Writer // Non-nil when partition printing is enabled
	staging     []Delta   // Changes for own cells, indexed from the first cell of the partition
	trace       func(worker int, ph phase, iteration int)
}

func newWorker(partition Partition, board *Board, barrier *Barrier, iterations int) *worker {
	return &worker{
		partition:  partition,
		board:      board,
		barrier:    barrier,
		iterations: iterations,
		staging:    make([]Delta, partition.Rows()*board.cols),
	}
}

// run evaluates every iteration for the worker's rows.
// Each iteration crosses four gates:
//
//	S1 generation committed -> compute -> S2 -> apply -> S3 -> report -> S4
//
// Compute only reads the board and apply only writes own rows, so the gates alone
// keep readers of generation N away from writers of generation N+1.
func (w *worker) run() error {
	first := w.partition.RowStart * w.board.cols
	last := (w.partition.RowEnd + 1) * w.board.cols
	for iteration := 0; iteration != w.iterations; iteration++ {
		// S1
		if err := w.barrier.Wait(); err != nil {
			return err
		}

		// Compute deltas from the committed generation
		for i := first; i != last; i++ {
			w.staging[i-first] = Decide(w.board, i)
		}
		w.record(phaseCompute, iteration)
		// S2
		if err := w.barrier.Wait(); err != nil {
			return err
		}

		// Apply deltas to own rows
		cells := w.board.cells[first:last]
		for i, delta := range w.staging {
			switch delta {
			case Kill:
				cells[i] = Dead
			case Resurrect:
				cells[i] = Alive
			}
		}
		w.record(phaseApply, iteration)
		// S3
		if err := w.barrier.Wait(); err != nil {
			return err
		}

		// Every apply of this iteration happened before S3, so the board is a whole generation
		if w.reporter != nil {
			if err := w.reporter.Report(iteration, w.board); err != nil {
				return fmt.Errorf("report iteration %d: %w", iteration, err)
			}
			w.record(phaseReport, iteration)
		}
		// S4
		if err := w.barrier.Wait(); err != nil {
			return err
		}
	}

	// Wait until every worker left the loop before printing diagnostics
	if err := w.barrier.Wait(); err != nil {
		return err
	}
	if w.diagnostics != nil {
		if _, err := fmt.Fprintln(w.diagnostics, w.partition); err != nil {
			return fmt.Errorf("print partition: %w", err)
		}
		w.record(phaseDiagnostics, w.iterations)
	}
	return w.barrier.Wait()
}

func (w *worker) record(ph phase, iteration int) {
	if w.trace != nil {
		w.trace(w.partition.Worker, ph, iteration)
	}
}
