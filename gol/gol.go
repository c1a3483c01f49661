package gol

import (
	"io"
	"time"

	"uk.ac.bris.cs/torusgol/util"
)

// Config is the immutable description of a run: board size, number of iterations
// and the cells alive in generation zero.
type Config struct {
	Rows       int
	Cols       int
	Iterations int
	Declared   int         // live cell count announced by the configuration header
	Alive      []util.Cell // X is the column, Y is the row
}

// Params provides the details of how to execute a Config.
type Params struct {
	Threads         int       // Number of workers, 1 <= Threads <= Rows
	Reporter        Reporter  // Called by worker 0 after every generation is applied (nil to disable)
	PrintPartitions bool      // Each worker prints its row range once all iterations are done
	Diagnostics     io.Writer // Destination of partition lines (defaults to os.Stdout)
	ImageDir        string    // Write the final board as a pgm image into this directory ("" to disable)

	trace func(worker int, ph phase, iteration int)
}

// Result of a completed run
type Result struct {
	Board      *Board
	Elapsed    time.Duration
	Partitions []Partition
	Iterations int
	ImagePath  string
}
