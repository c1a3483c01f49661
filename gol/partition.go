package gol

import (
	"errors"
	"fmt"
)

var ErrInvalidWorkerCount = errors.New("worker count must be between 1 and the number of rows")

// Partition is the inclusive row range owned by one worker for the whole run.
type Partition struct {
	Worker   int
	RowStart int
	RowEnd   int
}

// Number of rows in partition
func (p Partition) Rows() int {
	return p.RowEnd - p.RowStart + 1
}

// Contains reports whether row belongs to the partition.
func (p Partition) Contains(row int) bool {
	return p.RowStart <= row && row <= p.RowEnd
}

func (p Partition) String() string {
	return fmt.Sprintf("Thread %d:\t %d:%d\t(%d)", p.Worker, p.RowStart, p.RowEnd, p.Rows())
}

// Partitions divides rows into contiguous ranges, one per worker.
// The first rows%workers partitions take one extra row each.
func Partitions(rows, workers int) ([]Partition, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidDimensions, rows)
	}
	if workers < 1 || workers > rows {
		return nil, fmt.Errorf("%w: %d workers for %d rows", ErrInvalidWorkerCount, workers, rows)
	}
	base_span := rows / workers
	remainder := rows % workers
	partitions := make([]Partition, workers)
	row_start := 0
	for i := 0; i != workers; i++ {
		span := base_span
		if i < remainder {
			span++
		}
		partitions[i] = Partition{Worker: i, RowStart: row_start, RowEnd: row_start + span - 1}
		row_start += span
	}
	return partitions, nil
}
