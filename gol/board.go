package gol

import (
	"errors"
	"fmt"
	"strings"

	"uk.ac.bris.cs/torusgol/util"
)

// State of a single cell
type State uint8

const (
	Dead State = iota
	Alive
)

// MaxCells bounds rows*cols so a bad header cannot request an unbounded allocation.
// A board this size takes 256 MiB, plus the same again for the workers' staging deltas.
const MaxCells = 1 << 28

var ErrInvalidDimensions = errors.New("invalid board dimensions")

// CheckDimensions rejects non-positive sizes and boards above MaxCells cells.
func CheckDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d is not positive", ErrInvalidDimensions, rows, cols)
	}
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimensions, rows, cols, MaxCells)
	}
	return nil
}

// Board is the shared toroidal grid, stored row-major in one contiguous buffer.
// During a run every worker reads any cell but writes only the rows of its own
// partition, and only between the compute and apply gates.
type Board struct {
	rows  int
	cols  int
	cells []State
}

// Make board with every cell dead
func NewBoard(rows, cols int) (*Board, error) {
	if err := CheckDimensions(rows, cols); err != nil {
		return nil, err
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]State, rows*cols),
	}, nil
}

// Make board and set the given cells alive
// Cells outside the board are rejected, the config layer decides whether to drop them first
func NewBoardFromCells(rows, cols int, alive []util.Cell) (*Board, error) {
	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	for _, cell := range alive {
		if !board.Contains(cell.Y, cell.X) {
			return nil, fmt.Errorf("cell %v outside %dx%d board", cell, rows, cols)
		}
		board.cells[board.Index(cell.Y, cell.X)] = Alive
	}
	return board, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Index converts a (row, col) pair to its offset in the buffer.
func (b *Board) Index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) Contains(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) Get(row, col int) State {
	return b.cells[b.Index(row, col)]
}

func (b *Board) Set(row, col int, state State) {
	b.cells[b.Index(row, col)] = state
}

func (b *Board) At(index int) State {
	return b.cells[index]
}

// Count live cells
func (b *Board) AliveCount() int {
	count := 0
	for _, state := range b.cells {
		if state == Alive {
			count++
		}
	}
	return count
}

// Collect live cells in row-major order
func (b *Board) AliveCells() []util.Cell {
	cells := make([]util.Cell, 0, b.AliveCount())
	for i, state := range b.cells {
		if state == Alive {
			cells = append(cells, util.Cell{X: i % b.cols, Y: i / b.cols})
		}
	}
	return cells
}

func (b *Board) Clone() *Board {
	copied := &Board{rows: b.rows, cols: b.cols, cells: make([]State, len(b.cells))}
	copy(copied.cells, b.cells)
	return copied
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Pixels renders the board as one byte per cell, 255 for alive and 0 for dead.
func (b *Board) Pixels() []byte {
	pixels := make([]byte, len(b.cells))
	for i, state := range b.cells {
		if state == Alive {
			pixels[i] = 255
		}
	}
	return pixels
}

// String draws the board with '@' for alive and '-' for dead cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (2*b.cols + 1))
	for row := 0; row != b.rows; row++ {
		for col := 0; col != b.cols; col++ {
			if b.Get(row, col) == Alive {
				sb.WriteString("@ ")
			} else {
				sb.WriteString("- ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
