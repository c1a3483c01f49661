package gol

// Delta is the staged change for one cell, decided during compute and written during apply.
type Delta uint8

const (
	NoChange Delta = iota
	Kill
	Resurrect
)

func (d Delta) String() string {
	switch d {
	case Kill:
		return "Kill"
	case Resurrect:
		return "Resurrect"
	default:
		return "NoChange"
	}
}

// Offsets of the eight surrounding cells
var surrounding = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Get positions of eight surrounding cells, wrapping rows and columns independently
func (b *Board) getSurrounding(row, col int) [8]int {
	var indices [8]int
	for i, offset := range surrounding {
		r := (row + offset[0] + b.rows) % b.rows
		c := (col + offset[1] + b.cols) % b.cols
		indices[i] = r*b.cols + c
	}
	return indices
}

// LiveNeighbours counts the live cells around index on the torus.
// On boards narrower than three cells some neighbours coincide and are counted once per offset.
func LiveNeighbours(b *Board, index int) int {
	count := 0
	for _, neighbour := range b.getSurrounding(index/b.cols, index%b.cols) {
		if b.cells[neighbour] == Alive {
			count++
		}
	}
	return count
}

// NextState applies the Conway transition to a cell with n live neighbours.
func NextState(state State, n int) State {
	if state == Alive {
		switch n {
		case 2, 3:
			return Alive
		default:
			// Underpopulation or overpopulation
			return Dead
		}
	}
	if n == 3 {
		return Alive
	}
	return Dead
}

// Decide returns the change needed to move the cell at index to the next generation.
func Decide(b *Board, index int) Delta {
	current := b.cells[index]
	next := NextState(current, LiveNeighbours(b, index))
	switch {
	case current == next:
		return NoChange
	case next == Dead:
		return Kill
	default:
		return Resurrect
	}
}
