package gol

import (
	"fmt"
	"io"
	"time"
)

// Reporter presents a committed generation.
// It is only called by worker 0 while every other worker is parked at the report gate,
// so the board must not be retained after Report returns.
type Reporter interface {
	Report(iteration int, board *Board) error
}

// TextReporter prints every generation as a grid of '@' and '-' glyphs.
type TextReporter struct {
	Out   io.Writer
	Delay time.Duration // pause after each frame so the output can be followed
}

func (r *TextReporter) Report(iteration int, board *Board) error {
	if _, err := fmt.Fprintf(r.Out, "DAY %d\n==================\n%s", iteration+1, board); err != nil {
		return err
	}
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}
	return nil
}

// Reporters calls each reporter in order and stops at the first error.
type Reporters []Reporter

func (rs Reporters) Report(iteration int, board *Board) error {
	for _, r := range rs {
		if err := r.Report(iteration, board); err != nil {
			return err
		}
	}
	return nil
}
