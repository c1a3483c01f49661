package sdl

import (
	"log"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/torusgol/gol"
)

// Reporter hands a copy of every generation to Run.
type Reporter struct {
	Frames chan<- *gol.Board
}

// NewReporter returns a reporter together with the channel Run should consume.
// The caller closes the channel once the simulation has returned.
func NewReporter(buffer int) (*Reporter, chan *gol.Board) {
	frames := make(chan *gol.Board, buffer)
	return &Reporter{Frames: frames}, frames
}

func (r *Reporter) Report(iteration int, board *gol.Board) error {
	r.Frames <- board.Clone()
	return nil
}

// Run draws frames until the channel is closed. It must run on the main OS thread.
// Once the window is closed by the user, remaining frames are drained without drawing
// so the simulation is never blocked.
func Run(frames <-chan *gol.Board, rows, cols int) error {
	window, err := NewWindow(rows, cols)
	if err != nil {
		// Keep the producer moving even without a window
		for range frames {
		}
		return err
	}
	open := true
	defer func() {
		if open {
			window.Destroy()
		}
	}()

	var drawErr error
	for board := range frames {
		if !open {
			continue
		}
		if quit := pollQuit(); quit {
			window.Destroy()
			open = false
			log.Print("Window closed, simulation continues")
			continue
		}
		if err := window.Draw(board); err != nil {
			drawErr = err
			window.Destroy()
			open = false
		}
	}

	// Keep the last generation on screen until the user closes the window
	for open {
		if pollQuit() {
			break
		}
		sdl.Delay(16)
	}
	return drawErr
}

// Drain pending events, reporting whether the user asked to close the window
func pollQuit() bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && (e.Keysym.Sym == sdl.K_ESCAPE || e.Keysym.Sym == sdl.K_q) {
				quit = true
			}
		}
	}
	return quit
}
