// Package sdl shows generations in an SDL window.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/torusgol/gol"
)

const maxWindowSide = 1024

// Window draws boards of a fixed size, one square per cell.
type Window struct {
	Rows, Cols int
	window     *sdl.Window
	renderer   *sdl.Renderer
	rects      []sdl.Rect
}

// Pick the largest integer cell size that keeps the window within maxWindowSide
func scale(rows, cols int) int32 {
	side := max(rows, cols)
	if side >= maxWindowSide {
		return 1
	}
	return int32(maxWindowSide / side)
}

// NewWindow opens a window for rows x cols boards. Must be called on the main OS thread.
func NewWindow(rows, cols int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	cell := scale(rows, cols)
	window, err := sdl.CreateWindow(fmt.Sprintf("Game of Life %dx%d", cols, rows),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cols)*cell, int32(rows)*cell, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl renderer: %w", err)
	}
	// Board coordinates map straight onto the renderer
	if err := renderer.SetLogicalSize(int32(cols), int32(rows)); err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl logical size: %w", err)
	}
	return &Window{Rows: rows, Cols: cols, window: window, renderer: renderer}, nil
}

// Draw renders board, which must match the window's dimensions.
func (w *Window) Draw(board *gol.Board) error {
	if board.Rows() != w.Rows || board.Cols() != w.Cols {
		return fmt.Errorf("board %dx%d does not fit a %dx%d window", board.Cols(), board.Rows(), w.Cols, w.Rows)
	}
	w.rects = w.rects[:0]
	for _, cell := range board.AliveCells() {
		w.rects = append(w.rects, sdl.Rect{X: int32(cell.X), Y: int32(cell.Y), W: 1, H: 1})
	}

	w.renderer.SetDrawColor(0, 0, 0, 255)
	w.renderer.Clear()
	if len(w.rects) != 0 {
		w.renderer.SetDrawColor(255, 255, 255, 255)
		if err := w.renderer.FillRects(w.rects); err != nil {
			return err
		}
	}
	w.renderer.Present()
	return nil
}

// Destroy closes the window and shuts SDL down.
func (w *Window) Destroy() {
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}
