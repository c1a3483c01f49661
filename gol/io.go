package gol

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// writePgmImage writes board as a binary pgm file at path.
func writePgmImage(path string, board *Board) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	_, _ = fmt.Fprintf(writer, "P5\n%d %d\n%d\n", board.Cols(), board.Rows(), 255)
	_, _ = writer.Write(board.Pixels())
	if err = writer.Flush(); err != nil {
		return err
	}
	return file.Sync()
}

// writeImage stores board as <dir>/<cols>x<rows>x<iterations>.pgm, creating dir if needed.
func writeImage(dir string, board *Board, iterations int) (string, error) {
	filename := fmt.Sprintf("%dx%dx%d.pgm", board.Cols(), board.Rows(), iterations)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	path := filepath.Join(dir, filename)
	if err := writePgmImage(path, board); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return path, nil
}
