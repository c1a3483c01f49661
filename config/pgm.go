package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"uk.ac.bris.cs/torusgol/gol"
	"uk.ac.bris.cs/torusgol/util"
)

// LoadImage reads a binary pgm image from path; every non-zero pixel is a live cell.
func LoadImage(path string, iterations int) (gol.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return gol.Config{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()
	cfg, err := ParsePGM(file, iterations)
	if err != nil {
		return gol.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParsePGM reads a P5 image with a maxval of 255.
func ParsePGM(r io.Reader, iterations int) (gol.Config, error) {
	if iterations < 0 {
		return gol.Config{}, fmt.Errorf("%w: negative iteration count %d", ErrMalformed, iterations)
	}
	reader := bufio.NewReader(r)

	// Header fields: magic, width, height, maxval
	fields := make([]string, 0, 4)
	for len(fields) != 4 {
		field, err := readField(reader)
		if err != nil {
			return gol.Config{}, fmt.Errorf("%w: pgm header: %w", ErrMalformed, err)
		}
		fields = append(fields, field)
	}

	if fields[0] != "P5" {
		return gol.Config{}, fmt.Errorf("%w: not a pgm file", ErrMalformed)
	}
	width, err := strconv.Atoi(fields[1])
	if err != nil || width <= 0 {
		return gol.Config{}, fmt.Errorf("%w: incorrect width %q", ErrMalformed, fields[1])
	}
	height, err := strconv.Atoi(fields[2])
	if err != nil || height <= 0 {
		return gol.Config{}, fmt.Errorf("%w: incorrect height %q", ErrMalformed, fields[2])
	}
	if err := gol.CheckDimensions(height, width); err != nil {
		return gol.Config{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if fields[3] != "255" {
		return gol.Config{}, fmt.Errorf("%w: incorrect maxval/bit depth %q", ErrMalformed, fields[3])
	}

	pixels := make([]byte, width*height)
	if _, err := io.ReadFull(reader, pixels); err != nil {
		return gol.Config{}, fmt.Errorf("%w: pixel data: %w", ErrMalformed, err)
	}
	cfg := gol.Config{Rows: height, Cols: width, Iterations: iterations}
	for i, pixel := range pixels {
		if pixel != 0 {
			cfg.Alive = append(cfg.Alive, util.Cell{X: i % width, Y: i / width})
		}
	}
	cfg.Declared = len(cfg.Alive)
	return cfg, nil
}

// Read one whitespace terminated header token, skipping '#' comments.
// The single whitespace byte after the token is consumed, so after maxval the
// reader sits on the first pixel.
func readField(reader *bufio.Reader) (string, error) {
	var field []byte
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if err == io.EOF && len(field) != 0 {
				return string(field), nil
			}
			return "", err
		}
		switch {
		case b == '#' && len(field) == 0:
			if _, err := reader.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(field) != 0 {
				return string(field), nil
			}
		default:
			field = append(field, b)
		}
	}
}
