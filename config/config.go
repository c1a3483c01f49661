// Package config reads run configurations.
//
// The text format is a sequence of whitespace separated integers:
//
//	rows cols iterations live_count
//	col row
//	col row
//	...
//
// Each pair marks one initially live cell, column first. Pairs are read until the
// end of input; live_count is informative only.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"uk.ac.bris.cs/torusgol/gol"
	"uk.ac.bris.cs/torusgol/util"
)

var (
	ErrMalformed  = errors.New("malformed configuration")
	ErrUnreadable = errors.New("configuration could not be read")
)

// Policy decides what happens to input problems that do not make a board impossible.
// Missing, malformed, non-positive or oversized dimensions are rejected under both policies.
type Policy uint8

const (
	// Tolerant reports recoverable problems through the log and keeps going,
	// the way the classic tool behaved.
	Tolerant Policy = iota
	// Strict rejects any problem in the input.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "tolerant"
}

// Load reads a text configuration from path.
func Load(path string, policy Policy) (gol.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return gol.Config{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()
	cfg, err := Parse(file, policy)
	if err != nil {
		return gol.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

type parser struct {
	scanner *bufio.Scanner
	policy  Policy
}

func (p *parser) next() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	return p.scanner.Text(), true
}

// Report a recoverable problem, or fail under the strict policy
func (p *parser) problem(format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	if p.policy == Strict {
		return fmt.Errorf("%w: %s", ErrMalformed, message)
	}
	log.Printf("config: %s", message)
	return nil
}

// Read one header field, returning ok=false when it is missing or not an integer
func (p *parser) header() (int, bool) {
	token, found := p.next()
	if !found {
		return 0, false
	}
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Parse reads a text configuration from r.
func Parse(r io.Reader, policy Policy) (gol.Config, error) {
	p := &parser{scanner: bufio.NewScanner(r), policy: policy}
	p.scanner.Split(bufio.ScanWords)

	// Dimensions are needed to allocate the board, so they are never tolerated
	var cfg gol.Config
	var ok bool
	if cfg.Rows, ok = p.header(); !ok || cfg.Rows <= 0 {
		return gol.Config{}, fmt.Errorf("%w: rows must be a positive integer", ErrMalformed)
	}
	if cfg.Cols, ok = p.header(); !ok || cfg.Cols <= 0 {
		return gol.Config{}, fmt.Errorf("%w: cols must be a positive integer", ErrMalformed)
	}
	if err := gol.CheckDimensions(cfg.Rows, cfg.Cols); err != nil {
		return gol.Config{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if cfg.Iterations, ok = p.header(); !ok {
		if err := p.problem("iterations is not an integer, using 0"); err != nil {
			return gol.Config{}, err
		}
		cfg.Iterations = 0
	} else if cfg.Iterations < 0 {
		if err := p.problem("negative iteration count %d, using 0", cfg.Iterations); err != nil {
			return gol.Config{}, err
		}
		cfg.Iterations = 0
	}
	if cfg.Declared, ok = p.header(); !ok {
		if err := p.problem("live cell count is not an integer"); err != nil {
			return gol.Config{}, err
		}
		cfg.Declared = 0
	}

	// Pairs until end of input
	for {
		col_token, found := p.next()
		if !found {
			break
		}
		row_token, found := p.next()
		if !found {
			if err := p.problem("dangling column %q without a row", col_token); err != nil {
				return gol.Config{}, err
			}
			break
		}
		col, col_err := strconv.Atoi(col_token)
		row, row_err := strconv.Atoi(row_token)
		if col_err != nil || row_err != nil {
			if err := p.problem("pair %q %q is not numeric, ignoring the rest", col_token, row_token); err != nil {
				return gol.Config{}, err
			}
			break
		}
		if row < 0 || row >= cfg.Rows || col < 0 || col >= cfg.Cols {
			if err := p.problem("cell (col %d, row %d) outside %dx%d board, skipped", col, row, cfg.Rows, cfg.Cols); err != nil {
				return gol.Config{}, err
			}
			continue
		}
		cfg.Alive = append(cfg.Alive, util.Cell{X: col, Y: row})
	}
	if err := p.scanner.Err(); err != nil {
		return gol.Config{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if len(cfg.Alive) != cfg.Declared {
		if err := p.problem("header declares %d live cells, found %d", cfg.Declared, len(cfg.Alive)); err != nil {
			return gol.Config{}, err
		}
	}
	return cfg, nil
}
