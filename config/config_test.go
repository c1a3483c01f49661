package config

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"uk.ac.bris.cs/torusgol/gol"
	"uk.ac.bris.cs/torusgol/util"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestParse(t *testing.T) {
	input := "5 6\n10\n3\n1 2\n2 2\n3 2\n"
	cfg, err := Parse(strings.NewReader(input), Strict)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 5 || cfg.Cols != 6 || cfg.Iterations != 10 || cfg.Declared != 3 {
		t.Errorf("header = %+v", cfg)
	}
	want := []util.Cell{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
	if len(cfg.Alive) != len(want) {
		t.Fatalf("Alive = %v, want %v", cfg.Alive, want)
	}
	for i := range want {
		if cfg.Alive[i] != want[i] {
			t.Errorf("Alive[%d] = %v, want %v", i, cfg.Alive[i], want[i])
		}
	}
}

func TestParsePairIsColumnFirst(t *testing.T) {
	cfg, err := Parse(strings.NewReader("3 8 0 1\n7 2\n"), Strict)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Alive) != 1 || cfg.Alive[0] != (util.Cell{X: 7, Y: 2}) {
		t.Errorf("Alive = %v, want column 7 row 2", cfg.Alive)
	}
}

func TestParseDimensionsAlwaysFatal(t *testing.T) {
	inputs := []string{
		"",
		"x 5 1 0",
		"5",
		"0 5 1 0",
		"5 -3 1 0",
		"100000000 100000000 1 0",
		"4294967296 4294967296 1 0",
		"99999999999999999999 5 1 0",
	}
	for _, policy := range []Policy{Tolerant, Strict} {
		for _, input := range inputs {
			if _, err := Parse(strings.NewReader(input), policy); !errors.Is(err, ErrMalformed) {
				t.Errorf("%v Parse(%q) error = %v, want %v", policy, input, err, ErrMalformed)
			}
		}
	}
	// Oversized headers are reported as a board size problem too
	for _, input := range []string{"100000000 100000000 1 0\n", "4294967296 4294967296 1 0\n"} {
		if _, err := Parse(strings.NewReader(input), Tolerant); !errors.Is(err, gol.ErrInvalidDimensions) {
			t.Errorf("Parse(%q) error = %v, want %v", input, err, gol.ErrInvalidDimensions)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		tolerated gol.Config
	}{
		{
			name:      "malformed iterations",
			input:     "4 4 many 1\n1 1\n",
			tolerated: gol.Config{Rows: 4, Cols: 4, Iterations: 0, Declared: 1, Alive: []util.Cell{{X: 1, Y: 1}}},
		},
		{
			name:      "negative iterations",
			input:     "4 4 -2 0\n",
			tolerated: gol.Config{Rows: 4, Cols: 4, Iterations: 0},
		},
		{
			name:      "count mismatch",
			input:     "4 4 2 3\n1 1\n",
			tolerated: gol.Config{Rows: 4, Cols: 4, Iterations: 2, Declared: 3, Alive: []util.Cell{{X: 1, Y: 1}}},
		},
		{
			name:      "cell outside board",
			input:     "4 4 2 2\n1 1\n4 0\n",
			tolerated: gol.Config{Rows: 4, Cols: 4, Iterations: 2, Declared: 2, Alive: []util.Cell{{X: 1, Y: 1}}},
		},
		{
			name:      "garbage stops pairs",
			input:     "4 4 2 2\n1 1\n2 x\n3 3\n",
			tolerated: gol.Config{Rows: 4, Cols: 4, Iterations: 2, Declared: 2, Alive: []util.Cell{{X: 1, Y: 1}}},
		},
		{
			name:      "dangling column",
			input:     "4 4 2 1\n1 1\n2",
			tolerated: gol.Config{Rows: 4, Cols: 4, Iterations: 2, Declared: 1, Alive: []util.Cell{{X: 1, Y: 1}}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(test.input), Strict); !errors.Is(err, ErrMalformed) {
				t.Errorf("Strict error = %v, want %v", err, ErrMalformed)
			}
			cfg, err := Parse(strings.NewReader(test.input), Tolerant)
			if err != nil {
				t.Fatalf("Tolerant error = %v", err)
			}
			want := test.tolerated
			if cfg.Rows != want.Rows || cfg.Cols != want.Cols || cfg.Iterations != want.Iterations || cfg.Declared != want.Declared {
				t.Errorf("Tolerant header = %+v, want %+v", cfg, want)
			}
			if len(cfg.Alive) != len(want.Alive) {
				t.Fatalf("Tolerant Alive = %v, want %v", cfg.Alive, want.Alive)
			}
			for i := range want.Alive {
				if cfg.Alive[i] != want.Alive[i] {
					t.Errorf("Alive[%d] = %v, want %v", i, cfg.Alive[i], want.Alive[i])
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinker.txt")
	if err := os.WriteFile(path, []byte("5 5 2 3\n1 2 2 2 3 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, Strict)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Alive) != 3 {
		t.Errorf("Alive = %v", cfg.Alive)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), Tolerant); !errors.Is(err, ErrUnreadable) {
		t.Errorf("Load(missing) error = %v, want %v", err, ErrUnreadable)
	}
}

func TestParsePGM(t *testing.T) {
	var image bytes.Buffer
	image.WriteString("P5\n# written by hand\n3 2\n255\n")
	image.Write([]byte{0, 255, 0, 32, 0, 0})
	cfg, err := ParsePGM(&image, 4)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 2 || cfg.Cols != 3 || cfg.Iterations != 4 {
		t.Errorf("header = %+v", cfg)
	}
	// 32 is a space character in the pixel data and must still count as alive
	want := []util.Cell{{X: 1, Y: 0}, {X: 0, Y: 1}}
	if len(cfg.Alive) != 2 || cfg.Alive[0] != want[0] || cfg.Alive[1] != want[1] {
		t.Errorf("Alive = %v, want %v", cfg.Alive, want)
	}
}

func TestParsePGMRejects(t *testing.T) {
	inputs := map[string]string{
		"magic":  "P2\n1 1\n255\n\x00",
		"width":  "P5\n0 1\n255\n",
		"maxval": "P5\n1 1\n1\n\x00",
		"short":  "P5\n2 2\n255\n\x00\x00",
		"huge":   "P5\n100000000 100000000\n255\n",
		"wide":   "P5\n4294967296 4294967296\n255\n",
	}
	for name, input := range inputs {
		if _, err := ParsePGM(strings.NewReader(input), 1); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: error = %v, want %v", name, err, ErrMalformed)
		}
	}
	if _, err := ParsePGM(strings.NewReader("P5\n100000000 100000000\n255\n"), 1); !errors.Is(err, gol.ErrInvalidDimensions) {
		t.Errorf("oversized image error = %v, want %v", err, gol.ErrInvalidDimensions)
	}
}

func TestImageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	glider := []util.Cell{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	result, err := gol.Run(gol.Config{Rows: 6, Cols: 7, Iterations: 4, Alive: glider}, gol.Params{Threads: 2, ImageDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadImage(result.ImagePath, 0)
	if err != nil {
		t.Fatal(err)
	}
	board, err := gol.NewBoardFromCells(cfg.Rows, cfg.Cols, cfg.Alive)
	if err != nil {
		t.Fatal(err)
	}
	if !board.Equal(result.Board) {
		t.Errorf("image holds\n%s\nwant\n%s", board, result.Board)
	}
}
