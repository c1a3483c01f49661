package gol

import (
	"bytes"
	"testing"

	"uk.ac.bris.cs/torusgol/util"
)

func TestTextReporter(t *testing.T) {
	var out bytes.Buffer
	reporter := &TextReporter{Out: &out}
	board := mustBoard(t, 2, 2, util.Cell{X: 0, Y: 0})
	if err := reporter.Report(0, board); err != nil {
		t.Fatal(err)
	}
	want := "DAY 1\n==================\n@ - \n- - \n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestReportersStopAtFirstError(t *testing.T) {
	second := &recordingReporter{}
	reporters := Reporters{&failingReporter{after: 0}, second}
	if err := reporters.Report(0, mustBoard(t, 1, 1)); err != errReporter {
		t.Errorf("Report error = %v", err)
	}
	if len(second.iterations) != 0 {
		t.Error("reporter after the failing one was called")
	}
}
