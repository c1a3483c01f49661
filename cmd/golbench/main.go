// Golbench summarises `go test -bench` output of the simulation benchmarks.
//
// Sub-benchmarks carrying a threads=<n> part are grouped by the rest of their name,
// and each thread count is reported with its median time per run, confidence
// interval and speedup over the single threaded run.
//
//	go test -bench . -count 10 | golbench
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
)

type series struct {
	name    string
	samples map[int][]float64 // threads -> sec/op
}

func main() {
	confidence := flag.Float64("confidence", 0.95, "Confidence level of the reported intervals.")
	flag.Parse()

	var groups []*series
	index := make(map[string]*series)
	read := func(r io.Reader, name string) {
		reader := benchfmt.NewReader(r, name)
		for reader.Scan() {
			switch record := reader.Result().(type) {
			case *benchfmt.SyntaxError:
				log.Print(record)
			case *benchfmt.Result:
				key, threads, ok := split(record.Name)
				if !ok {
					continue
				}
				seconds, ok := secondsPerOp(record)
				if !ok {
					continue
				}
				s := index[key]
				if s == nil {
					s = &series{name: key, samples: make(map[int][]float64)}
					index[key] = s
					groups = append(groups, s)
				}
				s.samples[threads] = append(s.samples[threads], seconds)
			}
		}
		if err := reader.Err(); err != nil {
			log.Fatal(err)
		}
	}

	if flag.NArg() == 0 {
		read(os.Stdin, "<stdin>")
	}
	for _, path := range flag.Args() {
		file, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		read(file, path)
		file.Close()
	}
	if len(groups) == 0 {
		log.Fatal("no benchmark results with a threads=<n> part")
	}

	out := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
	for _, s := range groups {
		s.print(out, *confidence)
	}
	out.Flush()
}

func secondsPerOp(result *benchfmt.Result) (float64, bool) {
	for _, value := range result.Values {
		if value.Unit == "sec/op" {
			return value.Value, true
		}
	}
	return 0, false
}

// Split a benchmark name into its group key and thread count
func split(name benchfmt.Name) (string, int, bool) {
	base, parts := name.Parts()
	key := string(base)
	threads, found := 0, false
	for _, part := range parts {
		text := string(part)
		if value, ok := strings.CutPrefix(text, "/threads="); ok {
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return "", 0, false
			}
			threads, found = n, true
			continue
		}
		// gomaxprocs suffix is not part of the key
		if strings.HasPrefix(text, "-") {
			continue
		}
		key += text
	}
	return key, threads, found
}

func (s *series) print(out io.Writer, confidence float64) {
	threads := make([]int, 0, len(s.samples))
	for n := range s.samples {
		threads = append(threads, n)
	}
	sort.Ints(threads)

	// Speedup is relative to the smallest thread count measured, normally 1
	baseline := benchmath.NewSample(s.samples[threads[0]], &benchmath.DefaultThresholds)
	baseSummary := benchmath.AssumeNothing.Summary(baseline, confidence)

	fmt.Fprintf(out, "%s\t\t\t\t\t\n", s.name)
	fmt.Fprintf(out, "threads\tsec/op\tCI\tspeedup\tp\t\n")
	for _, n := range threads {
		sample := benchmath.NewSample(s.samples[n], &benchmath.DefaultThresholds)
		summary := benchmath.AssumeNothing.Summary(sample, confidence)
		speedup := baseSummary.Center / summary.Center
		compare := benchmath.AssumeNothing.Compare(baseline, sample)
		significance := "~"
		if n != threads[0] && compare.P < compare.Alpha {
			significance = fmt.Sprintf("%.3f", compare.P)
		}
		fmt.Fprintf(out, "%d\t%.6f\t[%.6f, %.6f]\t%.2fx\t%s\t\n",
			n, summary.Center, summary.Lo, summary.Hi, speedup, significance)
		for _, warning := range summary.Warnings {
			log.Printf("%s threads=%d: %v", s.name, n, warning)
		}
	}
	fmt.Fprintln(out, "\t\t\t\t\t")
}
