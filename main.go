package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"uk.ac.bris.cs/torusgol/config"
	"uk.ac.bris.cs/torusgol/gol"
	"uk.ac.bris.cs/torusgol/remote"
	"uk.ac.bris.cs/torusgol/sdl"
)

// SDL must own the main OS thread
func init() {
	runtime.LockOSThread()
}

type options struct {
	verbose    bool
	configFile string
	remoteName string
	list       bool
	threads    int
	partitions bool
	server     string
	strict     bool
	window     bool
	outDir     string
	delay      time.Duration
	turns      int
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var opts options
	fs.BoolVar(&opts.verbose, "v", false, "Print every generation.")
	fs.StringVar(&opts.configFile, "c", "", "Local configuration file (text, or .pgm image).")
	fs.StringVar(&opts.remoteName, "n", "", "Fetch the named configuration from the server.")
	fs.BoolVar(&opts.list, "l", false, "List the configurations on the server and exit.")
	fs.IntVar(&opts.threads, "t", 4, "Number of worker threads, 1 <= t <= rows.")
	fs.BoolVar(&opts.partitions, "p", false, "Print each thread's row partition as \"Thread id: start:end (rows)\".\n"+
		"The row count is end-start+1, one more than the classic tool printed.")
	fs.StringVar(&opts.server, "server", remote.DefaultAddr, "Configuration server address.")
	fs.BoolVar(&opts.strict, "strict", false, "Reject any problem in the configuration file.")
	fs.BoolVar(&opts.window, "sdl", false, "Show generations in an SDL window.")
	fs.StringVar(&opts.outDir, "out", "", "Write the final board as a pgm image into this directory.")
	fs.DurationVar(&opts.delay, "delay", 100*time.Millisecond, "Pause after each generation in verbose mode.")
	fs.IntVar(&opts.turns, "turns", 0, "Iterations to run for .pgm configurations.")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [-v] [-p] [-t threads] (-c config_file | -n remote_name | -l)\n", fs.Name())
		fs.PrintDefaults()
	}
	err := fs.Parse(args)
	return opts, err
}

func usage() {
	flag.Usage()
	os.Exit(1)
}

func main() {
	opts, _ := parseFlags(flag.CommandLine, os.Args[1:]) // CommandLine exits on bad flags
	client := &remote.Client{Addr: opts.server, Timeout: 10 * time.Second}

	if opts.list {
		names, err := client.List(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Available configuration files:")
		fmt.Println(strings.Join(names, "\n"))
		return
	}
	if (opts.configFile == "") == (opts.remoteName == "") {
		usage()
	}
	if opts.verbose {
		fmt.Println("verbose mode enabled")
	}
	if opts.partitions {
		fmt.Println("PRINT THREAD PARTITION ENABLED")
	}

	// Load configuration
	path := opts.configFile
	if opts.remoteName != "" {
		fmt.Println("Running from remote server...")
		var err error
		path, err = client.Fetch(context.Background(), opts.remoteName, ".")
		if err != nil {
			log.Fatal(err)
		}
	}
	cfg, err := load(path, opts)
	if err != nil {
		log.Fatal(err)
	}
	if opts.verbose {
		log.Printf("rows: %d, cols: %d, iterations: %d, live cells: %d", cfg.Rows, cfg.Cols, cfg.Iterations, cfg.Declared)
	}
	fmt.Printf("%d threads\n", opts.threads)
	if _, err := gol.Partitions(cfg.Rows, opts.threads); err != nil {
		log.Fatal(err)
	}

	params := gol.Params{
		Threads:         opts.threads,
		PrintPartitions: opts.partitions,
		ImageDir:        opts.outDir,
	}
	var reporters gol.Reporters
	if opts.verbose {
		reporters = append(reporters, &gol.TextReporter{Out: os.Stdout, Delay: opts.delay})
	}

	var result gol.Result
	if opts.window {
		reporter, frames := sdl.NewReporter(1)
		params.Reporter = append(reporters, reporter)
		done := make(chan error, 1)
		go func() {
			defer close(frames)
			var err error
			result, err = gol.Run(cfg, params)
			done <- err
		}()
		if err := sdl.Run(frames, cfg.Rows, cfg.Cols); err != nil {
			log.Printf("sdl: %v", err)
		}
		err = <-done
	} else {
		if len(reporters) != 0 {
			params.Reporter = reporters
		}
		result, err = gol.Run(cfg, params)
	}
	if err != nil {
		log.Fatal(err)
	}

	seconds := result.Elapsed / time.Second
	micros := (result.Elapsed % time.Second) / time.Microsecond
	fmt.Printf("Time for %d iterations: %d.%06d seconds\n", result.Iterations, seconds, micros)
}

func load(path string, opts options) (gol.Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".pgm") {
		if opts.turns == 0 {
			log.Printf("%s: image configurations carry no iteration count and -turns is 0, nothing will be evolved", path)
		}
		return config.LoadImage(path, opts.turns)
	}
	policy := config.Tolerant
	if opts.strict {
		policy = config.Strict
	}
	return config.Load(path, policy)
}
