package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Program     string // Path to the ROM image to load.
	LogFile     string // Optional file receiving log and trace output.
	ScaleFactor int    // Amount by which each pixel is scaled (virtual resolution).
	Seed        int64  // Seed for the random number source. 0 picks a time based seed.
	Fullscreen  bool   // Run in fullscreen?
	Terminal    bool   // Render to the terminal instead of an OpenGL window?
	Paused      bool   // Start with execution paused?
	Trace       bool   // Print instruction trace data?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 8

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.Terminal, "term", c.Terminal, "Render to the terminal instead of a window.")
	flag.BoolVar(&c.Paused, "paused", c.Paused, "Start with execution paused.")
	flag.BoolVar(&c.Trace, "trace", c.Trace, "Print instruction trace data.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number source. 0 uses the current time.")
	flag.StringVar(&c.LogFile, "log", c.LogFile, "Write log output to the given file.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.Program = flag.Arg(0)
	return &c
}
