package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Input  string // Input image file.
	Output string // Output file. Leave empty for stdout.
	Height int    // Rows per sprite for 8 pixel wide sprites.
	Large  bool   // Cut 16x16 sprites instead?
	Raw    bool   // Write plain bytes instead of a text listing?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
func parseArgs() *Config {
	var c Config
	c.Height = 8

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "File path to write output to. Leave empty to use stdout.")
	flag.IntVar(&c.Height, "height", c.Height, "Rows per sprite (1-15). Ignored for large sprites.")
	flag.BoolVar(&c.Large, "large", c.Large, "Cut 16x16 high resolution sprites.")
	flag.BoolVar(&c.Raw, "raw", c.Raw, "Write plain sprite bytes instead of a text listing.")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if !c.Large && (c.Height < 1 || c.Height > 15) {
		fmt.Fprintf(os.Stderr, "invalid sprite height %d; expected 1-15\n", c.Height)
		os.Exit(1)
	}

	c.Input = flag.Arg(0)
	return &c
}
