package main

import (
	"io"
	"log"
	"os"
	"runtime"

	"github.com/k0kubun/pp/v3"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config := parseArgs()

	if config.LogFile != "" {
		fd, err := os.Create(config.LogFile)
		if err != nil {
			log.Fatal(err)
		}
		defer fd.Close()
		log.SetOutput(fd)
	} else if config.Terminal {
		log.SetOutput(io.Discard)
	}

	if config.Trace {
		pp.Fprintln(log.Writer(), config)
	}

	var err error
	if config.Terminal {
		err = NewTerminal(config).Run()
	} else {
		err = NewApp(config).Run()
	}

	if err != nil {
		log.Fatal(err)
	}
}
