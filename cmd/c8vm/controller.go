package main

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices/fffe/clock"
	"github.com/hexaflex/c8vm/devices/fffe/cpu"
)

// CPUController controls the execution of a CPU.
// It drives the instruction clock and the 60 Hz timer clock from wall time.
type CPUController struct {
	cpu     *cpu.CPU
	clock   *clock.Device
	program string
}

// NewCPUController creates a new CPU controller.
// A seed of 0 selects a time based random number source.
func NewCPUController(trace cpu.TraceFunc, seed int64) *CPUController {
	var rng cpu.Entropy
	if seed != 0 {
		rng = cpu.NewEntropy(seed)
	}

	return &CPUController{
		cpu:   cpu.New(trace, rng),
		clock: clock.New(),
	}
}

// CPU returns the controlled cpu.
func (c *CPUController) CPU() *cpu.CPU {
	return c.cpu
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.cpu.Running()
}

// Frequency returns the current clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	if c.cpu.Running() {
		return c.clock.Frequency(time.Now())
	}
	return 0
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.clock.Reset()
	if c.cpu.ToggleRunning() {
		log.Println("resumed")
	} else {
		log.Println("paused")
	}
}

// Load reads the given ROM image from disk, resets the cpu and loads the image.
func (c *CPUController) Load(program string) error {
	log.Println("loading", program)

	rom, err := os.ReadFile(program)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", program)
	}

	c.cpu.Reset()
	c.clock.Reset()

	if err := c.cpu.LoadROM(rom); err != nil {
		return errors.Wrapf(err, "failed to load %s", program)
	}

	c.program = program
	return nil
}

// Reload resets the cpu and loads the current program again.
func (c *CPUController) Reload() error {
	return c.Load(c.program)
}

// Update runs as many instructions and timer ticks as the time elapsed
// since the previous call warrants. Nothing happens while the cpu is stopped.
func (c *CPUController) Update(now time.Time) error {
	if !c.cpu.Running() {
		c.clock.Reset()
		return nil
	}

	cycles, ticks := c.clock.Advance(now, c.cpu.Rate())

	for i := 0; i < cycles && c.cpu.Running(); i++ {
		if err := c.cpu.Step(); err != nil {
			return err
		}
	}

	for ; ticks > 0; ticks-- {
		c.cpu.Tick()
	}

	return nil
}

// Step performs a single exection step and one timer tick, regardless of
// the running state.
func (c *CPUController) Step() error {
	err := c.cpu.Step()
	c.cpu.Tick()
	return err
}

// report logs the given execution error.
func report(err error) {
	if err == nil {
		return
	}

	if exit, ok := errors.Cause(err).(*cpu.ExitError); ok {
		log.Printf("program exited with code %d at %03x", exit.Code, exit.IP)
		return
	}

	log.Println(err)
}
