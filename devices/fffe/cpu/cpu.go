// Package cpu implements the interpreter core: memory, registers,
// timers and the instruction set.
package cpu

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/devices"
	"github.com/hexaflex/c8vm/devices/fffe/fb"
	"github.com/hexaflex/c8vm/devices/fffe/keypad"
)

// Advisory instruction rates in instructions per second.
const (
	NormalRate = 480 // Rate in normal resolution mode.
	HighRate   = 700 // Rate in high resolution mode.
)

// StackCapacity is the nominal depth of the call stack.
const StackCapacity = 16

// TraceFunc represents a callback handler for debug trace output.
// It receives the address and the decoded form of each instruction
// before it executes.
type TraceFunc func(ip int, instr *arch.Instruction)

// CPU implements the runtime.
type CPU struct {
	devices devices.Map              // Connected peripherals.
	display *fb.Device               // Framebuffer.
	keypad  *keypad.Device           // Input device.
	trace   TraceFunc                // Handler for debug trace output.
	rng     Entropy                  // Random number source.
	memory  Memory                   // System memory.
	instr   arch.Instruction         // Decoded instruction data.
	v       [arch.RegisterCount]byte // General purpose registers V0-VF.
	rpl     [arch.RPLCount]byte      // RPL user flags.
	stack   []int                    // Return addresses.
	pc      int                      // Program counter.
	i       int                      // Index register.
	dt      byte                     // Delay timer.
	st      byte                     // Sound timer.
	rate    int                      // Advisory instruction rate.
	highRes bool                     // High resolution mode?
	running bool                     // Should the host keep calling Step?
	dirty   bool                     // Has the framebuffer changed since the last redraw?
}

// New creates a new CPU in its power-on state.
// Optionally with the given debug trace handler and random source.
// A time-seeded source is used if rng is nil.
func New(trace TraceFunc, rng Entropy) *CPU {
	if trace == nil {
		trace = func(int, *arch.Instruction) { /* nop */ }
	}

	if rng == nil {
		rng = NewEntropy(time.Now().UnixNano())
	}

	c := &CPU{
		display: fb.New(),
		keypad:  keypad.New(),
		trace:   trace,
		rng:     rng,
		memory:  make(Memory, MemoryCapacity),
		stack:   make([]int, 0, StackCapacity),
	}

	c.devices.Connect(c.display)
	c.devices.Connect(c.keypad)
	c.Reset()
	return c
}

// ID returns the cpu's device Id.
func (c *CPU) ID() devices.ID {
	return devices.NewID(devices.Builtin, devices.CPUSerial)
}

// Reset returns the cpu and connected peripherals to their power-on state.
// This clears any loaded program.
func (c *CPU) Reset() {
	log.Println(c.ID(), "reset")

	c.memory.clear()
	c.stack = c.stack[:0]
	c.v = [arch.RegisterCount]byte{}
	c.rpl = [arch.RPLCount]byte{}
	c.pc = ProgramStart
	c.i = 0
	c.dt = 0
	c.st = 0
	c.running = true
	c.dirty = false
	c.ChangeMode(false)

	c.devices.Reset()
}

// LoadROM copies the given program into memory at ProgramStart.
// Nothing is written if the program does not fit.
func (c *CPU) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return errors.Wrapf(ErrROMTooLarge, "%d bytes exceeds %d", len(rom), MaxROMSize)
	}

	copy(c.memory[ProgramStart:], rom)
	log.Println(c.ID(), "loaded", len(rom), "bytes")
	return nil
}

// Step fetches, decodes and executes a single instruction.
// Returns an *ExitError if the program requested termination.
// Unrecognized instructions are skipped.
func (c *CPU) Step() error {
	ip := c.pc
	word := c.memory.U16(ip)
	c.pc = (c.pc + 2) & AddressMask

	c.instr = arch.Decode(word)
	c.trace(ip, &c.instr)

	return c.execute(ip, &c.instr)
}

// Tick decrements the delay and sound timers. Neither goes below zero.
func (c *CPU) Tick() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// ChangeMode selects normal or high resolution mode and the matching
// advisory rate. The framebuffer is left untouched until the next clear.
func (c *CPU) ChangeMode(highRes bool) {
	c.highRes = highRes
	if highRes {
		c.rate = HighRate
	} else {
		c.rate = NormalRate
	}
}

// Memory returns the cpu's internal memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Dirty returns true if the framebuffer changed since the flag was last cleared.
func (c *CPU) Dirty() bool { return c.dirty }

// SetDirty sets the framebuffer change flag. Hosts clear it after rendering.
func (c *CPU) SetDirty(v bool) { c.dirty = v }

// Rows returns the framebuffer height.
func (c *CPU) Rows() int { return c.display.Rows() }

// Columns returns the framebuffer width.
func (c *CPU) Columns() int { return c.display.Columns() }

// HighRes returns true in high resolution mode.
func (c *CPU) HighRes() bool { return c.highRes }

// Pixel returns the framebuffer pixel at (x, y).
func (c *CPU) Pixel(x, y int) bool { return c.display.Pixel(x, y) }

// Rate returns the advisory number of instructions per second.
func (c *CPU) Rate() int { return c.rate }

// SoundTimer returns the sound timer. Hosts emit a tone while it is non-zero.
func (c *CPU) SoundTimer() byte { return c.st }

// Running returns false once the program has stopped the interpreter.
func (c *CPU) Running() bool { return c.running }

// ToggleRunning flips the running flag and returns the new state.
func (c *CPU) ToggleRunning() bool {
	c.running = !c.running
	return c.running
}

// KeyDown presses the key mapped to the given symbol.
// Returns false if the symbol is not mapped.
func (c *CPU) KeyDown(sym rune) bool { return c.keypad.KeyDown(sym) }

// KeyUp releases the key mapped to the given symbol.
// Returns false if the symbol is not mapped.
func (c *CPU) KeyUp(sym rune) bool { return c.keypad.KeyUp(sym) }

// ResetKeys releases all keys.
func (c *CPU) ResetKeys() { c.keypad.Reset() }

// State is a copy of the cpu registers at a point in time.
type State struct {
	PC      int
	I       int
	V       [arch.RegisterCount]byte
	RPL     [arch.RPLCount]byte
	Stack   []int
	DT      byte
	ST      byte
	HighRes bool
	Running bool
}

// State returns a snapshot of the cpu registers.
func (c *CPU) State() State {
	return State{
		PC:      c.pc,
		I:       c.i,
		V:       c.v,
		RPL:     c.rpl,
		Stack:   append([]int(nil), c.stack...),
		DT:      c.dt,
		ST:      c.st,
		HighRes: c.highRes,
		Running: c.running,
	}
}

// execute runs the handler for the given instruction.
func (c *CPU) execute(ip int, in *arch.Instruction) error {
	switch in.Opcode {
	case arch.EXIT:
		return exit(c, ip, in)
	case arch.SCD:
		scrollDown(c, in)
	case arch.CLS:
		cls(c)
	case arch.RET:
		ret(c)
	case arch.SCR:
		scrollRight(c)
	case arch.SCL:
		scrollLeft(c)
	case arch.STOP:
		stop(c)
	case arch.LOW:
		c.ChangeMode(false)
	case arch.HIGH:
		c.ChangeMode(true)
	case arch.SYS:
		sys(c)

	case arch.JP:
		jp(c, in)
	case arch.CALL:
		call(c, in)
	case arch.JPV0:
		jpv0(c, in)
	case arch.SEB:
		seb(c, in)
	case arch.SNEB:
		sneb(c, in)
	case arch.SE:
		se(c, in)
	case arch.SNE:
		sne(c, in)

	case arch.MOVB:
		movb(c, in)
	case arch.ADDB:
		addb(c, in)
	case arch.MOV:
		mov(c, in)
	case arch.OR:
		or(c, in)
	case arch.AND:
		and(c, in)
	case arch.XOR:
		xor(c, in)
	case arch.ADD:
		add(c, in)
	case arch.SUB:
		sub(c, in)
	case arch.SHR:
		shr(c, in)
	case arch.SUBN:
		subn(c, in)
	case arch.SHL:
		shl(c, in)

	case arch.LDI:
		ldi(c, in)
	case arch.ADDI:
		addi(c, in)
	case arch.FONT:
		font(c, in)
	case arch.HFONT:
		hfont(c, in)
	case arch.BCD:
		bcd(c, in)
	case arch.STORE:
		store(c, in)
	case arch.LOAD:
		load(c, in)
	case arch.SAVEF:
		savef(c, in)
	case arch.LOADF:
		loadf(c, in)

	case arch.RND:
		rnd(c, in)
	case arch.DRW:
		drw(c, in)

	case arch.SKP:
		skp(c, in)
	case arch.SKNP:
		sknp(c, in)
	case arch.WAITK:
		waitk(c, in)

	case arch.GETDT:
		getdt(c, in)
	case arch.SETDT:
		setdt(c, in)
	case arch.SETST:
		setst(c, in)

	case arch.UNKNOWN:
		/* nop */
	}

	return nil
}
