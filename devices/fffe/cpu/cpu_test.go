package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/devices/fffe/fb"
)

func TestReset(t *testing.T) {
	c := newTestCPU(t, 0x6a12, 0xa123, 0xfa15, 0xfa18, 0x00ff, 0x2300)
	c.rpl[3] = 9
	c.KeyDown('x')
	c.display.SetPixel(1, 1, true)
	runSteps(t, c, 6)

	c.Reset()

	if c.pc != ProgramStart {
		t.Fatalf("expected PC %03x; have %03x", ProgramStart, c.pc)
	}
	if c.v != [arch.RegisterCount]byte{} || c.rpl != [arch.RPLCount]byte{} {
		t.Fatalf("expected cleared registers; have V=%v RPL=%v", c.v, c.rpl)
	}
	if len(c.stack) != 0 {
		t.Fatalf("expected empty stack; have %v", c.stack)
	}
	if c.i != 0 || c.dt != 0 || c.st != 0 {
		t.Fatalf("expected cleared I and timers; have I=%03x DT=%d ST=%d", c.i, c.dt, c.st)
	}
	if c.HighRes() || c.Rate() != NormalRate {
		t.Fatalf("expected normal resolution at rate %d; have %v at %d", NormalRate, c.HighRes(), c.Rate())
	}
	if c.Columns() != fb.LowWidth || c.Rows() != fb.LowHeight {
		t.Fatalf("expected %dx%d display; have %dx%d", fb.LowWidth, fb.LowHeight, c.Columns(), c.Rows())
	}
	if !c.Running() || c.Dirty() {
		t.Fatalf("expected running and clean; have running=%v dirty=%v", c.Running(), c.Dirty())
	}
	if c.Pixel(1, 1) {
		t.Fatalf("expected cleared display")
	}
	if _, ok := c.keypad.FirstPressed(); ok {
		t.Fatalf("expected released keys")
	}

	if diff := cmp.Diff(Font[:], []byte(c.memory[FontBase:FontBase+len(Font)])); diff != "" {
		t.Fatalf("font: (-want, +have)\n%s", diff)
	}
	if diff := cmp.Diff(LargeFont[:], []byte(c.memory[LargeFontBase:LargeFontBase+len(LargeFont)])); diff != "" {
		t.Fatalf("large font: (-want, +have)\n%s", diff)
	}
	if c.memory[ProgramStart] != 0 {
		t.Fatalf("expected program memory to be cleared")
	}
}

func TestLoadROM(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 4, false},
		{"max", MaxROMSize, false},
		{"too large", MaxROMSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil, nil)
			before := append(Memory(nil), c.memory...)

			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = byte(i*7 + 1)
			}

			err := c.LoadROM(rom)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadROM() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if errors.Cause(err) != ErrROMTooLarge {
					t.Fatalf("expected ErrROMTooLarge; have %v", err)
				}
				if diff := cmp.Diff(before, c.memory); diff != "" {
					t.Fatalf("memory modified by rejected load: (-want, +have)\n%s", diff)
				}
				return
			}

			if diff := cmp.Diff(rom, []byte(c.memory[ProgramStart:ProgramStart+len(rom)])); diff != "" {
				t.Fatalf("rom: (-want, +have)\n%s", diff)
			}
		})
	}
}

func TestLoadAndAdd(t *testing.T) {
	c := New(nil, nil)
	if err := c.LoadROM([]byte{0x60, 0x05, 0x70, 0x03}); err != nil {
		t.Fatal(err)
	}

	runSteps(t, c, 2)

	if c.v[0] != 8 {
		t.Fatalf("expected V0 == 8; have %d", c.v[0])
	}
	if c.pc != 0x204 {
		t.Fatalf("expected PC == 204; have %03x", c.pc)
	}
}

func TestUnknownInstruction(t *testing.T) {
	c := newTestCPU(t, 0x8ab8, 0xe000, 0xf0ff)
	runSteps(t, c, 3)

	if c.pc != 0x206 {
		t.Fatalf("expected PC == 206; have %03x", c.pc)
	}
	if c.v != [arch.RegisterCount]byte{} || len(c.stack) != 0 || c.i != 0 || c.Dirty() {
		t.Fatalf("expected no state change")
	}
}

func TestSystemCall(t *testing.T) {
	c := newTestCPU(t, 0x0123, 0x6001, 0x0000, 0x6102)
	runSteps(t, c, 1)

	if c.pc != 0x204 {
		t.Fatalf("expected machine code call to skip to 204; have %03x", c.pc)
	}

	runSteps(t, c, 1)
	if c.pc != 0x208 || c.v[0] != 0 || c.v[1] != 0 || len(c.stack) != 0 {
		t.Fatalf("expected 0000 to skip as well; have PC=%03x V0=%d V1=%d", c.pc, c.v[0], c.v[1])
	}
}

func TestSystemIgnoresX(t *testing.T) {
	c := newTestCPU(t, 0x01e0, 0x0a13)
	c.display.SetPixel(0, 0, true)

	runSteps(t, c, 1)
	if c.Pixel(0, 0) || !c.Dirty() {
		t.Fatalf("expected 01E0 to clear the display")
	}

	err := c.Step()
	if exit, ok := errors.Cause(err).(*ExitError); !ok || exit.Code != 3 {
		t.Fatalf("expected 0A13 to exit with code 3; have %v", err)
	}
	if c.Running() {
		t.Fatalf("expected cpu to stop")
	}
}

func TestExit(t *testing.T) {
	c := newTestCPU(t, 0x0015)

	err := c.Step()
	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("expected *ExitError; have %v", err)
	}

	if exit.Code != 5 || exit.IP != ProgramStart {
		t.Fatalf("expected exit code 5 at %03x; have %d at %03x", ProgramStart, exit.Code, exit.IP)
	}
	if c.Running() {
		t.Fatalf("expected machine to stop")
	}
	if c.pc != 0x202 {
		t.Fatalf("expected PC == 202; have %03x", c.pc)
	}
}

func TestStop(t *testing.T) {
	c := newTestCPU(t, 0x00fd)
	runSteps(t, c, 1)

	if c.Running() {
		t.Fatalf("expected machine to stop")
	}

	if !c.ToggleRunning() || !c.Running() {
		t.Fatalf("expected toggle to resume the machine")
	}
}

func TestTick(t *testing.T) {
	c := newTestCPU(t, 0x6002, 0x6101, 0xf015, 0xf118, 0xf207)
	runSteps(t, c, 4)

	if c.dt != 2 || c.SoundTimer() != 1 {
		t.Fatalf("expected DT=2 ST=1; have DT=%d ST=%d", c.dt, c.SoundTimer())
	}

	c.Tick()
	if c.dt != 1 || c.SoundTimer() != 0 {
		t.Fatalf("expected DT=1 ST=0; have DT=%d ST=%d", c.dt, c.SoundTimer())
	}

	c.Tick()
	c.Tick()
	if c.dt != 0 || c.SoundTimer() != 0 {
		t.Fatalf("expected timers to stop at zero; have DT=%d ST=%d", c.dt, c.SoundTimer())
	}

	c.dt = 7
	runSteps(t, c, 1)
	if c.v[2] != 7 {
		t.Fatalf("expected V2 == 7; have %d", c.v[2])
	}
}

func TestChangeMode(t *testing.T) {
	c := newTestCPU(t, 0x00ff, 0x00e0, 0x00fe, 0x00e0)
	c.display.SetPixel(5, 5, true)

	runSteps(t, c, 1)
	if !c.HighRes() || c.Rate() != HighRate {
		t.Fatalf("expected high resolution at rate %d", HighRate)
	}
	if c.Columns() != fb.LowWidth || !c.Pixel(5, 5) {
		t.Fatalf("expected mode switch to leave the display alone")
	}

	runSteps(t, c, 1)
	if c.Columns() != fb.HighWidth || c.Rows() != fb.HighHeight {
		t.Fatalf("expected clear to apply high resolution; have %dx%d", c.Columns(), c.Rows())
	}

	runSteps(t, c, 2)
	if c.HighRes() || c.Rate() != NormalRate || c.Columns() != fb.LowWidth {
		t.Fatalf("expected normal resolution")
	}
}

func TestKeys(t *testing.T) {
	c := New(nil, nil)

	if !c.KeyDown('x') || !c.keypad.Pressed(0) {
		t.Fatalf("expected 'x' to press key 0")
	}
	if !c.KeyDown('1') || !c.keypad.Pressed(1) {
		t.Fatalf("expected '1' to press key 1")
	}
	if c.KeyDown('?') {
		t.Fatalf("expected '?' to be rejected")
	}
	if !c.KeyUp('x') || c.keypad.Pressed(0) {
		t.Fatalf("expected 'x' to release key 0")
	}

	c.ResetKeys()
	if c.keypad.Pressed(1) {
		t.Fatalf("expected all keys released")
	}
}

func TestTrace(t *testing.T) {
	var seen []string

	c := New(func(ip int, i *arch.Instruction) {
		seen = append(seen, i.String())
	}, nil)

	c.LoadROM([]byte{0x60, 0x05, 0x00, 0xe0})
	runSteps(t, c, 2)

	if diff := cmp.Diff([]string{"LD V0, #05", "CLS"}, seen); diff != "" {
		t.Fatalf("trace: (-want, +have)\n%s", diff)
	}
}

func TestState(t *testing.T) {
	c := newTestCPU(t, 0x6a12, 0xa123, 0x2206)
	runSteps(t, c, 3)

	want := State{
		PC:      0x206,
		I:       0x123,
		Stack:   []int{0x206},
		Running: true,
	}
	want.V[0xa] = 0x12

	have := c.State()
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("state: (-want, +have)\n%s", diff)
	}

	have.Stack[0] = 0
	if c.stack[0] != 0x206 {
		t.Fatalf("expected snapshot stack to be a copy")
	}
}

// seqEntropy yields the bytes in seq in order, wrapping around.
type seqEntropy struct {
	seq []byte
	n   int
}

func (e *seqEntropy) Byte() byte {
	b := e.seq[e.n%len(e.seq)]
	e.n++
	return b
}

// newTestCPU creates a CPU with the given instruction words loaded.
func newTestCPU(t *testing.T, program ...uint16) *CPU {
	t.Helper()

	c := New(nil, &seqEntropy{seq: []byte{0xff}})

	rom := make([]byte, 0, len(program)*2)
	for _, w := range program {
		rom = append(rom, byte(w>>8), byte(w))
	}

	if err := c.LoadROM(rom); err != nil {
		t.Fatal(err)
	}

	return c
}

// runSteps executes n instructions and fails on any error.
func runSteps(t *testing.T, c *CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}
