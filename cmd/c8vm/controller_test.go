package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/devices/fffe/cpu"
)

func TestControllerUpdate(t *testing.T) {
	// ADD V0, 1; JP #200
	c := newTestController(t, 0x70, 0x01, 0x12, 0x00)
	now := time.Unix(1000, 0)

	if err := c.Update(now); err != nil {
		t.Fatal(err)
	}

	if err := c.Update(now.Add(time.Second / 10)); err != nil {
		t.Fatal(err)
	}

	// 48 cycles at the normal rate, half of which are additions.
	if v := c.CPU().State().V[0]; v != 24 {
		t.Fatalf("expected V0 to be 24; have %d", v)
	}
}

func TestControllerPaused(t *testing.T) {
	c := newTestController(t, 0x70, 0x01, 0x12, 0x00)
	c.ToggleRun()

	now := time.Unix(1000, 0)
	c.Update(now)
	c.Update(now.Add(time.Second))

	if v := c.CPU().State().V[0]; v != 0 {
		t.Fatalf("expected no execution while paused; have V0=%d", v)
	}

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}

	if v := c.CPU().State().V[0]; v != 1 {
		t.Fatalf("expected single step to execute; have V0=%d", v)
	}
}

func TestControllerExit(t *testing.T) {
	// EXIT 3
	c := newTestController(t, 0x00, 0x13)

	err := c.Step()
	exit, ok := errors.Cause(err).(*cpu.ExitError)
	if !ok {
		t.Fatalf("expected exit error; have %v", err)
	}

	if exit.Code != 3 {
		t.Fatalf("expected exit code 3; have %d", exit.Code)
	}

	if c.Running() {
		t.Fatalf("expected cpu to stop")
	}
}

func TestControllerReload(t *testing.T) {
	c := newTestController(t, 0x70, 0x01)

	if err := c.Step(); err != nil {
		t.Fatal(err)
	}

	if err := c.Reload(); err != nil {
		t.Fatal(err)
	}

	state := c.CPU().State()
	if state.V[0] != 0 || state.PC != cpu.ProgramStart {
		t.Fatalf("expected reset cpu; have V0=%d PC=%03x", state.V[0], state.PC)
	}

	if w := c.CPU().Memory().U16(cpu.ProgramStart); w != 0x7001 {
		t.Fatalf("expected program to be loaded again; have %04x", w)
	}
}

func TestControllerLoadErrors(t *testing.T) {
	c := NewCPUController(nil, 1)

	if err := c.Load(filepath.Join(t.TempDir(), "missing.ch8")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "large.ch8")
	if err := os.WriteFile(path, make([]byte, cpu.MaxROMSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	err := c.Load(path)
	if errors.Cause(err) != cpu.ErrROMTooLarge {
		t.Fatalf("expected ErrROMTooLarge; have %v", err)
	}
}

func TestKeySymbol(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want rune
		ok   bool
	}{
		{glfw.KeyA, 'a', true},
		{glfw.KeyV, 'v', true},
		{glfw.Key0, '0', true},
		{glfw.Key4, '4', true},
		{glfw.KeyKP3, '3', true},
		{glfw.KeySpace, 0, false},
		{glfw.KeyF1, 0, false},
	}

	for _, tt := range tests {
		have, ok := keySymbol(tt.key)
		if have != tt.want || ok != tt.ok {
			t.Fatalf("keySymbol(%v): want %q, %v; have %q, %v", tt.key, tt.want, tt.ok, have, ok)
		}
	}
}

func newTestController(t *testing.T, rom ...byte) *CPUController {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, rom, 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCPUController(nil, 1)
	if err := c.Load(path); err != nil {
		t.Fatal(err)
	}

	return c
}
