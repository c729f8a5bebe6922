package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
)

// KeyHoldTime is how long a key counts as held after the terminal last
// reported it. Terminals only send presses and auto-repeats, so a key is
// released once its repeats stop arriving.
const KeyHoldTime = time.Millisecond * 300

var (
	pixelStyle  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x66ccff)).Background(tcell.ColorBlack)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
)

// Terminal runs a program with the framebuffer rendered to the terminal.
// Each character cell shows two vertically stacked pixels.
type Terminal struct {
	config       *Config
	screen       tcell.Screen
	cpu          *CPUController
	held         map[rune]time.Time // Pressed keys and when they were last reported.
	beeping      bool               // Was the sound timer running at the last frame?
	quit         bool
	columns      int // Framebuffer size at the last render.
	rows         int
	lastRendered time.Time
}

// NewTerminal creates a new terminal front-end using the given configuration.
func NewTerminal(config *Config) *Terminal {
	var t Terminal
	t.config = config
	t.held = make(map[rune]time.Time)
	t.cpu = NewCPUController(t.printTrace, config.Seed)
	return &t
}

// Run runs the program until the user quits, or an error occured
// during initialization.
func (t *Terminal) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrapf(err, "tcell.NewScreen failed")
	}

	if err := screen.Init(); err != nil {
		return errors.Wrapf(err, "screen init failed")
	}

	defer screen.Fini()

	t.screen = screen
	t.screen.SetStyle(statusStyle)
	t.screen.Clear()

	log.Println(Version())

	if err := t.cpu.Load(t.config.Program); err != nil {
		return err
	}

	if t.config.Paused {
		t.cpu.ToggleRun()
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Millisecond * 2)
	defer ticker.Stop()

	for !t.quit {
		select {
		case ev := <-events:
			t.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			t.mainLoop(now)
		}
	}

	return nil
}

// mainLoop advances the cpu and periodically renders the screen.
func (t *Terminal) mainLoop(now time.Time) {
	t.releaseKeys(now)
	report(t.cpu.Update(now))

	if now.Sub(t.lastRendered) < time.Second/60 {
		return
	}

	t.lastRendered = now
	t.render()
	t.screen.Show()

	sounding := t.cpu.CPU().SoundTimer() > 0
	if sounding && !t.beeping {
		t.screen.Beep()
	}
	t.beeping = sounding
}

// handleEvent processes a single terminal event.
func (t *Terminal) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		t.screen.Clear()
		t.cpu.CPU().SetDirty(true)

	case *tcell.EventKey:
		var err error

		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyF2:
			t.config.Trace = !t.config.Trace
		case tcell.KeyF5:
			err = t.reload()
		case tcell.KeyF10:
			if !t.cpu.Running() {
				err = t.cpu.Step()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				err = t.reload()
			case 'p', 'P':
				t.cpu.ToggleRun()
			default:
				t.pressKey(ev.Rune(), now)
			}
		}

		report(err)
	}
}

// reload resets the cpu with the current program.
func (t *Terminal) reload() error {
	t.held = make(map[rune]time.Time)
	t.screen.Clear()
	return t.cpu.Reload()
}

// pressKey presses the key for sym, or extends how long it is held.
func (t *Terminal) pressKey(sym rune, now time.Time) {
	if _, ok := t.held[sym]; !ok {
		if !t.cpu.CPU().KeyDown(sym) {
			return
		}
	}
	t.held[sym] = now
}

// releaseKeys releases every key that was not reported for KeyHoldTime.
func (t *Terminal) releaseKeys(now time.Time) {
	for sym, last := range t.held {
		if now.Sub(last) >= KeyHoldTime {
			t.cpu.CPU().KeyUp(sym)
			delete(t.held, sym)
		}
	}
}

// render draws the framebuffer, if it changed, and the status line.
func (t *Terminal) render() {
	c := t.cpu.CPU()
	cols, rows := c.Columns(), c.Rows()

	if cols != t.columns || rows != t.rows {
		t.screen.Clear()
		t.columns, t.rows = cols, rows
		c.SetDirty(true)
	}

	if c.Dirty() {
		for y := 0; y < rows; y += 2 {
			for x := 0; x < cols; x++ {
				r := halfBlock(c.Pixel(x, y), c.Pixel(x, y+1))
				t.screen.SetContent(x, y/2, r, nil, pixelStyle)
			}
		}
		c.SetDirty(false)
	}

	state := prettyFrequency(t.cpu.Frequency())
	if !t.cpu.Running() {
		state = "paused"
	}

	status := fmt.Sprintf("%s %s - %s", AppName, AppVersion, state)
	if c.SoundTimer() > 0 {
		status += " ♪"
	}

	t.drawText(0, rows/2, cols, status)
}

// drawText writes s at the given position, padded with spaces to width cells.
func (t *Terminal) drawText(x, y, width int, s string) {
	for _, r := range s {
		if width <= 0 {
			return
		}
		t.screen.SetContent(x, y, r, nil, statusStyle)
		x++
		width--
	}

	for ; width > 0; width-- {
		t.screen.SetContent(x, y, ' ', nil, statusStyle)
		x++
	}
}

// printTrace logs instruction trace data while tracing is enabled.
func (t *Terminal) printTrace(ip int, instr *arch.Instruction) {
	if t.config.Trace {
		log.Println(traceLine(ip, instr))
	}
}

// halfBlock returns the character showing the given top and bottom pixels.
func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
