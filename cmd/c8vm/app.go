package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
	"github.com/hexaflex/c8vm/devices/fffe/fb"
)

// App defines application context.
type App struct {
	config       *Config        // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	cpu          *CPUController // VM with program to be run.
	display      *Display       // Framebuffer renderer.
	titleUpdated time.Time      // Value used to periodically update window title.
	lastRendered time.Time      // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = NewDisplay()
	a.cpu = NewCPUController(a.printTrace, config.Seed)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	if err := a.display.Startup(); err != nil {
		return err
	}

	log.Println(Version())
	printHelp()

	if err := a.cpu.Load(a.config.Program); err != nil {
		return err
	}

	if a.config.Paused {
		a.cpu.ToggleRun()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	report(a.cpu.Update(time.Now()))

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/60 {
		a.lastRendered = time.Now()
		a.display.Update(a.cpu.CPU())
		gl.Clear(gl.COLOR_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second/2 {
		a.titleUpdated = time.Now()
		a.window.SetTitle(a.title())
	}

	glfw.WaitEventsTimeout(0.001)
}

// title returns the window title.
func (a *App) title() string {
	state := prettyFrequency(a.cpu.Frequency())
	if !a.cpu.Running() {
		state = "paused"
	}

	title := fmt.Sprintf("%s %s - %s", AppName, AppVersion, state)
	if a.cpu.CPU().SoundTimer() > 0 {
		title += " ♪"
	}
	return title
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.display.Shutdown()

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}

	if sym, ok := keySymbol(key); ok && key != glfw.KeyP {
		if action == glfw.Press {
			a.cpu.CPU().KeyDown(sym)
		} else {
			a.cpu.CPU().KeyUp(sym)
		}
		return
	}

	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Trace = !a.config.Trace
	case glfw.KeyF3:
		pp.Fprintln(log.Writer(), a.cpu.CPU().State())
	case glfw.KeyF5, glfw.KeySpace:
		err = a.cpu.Reload()
	case glfw.KeyP:
		a.cpu.ToggleRun()
	case glfw.KeyF10:
		if !a.cpu.Running() {
			err = a.cpu.Step()
		}
	}

	report(err)
}

func (a *App) focusCallback(_ *glfw.Window, focused bool) {
	if !focused {
		a.cpu.CPU().ResetKeys()
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := fb.Width * a.config.ScaleFactor
	height := fb.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)
	a.window.SetFocusCallback(a.focusCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on and off through a.config.Trace.
func (a *App) printTrace(ip int, instr *arch.Instruction) {
	if a.config.Trace {
		log.Println(traceLine(ip, instr))
	}
}

// traceLine formats a single instruction trace line.
func traceLine(ip int, instr *arch.Instruction) string {
	return fmt.Sprintf("%03x  %04x  %s", ip, instr.Word, instr)
}

// printHelp writes a short overview of supported shortcut keys to the log.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC        Exit the program.\n")
	sb.WriteString(" F1         Display this help.\n")
	sb.WriteString(" F2         Enable/Disable instruction trace output.\n")
	sb.WriteString(" F3         Print the cpu registers.\n")
	sb.WriteString(" F5, SPACE  Reload the program from disk and reset the cpu.\n")
	sb.WriteString(" P          Pause/Resume program execution.\n")
	sb.WriteString(" F10        Perform a single execution step while paused.\n")
	sb.WriteString(" 1234 QWER ASDF ZXCV  Keypad.")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
