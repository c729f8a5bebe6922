// Package clock paces instruction execution and timer ticks against wall time.
package clock

import (
	"time"

	"github.com/hexaflex/c8vm/devices"
)

// TimerFrequency is the rate at which the delay and sound timers count down.
const TimerFrequency = 60

// MaxLag caps the amount of wall time a single Advance call accounts for.
// Anything beyond it is dropped, so the machine does not try to catch up
// after the host was suspended.
const MaxLag = time.Second / 4

// Device converts elapsed wall time into instruction cycles and timer ticks.
// It carries the fractional remainder of each from one call to the next.
type Device struct {
	last       time.Time     // Time of the previous Advance call.
	cycleDebt  time.Duration // Elapsed time not yet spent on cycles.
	tickDebt   time.Duration // Elapsed time not yet spent on ticks.
	cycleCount uint64        // Cycles handed out since the last reset.
	start      time.Time     // Time of the first Advance call since the last reset.
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, devices.ClockSerial)
}

// Reset forgets all elapsed time. The next Advance call starts a new period.
func (d *Device) Reset() {
	*d = Device{}
}

// Advance accounts for the time elapsed up to now and returns the number
// of instructions to execute at the given rate (per second), and the
// number of timer ticks to apply.
func (d *Device) Advance(now time.Time, rate int) (cycles, ticks int) {
	if d.last.IsZero() {
		d.last = now
		d.start = now
		return 0, 0
	}

	elapsed := now.Sub(d.last)
	d.last = now

	if elapsed <= 0 {
		return 0, 0
	}

	if elapsed > MaxLag {
		elapsed = MaxLag
	}

	if rate > 0 {
		period := time.Second / time.Duration(rate)
		d.cycleDebt += elapsed
		cycles = int(d.cycleDebt / period)
		d.cycleDebt -= time.Duration(cycles) * period
	}

	period := time.Second / TimerFrequency
	d.tickDebt += elapsed
	ticks = int(d.tickDebt / period)
	d.tickDebt -= time.Duration(ticks) * period

	d.cycleCount += uint64(cycles)
	return cycles, ticks
}

// Frequency returns the average number of cycles per second handed out
// since the last reset, measured up to now.
func (d *Device) Frequency(now time.Time) float64 {
	if d.start.IsZero() {
		return 0
	}

	secs := now.Sub(d.start).Seconds()
	if secs <= 0 {
		return 0
	}

	return float64(d.cycleCount) / secs
}
