// Package fb implements the monochrome framebuffer.
package fb

import "github.com/hexaflex/c8vm/devices"

// Display dimensions in pixels.
const (
	Width      = 128 // Storage width; the high resolution width.
	Height     = 64  // Storage height; the high resolution height.
	LowWidth   = 64  // Normal resolution width.
	LowHeight  = 32  // Normal resolution height.
	HighWidth  = Width
	HighHeight = Height
)

// Device holds the pixel grid. Storage always covers the high resolution
// area; the selected resolution limits which part of it is addressable.
type Device struct {
	pixels  [Width * Height]bool
	columns int
	rows    int
}

var _ devices.Device = &Device{}

// New creates a cleared device in normal resolution.
func New() *Device {
	var d Device
	d.Reset()
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, devices.FramebufferSerial)
}

// Reset selects normal resolution and clears all pixels.
func (d *Device) Reset() {
	d.SetResolution(false)
	d.Clear()
}

// SetResolution selects the logical resolution. Pixel contents are left as-is.
func (d *Device) SetResolution(highRes bool) {
	if highRes {
		d.columns, d.rows = HighWidth, HighHeight
	} else {
		d.columns, d.rows = LowWidth, LowHeight
	}
}

// Columns returns the logical width.
func (d *Device) Columns() int { return d.columns }

// Rows returns the logical height.
func (d *Device) Rows() int { return d.rows }

// Contains returns true if (x, y) lies within the logical resolution.
func (d *Device) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.columns && y < d.rows
}

// Pixel returns the pixel at (x, y).
// Coordinates outside the logical resolution read as unset.
func (d *Device) Pixel(x, y int) bool {
	if !d.Contains(x, y) {
		return false
	}
	return d.pixels[y*Width+x]
}

// SetPixel sets the pixel at (x, y).
// Coordinates outside the logical resolution are ignored.
func (d *Device) SetPixel(x, y int, v bool) {
	if d.Contains(x, y) {
		d.pixels[y*Width+x] = v
	}
}

// Clear turns every pixel off.
func (d *Device) Clear() {
	for i := range d.pixels {
		d.pixels[i] = false
	}
}
