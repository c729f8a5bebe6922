// Package keypad implements the 16-key hexadecimal keypad.
package keypad

import (
	"unicode"

	"github.com/hexaflex/c8vm/devices"
)

// KeyCount is the number of keys on the pad.
const KeyCount = 16

// keymap maps host key symbols onto key codes:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keymap = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Device holds the pressed state of each key.
type Device struct {
	keys [KeyCount]bool
}

var _ devices.Device = &Device{}

// New creates a new device with no keys pressed.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, devices.KeypadSerial)
}

// Reset releases all keys.
func (d *Device) Reset() {
	for i := range d.keys {
		d.keys[i] = false
	}
}

// Map returns the key code for the given host symbol.
// Symbols are matched case-insensitively. Returns false if the symbol
// is not mapped to any key.
func Map(sym rune) (int, bool) {
	code, ok := keymap[unicode.ToLower(sym)]
	return code, ok
}

// KeyDown marks the key for the given symbol as pressed.
// Returns false and leaves all keys untouched if the symbol is not mapped.
func (d *Device) KeyDown(sym rune) bool {
	return d.set(sym, true)
}

// KeyUp marks the key for the given symbol as released.
// Returns false and leaves all keys untouched if the symbol is not mapped.
func (d *Device) KeyUp(sym rune) bool {
	return d.set(sym, false)
}

func (d *Device) set(sym rune, pressed bool) bool {
	code, ok := Map(sym)
	if !ok {
		return false
	}
	d.keys[code] = pressed
	return true
}

// Pressed returns true if the key with the given code is down.
// Only the low nibble of code is considered.
func (d *Device) Pressed(code int) bool {
	return d.keys[code&0xf]
}

// FirstPressed returns the lowest key code that is currently down.
// Returns false if no key is pressed.
func (d *Device) FirstPressed() (int, bool) {
	for code, pressed := range d.keys {
		if pressed {
			return code, true
		}
	}
	return 0, false
}
