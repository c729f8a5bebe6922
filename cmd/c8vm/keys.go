package main

import "github.com/go-gl/glfw/v3.3/glfw"

// keySymbol returns the host symbol for the given glfw key.
// Only letters and digits have one. Keypad digits map onto the
// same symbols as the main row.
func keySymbol(key glfw.Key) (rune, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return 'a' + rune(key-glfw.KeyA), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return '0' + rune(key-glfw.Key0), true
	case key >= glfw.KeyKP0 && key <= glfw.KeyKP9:
		return '0' + rune(key-glfw.KeyKP0), true
	}
	return 0, false
}
