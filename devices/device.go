// Package devices defines the peripherals attached to the machine.
package devices

import "log"

// Device represents a peripheral device.
// Its state is owned by the machine it is connected to.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Reset returns the device to its power-on state.
	Reset()
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Reset returns all connected devices to their power-on state.
func (dm Map) Reset() {
	for _, dev := range dm {
		log.Println(dev.ID(), "reset")
		dev.Reset()
	}
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
