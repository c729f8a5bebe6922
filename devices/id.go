package devices

import "fmt"

// Builtin is the manufacturer id of the devices that make up the machine.
// Their packages live under devices/fffe.
const Builtin = 0xfffe

// Serial numbers of the built-in devices.
const (
	CPUSerial         = 0x0001
	FramebufferSerial = 0x0002
	KeypadSerial      = 0x0003
	ClockSerial       = 0x0005
)

// ID identifies a device as manufacturer:serial, each 16 bits wide.
// It is the prefix of every lifecycle log line a device writes.
type ID uint32

// NewID creates a new id with the given components.
// Both components are truncated to 16 bits.
func NewID(manufacturer, serial int) ID {
	return ID(manufacturer&0xffff)<<16 | ID(serial&0xffff)
}

// Manufacturer returns the manufacturer component.
func (id ID) Manufacturer() int { return int(id >> 16) }

// Serial returns the serial number component.
func (id ID) Serial() int { return int(id & 0xffff) }

// String renders the id as "ffff:ssss".
func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Manufacturer(), id.Serial())
}
