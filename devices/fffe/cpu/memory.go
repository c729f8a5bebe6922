package cpu

// Memory layout.
const (
	MemoryCapacity = 0x1000                        // Total addressable memory.
	AddressMask    = MemoryCapacity - 1            // Addresses wrap to 12 bits.
	ProgramStart   = 0x200                         // Load address for ROM images.
	MaxROMSize     = MemoryCapacity - ProgramStart // Largest loadable ROM image.
	FontBase       = 0x50                          // Address of the small 4x5 font.
	LargeFontBase  = FontBase + 0x50               // Address of the large 8x10 font.
	FontGlyphSize  = 5                             // Bytes per small glyph.
	LargeGlyphSize = 10                            // Bytes per large glyph.
)

// Font is the 16 glyph 4x5 font for hex digits 0-F.
var Font = [16 * FontGlyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// LargeFont is the 10 glyph 8x10 font for decimal digits 0-9.
var LargeFont = [10 * LargeGlyphSize]byte{
	0x3c, 0x7e, 0xe7, 0xc3, 0xc3, 0xc3, 0xc3, 0xe7, 0x7e, 0x3c, // 0
	0x18, 0x38, 0x58, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3c, // 1
	0x3e, 0x7f, 0xc3, 0x06, 0x0c, 0x18, 0x30, 0x60, 0xff, 0xff, // 2
	0x3c, 0x7e, 0xc3, 0x03, 0x0e, 0x0e, 0x03, 0xc3, 0x7e, 0x3c, // 3
	0x06, 0x0e, 0x1e, 0x36, 0x66, 0xc6, 0xff, 0xff, 0x06, 0x06, // 4
	0xff, 0xff, 0xc0, 0xc0, 0xfc, 0xfe, 0x03, 0xc3, 0x7e, 0x3c, // 5
	0x3e, 0x7c, 0xc0, 0xc0, 0xfc, 0xfe, 0xc3, 0xc3, 0x7e, 0x3c, // 6
	0xff, 0xff, 0x03, 0x06, 0x0c, 0x18, 0x30, 0x60, 0x60, 0x60, // 7
	0x3c, 0x7e, 0xc3, 0xc3, 0x7e, 0x7e, 0xc3, 0xc3, 0x7e, 0x3c, // 8
	0x3c, 0x7e, 0xc3, 0xc3, 0x7f, 0x3f, 0x03, 0x03, 0x3e, 0x7c, // 9
}

// Memory defines the system's memory bank.
// All accessors wrap addresses to 12 bits.
type Memory []byte

// U8 returns the byte at the given address.
func (m Memory) U8(addr int) byte {
	return m[addr&AddressMask]
}

// SetU8 sets the byte at the given address.
func (m Memory) SetU8(addr int, value byte) {
	m[addr&AddressMask] = value
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr int) uint16 {
	return uint16(m.U8(addr))<<8 | uint16(m.U8(addr+1))
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(address int, p []byte) {
	for i, b := range p {
		m.SetU8(address+i, b)
	}
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(address int, p []byte) {
	for i := range p {
		p[i] = m.U8(address + i)
	}
}

// clear zeroes memory and installs the font tables.
func (m Memory) clear() {
	for i := range m {
		m[i] = 0
	}
	copy(m[FontBase:], Font[:])
	copy(m[LargeFontBase:], LargeFont[:])
}
