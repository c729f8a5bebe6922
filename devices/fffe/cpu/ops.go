package cpu

import (
	"github.com/hexaflex/c8vm/arch"
)

// scrollWidth is the number of columns moved by SCR and SCL.
const scrollWidth = 4

// exit stops the interpreter and reports exit code N to the host.
func exit(c *CPU, ip int, in *arch.Instruction) error {
	c.running = false
	return &ExitError{
		Instruction: *in,
		IP:          ip,
		Code:        in.N,
	}
}

// scrollDown moves every row down by N. The top N rows are cleared.
func scrollDown(c *CPU, in *arch.Instruction) {
	d := c.display
	n := in.N

	for y := d.Rows() - 1; y >= n; y-- {
		for x := 0; x < d.Columns(); x++ {
			d.SetPixel(x, y, d.Pixel(x, y-n))
		}
	}

	for y := 0; y < n && y < d.Rows(); y++ {
		for x := 0; x < d.Columns(); x++ {
			d.SetPixel(x, y, false)
		}
	}

	c.dirty = true
}

// scrollRight moves every column right by 4 pixels.
func scrollRight(c *CPU) {
	d := c.display

	for y := 0; y < d.Rows(); y++ {
		for x := d.Columns() - 1; x >= scrollWidth; x-- {
			d.SetPixel(x, y, d.Pixel(x-scrollWidth, y))
		}
		for x := 0; x < scrollWidth; x++ {
			d.SetPixel(x, y, false)
		}
	}

	c.dirty = true
}

// scrollLeft moves every column left by 4 pixels.
func scrollLeft(c *CPU) {
	d := c.display
	w := d.Columns()

	for y := 0; y < d.Rows(); y++ {
		for x := 0; x < w; x++ {
			d.SetPixel(x, y, x < w-scrollWidth && d.Pixel(x+scrollWidth, y))
		}
	}

	c.dirty = true
}

// cls applies the current mode's resolution and clears the display.
func cls(c *CPU) {
	c.display.SetResolution(c.highRes)
	c.display.Clear()
	c.dirty = true
}

// ret pops the return address. Returning with an empty stack does nothing.
func ret(c *CPU) {
	if n := len(c.stack); n > 0 {
		c.pc = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

// sys stands in for a machine code call. There is no host machine code,
// so the call and the instruction after it are skipped.
func sys(c *CPU) {
	skipIf(c, true)
}

func stop(c *CPU) {
	c.running = false
}

func jp(c *CPU, in *arch.Instruction) {
	c.pc = in.NNN
}

func call(c *CPU, in *arch.Instruction) {
	c.stack = append(c.stack, c.pc)
	c.pc = in.NNN
}

func jpv0(c *CPU, in *arch.Instruction) {
	c.pc = (in.NNN + int(c.v[0])) & AddressMask
}

// skipIf skips the next instruction if cond holds.
func skipIf(c *CPU, cond bool) {
	if cond {
		c.pc = (c.pc + 2) & AddressMask
	}
}

func seb(c *CPU, in *arch.Instruction) {
	skipIf(c, c.v[in.X] == byte(in.NN))
}

func sneb(c *CPU, in *arch.Instruction) {
	skipIf(c, c.v[in.X] != byte(in.NN))
}

func se(c *CPU, in *arch.Instruction) {
	skipIf(c, c.v[in.X] == c.v[in.Y])
}

func sne(c *CPU, in *arch.Instruction) {
	skipIf(c, c.v[in.X] != c.v[in.Y])
}

func movb(c *CPU, in *arch.Instruction) {
	c.v[in.X] = byte(in.NN)
}

// addb adds NN to VX. VF is not affected.
func addb(c *CPU, in *arch.Instruction) {
	c.v[in.X] += byte(in.NN)
}

func mov(c *CPU, in *arch.Instruction) {
	c.v[in.X] = c.v[in.Y]
}

func or(c *CPU, in *arch.Instruction) {
	c.v[in.X] |= c.v[in.Y]
}

func and(c *CPU, in *arch.Instruction) {
	c.v[in.X] &= c.v[in.Y]
}

func xor(c *CPU, in *arch.Instruction) {
	c.v[in.X] ^= c.v[in.Y]
}

// add sets VX = VX + VY and VF to the carry.
func add(c *CPU, in *arch.Instruction) {
	sum := int(c.v[in.X]) + int(c.v[in.Y])
	c.v[in.X] = byte(sum)
	c.v[arch.VF] = _bool(sum > 0xff)
}

// sub sets VX = VX - VY and VF to 1 if no borrow occurred.
func sub(c *CPU, in *arch.Instruction) {
	vx, vy := c.v[in.X], c.v[in.Y]
	c.v[in.X] = vx - vy
	c.v[arch.VF] = _bool(vx >= vy)
}

// shr shifts VX right by one. VF receives the bit shifted out.
func shr(c *CPU, in *arch.Instruction) {
	c.v[arch.VF] = c.v[in.X] & 1
	c.v[in.X] >>= 1
}

// subn sets VX = VY - VX and VF to 1 if VY > VX.
func subn(c *CPU, in *arch.Instruction) {
	vx, vy := c.v[in.X], c.v[in.Y]
	c.v[in.X] = vy - vx
	c.v[arch.VF] = _bool(vy > vx)
}

// shl shifts VX left by one. VF receives the bit shifted out.
func shl(c *CPU, in *arch.Instruction) {
	c.v[arch.VF] = c.v[in.X] >> 7
	c.v[in.X] <<= 1
}

func ldi(c *CPU, in *arch.Instruction) {
	c.i = in.NNN
}

// addi adds VX to I. VF is set if the sum leaves the 12-bit address space.
func addi(c *CPU, in *arch.Instruction) {
	sum := c.i + int(c.v[in.X])
	c.v[arch.VF] = _bool(sum > AddressMask)
	c.i = sum & AddressMask
}

// font points I at the small glyph for VX. Glyphs are addressed at
// FontBase, where reset installs them, not at address zero.
func font(c *CPU, in *arch.Instruction) {
	c.i = (FontBase + int(c.v[in.X])*FontGlyphSize) & AddressMask
}

// hfont points I at the large glyph for VX.
func hfont(c *CPU, in *arch.Instruction) {
	c.i = (LargeFontBase + int(c.v[in.X])*LargeGlyphSize) & AddressMask
}

// bcd stores the hundreds, tens and units digits of VX at I, I+1 and I+2.
func bcd(c *CPU, in *arch.Instruction) {
	vx := c.v[in.X]
	c.memory.SetU8(c.i, vx/100)
	c.memory.SetU8(c.i+1, vx/10%10)
	c.memory.SetU8(c.i+2, vx%10)
}

// store copies V0 through VX to memory at I. I is unchanged.
func store(c *CPU, in *arch.Instruction) {
	c.memory.Write(c.i, c.v[:in.X+1])
}

// load copies memory at I into V0 through VX. I is unchanged.
func load(c *CPU, in *arch.Instruction) {
	c.memory.Read(c.i, c.v[:in.X+1])
}

// savef copies V0 through VX into the RPL flags.
// copy stops at the end of the flag bank.
func savef(c *CPU, in *arch.Instruction) {
	copy(c.rpl[:], c.v[:in.X+1])
}

// loadf copies the RPL flags into V0 through VX.
// copy stops at the end of the flag bank.
func loadf(c *CPU, in *arch.Instruction) {
	copy(c.v[:in.X+1], c.rpl[:])
}

// rnd sets VX to a random byte masked with NN.
func rnd(c *CPU, in *arch.Instruction) {
	c.v[in.X] = c.rng.Byte() & byte(in.NN)
}

// drw draws a sprite at (VX, VY). DXY0 in high resolution mode draws
// a 16x16 sprite, anything else an 8xN sprite.
func drw(c *CPU, in *arch.Instruction) {
	if c.highRes && in.N == 0 {
		drawLarge(c, int(c.v[in.X]), int(c.v[in.Y]))
	} else {
		drawSprite(c, int(c.v[in.X]), int(c.v[in.Y]), in.N)
	}
	c.dirty = true
}

// drawSprite XORs an 8xN sprite read from I onto the display.
// VF is set if any pixel is turned off. Pixels outside the display are skipped.
func drawSprite(c *CPU, vx, vy, rows int) {
	d := c.display
	c.v[arch.VF] = 0

	for row := 0; row < rows; row++ {
		bits := c.memory.U8(c.i + row)
		y := vy + row

		for col := 0; col < 8; col++ {
			x := vx + col
			if !d.Contains(x, y) {
				continue
			}

			if (bits>>(7-col))&1 == 0 {
				continue
			}

			if d.Pixel(x, y) {
				c.v[arch.VF] = 1
				d.SetPixel(x, y, false)
			} else {
				d.SetPixel(x, y, true)
			}
		}
	}
}

// drawLarge draws a 16x16 sprite read from I, two bytes per row.
// A set sprite bit turns an unset pixel on, or a set pixel off and sets VF.
// VF is left alone if no pixel is turned off.
func drawLarge(c *CPU, vx, vy int) {
	d := c.display

	for row := 0; row < 16; row++ {
		y := vy + row
		if y >= d.Rows() {
			break
		}

		bits := c.memory.U16(c.i + 2*row)

		for col := 0; col < 16; col++ {
			x := vx + col
			if x >= d.Columns() {
				continue
			}

			if (bits>>(15-col))&1 == 0 {
				continue
			}

			if d.Pixel(x, y) {
				c.v[arch.VF] = 1
				d.SetPixel(x, y, false)
			} else {
				d.SetPixel(x, y, true)
			}
		}
	}
}

func skp(c *CPU, in *arch.Instruction) {
	skipIf(c, c.keypad.Pressed(int(c.v[in.X])))
}

func sknp(c *CPU, in *arch.Instruction) {
	skipIf(c, !c.keypad.Pressed(int(c.v[in.X])))
}

// waitk stores the lowest pressed key in VX and skips the next instruction.
// Without a pressed key it does nothing and execution continues.
func waitk(c *CPU, in *arch.Instruction) {
	if key, ok := c.keypad.FirstPressed(); ok {
		c.v[in.X] = byte(key)
		c.pc = (c.pc + 2) & AddressMask
	}
}

func getdt(c *CPU, in *arch.Instruction) {
	c.v[in.X] = c.dt
}

func setdt(c *CPU, in *arch.Instruction) {
	c.dt = c.v[in.X]
}

func setst(c *CPU, in *arch.Instruction) {
	c.st = c.v[in.X]
}

func _bool(v bool) byte {
	if v {
		return 1
	}
	return 0
}
