// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

// Known opcodes.
//
// The comment next to each opcode shows the instruction word it decodes
// from. X and Y are register indices, N a nibble, NN a byte and NNN an
// address.
const (
	UNKNOWN = iota // Anything not listed below. Executes as a no-op.

	EXIT // 001N  Terminate with exit code N.
	SCD  // 00CN  Scroll display N rows down.
	CLS  // 00E0  Clear the display.
	RET  // 00EE  Return from subroutine.
	SCR  // 00FB  Scroll display 4 pixels right.
	SCL  // 00FC  Scroll display 4 pixels left.
	STOP // 00FD  Stop the interpreter.
	LOW  // 00FE  Enter normal resolution mode.
	HIGH // 00FF  Enter high resolution mode.
	SYS  // 0NNN  Machine code call. Not supported; skips the next instruction.

	JP   // 1NNN  PC = NNN
	CALL // 2NNN  Call subroutine at NNN.
	SEB  // 3XNN  Skip if VX == NN.
	SNEB // 4XNN  Skip if VX != NN.
	SE   // 5XY0  Skip if VX == VY.
	MOVB // 6XNN  VX = NN
	ADDB // 7XNN  VX += NN

	MOV  // 8XY0  VX = VY
	OR   // 8XY1  VX |= VY
	AND  // 8XY2  VX &= VY
	XOR  // 8XY3  VX ^= VY
	ADD  // 8XY4  VX += VY, VF = carry
	SUB  // 8XY5  VX -= VY, VF = not borrow
	SHR  // 8XY6  VX >>= 1, VF = old lsb
	SUBN // 8XY7  VX = VY - VX, VF = VY > VX
	SHL  // 8XYE  VX <<= 1, VF = old msb

	SNE  // 9XY0  Skip if VX != VY.
	LDI  // ANNN  I = NNN
	JPV0 // BNNN  PC = NNN + V0
	RND  // CXNN  VX = random & NN
	DRW  // DXYN  Draw sprite. DXY0 draws 16x16 in high resolution mode.

	SKP  // EX9E  Skip if key VX is pressed.
	SKNP // EXA1  Skip if key VX is not pressed.

	GETDT // FX07  VX = DT
	WAITK // FX0A  VX = first pressed key.
	SETDT // FX15  DT = VX
	SETST // FX18  ST = VX
	ADDI  // FX1E  I += VX, VF = I > 0xfff
	FONT  // FX29  I = small font glyph VX.
	HFONT // FX30  I = large font glyph VX.
	BCD   // FX33  mem[I..I+2] = decimal digits of VX.
	STORE // FX55  mem[I..I+X] = V0..VX
	LOAD  // FX65  V0..VX = mem[I..I+X]
	SAVEF // FX75  RPL[0..X] = V0..VX
	LOADF // FX85  V0..VX = RPL[0..X]
)

// Name returns the assembler mnemonic for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case EXIT, STOP:
		return "EXIT", true
	case SCD:
		return "SCD", true
	case CLS:
		return "CLS", true
	case RET:
		return "RET", true
	case SCR:
		return "SCR", true
	case SCL:
		return "SCL", true
	case LOW:
		return "LOW", true
	case HIGH:
		return "HIGH", true
	case SYS:
		return "SYS", true

	case JP, JPV0:
		return "JP", true
	case CALL:
		return "CALL", true
	case SEB, SE:
		return "SE", true
	case SNEB, SNE:
		return "SNE", true

	case MOVB, MOV, LDI, GETDT, WAITK, SETDT, SETST, FONT, HFONT, BCD, STORE, LOAD, SAVEF, LOADF:
		return "LD", true
	case ADDB, ADD, ADDI:
		return "ADD", true
	case OR:
		return "OR", true
	case AND:
		return "AND", true
	case XOR:
		return "XOR", true
	case SUB:
		return "SUB", true
	case SHR:
		return "SHR", true
	case SUBN:
		return "SUBN", true
	case SHL:
		return "SHL", true

	case RND:
		return "RND", true
	case DRW:
		return "DRW", true
	case SKP:
		return "SKP", true
	case SKNP:
		return "SKNP", true
	}

	return "", false
}
