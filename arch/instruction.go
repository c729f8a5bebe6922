package arch

import "fmt"

// Instruction defines a decoded instruction word.
type Instruction struct {
	Word   uint16 // Raw instruction word.
	Opcode int    // Classified opcode. UNKNOWN if no handler recognizes the word.
	Class  int    // Bits 12-15.
	X      int    // Bits 8-11: register index.
	Y      int    // Bits 4-7: register index.
	N      int    // Bits 0-3.
	NN     int    // Bits 0-7.
	NNN    int    // Bits 0-11.
}

// Decode splits the given word into its fields and classifies it.
// Every word decodes to some instruction; unrecognized words yield UNKNOWN.
func Decode(word uint16) Instruction {
	i := Instruction{
		Word:  word,
		Class: int(word>>12) & 0xf,
		X:     int(word>>8) & 0xf,
		Y:     int(word>>4) & 0xf,
		N:     int(word) & 0xf,
		NN:    int(word) & 0xff,
		NNN:   int(word) & 0xfff,
	}
	i.Opcode = classify(&i)
	return i
}

// classify selects the opcode for the decoded fields.
func classify(i *Instruction) int {
	switch i.Class {
	case 0x0:
		return classifySystem(i)
	case 0x1:
		return JP
	case 0x2:
		return CALL
	case 0x3:
		return SEB
	case 0x4:
		return SNEB
	case 0x5:
		return SE
	case 0x6:
		return MOVB
	case 0x7:
		return ADDB
	case 0x8:
		return classifyALU(i)
	case 0x9:
		return SNE
	case 0xa:
		return LDI
	case 0xb:
		return JPV0
	case 0xc:
		return RND
	case 0xd:
		return DRW
	case 0xe:
		switch i.NN {
		case 0x9e:
			return SKP
		case 0xa1:
			return SKNP
		}
	case 0xf:
		return classifyMisc(i)
	}
	return UNKNOWN
}

// classifySystem handles the 0NNN family. X is ignored: the word is
// matched on Y first, then on NN. Anything else is a machine code call.
func classifySystem(i *Instruction) int {
	switch i.Y {
	case 0x1:
		return EXIT
	case 0xc:
		return SCD
	}

	switch i.NN {
	case 0xe0:
		return CLS
	case 0xee:
		return RET
	case 0xfb:
		return SCR
	case 0xfc:
		return SCL
	case 0xfd:
		return STOP
	case 0xfe:
		return LOW
	case 0xff:
		return HIGH
	}

	return SYS
}

func classifyALU(i *Instruction) int {
	switch i.N {
	case 0x0:
		return MOV
	case 0x1:
		return OR
	case 0x2:
		return AND
	case 0x3:
		return XOR
	case 0x4:
		return ADD
	case 0x5:
		return SUB
	case 0x6:
		return SHR
	case 0x7:
		return SUBN
	case 0xe:
		return SHL
	}
	return UNKNOWN
}

func classifyMisc(i *Instruction) int {
	switch i.NN {
	case 0x07:
		return GETDT
	case 0x0a:
		return WAITK
	case 0x15:
		return SETDT
	case 0x18:
		return SETST
	case 0x1e:
		return ADDI
	case 0x29:
		return FONT
	case 0x30:
		return HFONT
	case 0x33:
		return BCD
	case 0x55:
		return STORE
	case 0x65:
		return LOAD
	case 0x75:
		return SAVEF
	case 0x85:
		return LOADF
	}
	return UNKNOWN
}

// String returns the instruction in assembler notation.
func (i Instruction) String() string {
	name, ok := Name(i.Opcode)
	if !ok {
		return fmt.Sprintf("DW #%04X", i.Word)
	}

	vx := RegisterName(i.X)
	vy := RegisterName(i.Y)

	switch i.Opcode {
	case CLS, RET, SCR, SCL, STOP, LOW, HIGH:
		return name
	case EXIT, SCD:
		return fmt.Sprintf("%s %d", name, i.N)
	case JP, CALL, SYS:
		return fmt.Sprintf("%s #%03X", name, i.NNN)
	case JPV0:
		return fmt.Sprintf("%s V0, #%03X", name, i.NNN)
	case SEB, SNEB, MOVB, ADDB, RND:
		return fmt.Sprintf("%s %s, #%02X", name, vx, i.NN)
	case SE, SNE, MOV, OR, AND, XOR, ADD, SUB, SHR, SUBN, SHL:
		return fmt.Sprintf("%s %s, %s", name, vx, vy)
	case LDI:
		return fmt.Sprintf("%s I, #%03X", name, i.NNN)
	case DRW:
		return fmt.Sprintf("%s %s, %s, %d", name, vx, vy, i.N)
	case SKP, SKNP:
		return fmt.Sprintf("%s %s", name, vx)
	case GETDT:
		return fmt.Sprintf("%s %s, DT", name, vx)
	case WAITK:
		return fmt.Sprintf("%s %s, K", name, vx)
	case SETDT:
		return fmt.Sprintf("%s DT, %s", name, vx)
	case SETST:
		return fmt.Sprintf("%s ST, %s", name, vx)
	case ADDI:
		return fmt.Sprintf("%s I, %s", name, vx)
	case FONT:
		return fmt.Sprintf("%s F, %s", name, vx)
	case HFONT:
		return fmt.Sprintf("%s HF, %s", name, vx)
	case BCD:
		return fmt.Sprintf("%s B, %s", name, vx)
	case STORE:
		return fmt.Sprintf("%s [I], %s", name, vx)
	case LOAD:
		return fmt.Sprintf("%s %s, [I]", name, vx)
	case SAVEF:
		return fmt.Sprintf("%s R, %s", name, vx)
	case LOADF:
		return fmt.Sprintf("%s %s, R", name, vx)
	}

	return name
}
