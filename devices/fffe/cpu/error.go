package cpu

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hexaflex/c8vm/arch"
)

// ErrROMTooLarge is returned when a ROM image does not fit in program memory.
var ErrROMTooLarge = errors.New("rom is too large to load into memory")

// ExitError is returned by Step when the program executes an exit
// instruction. The machine is stopped but remains usable.
type ExitError struct {
	arch.Instruction
	IP   int // Address of the exit instruction.
	Code int // Exit code requested by the program.
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%03x: exit with code %d", e.IP, e.Code)
}
