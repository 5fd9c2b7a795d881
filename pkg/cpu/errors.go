package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	ErrStackOverflow          = errors.New("call stack overflow")
	ErrStackUnderflow         = errors.New("return with empty call stack")
	ErrROMTooLarge            = errors.New("rom does not fit in program memory")
	ErrInvalidKey             = errors.New("invalid key")
)

// UnsupportedInstructionError reports an instruction word that is not part of
// the instruction set. It matches ErrUnsupportedInstruction with errors.Is.
type UnsupportedInstructionError struct {
	PC   uint16
	Word uint16
}

func (e *UnsupportedInstructionError) Error() string {
	return fmt.Sprintf("unsupported instruction 0x%04X at 0x%03X", e.Word, e.PC)
}

func (e *UnsupportedInstructionError) Is(target error) bool {
	return target == ErrUnsupportedInstruction
}
