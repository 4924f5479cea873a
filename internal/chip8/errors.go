package chip8

import (
	"errors"
	"fmt"
)

// Fatal machine errors. A machine is not resumable after any of them.
var (
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	ErrStackOverflow       = errors.New("stack overflow")
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrOutOfBounds         = errors.New("out of bounds memory access")
	ErrProgramTooLarge     = errors.New("program too large")
)

// ExecutionError describes the instruction that caused a fatal error.
type ExecutionError struct {
	Address     uint16 // address the instruction was fetched from
	Instruction Instruction
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing $%04X at $%04X (%s): %v", e.Instruction.Word, e.Address, e.Instruction, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
