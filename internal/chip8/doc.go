// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language from the 1970s designed for simple games.
// The virtual machine executing it consists of:
//   - 4KB of memory (0x000-MaxAddress), programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as the flag register
//   - a 16-bit index register I and a program counter
//   - a call stack of StackSize return addresses
//   - delay and sound timers that count down once per executed instruction
//   - a 64x32 monochrome display and a 16-key keypad
//
// # Execution Model
//
// A Clock owns exactly one Machine. Every step polls the input source, fetches the
// 16-bit big-endian word at PC, decodes it into an Instruction and executes it.
// The all-zero word halts the machine. Stack overflow/underflow, unimplemented
// opcodes and out-of-bounds memory access are fatal and reported as errors
// wrapping the sentinel errors of this package.
//
// # Usage Example
//
//	m := chip8.New(random.New(0))
//	if err := m.LoadProgram(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//
//	clock := chip8.NewClock(logger, m, chip8.Peripherals{Display: display}, chip8.Config{})
//	result, err := clock.Run(ctx)
//
// # Limitations
//
//   - Only the original instruction set, no SUPER-CHIP or XO-CHIP extensions
//   - The reserved memory area 0x000-0x1FF is not populated with a font
package chip8
