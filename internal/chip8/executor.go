package chip8

import (
	"fmt"
)

type handler func(m *Machine, ins Instruction) error

// handlers maps every executable operation to its implementation.
// OpUnknown and OpHalt have no handler, the clock deals with the halt sentinel.
var handlers = [opCount]handler{
	OpCls:       (*Machine).cls,
	OpRet:       (*Machine).ret,
	OpJp:        (*Machine).jp,
	OpCall:      (*Machine).call,
	OpSeByte:    (*Machine).seByte,
	OpSneByte:   (*Machine).sneByte,
	OpSeReg:     (*Machine).seReg,
	OpLdByte:    (*Machine).ldByte,
	OpAddByte:   (*Machine).addByte,
	OpLdReg:     (*Machine).ldReg,
	OpOr:        (*Machine).or,
	OpAnd:       (*Machine).and,
	OpXor:       (*Machine).xor,
	OpAddReg:    (*Machine).addReg,
	OpSub:       (*Machine).sub,
	OpShr:       (*Machine).shr,
	OpSubn:      (*Machine).subn,
	OpShl:       (*Machine).shl,
	OpSneReg:    (*Machine).sneReg,
	OpLdI:       (*Machine).ldI,
	OpJpV0:      (*Machine).jpV0,
	OpRnd:       (*Machine).random,
	OpDrw:       (*Machine).drw,
	OpSkp:       (*Machine).skp,
	OpSknp:      (*Machine).sknp,
	OpLdVxDT:    (*Machine).ldVxDT,
	OpLdVxK:     (*Machine).ldVxK,
	OpLdDTVx:    (*Machine).ldDTVx,
	OpLdSTVx:    (*Machine).ldSTVx,
	OpAddI:      (*Machine).addI,
	OpLdF:       (*Machine).ldF,
	OpLdB:       (*Machine).ldB,
	OpStoreRegs: (*Machine).storeRegs,
	OpLoadRegs:  (*Machine).loadRegs,
}

// Execute applies the effect of a decoded instruction to the machine state.
// PC is expected to already point to the next instruction.
func (m *Machine) Execute(ins Instruction) error {
	if ins.Op >= opCount || handlers[ins.Op] == nil {
		return fmt.Errorf("%w: $%04X", ErrUnimplementedOpcode, ins.Word)
	}
	return handlers[ins.Op](m, ins)
}

// skipIf advances PC past the next instruction when the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.PC += InstructionSize
	}
}

func (m *Machine) cls(_ Instruction) error {
	m.Display.Clear()
	m.displayChanged = true
	return nil
}

func (m *Machine) ret(_ Instruction) error {
	if m.SP == 0 {
		return ErrStackUnderflow
	}
	m.SP--
	m.PC = m.Stack[m.SP]
	return nil
}

func (m *Machine) jp(ins Instruction) error {
	m.PC = ins.NNN
	return nil
}

func (m *Machine) call(ins Instruction) error {
	if int(m.SP) >= StackSize {
		return fmt.Errorf("%w: %d nested calls", ErrStackOverflow, StackSize)
	}
	m.Stack[m.SP] = m.PC
	m.SP++
	m.PC = ins.NNN
	return nil
}

func (m *Machine) seByte(ins Instruction) error {
	m.skipIf(m.V[ins.X] == ins.KK)
	return nil
}

func (m *Machine) sneByte(ins Instruction) error {
	m.skipIf(m.V[ins.X] != ins.KK)
	return nil
}

func (m *Machine) seReg(ins Instruction) error {
	m.skipIf(m.V[ins.X] == m.V[ins.Y])
	return nil
}

func (m *Machine) sneReg(ins Instruction) error {
	m.skipIf(m.V[ins.X] != m.V[ins.Y])
	return nil
}

func (m *Machine) ldByte(ins Instruction) error {
	m.V[ins.X] = ins.KK
	return nil
}

func (m *Machine) addByte(ins Instruction) error {
	m.V[ins.X] += ins.KK
	return nil
}

func (m *Machine) ldReg(ins Instruction) error {
	m.V[ins.X] = m.V[ins.Y]
	return nil
}

func (m *Machine) or(ins Instruction) error {
	m.V[ins.X] |= m.V[ins.Y]
	return nil
}

func (m *Machine) and(ins Instruction) error {
	m.V[ins.X] &= m.V[ins.Y]
	return nil
}

func (m *Machine) xor(ins Instruction) error {
	m.V[ins.X] ^= m.V[ins.Y]
	return nil
}

// The flag setting operations write VF after the destination register,
// so VF holds the flag even when it is the destination.

func (m *Machine) addReg(ins Instruction) error {
	a, b := m.V[ins.X], m.V[ins.Y]
	sum := uint16(a) + uint16(b)
	m.V[ins.X] = uint8(sum)
	m.V[FlagRegister] = boolToFlag(sum > 0xFF)
	return nil
}

func (m *Machine) sub(ins Instruction) error {
	a, b := m.V[ins.X], m.V[ins.Y]
	m.V[ins.X] = a - b
	m.V[FlagRegister] = boolToFlag(a >= b)
	return nil
}

// subn subtracts in the same operand order as sub but sets the flag on borrow.
func (m *Machine) subn(ins Instruction) error {
	a, b := m.V[ins.X], m.V[ins.Y]
	m.V[ins.X] = a - b
	m.V[FlagRegister] = boolToFlag(a < b)
	return nil
}

func (m *Machine) shr(ins Instruction) error {
	value := m.V[ins.X]
	m.V[ins.X] = value >> 1
	m.V[FlagRegister] = value & 0x01
	return nil
}

func (m *Machine) shl(ins Instruction) error {
	value := m.V[ins.X]
	m.V[ins.X] = value << 1
	m.V[FlagRegister] = value >> 7
	return nil
}

func (m *Machine) ldI(ins Instruction) error {
	m.I = ins.NNN
	return nil
}

func (m *Machine) jpV0(ins Instruction) error {
	m.PC = uint16(m.V[0]) + ins.NNN
	return nil
}

func (m *Machine) random(ins Instruction) error {
	m.V[ins.X] = m.rnd.Byte() & ins.KK
	return nil
}

func (m *Machine) drw(ins Instruction) error {
	length := int(ins.N)
	if err := checkRange(m.I, length); err != nil {
		return err
	}
	rows := m.Memory[m.I : int(m.I)+length]
	collision := m.Display.DrawSprite(m.V[ins.X], m.V[ins.Y], rows)
	m.V[FlagRegister] = boolToFlag(collision)
	m.displayChanged = true
	return nil
}

func (m *Machine) skp(ins Instruction) error {
	m.skipIf(m.Keys.Pressed(m.V[ins.X]))
	return nil
}

func (m *Machine) sknp(ins Instruction) error {
	m.skipIf(!m.Keys.Pressed(m.V[ins.X]))
	return nil
}

func (m *Machine) ldVxDT(ins Instruction) error {
	m.V[ins.X] = m.DelayTimer
	return nil
}

// ldVxK suspends the machine until a key is pressed, the clock resolves the wait.
func (m *Machine) ldVxK(ins Instruction) error {
	m.waiting = true
	m.waitRegister = ins.X
	return nil
}

// resolveWait stores the first pressed key in the waiting register and ends the
// wait. It returns false if no key is pressed.
func (m *Machine) resolveWait() bool {
	key, ok := m.Keys.FirstPressed()
	if !ok {
		return false
	}
	m.V[m.waitRegister] = key
	m.waiting = false
	return true
}

func (m *Machine) ldDTVx(ins Instruction) error {
	m.DelayTimer = m.V[ins.X]
	return nil
}

func (m *Machine) ldSTVx(ins Instruction) error {
	m.SoundTimer = m.V[ins.X]
	return nil
}

func (m *Machine) addI(ins Instruction) error {
	m.I += uint16(m.V[ins.X])
	return nil
}

// ldF points I at the value of Vx. The font table lookup is left to the
// program, the reserved memory area is not populated by the machine.
func (m *Machine) ldF(ins Instruction) error {
	m.I = uint16(m.V[ins.X])
	return nil
}

func (m *Machine) ldB(ins Instruction) error {
	if err := checkRange(m.I, 3); err != nil {
		return err
	}
	value := m.V[ins.X]
	m.Memory[m.I] = value / 100
	m.Memory[m.I+1] = value / 10 % 10
	m.Memory[m.I+2] = value % 10
	return nil
}

// storeRegs copies V0 to Vx inclusive to memory starting at I.
func (m *Machine) storeRegs(ins Instruction) error {
	count := int(ins.X) + 1
	if err := checkRange(m.I, count); err != nil {
		return err
	}
	copy(m.Memory[m.I:], m.V[:count])
	return nil
}

// loadRegs copies memory starting at I into V0 to Vx inclusive.
func (m *Machine) loadRegs(ins Instruction) error {
	count := int(ins.X) + 1
	if err := checkRange(m.I, count); err != nil {
		return err
	}
	copy(m.V[:count], m.Memory[m.I:])
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
