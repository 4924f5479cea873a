package chip8

import "fmt"

// String returns the assembly form of the instruction, for example "drw V1, V2, $5".
func (ins Instruction) String() string {
	name := ins.Name()
	if params := ins.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of the instruction.
func (ins Instruction) formatParams() string {
	switch ins.Op {
	case OpJp, OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return formatRegisterByte(ins.X, ins.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return formatRegisterPair(ins.X, ins.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return formatRegister(ins.X)
	case OpLdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", ins.X)
	case OpUnknown:
		return fmt.Sprintf("$%04X", ins.Word)
	}
	return ""
}

func formatRegister(x uint8) string {
	return fmt.Sprintf("V%X", x)
}

func formatRegisterByte(x, kk uint8) string {
	return fmt.Sprintf("V%X, $%02X", x, kk)
}

func formatRegisterPair(x, y uint8) string {
	return fmt.Sprintf("V%X, V%X", x, y)
}
