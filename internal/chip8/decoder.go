package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies the operation of a decoded instruction.
type Op uint8

// Operations of the CHIP-8 instruction set. OpHalt is the all-zero sentinel word and
// OpUnknown any word that does not match an operation.
const (
	OpUnknown Op = iota
	OpHalt
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XKK
	OpSneByte    // 4XKK
	OpSeReg      // 5XY0
	OpLdByte     // 6XKK
	OpAddByte    // 7XKK
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXKK
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddI       // FX1E
	OpLdF        // FX29
	OpLdB        // FX33
	OpStoreRegs  // FX55
	OpLoadRegs   // FX65
	opCount
)

var opNames = [opCount]string{
	OpUnknown:   "unknown",
	OpHalt:      "halt",
	OpCls:       "cls",
	OpRet:       "ret",
	OpJp:        "jp",
	OpCall:      "call",
	OpSeByte:    "se",
	OpSneByte:   "sne",
	OpSeReg:     "se",
	OpLdByte:    "ld",
	OpAddByte:   "add",
	OpLdReg:     "ld",
	OpOr:        "or",
	OpAnd:       "and",
	OpXor:       "xor",
	OpAddReg:    "add",
	OpSub:       "sub",
	OpShr:       "shr",
	OpSubn:      "subn",
	OpShl:       "shl",
	OpSneReg:    "sne",
	OpLdI:       "ld",
	OpJpV0:      "jp",
	OpRnd:       "rnd",
	OpDrw:       "drw",
	OpSkp:       "skp",
	OpSknp:      "sknp",
	OpLdVxDT:    "ld",
	OpLdVxK:     "ld",
	OpLdDTVx:    "ld",
	OpLdSTVx:    "ld",
	OpAddI:      "add",
	OpLdF:       "ld",
	OpLdB:       "ld",
	OpStoreRegs: "ld",
	OpLoadRegs:  "ld",
}

// String returns the mnemonic of the operation.
func (o Op) String() string {
	if o >= opCount {
		return opNames[OpUnknown]
	}
	return opNames[o]
}

// Instruction is a decoded instruction word with all operand fields extracted.
// Which fields are meaningful depends on Op.
type Instruction struct {
	Op   Op
	Word uint16 // raw instruction word

	X   uint8  // register index from bits 8-11
	Y   uint8  // register index from bits 4-7
	N   uint8  // nibble from bits 0-3
	KK  uint8  // immediate byte from bits 0-7
	NNN uint16 // address from bits 0-11
}

// Class returns the operation class nibble, bits 12-15 of the word.
func (ins Instruction) Class() uint8 {
	return uint8(ins.Word >> 12)
}

// Name returns the mnemonic of the instruction. The instruction set definition of
// retrogolib is consulted first, the local operation name is the fallback.
func (ins Instruction) Name() string {
	if ins.Op == OpHalt || ins.Op == OpUnknown {
		return ins.Op.String()
	}
	for _, op := range chip8cpu.Opcodes[int(ins.Class())] {
		if op.Instruction != nil && op.Info.Mask&ins.Word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return ins.Op.String()
}

// Decode splits an instruction word into its operand fields and identifies the operation.
// Decoding never fails, words without a matching operation decode to OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		KK:   uint8(word),
		NNN:  word & 0x0FFF,
	}
	ins.Op = decodeOp(ins)
	return ins
}

func decodeOp(ins Instruction) Op {
	switch ins.Class() {
	case 0x0:
		switch ins.Word {
		case 0x0000:
			return OpHalt
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeByte
	case 0x4:
		return OpSneByte
	case 0x5:
		if ins.N == 0x0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return decodeALU(ins.N)
	case 0x9:
		if ins.N == 0x0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch ins.KK {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF:
		return decodeMisc(ins.KK)
	}
	return OpUnknown
}

// decodeALU identifies the register-register operations of class 8.
func decodeALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	default:
		return OpUnknown
	}
}

// decodeMisc identifies the timer, keypad and index operations of class F.
func decodeMisc(kk uint8) Op {
	switch kk {
	case 0x07:
		return OpLdVxDT
	case 0x0A:
		return OpLdVxK
	case 0x15:
		return OpLdDTVx
	case 0x18:
		return OpLdSTVx
	case 0x1E:
		return OpAddI
	case 0x29:
		return OpLdF
	case 0x33:
		return OpLdB
	case 0x55:
		return OpStoreRegs
	case 0x65:
		return OpLoadRegs
	default:
		return OpUnknown
	}
}
