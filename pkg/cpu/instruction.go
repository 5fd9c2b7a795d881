package cpu

// Op identifies one member of the instruction set. The zero value is
// OpUnsupported so that an undecoded Instruction is never mistaken for a
// valid one.
type Op uint8

const (
	OpUnsupported Op = iota
	OpCLS            // 00E0
	OpRET            // 00EE
	OpJP             // 1nnn
	OpCALL           // 2nnn
	OpSEImm          // 3xkk
	OpSNEImm         // 4xkk
	OpSEReg          // 5xy0
	OpLDImm          // 6xkk
	OpADDImm         // 7xkk
	OpLDReg          // 8xy0
	OpOR             // 8xy1
	OpAND            // 8xy2
	OpXOR            // 8xy3
	OpADDReg         // 8xy4
	OpSUB            // 8xy5
	OpSHR            // 8xy6
	OpSUBN           // 8xy7
	OpSHL            // 8xyE
	OpSNEReg         // 9xy0
	OpLDI            // Annn
	OpJPV0           // Bnnn
	OpRND            // Cxkk
	OpDRW            // Dxyn
	OpSKP            // Ex9E
	OpSKNP           // ExA1
	OpLDVxDT         // Fx07
	OpLDKey          // Fx0A
	OpLDDTVx         // Fx15
	OpLDSTVx         // Fx18
	OpADDI           // Fx1E
	OpLDF            // Fx29
	OpLDB            // Fx33
	OpStore          // Fx55
	OpLoad           // Fx65

	opCount
)

var opNames = [opCount]string{
	OpUnsupported: "???",
	OpCLS:         "CLS",
	OpRET:         "RET",
	OpJP:          "JP",
	OpCALL:        "CALL",
	OpSEImm:       "SE",
	OpSNEImm:      "SNE",
	OpSEReg:       "SE",
	OpLDImm:       "LD",
	OpADDImm:      "ADD",
	OpLDReg:       "LD",
	OpOR:          "OR",
	OpAND:         "AND",
	OpXOR:         "XOR",
	OpADDReg:      "ADD",
	OpSUB:         "SUB",
	OpSHR:         "SHR",
	OpSUBN:        "SUBN",
	OpSHL:         "SHL",
	OpSNEReg:      "SNE",
	OpLDI:         "LD I",
	OpJPV0:        "JP V0",
	OpRND:         "RND",
	OpDRW:         "DRW",
	OpSKP:         "SKP",
	OpSKNP:        "SKNP",
	OpLDVxDT:      "LD DT",
	OpLDKey:       "LD K",
	OpLDDTVx:      "LD DT",
	OpLDSTVx:      "LD ST",
	OpADDI:        "ADD I",
	OpLDF:         "LD F",
	OpLDB:         "LD B",
	OpStore:       "LD [I]",
	OpLoad:        "LD [I]",
}

func (o Op) String() string {
	if o >= opCount {
		return opNames[OpUnsupported]
	}
	return opNames[o]
}

// Instruction is a decoded 16-bit instruction word. All operand fields are
// extracted for every word; which of them are meaningful depends on Op.
type Instruction struct {
	Op   Op
	Word uint16
	X    uint8  // bits 8-11
	Y    uint8  // bits 4-7
	N    uint8  // bits 0-3
	KK   uint8  // bits 0-7
	NNN  uint16 // bits 0-11
}

// Supported reports whether the word decoded to a member of the instruction set.
func (i Instruction) Supported() bool {
	return i.Op != OpUnsupported
}

// Decode maps any 16-bit word to an Instruction. Words outside the
// instruction set decode to OpUnsupported.
func Decode(word uint16) Instruction {
	in := Instruction{
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		KK:   uint8(word),
		NNN:  word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			in.Op = OpCLS
		case 0x00EE:
			in.Op = OpRET
		}
	case 0x1:
		in.Op = OpJP
	case 0x2:
		in.Op = OpCALL
	case 0x3:
		in.Op = OpSEImm
	case 0x4:
		in.Op = OpSNEImm
	case 0x5:
		if in.N == 0 {
			in.Op = OpSEReg
		}
	case 0x6:
		in.Op = OpLDImm
	case 0x7:
		in.Op = OpADDImm
	case 0x8:
		in.Op = aluOps[in.N]
	case 0x9:
		if in.N == 0 {
			in.Op = OpSNEReg
		}
	case 0xA:
		in.Op = OpLDI
	case 0xB:
		in.Op = OpJPV0
	case 0xC:
		in.Op = OpRND
	case 0xD:
		in.Op = OpDRW
	case 0xE:
		switch in.KK {
		case 0x9E:
			in.Op = OpSKP
		case 0xA1:
			in.Op = OpSKNP
		}
	case 0xF:
		in.Op = miscOps[in.KK]
	}

	return in
}

// aluOps is indexed by the low nibble of an 8xyN word.
var aluOps = [16]Op{
	0x0: OpLDReg,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDReg,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xE: OpSHL,
}

// miscOps is indexed by the low byte of an FxKK word.
var miscOps = map[uint8]Op{
	0x07: OpLDVxDT,
	0x0A: OpLDKey,
	0x15: OpLDDTVx,
	0x18: OpLDSTVx,
	0x1E: OpADDI,
	0x29: OpLDF,
	0x33: OpLDB,
	0x55: OpStore,
	0x65: OpLoad,
}
