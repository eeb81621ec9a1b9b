package nes

type instructionFlags byte

const (
	// pageCross costs one more cycle when indexing crosses a page.
	pageCross instructionFlags = 1 << iota
	// unofficial marks opcodes outside the documented 6502 set.
	unofficial
)

type instruction struct {
	mnemonic string
	mode     addressingMode
	cycles   int
	flags    instructionFlags
	execute  func(c *CPU, mode addressingMode, address uint16)
}

// instructions is indexed by opcode. Every slot is populated; unstable
// unofficial opcodes are approximated.
var instructions = [256]instruction{
	{"BRK", implied, 7, 0, (*CPU).brk},                        // 0x00
	{"ORA", indirectX, 6, 0, (*CPU).ora},                      // 0x01
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x02
	{"SLO", indirectX, 8, unofficial, (*CPU).slo},             // 0x03
	{"NOP", zeropage, 3, unofficial, (*CPU).nop},              // 0x04
	{"ORA", zeropage, 3, 0, (*CPU).ora},                       // 0x05
	{"ASL", zeropage, 5, 0, (*CPU).asl},                       // 0x06
	{"SLO", zeropage, 5, unofficial, (*CPU).slo},              // 0x07
	{"PHP", implied, 3, 0, (*CPU).php},                        // 0x08
	{"ORA", immediate, 2, 0, (*CPU).ora},                      // 0x09
	{"ASL", accumulator, 2, 0, (*CPU).asl},                    // 0x0A
	{"ANC", immediate, 2, unofficial, (*CPU).anc},             // 0x0B
	{"NOP", absolute, 4, unofficial, (*CPU).nop},              // 0x0C
	{"ORA", absolute, 4, 0, (*CPU).ora},                       // 0x0D
	{"ASL", absolute, 6, 0, (*CPU).asl},                       // 0x0E
	{"SLO", absolute, 6, unofficial, (*CPU).slo},              // 0x0F
	{"BPL", relative, 2, 0, (*CPU).bpl},                       // 0x10
	{"ORA", indirectY, 5, pageCross, (*CPU).ora},              // 0x11
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x12
	{"SLO", indirectY, 8, unofficial, (*CPU).slo},             // 0x13
	{"NOP", zeropageX, 4, unofficial, (*CPU).nop},             // 0x14
	{"ORA", zeropageX, 4, 0, (*CPU).ora},                      // 0x15
	{"ASL", zeropageX, 6, 0, (*CPU).asl},                      // 0x16
	{"SLO", zeropageX, 6, unofficial, (*CPU).slo},             // 0x17
	{"CLC", implied, 2, 0, (*CPU).clc},                        // 0x18
	{"ORA", absoluteY, 4, pageCross, (*CPU).ora},              // 0x19
	{"NOP", implied, 2, unofficial, (*CPU).nop},               // 0x1A
	{"SLO", absoluteY, 7, unofficial, (*CPU).slo},             // 0x1B
	{"NOP", absoluteX, 4, pageCross | unofficial, (*CPU).nop}, // 0x1C
	{"ORA", absoluteX, 4, pageCross, (*CPU).ora},              // 0x1D
	{"ASL", absoluteX, 7, 0, (*CPU).asl},                      // 0x1E
	{"SLO", absoluteX, 7, unofficial, (*CPU).slo},             // 0x1F
	{"JSR", absolute, 6, 0, (*CPU).jsr},                       // 0x20
	{"AND", indirectX, 6, 0, (*CPU).and},                      // 0x21
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x22
	{"RLA", indirectX, 8, unofficial, (*CPU).rla},             // 0x23
	{"BIT", zeropage, 3, 0, (*CPU).bit},                       // 0x24
	{"AND", zeropage, 3, 0, (*CPU).and},                       // 0x25
	{"ROL", zeropage, 5, 0, (*CPU).rol},                       // 0x26
	{"RLA", zeropage, 5, unofficial, (*CPU).rla},              // 0x27
	{"PLP", implied, 4, 0, (*CPU).plp},                        // 0x28
	{"AND", immediate, 2, 0, (*CPU).and},                      // 0x29
	{"ROL", accumulator, 2, 0, (*CPU).rol},                    // 0x2A
	{"ANC", immediate, 2, unofficial, (*CPU).anc},             // 0x2B
	{"BIT", absolute, 4, 0, (*CPU).bit},                       // 0x2C
	{"AND", absolute, 4, 0, (*CPU).and},                       // 0x2D
	{"ROL", absolute, 6, 0, (*CPU).rol},                       // 0x2E
	{"RLA", absolute, 6, unofficial, (*CPU).rla},              // 0x2F
	{"BMI", relative, 2, 0, (*CPU).bmi},                       // 0x30
	{"AND", indirectY, 5, pageCross, (*CPU).and},              // 0x31
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x32
	{"RLA", indirectY, 8, unofficial, (*CPU).rla},             // 0x33
	{"NOP", zeropageX, 4, unofficial, (*CPU).nop},             // 0x34
	{"AND", zeropageX, 4, 0, (*CPU).and},                      // 0x35
	{"ROL", zeropageX, 6, 0, (*CPU).rol},                      // 0x36
	{"RLA", zeropageX, 6, unofficial, (*CPU).rla},             // 0x37
	{"SEC", implied, 2, 0, (*CPU).sec},                        // 0x38
	{"AND", absoluteY, 4, pageCross, (*CPU).and},              // 0x39
	{"NOP", implied, 2, unofficial, (*CPU).nop},               // 0x3A
	{"RLA", absoluteY, 7, unofficial, (*CPU).rla},             // 0x3B
	{"NOP", absoluteX, 4, pageCross | unofficial, (*CPU).nop}, // 0x3C
	{"AND", absoluteX, 4, pageCross, (*CPU).and},              // 0x3D
	{"ROL", absoluteX, 7, 0, (*CPU).rol},                      // 0x3E
	{"RLA", absoluteX, 7, unofficial, (*CPU).rla},             // 0x3F
	{"RTI", implied, 6, 0, (*CPU).rti},                        // 0x40
	{"EOR", indirectX, 6, 0, (*CPU).eor},                      // 0x41
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x42
	{"SRE", indirectX, 8, unofficial, (*CPU).sre},             // 0x43
	{"NOP", zeropage, 3, unofficial, (*CPU).nop},              // 0x44
	{"EOR", zeropage, 3, 0, (*CPU).eor},                       // 0x45
	{"LSR", zeropage, 5, 0, (*CPU).lsr},                       // 0x46
	{"SRE", zeropage, 5, unofficial, (*CPU).sre},              // 0x47
	{"PHA", implied, 3, 0, (*CPU).pha},                        // 0x48
	{"EOR", immediate, 2, 0, (*CPU).eor},                      // 0x49
	{"LSR", accumulator, 2, 0, (*CPU).lsr},                    // 0x4A
	{"ALR", immediate, 2, unofficial, (*CPU).alr},             // 0x4B
	{"JMP", absolute, 3, 0, (*CPU).jmp},                       // 0x4C
	{"EOR", absolute, 4, 0, (*CPU).eor},                       // 0x4D
	{"LSR", absolute, 6, 0, (*CPU).lsr},                       // 0x4E
	{"SRE", absolute, 6, unofficial, (*CPU).sre},              // 0x4F
	{"BVC", relative, 2, 0, (*CPU).bvc},                       // 0x50
	{"EOR", indirectY, 5, pageCross, (*CPU).eor},              // 0x51
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x52
	{"SRE", indirectY, 8, unofficial, (*CPU).sre},             // 0x53
	{"NOP", zeropageX, 4, unofficial, (*CPU).nop},             // 0x54
	{"EOR", zeropageX, 4, 0, (*CPU).eor},                      // 0x55
	{"LSR", zeropageX, 6, 0, (*CPU).lsr},                      // 0x56
	{"SRE", zeropageX, 6, unofficial, (*CPU).sre},             // 0x57
	{"CLI", implied, 2, 0, (*CPU).cli},                        // 0x58
	{"EOR", absoluteY, 4, pageCross, (*CPU).eor},              // 0x59
	{"NOP", implied, 2, unofficial, (*CPU).nop},               // 0x5A
	{"SRE", absoluteY, 7, unofficial, (*CPU).sre},             // 0x5B
	{"NOP", absoluteX, 4, pageCross | unofficial, (*CPU).nop}, // 0x5C
	{"EOR", absoluteX, 4, pageCross, (*CPU).eor},              // 0x5D
	{"LSR", absoluteX, 7, 0, (*CPU).lsr},                      // 0x5E
	{"SRE", absoluteX, 7, unofficial, (*CPU).sre},             // 0x5F
	{"RTS", implied, 6, 0, (*CPU).rts},                        // 0x60
	{"ADC", indirectX, 6, 0, (*CPU).adc},                      // 0x61
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x62
	{"RRA", indirectX, 8, unofficial, (*CPU).rra},             // 0x63
	{"NOP", zeropage, 3, unofficial, (*CPU).nop},              // 0x64
	{"ADC", zeropage, 3, 0, (*CPU).adc},                       // 0x65
	{"ROR", zeropage, 5, 0, (*CPU).ror},                       // 0x66
	{"RRA", zeropage, 5, unofficial, (*CPU).rra},              // 0x67
	{"PLA", implied, 4, 0, (*CPU).pla},                        // 0x68
	{"ADC", immediate, 2, 0, (*CPU).adc},                      // 0x69
	{"ROR", accumulator, 2, 0, (*CPU).ror},                    // 0x6A
	{"ARR", immediate, 2, unofficial, (*CPU).arr},             // 0x6B
	{"JMP", indirect, 5, 0, (*CPU).jmp},                       // 0x6C
	{"ADC", absolute, 4, 0, (*CPU).adc},                       // 0x6D
	{"ROR", absolute, 6, 0, (*CPU).ror},                       // 0x6E
	{"RRA", absolute, 6, unofficial, (*CPU).rra},              // 0x6F
	{"BVS", relative, 2, 0, (*CPU).bvs},                       // 0x70
	{"ADC", indirectY, 5, pageCross, (*CPU).adc},              // 0x71
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x72
	{"RRA", indirectY, 8, unofficial, (*CPU).rra},             // 0x73
	{"NOP", zeropageX, 4, unofficial, (*CPU).nop},             // 0x74
	{"ADC", zeropageX, 4, 0, (*CPU).adc},                      // 0x75
	{"ROR", zeropageX, 6, 0, (*CPU).ror},                      // 0x76
	{"RRA", zeropageX, 6, unofficial, (*CPU).rra},             // 0x77
	{"SEI", implied, 2, 0, (*CPU).sei},                        // 0x78
	{"ADC", absoluteY, 4, pageCross, (*CPU).adc},              // 0x79
	{"NOP", implied, 2, unofficial, (*CPU).nop},               // 0x7A
	{"RRA", absoluteY, 7, unofficial, (*CPU).rra},             // 0x7B
	{"NOP", absoluteX, 4, pageCross | unofficial, (*CPU).nop}, // 0x7C
	{"ADC", absoluteX, 4, pageCross, (*CPU).adc},              // 0x7D
	{"ROR", absoluteX, 7, 0, (*CPU).ror},                      // 0x7E
	{"RRA", absoluteX, 7, unofficial, (*CPU).rra},             // 0x7F
	{"NOP", immediate, 2, unofficial, (*CPU).nop},             // 0x80
	{"STA", indirectX, 6, 0, (*CPU).sta},                      // 0x81
	{"NOP", immediate, 2, unofficial, (*CPU).nop},             // 0x82
	{"SAX", indirectX, 6, unofficial, (*CPU).sax},             // 0x83
	{"STY", zeropage, 3, 0, (*CPU).sty},                       // 0x84
	{"STA", zeropage, 3, 0, (*CPU).sta},                       // 0x85
	{"STX", zeropage, 3, 0, (*CPU).stx},                       // 0x86
	{"SAX", zeropage, 3, unofficial, (*CPU).sax},              // 0x87
	{"DEY", implied, 2, 0, (*CPU).dey},                        // 0x88
	{"NOP", immediate, 2, unofficial, (*CPU).nop},             // 0x89
	{"TXA", implied, 2, 0, (*CPU).txa},                        // 0x8A
	{"XAA", immediate, 2, unofficial, (*CPU).xaa},             // 0x8B
	{"STY", absolute, 4, 0, (*CPU).sty},                       // 0x8C
	{"STA", absolute, 4, 0, (*CPU).sta},                       // 0x8D
	{"STX", absolute, 4, 0, (*CPU).stx},                       // 0x8E
	{"SAX", absolute, 4, unofficial, (*CPU).sax},              // 0x8F
	{"BCC", relative, 2, 0, (*CPU).bcc},                       // 0x90
	{"STA", indirectY, 6, 0, (*CPU).sta},                      // 0x91
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0x92
	{"AHX", indirectY, 6, unofficial, (*CPU).ahx},             // 0x93
	{"STY", zeropageX, 4, 0, (*CPU).sty},                      // 0x94
	{"STA", zeropageX, 4, 0, (*CPU).sta},                      // 0x95
	{"STX", zeropageY, 4, 0, (*CPU).stx},                      // 0x96
	{"SAX", zeropageY, 4, unofficial, (*CPU).sax},             // 0x97
	{"TYA", implied, 2, 0, (*CPU).tya},                        // 0x98
	{"STA", absoluteY, 5, 0, (*CPU).sta},                      // 0x99
	{"TXS", implied, 2, 0, (*CPU).txs},                        // 0x9A
	{"TAS", absoluteY, 5, unofficial, (*CPU).tas},             // 0x9B
	{"SHY", absoluteX, 5, unofficial, (*CPU).shy},             // 0x9C
	{"STA", absoluteX, 5, 0, (*CPU).sta},                      // 0x9D
	{"SHX", absoluteY, 5, unofficial, (*CPU).shx},             // 0x9E
	{"AHX", absoluteY, 5, unofficial, (*CPU).ahx},             // 0x9F
	{"LDY", immediate, 2, 0, (*CPU).ldy},                      // 0xA0
	{"LDA", indirectX, 6, 0, (*CPU).lda},                      // 0xA1
	{"LDX", immediate, 2, 0, (*CPU).ldx},                      // 0xA2
	{"LAX", indirectX, 6, unofficial, (*CPU).lax},             // 0xA3
	{"LDY", zeropage, 3, 0, (*CPU).ldy},                       // 0xA4
	{"LDA", zeropage, 3, 0, (*CPU).lda},                       // 0xA5
	{"LDX", zeropage, 3, 0, (*CPU).ldx},                       // 0xA6
	{"LAX", zeropage, 3, unofficial, (*CPU).lax},              // 0xA7
	{"TAY", implied, 2, 0, (*CPU).tay},                        // 0xA8
	{"LDA", immediate, 2, 0, (*CPU).lda},                      // 0xA9
	{"TAX", implied, 2, 0, (*CPU).tax},                        // 0xAA
	{"LXA", immediate, 2, unofficial, (*CPU).lxa},             // 0xAB
	{"LDY", absolute, 4, 0, (*CPU).ldy},                       // 0xAC
	{"LDA", absolute, 4, 0, (*CPU).lda},                       // 0xAD
	{"LDX", absolute, 4, 0, (*CPU).ldx},                       // 0xAE
	{"LAX", absolute, 4, unofficial, (*CPU).lax},              // 0xAF
	{"BCS", relative, 2, 0, (*CPU).bcs},                       // 0xB0
	{"LDA", indirectY, 5, pageCross, (*CPU).lda},              // 0xB1
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0xB2
	{"LAX", indirectY, 5, pageCross | unofficial, (*CPU).lax}, // 0xB3
	{"LDY", zeropageX, 4, 0, (*CPU).ldy},                      // 0xB4
	{"LDA", zeropageX, 4, 0, (*CPU).lda},                      // 0xB5
	{"LDX", zeropageY, 4, 0, (*CPU).ldx},                      // 0xB6
	{"LAX", zeropageY, 4, unofficial, (*CPU).lax},             // 0xB7
	{"CLV", implied, 2, 0, (*CPU).clv},                        // 0xB8
	{"LDA", absoluteY, 4, pageCross, (*CPU).lda},              // 0xB9
	{"TSX", implied, 2, 0, (*CPU).tsx},                        // 0xBA
	{"LAS", absoluteY, 4, pageCross | unofficial, (*CPU).las}, // 0xBB
	{"LDY", absoluteX, 4, pageCross, (*CPU).ldy},              // 0xBC
	{"LDA", absoluteX, 4, pageCross, (*CPU).lda},              // 0xBD
	{"LDX", absoluteY, 4, pageCross, (*CPU).ldx},              // 0xBE
	{"LAX", absoluteY, 4, pageCross | unofficial, (*CPU).lax}, // 0xBF
	{"CPY", immediate, 2, 0, (*CPU).cpy},                      // 0xC0
	{"CMP", indirectX, 6, 0, (*CPU).cmp},                      // 0xC1
	{"NOP", immediate, 2, unofficial, (*CPU).nop},             // 0xC2
	{"DCP", indirectX, 8, unofficial, (*CPU).dcp},             // 0xC3
	{"CPY", zeropage, 3, 0, (*CPU).cpy},                       // 0xC4
	{"CMP", zeropage, 3, 0, (*CPU).cmp},                       // 0xC5
	{"DEC", zeropage, 5, 0, (*CPU).dec},                       // 0xC6
	{"DCP", zeropage, 5, unofficial, (*CPU).dcp},              // 0xC7
	{"INY", implied, 2, 0, (*CPU).iny},                        // 0xC8
	{"CMP", immediate, 2, 0, (*CPU).cmp},                      // 0xC9
	{"DEX", implied, 2, 0, (*CPU).dex},                        // 0xCA
	{"AXS", immediate, 2, unofficial, (*CPU).axs},             // 0xCB
	{"CPY", absolute, 4, 0, (*CPU).cpy},                       // 0xCC
	{"CMP", absolute, 4, 0, (*CPU).cmp},                       // 0xCD
	{"DEC", absolute, 6, 0, (*CPU).dec},                       // 0xCE
	{"DCP", absolute, 6, unofficial, (*CPU).dcp},              // 0xCF
	{"BNE", relative, 2, 0, (*CPU).bne},                       // 0xD0
	{"CMP", indirectY, 5, pageCross, (*CPU).cmp},              // 0xD1
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0xD2
	{"DCP", indirectY, 8, unofficial, (*CPU).dcp},             // 0xD3
	{"NOP", zeropageX, 4, unofficial, (*CPU).nop},             // 0xD4
	{"CMP", zeropageX, 4, 0, (*CPU).cmp},                      // 0xD5
	{"DEC", zeropageX, 6, 0, (*CPU).dec},                      // 0xD6
	{"DCP", zeropageX, 6, unofficial, (*CPU).dcp},             // 0xD7
	{"CLD", implied, 2, 0, (*CPU).cld},                        // 0xD8
	{"CMP", absoluteY, 4, pageCross, (*CPU).cmp},              // 0xD9
	{"NOP", implied, 2, unofficial, (*CPU).nop},               // 0xDA
	{"DCP", absoluteY, 7, unofficial, (*CPU).dcp},             // 0xDB
	{"NOP", absoluteX, 4, pageCross | unofficial, (*CPU).nop}, // 0xDC
	{"CMP", absoluteX, 4, pageCross, (*CPU).cmp},              // 0xDD
	{"DEC", absoluteX, 7, 0, (*CPU).dec},                      // 0xDE
	{"DCP", absoluteX, 7, unofficial, (*CPU).dcp},             // 0xDF
	{"CPX", immediate, 2, 0, (*CPU).cpx},                      // 0xE0
	{"SBC", indirectX, 6, 0, (*CPU).sbc},                      // 0xE1
	{"NOP", immediate, 2, unofficial, (*CPU).nop},             // 0xE2
	{"ISB", indirectX, 8, unofficial, (*CPU).isb},             // 0xE3
	{"CPX", zeropage, 3, 0, (*CPU).cpx},                       // 0xE4
	{"SBC", zeropage, 3, 0, (*CPU).sbc},                       // 0xE5
	{"INC", zeropage, 5, 0, (*CPU).inc},                       // 0xE6
	{"ISB", zeropage, 5, unofficial, (*CPU).isb},              // 0xE7
	{"INX", implied, 2, 0, (*CPU).inx},                        // 0xE8
	{"SBC", immediate, 2, 0, (*CPU).sbc},                      // 0xE9
	{"NOP", implied, 2, 0, (*CPU).nop},                        // 0xEA
	{"SBC", immediate, 2, unofficial, (*CPU).sbc},             // 0xEB
	{"CPX", absolute, 4, 0, (*CPU).cpx},                       // 0xEC
	{"SBC", absolute, 4, 0, (*CPU).sbc},                       // 0xED
	{"INC", absolute, 6, 0, (*CPU).inc},                       // 0xEE
	{"ISB", absolute, 6, unofficial, (*CPU).isb},              // 0xEF
	{"BEQ", relative, 2, 0, (*CPU).beq},                       // 0xF0
	{"SBC", indirectY, 5, pageCross, (*CPU).sbc},              // 0xF1
	{"KIL", implied, 2, unofficial, (*CPU).kil},               // 0xF2
	{"ISB", indirectY, 8, unofficial, (*CPU).isb},             // 0xF3
	{"NOP", zeropageX, 4, unofficial, (*CPU).nop},             // 0xF4
	{"SBC", zeropageX, 4, 0, (*CPU).sbc},                      // 0xF5
	{"INC", zeropageX, 6, 0, (*CPU).inc},                      // 0xF6
	{"ISB", zeropageX, 6, unofficial, (*CPU).isb},             // 0xF7
	{"SED", implied, 2, 0, (*CPU).sed},                        // 0xF8
	{"SBC", absoluteY, 4, pageCross, (*CPU).sbc},              // 0xF9
	{"NOP", implied, 2, unofficial, (*CPU).nop},               // 0xFA
	{"ISB", absoluteY, 7, unofficial, (*CPU).isb},             // 0xFB
	{"NOP", absoluteX, 4, pageCross | unofficial, (*CPU).nop}, // 0xFC
	{"SBC", absoluteX, 4, pageCross, (*CPU).sbc},              // 0xFD
	{"INC", absoluteX, 7, 0, (*CPU).inc},                      // 0xFE
	{"ISB", absoluteX, 7, unofficial, (*CPU).isb},             // 0xFF
}

// modify runs a read-modify-write on memory, or on A in accumulator mode,
// and returns the new value.
func (c *CPU) modify(mode addressingMode, address uint16, f func(byte) byte) byte {
	if mode == accumulator {
		c.a = f(c.a)
		return c.a
	}
	x := f(c.read(address))
	c.write(address, x)
	return x
}

// shiftLeft shifts x left, bit 7 goes to carry.
func (c *CPU) shiftLeft(x byte) byte {
	c.p.c = x&0x80 != 0
	return x << 1
}

// shiftRight shifts x right, bit 0 goes to carry.
func (c *CPU) shiftRight(x byte) byte {
	c.p.c = x&0x01 != 0
	return x >> 1
}

// rotateLeft rotates x left through carry.
func (c *CPU) rotateLeft(x byte) byte {
	var carry byte
	if c.p.c {
		carry = 1
	}
	c.p.c = x&0x80 != 0
	return x<<1 | carry
}

// rotateRight rotates x right through carry.
func (c *CPU) rotateRight(x byte) byte {
	var carry byte
	if c.p.c {
		carry = 0x80
	}
	c.p.c = x&0x01 != 0
	return x>>1 | carry
}

func increment(x byte) byte { return x + 1 }
func decrement(x byte) byte { return x - 1 }

// addWithCarry adds x and carry to A. V is set when both operands have the
// same sign and the result's sign differs.
func (c *CPU) addWithCarry(x byte) {
	var carry uint16
	if c.p.c {
		carry = 1
	}
	sum := uint16(c.a) + uint16(x) + carry
	res := byte(sum)
	c.p.c = sum > 0xFF
	c.p.v = (c.a^res)&(x^res)&0x80 != 0
	c.a = res
	c.setZN(c.a)
}

// compare sets flags as if x was subtracted from r.
func (c *CPU) compare(r, x byte) {
	c.p.c = r >= x
	c.setZN(r - x)
}

// branch jumps to address when taken. A taken branch costs one cycle, two if
// it lands on another page.
func (c *CPU) branch(taken bool, address uint16) {
	if !taken {
		return
	}
	c.extraCycles++
	if pagesDiffer(c.pc, address) {
		c.extraCycles++
	}
	c.pc = address
}

// ADC - Add with Carry.
func (c *CPU) adc(mode addressingMode, address uint16) {
	c.addWithCarry(c.read(address))
}

// AND - And.
func (c *CPU) and(mode addressingMode, address uint16) {
	c.a &= c.read(address)
	c.setZN(c.a)
}

// ASL - Arithmetic Shift Left.
func (c *CPU) asl(mode addressingMode, address uint16) {
	c.setZN(c.modify(mode, address, c.shiftLeft))
}

// BCC - Branch on Carry Clear.
func (c *CPU) bcc(mode addressingMode, address uint16) {
	c.branch(!c.p.c, address)
}

// BCS - Branch on Carry Set.
func (c *CPU) bcs(mode addressingMode, address uint16) {
	c.branch(c.p.c, address)
}

// BEQ - Branch on Equal.
func (c *CPU) beq(mode addressingMode, address uint16) {
	c.branch(c.p.z, address)
}

// BIT - test BITS.
func (c *CPU) bit(mode addressingMode, address uint16) {
	x := c.read(address)
	c.p.z = c.a&x == 0
	c.p.v = x&0x40 != 0
	c.p.n = x&0x80 != 0
}

// BMI - Branch on Minus.
func (c *CPU) bmi(mode addressingMode, address uint16) {
	c.branch(c.p.n, address)
}

// BNE - Branch on Not Equal.
func (c *CPU) bne(mode addressingMode, address uint16) {
	c.branch(!c.p.z, address)
}

// BPL - Branch on Plus.
func (c *CPU) bpl(mode addressingMode, address uint16) {
	c.branch(!c.p.n, address)
}

// BRK - Break Interrupt.
// BRK has a padding byte, the pushed return address skips it.
func (c *CPU) brk(mode addressingMode, address uint16) {
	c.pc++
	c.interrupt(irqVector, flagBreak)
}

// BVC - Branch on Overflow Clear.
func (c *CPU) bvc(mode addressingMode, address uint16) {
	c.branch(!c.p.v, address)
}

// BVS - Branch on Overflow Set.
func (c *CPU) bvs(mode addressingMode, address uint16) {
	c.branch(c.p.v, address)
}

// CLC - Clear Carry.
func (c *CPU) clc(mode addressingMode, address uint16) {
	c.p.c = false
}

// CLD - Clear Decimal.
func (c *CPU) cld(mode addressingMode, address uint16) {
	c.p.d = false
}

// CLI - Clear Interrupt.
func (c *CPU) cli(mode addressingMode, address uint16) {
	c.p.i = false
}

// CLV - Clear Overflow.
func (c *CPU) clv(mode addressingMode, address uint16) {
	c.p.v = false
}

// CMP - Compare Accumulator.
func (c *CPU) cmp(mode addressingMode, address uint16) {
	c.compare(c.a, c.read(address))
}

// CPX - Compare X register.
func (c *CPU) cpx(mode addressingMode, address uint16) {
	c.compare(c.x, c.read(address))
}

// CPY - Compare Y register.
func (c *CPU) cpy(mode addressingMode, address uint16) {
	c.compare(c.y, c.read(address))
}

// DEC - Decrement Memory.
func (c *CPU) dec(mode addressingMode, address uint16) {
	c.setZN(c.modify(mode, address, decrement))
}

// DEX - Decrement X Register.
func (c *CPU) dex(mode addressingMode, address uint16) {
	c.x--
	c.setZN(c.x)
}

// DEY - Decrement Y Register.
func (c *CPU) dey(mode addressingMode, address uint16) {
	c.y--
	c.setZN(c.y)
}

// EOR - Bitwise Exclusive OR.
func (c *CPU) eor(mode addressingMode, address uint16) {
	c.a ^= c.read(address)
	c.setZN(c.a)
}

// INC - Increment Memory.
func (c *CPU) inc(mode addressingMode, address uint16) {
	c.setZN(c.modify(mode, address, increment))
}

// INX - Increment X Register.
func (c *CPU) inx(mode addressingMode, address uint16) {
	c.x++
	c.setZN(c.x)
}

// INY - Increment Y Register.
func (c *CPU) iny(mode addressingMode, address uint16) {
	c.y++
	c.setZN(c.y)
}

// JMP - Jump.
func (c *CPU) jmp(mode addressingMode, address uint16) {
	c.pc = address
}

// JSR - Jump to Subroutine.
// The pushed address is the last byte of the JSR instruction.
func (c *CPU) jsr(mode addressingMode, address uint16) {
	c.push16(c.pc - 1)
	c.pc = address
}

// LDA - Load Accumulator.
func (c *CPU) lda(mode addressingMode, address uint16) {
	c.a = c.read(address)
	c.setZN(c.a)
}

// LDX - Load X Register.
func (c *CPU) ldx(mode addressingMode, address uint16) {
	c.x = c.read(address)
	c.setZN(c.x)
}

// LDY - Load Y Register.
func (c *CPU) ldy(mode addressingMode, address uint16) {
	c.y = c.read(address)
	c.setZN(c.y)
}

// LSR - Logical Shift Right.
func (c *CPU) lsr(mode addressingMode, address uint16) {
	c.setZN(c.modify(mode, address, c.shiftRight))
}

// NOP - No Operation.
func (c *CPU) nop(mode addressingMode, address uint16) {}

// ORA - Bitwise OR with Accumulator.
func (c *CPU) ora(mode addressingMode, address uint16) {
	c.a |= c.read(address)
	c.setZN(c.a)
}

// PHA - Push Accumulator.
func (c *CPU) pha(mode addressingMode, address uint16) {
	c.push(c.a)
}

// PHP - Push Processor Status.
// PHP always pushes B set.
func (c *CPU) php(mode addressingMode, address uint16) {
	c.push(c.p.encode() | flagBreak)
}

// PLA - Pull Accumulator.
func (c *CPU) pla(mode addressingMode, address uint16) {
	c.a = c.pop()
	c.setZN(c.a)
}

// PLP - Pull Processor Status.
func (c *CPU) plp(mode addressingMode, address uint16) {
	c.p.decodeFrom(c.pop())
}

// ROL - Rotate Left.
func (c *CPU) rol(mode addressingMode, address uint16) {
	c.setZN(c.modify(mode, address, c.rotateLeft))
}

// ROR - Rotate Right.
func (c *CPU) ror(mode addressingMode, address uint16) {
	c.setZN(c.modify(mode, address, c.rotateRight))
}

// RTI - Return from Interrupt.
func (c *CPU) rti(mode addressingMode, address uint16) {
	c.p.decodeFrom(c.pop())
	c.pc = c.pop16()
}

// RTS - Return from Subroutine.
func (c *CPU) rts(mode addressingMode, address uint16) {
	c.pc = c.pop16() + 1
}

// SBC - Subtract with carry.
// A - M - (1 - C) is A + ^M + C in two's complement.
func (c *CPU) sbc(mode addressingMode, address uint16) {
	c.addWithCarry(^c.read(address))
}

// SEC - Set Carry.
func (c *CPU) sec(mode addressingMode, address uint16) {
	c.p.c = true
}

// SED - Set Decimal.
// The 2A03 has no decimal mode, only the flag changes.
func (c *CPU) sed(mode addressingMode, address uint16) {
	c.p.d = true
}

// SEI - Set Interrupt.
func (c *CPU) sei(mode addressingMode, address uint16) {
	c.p.i = true
}

// STA - Store A Register.
func (c *CPU) sta(mode addressingMode, address uint16) {
	c.write(address, c.a)
}

// STX - Store X Register.
func (c *CPU) stx(mode addressingMode, address uint16) {
	c.write(address, c.x)
}

// STY - Store Y Register.
func (c *CPU) sty(mode addressingMode, address uint16) {
	c.write(address, c.y)
}

// TAX - Transfer A to X.
func (c *CPU) tax(mode addressingMode, address uint16) {
	c.x = c.a
	c.setZN(c.x)
}

// TAY - Transfer A to Y.
func (c *CPU) tay(mode addressingMode, address uint16) {
	c.y = c.a
	c.setZN(c.y)
}

// TSX - Transfer S to X.
func (c *CPU) tsx(mode addressingMode, address uint16) {
	c.x = c.s
	c.setZN(c.x)
}

// TXA - Transfer X to A.
func (c *CPU) txa(mode addressingMode, address uint16) {
	c.a = c.x
	c.setZN(c.a)
}

// TXS - Transfer X to S. Flags are not affected.
func (c *CPU) txs(mode addressingMode, address uint16) {
	c.s = c.x
}

// TYA - Transfer Y to A.
func (c *CPU) tya(mode addressingMode, address uint16) {
	c.a = c.y
	c.setZN(c.a)
}

// Unofficial opcodes.
// https://www.nesdev.org/wiki/Programming_with_unofficial_opcodes

// KIL - halts the CPU.
func (c *CPU) kil(mode addressingMode, address uint16) {
	c.jam(c.read(c.pc - 1))
}

// LAX - LDA + LDX.
func (c *CPU) lax(mode addressingMode, address uint16) {
	c.a = c.read(address)
	c.x = c.a
	c.setZN(c.a)
}

// SAX - store A & X.
func (c *CPU) sax(mode addressingMode, address uint16) {
	c.write(address, c.a&c.x)
}

// DCP - DEC + CMP.
func (c *CPU) dcp(mode addressingMode, address uint16) {
	c.compare(c.a, c.modify(mode, address, decrement))
}

// ISB - INC + SBC.
func (c *CPU) isb(mode addressingMode, address uint16) {
	c.addWithCarry(^c.modify(mode, address, increment))
}

// SLO - ASL + ORA.
func (c *CPU) slo(mode addressingMode, address uint16) {
	c.a |= c.modify(mode, address, c.shiftLeft)
	c.setZN(c.a)
}

// RLA - ROL + AND.
func (c *CPU) rla(mode addressingMode, address uint16) {
	c.a &= c.modify(mode, address, c.rotateLeft)
	c.setZN(c.a)
}

// SRE - LSR + EOR.
func (c *CPU) sre(mode addressingMode, address uint16) {
	c.a ^= c.modify(mode, address, c.shiftRight)
	c.setZN(c.a)
}

// RRA - ROR + ADC.
func (c *CPU) rra(mode addressingMode, address uint16) {
	c.addWithCarry(c.modify(mode, address, c.rotateRight))
}

// ANC - AND, then bit 7 goes to carry.
func (c *CPU) anc(mode addressingMode, address uint16) {
	c.a &= c.read(address)
	c.setZN(c.a)
	c.p.c = c.p.n
}

// ALR - AND + LSR A.
func (c *CPU) alr(mode addressingMode, address uint16) {
	c.a = c.shiftRight(c.a & c.read(address))
	c.setZN(c.a)
}

// ARR - AND + ROR A, C is bit 6 and V is bit 6 xor bit 5 of the result.
func (c *CPU) arr(mode addressingMode, address uint16) {
	var carry byte
	if c.p.c {
		carry = 0x80
	}
	c.a = (c.a&c.read(address))>>1 | carry
	c.setZN(c.a)
	c.p.c = c.a&0x40 != 0
	c.p.v = (c.a>>6^c.a>>5)&1 != 0
}

// AXS - X = (A & X) - M, flags as CMP.
func (c *CPU) axs(mode addressingMode, address uint16) {
	x := c.read(address)
	ax := c.a & c.x
	c.compare(ax, x)
	c.x = ax - x
}

// LAS - A, X and S = M & S.
func (c *CPU) las(mode addressingMode, address uint16) {
	c.s &= c.read(address)
	c.a = c.s
	c.x = c.s
	c.setZN(c.s)
}

// unstableMagic is the constant ORed into A by XAA and LXA. It varies across
// chips, 0xEE is a common value.
const unstableMagic byte = 0xEE

// LXA - unstable, A = X = (A | magic) & M.
func (c *CPU) lxa(mode addressingMode, address uint16) {
	c.a = (c.a | unstableMagic) & c.read(address)
	c.x = c.a
	c.setZN(c.a)
}

// XAA - unstable, A = (A | magic) & X & M.
func (c *CPU) xaa(mode addressingMode, address uint16) {
	c.a = (c.a | unstableMagic) & c.x & c.read(address)
	c.setZN(c.a)
}

// highPlusOne returns the high byte of address plus one, the value unstable
// stores AND into the written data.
func highPlusOne(address uint16) byte {
	return byte(address>>8) + 1
}

// AHX - store A & X & (H + 1).
func (c *CPU) ahx(mode addressingMode, address uint16) {
	c.write(address, c.a&c.x&highPlusOne(address))
}

// SHX - store X & (H + 1).
func (c *CPU) shx(mode addressingMode, address uint16) {
	c.write(address, c.x&highPlusOne(address))
}

// SHY - store Y & (H + 1).
func (c *CPU) shy(mode addressingMode, address uint16) {
	c.write(address, c.y&highPlusOne(address))
}

// TAS - S = A & X, store S & (H + 1).
func (c *CPU) tas(mode addressingMode, address uint16) {
	c.s = c.a & c.x
	c.write(address, c.s&highPlusOne(address))
}
