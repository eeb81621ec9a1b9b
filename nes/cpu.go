package nes

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// CPU emulates NES CPU - is custom 6502 made by RICOH.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   https://www.nesdev.org/wiki/CPU_unofficial_opcodes
//   https://www.nesdev.org/wiki/CPU_interrupts

const CPUFrequency = 1789773

const (
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE

	stackPage uint16 = 0x0100

	// The reset and interrupt sequences take 7 cycles.
	interruptCycles = 7
)

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
)

// size returns the instruction length in bytes for the mode, opcode included.
func (m addressingMode) size() uint16 {
	switch m {
	case implied, accumulator:
		return 1
	case absolute, absoluteX, absoluteY, indirect:
		return 3
	default:
		return 2
	}
}

// Bits 4 and 5 of P only exist in copies of the status pushed on the stack.
// Bit 5 always reads back as 1, bit 4 (B) is 1 when pushed by PHP/BRK and 0
// when pushed by an NMI or IRQ.
const (
	flagBreak  byte = 1 << 4
	flagUnused byte = 1 << 5
)

type status struct {
	c bool // carry
	z bool // zero
	i bool // IRQ disable
	d bool // decimal - no effect on NES, but settable
	v bool // overflow
	n bool // negative
}

// encode encodes the status to a byte, B clear.
func (s *status) encode() byte {
	res := flagUnused
	if s.c {
		res |= 1 << 0
	}
	if s.z {
		res |= 1 << 1
	}
	if s.i {
		res |= 1 << 2
	}
	if s.d {
		res |= 1 << 3
	}
	if s.v {
		res |= 1 << 6
	}
	if s.n {
		res |= 1 << 7
	}
	return res
}

// decodeFrom decodes a byte to the status, B and bit 5 are dropped.
func (s *status) decodeFrom(data byte) {
	s.c = data&(1<<0) != 0
	s.z = data&(1<<1) != 0
	s.i = data&(1<<2) != 0
	s.d = data&(1<<3) != 0
	s.v = data&(1<<6) != 0
	s.n = data&(1<<7) != 0
}

type CPU struct {
	p      *status // Processor status flag bits
	a      byte    // Accumulator register
	x      byte    // Index register
	y      byte    // Index register
	pc     uint16  // Program counter
	s      byte    // Stack pointer
	cycles uint64  // Cycles consumed since reset
	bus    *CPUBus

	nmiPending bool
	irqPending bool
	jammed     bool
	// Cycles added by the executing instruction itself (taken branches).
	extraCycles int
}

// NewCPU creates a new NES CPU and resets it.
func NewCPU(bus *CPUBus) *CPU {
	c := &CPU{
		p:   &status{},
		bus: bus,
	}
	c.Reset()
	return c
}

// Reset resets the cartridge and puts the registers into their power-up
// state, then loads PC from the reset vector.
func (c *CPU) Reset() {
	c.bus.reset()
	c.a, c.x, c.y = 0, 0, 0
	c.s = 0xFD
	c.p.decodeFrom(0x24)
	c.pc = c.bus.read16(resetVector)
	c.cycles = interruptCycles
	c.nmiPending = false
	c.irqPending = false
	c.jammed = false
}

// SetPC moves the program counter, nestest automation starts at $C000.
func (c *CPU) SetPC(pc uint16) {
	c.pc = pc
}

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// Cycles returns the number of cycles consumed since reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Jammed reports whether a KIL opcode halted the CPU. Only Reset recovers.
func (c *CPU) Jammed() bool { return c.jammed }

// TriggerNMI requests a non-maskable interrupt, serviced at the start of the
// next Step. This will be triggered by PPU.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// TriggerIRQ requests an interrupt. It stays pending while I is set.
func (c *CPU) TriggerIRQ() {
	c.irqPending = true
}

func (c *CPU) read(address uint16) byte {
	return c.bus.read(address)
}

func (c *CPU) write(address uint16, data byte) {
	c.bus.write(address, data)
}

// fetch reads the byte at PC and advances PC.
func (c *CPU) fetch() byte {
	data := c.bus.read(c.pc)
	c.pc++
	return data
}

// fetch16 reads the little endian word at PC and advances PC.
func (c *CPU) fetch16() uint16 {
	l := c.fetch()
	h := c.fetch()
	return uint16(h)<<8 | uint16(l)
}

// setZN sets Z and N from x.
func (c *CPU) setZN(x byte) {
	c.p.z = x == 0
	c.p.n = x&0x80 != 0
}

// push pushes data to stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) {
	c.write(stackPage|uint16(c.s), x)
	c.s--
}

// pop pops data from stack.
func (c *CPU) pop() byte {
	c.s++
	return c.read(stackPage | uint16(c.s))
}

func (c *CPU) push16(x uint16) {
	c.push(byte(x >> 8))
	c.push(byte(x))
}

func (c *CPU) pop16() uint16 {
	l := c.pop()
	h := c.pop()
	return uint16(h)<<8 | uint16(l)
}

// pagesDiffer reports whether a and b are in different 256 byte pages.
func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operandAddress resolves the effective address for mode, consuming the
// operand bytes. pageCrossed is set when indexing carried into the high byte.
func (c *CPU) operandAddress(mode addressingMode) (address uint16, pageCrossed bool) {
	switch mode {
	case implied, accumulator:
		return 0, false
	case immediate:
		address = c.pc
		c.pc++
	case zeropage:
		address = uint16(c.fetch())
	case zeropageX:
		// If the address exceeds 0xFF (page crossed), back to 0x00
		address = uint16(c.fetch() + c.x)
	case zeropageY:
		address = uint16(c.fetch() + c.y)
	case relative:
		offset := c.fetch()
		address = c.pc + uint16(int8(offset))
	case absolute:
		address = c.fetch16()
	case absoluteX:
		base := c.fetch16()
		address = base + uint16(c.x)
		pageCrossed = pagesDiffer(base, address)
	case absoluteY:
		base := c.fetch16()
		address = base + uint16(c.y)
		pageCrossed = pagesDiffer(base, address)
	case indirect:
		// The 6502 never carries into the pointer's high byte: JMP ($10FF)
		// reads the target from $10FF and $1000.
		address = c.bus.read16Wrap(c.fetch16())
	case indirectX:
		address = c.bus.read16Wrap(uint16(c.fetch() + c.x))
	case indirectY:
		base := c.bus.read16Wrap(uint16(c.fetch()))
		address = base + uint16(c.y)
		pageCrossed = pagesDiffer(base, address)
	}
	return address, pageCrossed
}

// interrupt pushes PC and P (with extra flag bits) and jumps through vector.
func (c *CPU) interrupt(vector uint16, flags byte) {
	c.push16(c.pc)
	c.push(c.p.encode() | flags)
	c.p.i = true
	c.pc = c.bus.read16(vector)
}

// Step performs the instruction cycle - fetch, decode, execute - and returns
// the number of cycles it took. Pending interrupts are serviced first, each
// as a step of its own.
func (c *CPU) Step() (int, error) {
	if c.jammed {
		c.cycles++
		return 1, nil
	}
	if c.nmiPending {
		c.nmiPending = false
		c.interrupt(nmiVector, 0)
		c.cycles += interruptCycles
		return interruptCycles, nil
	}
	if c.irqPending && !c.p.i {
		c.irqPending = false
		c.interrupt(irqVector, 0)
		c.cycles += interruptCycles
		return interruptCycles, nil
	}
	opcode := c.read(c.pc)
	inst := &instructions[opcode]
	if inst.execute == nil {
		return 0, errors.WithStack(&InvalidOpcodeError{Opcode: opcode, PC: c.pc})
	}
	c.pc++
	address, pageCrossed := c.operandAddress(inst.mode)
	c.extraCycles = 0
	inst.execute(c, inst.mode, address)
	cycles := inst.cycles + c.extraCycles
	if pageCrossed && inst.flags&pageCross != 0 {
		cycles++
	}
	c.cycles += uint64(cycles)
	return cycles, nil
}

// jam halts the CPU on the current opcode.
func (c *CPU) jam(opcode byte) {
	c.pc--
	c.jammed = true
	glog.Warningf("CPU jammed: opcode=0x%02x, PC=0x%04x", opcode, c.pc)
}
