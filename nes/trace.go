package nes

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TraceState is the CPU state at an instruction boundary, the columns a
// nestest log records.
type TraceState struct {
	PC     uint16
	A      byte
	X      byte
	Y      byte
	P      byte
	SP     byte
	Cycles uint64
}

func (s TraceState) String() string {
	return fmt.Sprintf("PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, P=0x%02x, SP=0x%02x, CYC=%d",
		s.PC, s.A, s.X, s.Y, s.P, s.SP, s.Cycles)
}

// TraceState returns the registers and cycle count before the next instruction.
func (c *CPU) TraceState() TraceState {
	return TraceState{
		PC:     c.pc,
		A:      c.a,
		X:      c.x,
		Y:      c.y,
		P:      c.p.encode(),
		SP:     c.s,
		Cycles: c.cycles,
	}
}

// The PPU runs 3 dots per CPU cycle over 341 dot scanlines and 262 line frames.
const (
	ppuDotsPerCycle   = 3
	ppuDotsPerLine    = 341
	ppuLinesPerFrame  = 262
	traceOperandWidth = 27
)

// Trace renders the next instruction as a nestest log line, e.g.
//   C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
// Memory is peeked, nothing is executed.
func (c *CPU) Trace() string {
	opcode := c.bus.peek(c.pc)
	inst := &instructions[opcode]
	size := inst.mode.size()
	raw := make([]string, 0, 3)
	for i := uint16(0); i < size; i++ {
		raw = append(raw, fmt.Sprintf("%02X", c.bus.peek(c.pc+i)))
	}
	marker := " "
	if inst.flags&unofficial != 0 {
		marker = "*"
	}
	dots := c.cycles * ppuDotsPerCycle
	line := (dots / ppuDotsPerLine) % ppuLinesPerFrame
	dot := dots % ppuDotsPerLine
	return fmt.Sprintf("%04X  %-8s %s%s %-*s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		c.pc, strings.Join(raw, " "), marker, inst.mnemonic, traceOperandWidth, c.traceOperand(inst),
		c.a, c.x, c.y, c.p.encode(), c.s, line, dot, c.cycles)
}

// traceOperand disassembles the operand of the instruction at PC together
// with its effective address and the value stored there.
func (c *CPU) traceOperand(inst *instruction) string {
	b := c.bus
	lo := b.peek(c.pc + 1)
	hi := b.peek(c.pc + 2)
	word := uint16(hi)<<8 | uint16(lo)
	switch inst.mode {
	case accumulator:
		return "A"
	case immediate:
		return fmt.Sprintf("#$%02X", lo)
	case zeropage:
		return fmt.Sprintf("$%02X = %02X", lo, b.peek(uint16(lo)))
	case zeropageX:
		address := lo + c.x
		return fmt.Sprintf("$%02X,X @ %02X = %02X", lo, address, b.peek(uint16(address)))
	case zeropageY:
		address := lo + c.y
		return fmt.Sprintf("$%02X,Y @ %02X = %02X", lo, address, b.peek(uint16(address)))
	case relative:
		return fmt.Sprintf("$%04X", c.pc+2+uint16(int8(lo)))
	case absolute:
		if inst.mnemonic == "JMP" || inst.mnemonic == "JSR" {
			return fmt.Sprintf("$%04X", word)
		}
		return fmt.Sprintf("$%04X = %02X", word, b.peek(word))
	case absoluteX:
		address := word + uint16(c.x)
		return fmt.Sprintf("$%04X,X @ %04X = %02X", word, address, b.peek(address))
	case absoluteY:
		address := word + uint16(c.y)
		return fmt.Sprintf("$%04X,Y @ %04X = %02X", word, address, b.peek(address))
	case indirect:
		return fmt.Sprintf("($%04X) = %04X", word, c.peek16Wrap(word))
	case indirectX:
		pointer := lo + c.x
		address := c.peek16Wrap(uint16(pointer))
		return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", lo, pointer, address, b.peek(address))
	case indirectY:
		base := c.peek16Wrap(uint16(lo))
		address := base + uint16(c.y)
		return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", lo, base, address, b.peek(address))
	}
	return ""
}

func (c *CPU) peek16Wrap(address uint16) uint16 {
	l := c.bus.peek(address)
	h := c.bus.peek(address&0xFF00 | uint16(byte(address)+1))
	return uint16(h)<<8 | uint16(l)
}

var (
	pcRe  = regexp.MustCompile("^([0-9A-Fa-f]{4})")
	aRe   = regexp.MustCompile("A:([0-9A-Fa-f]{2})")
	xRe   = regexp.MustCompile("X:([0-9A-Fa-f]{2})")
	yRe   = regexp.MustCompile("Y:([0-9A-Fa-f]{2})")
	pRe   = regexp.MustCompile("P:([0-9A-Fa-f]{2})")
	spRe  = regexp.MustCompile("SP:([0-9A-Fa-f]{2})")
	cycRe = regexp.MustCompile(`CYC:(\d+)`)
)

// ParseTraceLine extracts the state columns from a nestest log line.
func ParseTraceLine(line string) (TraceState, error) {
	var s TraceState
	field := func(re *regexp.Regexp, name string, base, bits int) (uint64, error) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return 0, errors.Errorf("no %s column in %q", name, line)
		}
		v, err := strconv.ParseUint(m[1], base, bits)
		if err != nil {
			return 0, errors.Wrapf(err, "bad %s column in %q", name, line)
		}
		return v, nil
	}
	// Scan the register columns after the disassembly so that operand text
	// such as "($80,X)" is not mistaken for a register.
	pc, err := field(pcRe, "PC", 16, 16)
	if err != nil {
		return s, err
	}
	s.PC = uint16(pc)
	if i := strings.Index(line, "A:"); i >= 0 {
		line = line[i:]
	}
	regs := []struct {
		re   *regexp.Regexp
		name string
		dst  *byte
	}{
		{aRe, "A", &s.A},
		{xRe, "X", &s.X},
		{yRe, "Y", &s.Y},
		{pRe, "P", &s.P},
		{spRe, "SP", &s.SP},
	}
	for _, r := range regs {
		v, err := field(r.re, r.name, 16, 8)
		if err != nil {
			return s, err
		}
		*r.dst = byte(v)
	}
	if s.Cycles, err = field(cycRe, "CYC", 10, 64); err != nil {
		return s, err
	}
	return s, nil
}

// TraceMismatchError reports the first log line the CPU diverged from.
type TraceMismatchError struct {
	Line int // 1-based
	Want TraceState
	Got  TraceState
}

func (e *TraceMismatchError) Error() string {
	return fmt.Sprintf("trace diverged at line %d: got=(%s), want=(%s)", e.Line, e.Got, e.Want)
}

// VerifyTrace steps c once per line of a nestest style log, comparing the
// state before each instruction. It returns the number of matching lines
// and a *TraceMismatchError at the first difference.
func VerifyTrace(c *CPU, log io.Reader) (int, error) {
	scanner := bufio.NewScanner(log)
	matched := 0
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		want, err := ParseTraceLine(text)
		if err != nil {
			return matched, errors.Wrapf(err, "line %d", matched+1)
		}
		if got := c.TraceState(); got != want {
			return matched, &TraceMismatchError{Line: matched + 1, Want: want, Got: got}
		}
		matched++
		if _, err := c.Step(); err != nil {
			return matched, err
		}
	}
	return matched, errors.Wrap(scanner.Err(), "read trace log")
}
