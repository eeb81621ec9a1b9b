package nes

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestTrace(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
		setup   func(c *CPU)
		want    string
	}{
		{
			name:    "absolute jump",
			program: []byte{0x4C, 0xF5, 0xC5},
			want:    "8000  4C F5 C5  JMP $C5F5" + strings.Repeat(" ", 23) + "A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7",
		},
		{
			name:    "unofficial marker",
			program: []byte{0x04, 0x10},
			setup:   func(c *CPU) { c.bus.write(0x10, 0xAB) },
			want:    "8000  04 10    *NOP $10 = AB" + strings.Repeat(" ", 20) + "A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7",
		},
		{
			name:    "indexed indirect",
			program: []byte{0xA1, 0x80},
			setup: func(c *CPU) {
				c.x = 0x02
				c.bus.write(0x82, 0x00)
				c.bus.write(0x83, 0x02)
				c.bus.write(0x0200, 0x5A)
			},
			want: "8000  A1 80     LDA ($80,X) @ 82 = 0200 = 5A    A:00 X:02 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7",
		},
		{
			name:    "accumulator",
			program: []byte{0x0A},
			want:    "8000  0A        ASL A" + strings.Repeat(" ", 27) + "A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := newTestCPU(t, tt.program...)
			if tt.setup != nil {
				tt.setup(cpu)
			}
			if got := cpu.Trace(); got != tt.want {
				t.Errorf("Trace:\n got=%q\nwant=%q", got, tt.want)
			}
		})
	}
}

func TestTracePPUColumn(t *testing.T) {
	cpu := newTestCPU(t)
	cpu.cycles = 27384 // 82152 dots
	if got := cpu.Trace(); !strings.Contains(got, "PPU:240,312 CYC:27384") {
		t.Errorf("Trace: got=%q", got)
	}
}

func TestTraceDoesNotStep(t *testing.T) {
	cpu := newTestCPU(t, 0xE8) // INX
	before := cpu.TraceState()
	cpu.Trace()
	if after := cpu.TraceState(); after != before {
		t.Errorf("Trace changed state: got=%s, want=%s", after, before)
	}
}

func TestParseTraceLine(t *testing.T) {
	tests := []struct {
		line string
		want TraceState
	}{
		{
			"C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7",
			TraceState{PC: 0xC000, P: 0x24, SP: 0xFD, Cycles: 7},
		},
		{
			"D959  A1 80     LDA ($80,X) @ 80 = 0200 = 5A    A:5A X:00 Y:69 P:25 SP:FB PPU: 99,129 CYC:11350",
			TraceState{PC: 0xD959, A: 0x5A, Y: 0x69, P: 0x25, SP: 0xFB, Cycles: 11350},
		},
		{
			"E8D9  9D 00 07  STA $0700,X @ 0733 = 00         A:AA X:33 Y:01 P:E4 SP:FB PPU: 44, 65 CYC:26591",
			TraceState{PC: 0xE8D9, A: 0xAA, X: 0x33, Y: 0x01, P: 0xE4, SP: 0xFB, Cycles: 26591},
		},
	}
	for _, tt := range tests {
		got, err := ParseTraceLine(tt.line)
		if err != nil {
			t.Fatalf("ParseTraceLine(%q): %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("ParseTraceLine(%q):\n got=%s\nwant=%s", tt.line, got, tt.want)
		}
	}
}

func TestParseTraceLineErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"not a trace line",
		"C000  4C F5 C5  JMP $C5F5  A:00 X:00 Y:00 P:24 SP:FD",
		"C000  EA        NOP        A:00 X:00 Y:00 P:24 CYC:7",
	} {
		if _, err := ParseTraceLine(line); err == nil {
			t.Errorf("ParseTraceLine(%q): want error", line)
		}
	}
}

func TestTraceRoundTrip(t *testing.T) {
	cpu := newTestCPU(t, 0xA9, 0x80, 0xAA, 0xC8, 0x48, 0x38, 0x4C, 0x00, 0x80) // LDA #$80; TAX; INY; PHA; SEC; JMP $8000
	for i := 0; i < 20; i++ {
		got, err := ParseTraceLine(cpu.Trace())
		if err != nil {
			t.Fatalf("ParseTraceLine: %v", err)
		}
		if want := cpu.TraceState(); got != want {
			t.Fatalf("step %d: got=%s, want=%s", i, got, want)
		}
		steps(t, cpu, 1)
	}
}

// traceProgram runs the program n instructions and returns its log.
func traceProgram(t *testing.T, n int, program ...byte) []string {
	t.Helper()
	cpu := newTestCPU(t, program...)
	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, cpu.Trace())
		steps(t, cpu, 1)
	}
	return lines
}

var loopProgram = []byte{0xA2, 0x05, 0xCA, 0xD0, 0xFD, 0xE6, 0x10, 0x4C, 0x00, 0x80} // LDX #5; DEX; BNE; INC $10; JMP $8000

func TestVerifyTrace(t *testing.T) {
	lines := traceProgram(t, 40, loopProgram...)
	log := strings.Join(lines, "\n") + "\n\n"
	matched, err := VerifyTrace(newTestCPU(t, loopProgram...), strings.NewReader(log))
	if err != nil {
		t.Fatalf("VerifyTrace: %v", err)
	}
	if matched != len(lines) {
		t.Errorf("matched: got=%d, want=%d", matched, len(lines))
	}
}

func TestVerifyTraceMismatch(t *testing.T) {
	lines := traceProgram(t, 10, loopProgram...)
	lines[6] = strings.Replace(lines[6], "CYC:", "CYC:9", 1)
	matched, err := VerifyTrace(newTestCPU(t, loopProgram...), strings.NewReader(strings.Join(lines, "\n")))
	if matched != 6 {
		t.Errorf("matched: got=%d, want=6", matched)
	}
	mismatch, ok := errors.Cause(err).(*TraceMismatchError)
	if !ok {
		t.Fatalf("VerifyTrace: got err=%v, want *TraceMismatchError", err)
	}
	if mismatch.Line != 7 || mismatch.Got.PC != mismatch.Want.PC || mismatch.Got.Cycles == mismatch.Want.Cycles {
		t.Errorf("mismatch: %+v", mismatch)
	}
}

func TestVerifyTraceBadLine(t *testing.T) {
	lines := traceProgram(t, 3, loopProgram...)
	lines = append(lines, "garbage")
	matched, err := VerifyTrace(newTestCPU(t, loopProgram...), strings.NewReader(strings.Join(lines, "\n")))
	if err == nil || matched != 3 {
		t.Errorf("VerifyTrace: got matched=%d err=%v, want 3 and an error", matched, err)
	}
}
