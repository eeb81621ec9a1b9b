package nes

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNewConsoleErrors(t *testing.T) {
	if _, err := NewConsole([]byte("NES")); errors.Cause(err) != ErrInvalidROMFormat {
		t.Errorf("short image: got err=%v, want %v", err, ErrInvalidROMFormat)
	}
	img := testImage{prg: newTestPRG(nil), flags6: 0x40} // mapper 4
	_, err := NewConsole(img.bytes())
	if e, ok := errors.Cause(err).(*UnsupportedMapperError); !ok || e.ID != 4 {
		t.Errorf("MMC3 image: got err=%v, want mapper 4 unsupported", err)
	}
}

func TestConsoleRunsMMC1(t *testing.T) {
	// The reset vector lives in the last bank, which MMC1 fixes at $C000 on
	// power-on. The program switches bank 1 into $8000 and reads it.
	prg := bankedPRG(4)
	last := prg[3*prgROMSizeUnit:]
	program := []byte{
		0xA9, 0x80, 0x8D, 0x00, 0xE0, // LDA #$80; STA $E000 (reset shift register)
		0xA9, 0x01, 0x8D, 0x00, 0xE0, // LDA #1; STA $E000
		0x4A, 0x8D, 0x00, 0xE0,       // LSR A; STA $E000
		0x8D, 0x00, 0xE0,             // STA $E000
		0x8D, 0x00, 0xE0,             // STA $E000
		0x8D, 0x00, 0xE0,             // STA $E000
		0xAD, 0x00, 0x80,             // LDA $8000
		0x02,                         // KIL
	}
	copy(last, program)
	last[0x3FFC], last[0x3FFD] = 0x00, 0xC0
	img := testImage{prg: prg, flags6: 0x10}
	console, err := NewConsole(img.bytes())
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	if console.Cartridge.MapperID() != 1 {
		t.Fatalf("MapperID: got=%d, want=1", console.Cartridge.MapperID())
	}
	for i := 0; i < 100 && !console.CPU.Jammed(); i++ {
		if _, err := console.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if !console.CPU.Jammed() {
		t.Fatal("program did not reach KIL")
	}
	if console.CPU.a != 1 {
		t.Errorf("bank at $8000: got=%d, want=1", console.CPU.a)
	}
	console.Reset()
	if console.CPU.Jammed() || console.CPU.PC() != 0xC000 || console.CPU.Cycles() != 7 {
		t.Errorf("after Reset: jammed=%t pc=0x%04x cycles=%d", console.CPU.Jammed(), console.CPU.PC(), console.CPU.Cycles())
	}
	if got := console.Bus.read(0x8000); got != 0 {
		t.Errorf("bank at $8000 after Reset: got=%d, want=0", got)
	}
}
