package nes

import "testing"

// testImage describes an iNES file to assemble for a test.
type testImage struct {
	prg     []byte // multiple of 16KB
	chr     []byte // multiple of 8KB, empty for CHR RAM
	flags6  byte
	flags7  byte
	trainer []byte
	padding [8]byte // header bytes 8-15
}

func (img *testImage) bytes() []byte {
	header := []byte{
		'N', 'E', 'S', msDOSEOF,
		byte(len(img.prg) / prgROMSizeUnit),
		byte(len(img.chr) / chrROMSizeUnit),
		img.flags6,
		img.flags7,
	}
	header = append(header, img.padding[:]...)
	data := append(header, img.trainer...)
	data = append(data, img.prg...)
	return append(data, img.chr...)
}

const (
	testResetAddress uint16 = 0x8000
	testNMIHandler   uint16 = 0x9000
	testIRQHandler   uint16 = 0xA000
)

// newTestPRG returns 16KB of NROM-128 PRG with code placed at CPU addresses
// ($8000-$BFFF, mirrored at $C000), RTI at both interrupt handlers and the
// vectors pointing at them.
func newTestPRG(code map[uint16][]byte) []byte {
	prg := make([]byte, prgROMSizeUnit)
	put := func(address uint16, data ...byte) {
		copy(prg[int(address-0x8000)%prgROMSizeUnit:], data)
	}
	put(testNMIHandler, 0x40)
	put(testIRQHandler, 0x40)
	for address, data := range code {
		put(address, data...)
	}
	vector := func(v, target uint16) {
		put(v, byte(target), byte(target>>8))
	}
	vector(nmiVector, testNMIHandler)
	vector(resetVector, testResetAddress)
	vector(irqVector, testIRQHandler)
	return prg
}

// newTestConsole builds an NROM console running code.
func newTestConsole(t *testing.T, code map[uint16][]byte) *Console {
	t.Helper()
	img := &testImage{prg: newTestPRG(code), chr: make([]byte, chrROMSizeUnit)}
	console, err := NewConsole(img.bytes())
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	return console
}

// newTestCPU returns a reset CPU with program at the reset address $8000.
func newTestCPU(t *testing.T, program ...byte) *CPU {
	t.Helper()
	return newTestConsole(t, map[uint16][]byte{testResetAddress: program}).CPU
}

// steps executes n instructions and returns the cycles of the last one.
func steps(t *testing.T, c *CPU, n int) int {
	t.Helper()
	var cycles int
	for i := 0; i < n; i++ {
		var err error
		if cycles, err = c.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	return cycles
}
