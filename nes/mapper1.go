package nes

import "github.com/golang/glog"

// Mapper1: https://www.nesdev.org/wiki/MMC1
//
// The CPU talks to MMC1 one bit at a time. Five writes to $8000-$FFFF, LSB
// first, fill the shift register; the fifth write commits the value to the
// internal register selected by bits 13-14 of its address:
//   $8000-$9FFF  control
//   $A000-$BFFF  CHR bank 0
//   $C000-$DFFF  CHR bank 1
//   $E000-$FFFF  PRG bank
// Writing a value with bit 7 set clears the shift register and ORs $0C into
// control, which fixes the last PRG bank at $C000.
type mapper1 struct {
	prgROM      []byte
	prgRAM      []byte
	chr         []byte
	chrWritable bool

	shiftRegister byte
	writeCount    int
	control       byte
	chrBank0      byte
	chrBank1      byte
	prgBank       byte
}

const (
	mmc1ControlDefault byte = 0x0C
	mmc1ResetBit       byte = 0x80
	mmc1PRGRAMDisable  byte = 0x10
)

func newMapper1(c *Cartridge) *mapper1 {
	chr, writable := c.chrMemory()
	m := &mapper1{
		prgROM:      c.prgROM,
		prgRAM:      make([]byte, c.prgRAMSize),
		chr:         chr,
		chrWritable: writable,
	}
	m.Reset()
	return m
}

func (m *mapper1) Reset() {
	m.shiftRegister = 0
	m.writeCount = 0
	m.control = mmc1ControlDefault
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
	glog.V(1).Infof("MMC1 reset")
}

// Control
// 4bit0
// -----
// CPPMM
// |||||
// |||++- Mirroring (0: one-screen, lower bank; 1: one-screen, upper bank;
// |||               2: vertical; 3: horizontal)
// |++--- PRG ROM bank mode (0, 1: switch 32 KB at $8000, ignoring low bit of bank number;
// |                         2: fix first bank at $8000 and switch 16 KB bank at $C000;
// |                         3: fix last bank at $C000 and switch 16 KB bank at $8000)
// +----- CHR ROM bank mode (0: switch 8 KB at a time; 1: switch two separate 4 KB banks)
func (m *mapper1) prgBankMode() byte { return (m.control >> 2) & 0x03 }
func (m *mapper1) chrBankMode() byte { return (m.control >> 4) & 0x01 }

func (m *mapper1) Mirroring() Mirroring {
	switch m.control & 0x03 {
	case 0:
		return SingleScreenLower
	case 1:
		return SingleScreenUpper
	case 2:
		return Vertical
	}
	return Horizontal
}

func (m *mapper1) prgRAMEnabled() bool {
	return m.prgBank&mmc1PRGRAMDisable == 0
}

// prgOffset resolves a CPU address in $8000-$FFFF to an offset in PRG ROM.
// Derived from the registers on every access.
func (m *mapper1) prgOffset(address uint16) int {
	banks := len(m.prgROM) / prgROMSizeUnit
	bank := int(m.prgBank & 0x0F)
	var selected int
	switch m.prgBankMode() {
	case 0, 1:
		// 32KB: the low bit of the bank number is ignored.
		selected = bank&^1 + int(address-0x8000)/prgROMSizeUnit
	case 2:
		if address < 0xC000 {
			selected = 0
		} else {
			selected = bank
		}
	case 3:
		if address < 0xC000 {
			selected = bank
		} else {
			selected = banks - 1
		}
	}
	return (selected%banks)*prgROMSizeUnit + int(address)%prgROMSizeUnit
}

// chrOffset resolves a PPU address in $0000-$1FFF to an offset in CHR memory.
func (m *mapper1) chrOffset(address uint16) int {
	const chrBankSize = 0x1000
	var bank int
	if m.chrBankMode() == 0 {
		// 8KB: the low bit of CHR bank 0 is ignored.
		bank = int(m.chrBank0&^1) + int(address)/chrBankSize
	} else if address < 0x1000 {
		bank = int(m.chrBank0)
	} else {
		bank = int(m.chrBank1)
	}
	return (bank*chrBankSize + int(address)%chrBankSize) % len(m.chr)
}

// CPU $6000-$7FFF: 8 KB PRG RAM bank, (optional)
// CPU $8000-$BFFF: 16 KB PRG ROM bank, either switchable or fixed to the first bank
// CPU $C000-$FFFF: 16 KB PRG ROM bank, either fixed to the last bank or switchable
func (m *mapper1) ReadFromCPU(address uint16) byte {
	switch {
	case 0x8000 <= address:
		return m.prgROM[m.prgOffset(address)]
	case 0x6000 <= address:
		if m.prgRAMEnabled() {
			return m.prgRAM[int(address-0x6000)%len(m.prgRAM)]
		}
	}
	return openBus
}

func (m *mapper1) WriteFromCPU(address uint16, data byte) {
	switch {
	case 0x8000 <= address:
		m.writeLoad(address, data)
	case 0x6000 <= address:
		if m.prgRAMEnabled() {
			m.prgRAM[int(address-0x6000)%len(m.prgRAM)] = data
		}
	}
}

// writeLoad feeds the serial port.
// 7  bit  0
// ---- ----
// Rxxx xxxD
// |       |
// |       +- Data bit to be shifted into shift register, LSB first
// +--------- 1: Reset shift register and write Control with (Control OR $0C)
func (m *mapper1) writeLoad(address uint16, data byte) {
	if data&mmc1ResetBit != 0 {
		m.shiftRegister = 0
		m.writeCount = 0
		m.control |= mmc1ControlDefault
		return
	}
	m.shiftRegister |= (data & 1) << m.writeCount
	m.writeCount++
	if m.writeCount < 5 {
		return
	}
	value := m.shiftRegister
	m.shiftRegister = 0
	m.writeCount = 0
	switch (address >> 13) & 0x03 {
	case 0:
		m.control = value
	case 1:
		m.chrBank0 = value
	case 2:
		m.chrBank1 = value
	case 3:
		m.prgBank = value
	}
	glog.V(1).Infof("MMC1 register $%04x = 0x%02x (control=0x%02x, chr0=0x%02x, chr1=0x%02x, prg=0x%02x)",
		address&0xE000, value, m.control, m.chrBank0, m.chrBank1, m.prgBank)
}

// PPU $0000-$0FFF: 4 KB switchable CHR bank
// PPU $1000-$1FFF: 4 KB switchable CHR bank
func (m *mapper1) ReadFromPPU(address uint16) byte {
	if address < 0x2000 {
		return m.chr[m.chrOffset(address)]
	}
	return openBus
}

func (m *mapper1) WriteFromPPU(address uint16, data byte) {
	if address < 0x2000 && m.chrWritable {
		m.chr[m.chrOffset(address)] = data
	}
}
