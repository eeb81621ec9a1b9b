package nes

import "github.com/golang/glog"

// Mapper0: https://www.nesdev.org/wiki/NROM
type mapper0 struct {
	prgROM      []byte
	prgRAM      []byte
	chr         []byte
	chrWritable bool
	mirroring   Mirroring
}

func newMapper0(c *Cartridge) *mapper0 {
	chr, writable := c.chrMemory()
	return &mapper0{
		prgROM:      c.prgROM,
		prgRAM:      make([]byte, c.prgRAMSize),
		chr:         chr,
		chrWritable: writable,
		mirroring:   c.mirroring,
	}
}

// CPU $6000-$7FFF: PRG RAM, mirrored as necessary to fill the 8 KiB window.
// CPU $8000-$BFFF: First 16 KB of ROM.
// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128).
func (m *mapper0) ReadFromCPU(address uint16) byte {
	switch {
	case 0x8000 <= address:
		return m.prgROM[int(address-0x8000)%len(m.prgROM)]
	case 0x6000 <= address:
		return m.prgRAM[int(address-0x6000)%len(m.prgRAM)]
	}
	return openBus
}

func (m *mapper0) WriteFromCPU(address uint16, data byte) {
	switch {
	case 0x8000 <= address:
		glog.V(2).Infof("Ignored write to NROM PRG ROM: address=0x%04x, data=0x%02x", address, data)
	case 0x6000 <= address:
		m.prgRAM[int(address-0x6000)%len(m.prgRAM)] = data
	}
}

func (m *mapper0) ReadFromPPU(address uint16) byte {
	if address < 0x2000 {
		return m.chr[int(address)%len(m.chr)]
	}
	return openBus
}

func (m *mapper0) WriteFromPPU(address uint16, data byte) {
	if address < 0x2000 && m.chrWritable {
		m.chr[address] = data
	}
}

func (m *mapper0) Mirroring() Mirroring {
	return m.mirroring
}

// Reset is a no-op, NROM has no bank registers.
func (m *mapper0) Reset() {}
