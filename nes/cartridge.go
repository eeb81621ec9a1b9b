package nes

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	chrROMSizeUnit      int  = 0x2000 // 8KB
	prgROMSizeUnit      int  = 0x4000 // 16KB
	prgRAMSizeUnit      int  = 0x2000 // 8KB
	inesHeaderSizeBytes int  = 16     // The valid INES header has 16 bytes
	trainerSizeBytes    int  = 512
	msDOSEOF            byte = 0x1A
)

// Mirroring is the nametable arrangement a cartridge wires up.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
	SingleScreenLower
	SingleScreenUpper
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	case SingleScreenLower:
		return "single-screen (lower)"
	case SingleScreenUpper:
		return "single-screen (upper)"
	}
	return "unknown"
}

// Flags 6
// 76543210
// ||||||||
// |||||||+- Mirroring: 0: horizontal, 1: vertical
// ||||||+-- 1: Cartridge contains battery-backed PRG RAM ($6000-7FFF)
// |||||+--- 1: 512-byte trainer at $7000-$71FF (stored before PRG data)
// ||||+---- 1: Ignore mirroring control; provide four-screen VRAM
// ++++----- Lower nybble of mapper number
const (
	flags6Vertical   byte = 1 << 0
	flags6Battery    byte = 1 << 1
	flags6Trainer    byte = 1 << 2
	flags6FourScreen byte = 1 << 3
)

// Cartridge is the parsed content of an iNES file.
// https://www.nesdev.org/wiki/INES
type Cartridge struct {
	prgROM     []byte
	chrROM     []byte
	prgRAMSize int
	mapperID   byte
	mirroring  Mirroring
	battery    bool
	trainer    bool
}

// isValid checks whether the data starts with the INES magic.
func isValid(data []byte) bool {
	return len(data) >= inesHeaderSizeBytes &&
		data[0] == byte('N') &&
		data[1] == byte('E') &&
		data[2] == byte('S') &&
		data[3] == msDOSEOF
}

// isNES2 reports the NES 2.0 identifier in flags 7.
func isNES2(header []byte) bool {
	return header[7]&0x0C == 0x08
}

// mapperNumber combines the mapper nybbles of flags 6 and 7.
// Old dumps often have garbage ("DiskDude!") in bytes 7-15; when the padding
// at 12-15 isn't zero and the header isn't NES 2.0 only the low nybble is used.
func mapperNumber(header []byte) byte {
	low := header[6] >> 4
	if !isNES2(header) && (header[12] != 0 || header[13] != 0 || header[14] != 0 || header[15] != 0) {
		return low
	}
	return header[7]&0xF0 | low
}

// NewCartridge parses an iNES image. PRG and CHR bytes are copied, the
// caller's buffer is not retained.
func NewCartridge(data []byte) (*Cartridge, error) {
	if !isValid(data) {
		return nil, errors.Wrap(ErrInvalidROMFormat, "missing NES<EOF> header")
	}
	c := &Cartridge{
		mapperID: mapperNumber(data),
		battery:  data[6]&flags6Battery != 0,
		trainer:  data[6]&flags6Trainer != 0,
	}
	switch {
	case data[6]&flags6FourScreen != 0:
		c.mirroring = FourScreen
	case data[6]&flags6Vertical != 0:
		c.mirroring = Vertical
	default:
		c.mirroring = Horizontal
	}
	prgSize := int(data[4]) * prgROMSizeUnit
	chrSize := int(data[5]) * chrROMSizeUnit
	if prgSize == 0 {
		return nil, errors.Wrap(ErrInvalidROMFormat, "header declares no PRG ROM")
	}
	l := inesHeaderSizeBytes
	if c.trainer {
		// The trainer is not supported, just skipped.
		l += trainerSizeBytes
	}
	if want := l + prgSize + chrSize; len(data) < want {
		return nil, errors.Wrapf(ErrInvalidROMFormat, "file has %d bytes, header declares %d", len(data), want)
	}
	c.prgROM = append([]byte(nil), data[l:l+prgSize]...)
	l += prgSize
	c.chrROM = append([]byte(nil), data[l:l+chrSize]...)
	c.prgRAMSize = prgRAMSizeUnit
	if data[8] > 1 {
		c.prgRAMSize = int(data[8]) * prgRAMSizeUnit
	}
	glog.Infof("Loaded cartridge: mapper=%d, PRG=%dKB, CHR=%dKB, mirroring=%s, battery=%t, trainer=%t",
		c.mapperID, prgSize/1024, chrSize/1024, c.mirroring, c.battery, c.trainer)
	return c, nil
}

// MapperID returns the iNES mapper number.
func (c *Cartridge) MapperID() byte { return c.mapperID }

// Mirroring returns the mirroring wired by the header.
func (c *Cartridge) Mirroring() Mirroring { return c.mirroring }

// HasBattery reports battery-backed PRG RAM.
func (c *Cartridge) HasBattery() bool { return c.battery }

// PRGBanks returns the number of 16KB PRG ROM banks.
func (c *Cartridge) PRGBanks() int { return len(c.prgROM) / prgROMSizeUnit }

// CHRBanks returns the number of 8KB CHR ROM banks, 0 means CHR RAM.
func (c *Cartridge) CHRBanks() int { return len(c.chrROM) / chrROMSizeUnit }

// chrMemory returns CHR ROM, or a fresh 8KB CHR RAM when the cartridge has none.
func (c *Cartridge) chrMemory() (chr []byte, writable bool) {
	if len(c.chrROM) == 0 {
		return make([]byte, chrROMSizeUnit), true
	}
	return c.chrROM, false
}
