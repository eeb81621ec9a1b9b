package nes

import "github.com/golang/glog"

// Mapper translates CPU and PPU addresses in cartridge space into ROM/RAM
// bytes. Reads never fail: unmapped addresses return openBus.
type Mapper interface {
	ReadFromCPU(address uint16) byte
	WriteFromCPU(address uint16, data byte)
	ReadFromPPU(address uint16) byte
	WriteFromPPU(address uint16, data byte)
	// Mirroring returns the nametable mirroring currently in effect.
	Mirroring() Mirroring
	// Reset restores the power-on bank state.
	Reset()
}

// openBus is returned for reads nothing drives.
const openBus byte = 0x00

// NewMapper binds a cartridge to its mapper. Unknown mapper numbers fail
// here, never at first access.
func NewMapper(c *Cartridge) (Mapper, error) {
	var m Mapper
	switch c.mapperID {
	case 0:
		m = newMapper0(c)
	case 1:
		m = newMapper1(c)
	default:
		return nil, &UnsupportedMapperError{ID: c.mapperID}
	}
	glog.V(1).Infof("Mapper %d bound", c.mapperID)
	return m, nil
}
