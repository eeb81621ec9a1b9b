package nes

import "github.com/pkg/errors"

// Console wires a cartridge to the CPU: Cartridge -> Mapper -> CPUBus -> CPU.
// PPUBus exposes the same mapper's CHR side for a PPU plugged in with
// Bus.AttachIO.
type Console struct {
	CPU       *CPU
	Bus       *CPUBus
	PPUBus    *PPUBus
	Cartridge *Cartridge
}

// NewConsole loads an iNES image and resets the CPU. Malformed images and
// unsupported mappers fail here, before a CPU exists.
func NewConsole(buf []byte) (*Console, error) {
	cartridge, err := NewCartridge(buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cartridge")
	}
	mapper, err := NewMapper(cartridge)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bind mapper")
	}
	bus := NewCPUBus(NewRAM(), mapper)
	return &Console{
		CPU:       NewCPU(bus),
		Bus:       bus,
		PPUBus:    NewPPUBus(mapper),
		Cartridge: cartridge,
	}, nil
}

// Reset presses the reset button.
func (c *Console) Reset() {
	c.CPU.Reset()
}

// Step executes one CPU instruction and returns the cycles it took.
func (c *Console) Step() (int, error) {
	return c.CPU.Step()
}
