package nes

import "github.com/golang/glog"

// RegisterHandler serves the memory-mapped I/O region $2000-$401F.
// A PPU or APU plugs into the bus by implementing it.
type RegisterHandler interface {
	ReadRegister(address uint16) byte
	WriteRegister(address uint16, data byte)
}

// ioStub stands in for the PPU, APU and controller registers until a handler
// is attached. Reads return a fixed placeholder and writes are dropped.
type ioStub struct{}

func (ioStub) ReadRegister(address uint16) byte {
	glog.V(2).Infof("Unimplemented CPU bus read: address=0x%04x", address)
	return openBus
}

func (ioStub) WriteRegister(address uint16, data byte) {
	glog.V(2).Infof("Unimplemented CPU bus write: address=0x%04x, data=0x%02x", address, data)
}

type CPUBus struct {
	wram   *RAM
	io     RegisterHandler
	mapper Mapper
}

// NewCPUBus creates a new Bus for CPU.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x401F	APU and I/O Port
// 0x4020 - 0x5FFF	Expansion ROM (cartridge)
// 0x6000 - 0x7FFF	PRG RAM (cartridge)
// 0x8000 - 0xFFFF	PRG ROM (cartridge)
func NewCPUBus(wram *RAM, mapper Mapper) *CPUBus {
	return &CPUBus{wram: wram, io: ioStub{}, mapper: mapper}
}

// AttachIO routes $2000-$401F to h. A nil h restores the stub.
func (b *CPUBus) AttachIO(h RegisterHandler) {
	if h == nil {
		h = ioStub{}
	}
	b.io = h
}

// reset resets the cartridge banks, RAM keeps its content.
func (b *CPUBus) reset() {
	b.mapper.Reset()
}

// read reads a byte.
func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram.read(address & 0x07FF)
	case address < 0x4020:
		return b.io.ReadRegister(address)
	default:
		return b.mapper.ReadFromCPU(address)
	}
}

// peek reads a byte for display purposes, I/O registers are not touched.
func (b *CPUBus) peek(address uint16) byte {
	if 0x2000 <= address && address < 0x4020 {
		return openBus
	}
	return b.read(address)
}

// read16 reads 2 bytes, little endian.
func (b *CPUBus) read16(address uint16) uint16 {
	l := b.read(address)
	h := b.read(address + 1)
	return uint16(h)<<8 | uint16(l)
}

// read16Wrap reads 2 bytes without carrying into the high byte of the
// address, so the second byte comes from the same page.
// This reproduces the 6502 JMP ($xxFF) bug and zero page pointer wraparound.
func (b *CPUBus) read16Wrap(address uint16) uint16 {
	l := b.read(address)
	h := b.read(address&0xFF00 | uint16(byte(address)+1))
	return uint16(h)<<8 | uint16(l)
}

// write writes a byte.
func (b *CPUBus) write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.wram.write(address&0x07FF, data)
	case address < 0x4020:
		b.io.WriteRegister(address, data)
	default:
		b.mapper.WriteFromCPU(address, data)
	}
}
