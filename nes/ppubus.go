package nes

const (
	nametableSize   = 0x0400
	paletteRAMSize  = 0x20
	ppuAddressSpace = 0x3FFF
)

// PPUBus is the picture side address space of the cartridge and console.
// The core has no PPU; a PPU attached to the CPU bus with AttachIO reads
// pattern tables and nametables through it.
type PPUBus struct {
	mapper Mapper
	// Four nametables. Only two exist on the console, the other two are
	// used for cartridges wiring four-screen VRAM.
	nametables [4 * nametableSize]byte
	palette    [paletteRAMSize]byte
}

// NewPPUBus creates a new Bus for PPU.
func NewPPUBus(mapper Mapper) *PPUBus {
	return &PPUBus{mapper: mapper}
}

// nametableOffset resolves $2000-$3EFF to an offset in the nametables under
// the mirroring the mapper currently selects.
//   horizontal: $2000=$2400, $2800=$2C00
//   vertical:   $2000=$2800, $2400=$2C00
func (b *PPUBus) nametableOffset(address uint16) int {
	index := int(address-0x2000) & 0x0FFF
	table := index / nametableSize
	switch b.mapper.Mirroring() {
	case Horizontal:
		table /= 2
	case Vertical:
		table %= 2
	case SingleScreenLower:
		table = 0
	case SingleScreenUpper:
		table = 1
	}
	return table*nametableSize + index%nametableSize
}

// paletteOffset folds $3F00-$3FFF into 32 entries. The backdrop entries of
// the sprite palettes ($3F10/$3F14/$3F18/$3F1C) mirror the background ones.
func paletteOffset(address uint16) int {
	offset := int(address) % paletteRAMSize
	if offset >= 0x10 && offset%4 == 0 {
		offset -= 0x10
	}
	return offset
}

// Read reads data.
// Address        Size	  Description
// -------------------------------------
// $0000-$0FFF	  $1000	  Pattern table 0
// $1000-$1FFF	  $1000	  Pattern table 1
// $2000-$23FF	  $0400	  Nametable 0
// $2400-$27FF	  $0400	  Nametable 1
// $2800-$2BFF	  $0400	  Nametable 2
// $2C00-$2FFF	  $0400	  Nametable 3
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// $3F00-$3F1F	  $0020	  Palette RAM indexes
// $3F20-$3FFF	  $00E0	  Mirrors of $3F00-$3F1F
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) Read(address uint16) byte {
	address &= ppuAddressSpace
	switch {
	case address < 0x2000:
		return b.mapper.ReadFromPPU(address)
	case address < 0x3F00:
		return b.nametables[b.nametableOffset(address)]
	default:
		return b.palette[paletteOffset(address)]
	}
}

// Write writes data. Pattern table writes only land on CHR RAM.
func (b *PPUBus) Write(address uint16, data byte) {
	address &= ppuAddressSpace
	switch {
	case address < 0x2000:
		b.mapper.WriteFromPPU(address, data)
	case address < 0x3F00:
		b.nametables[b.nametableOffset(address)] = data
	default:
		b.palette[paletteOffset(address)] = data
	}
}
