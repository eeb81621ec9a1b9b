package nes

const wramSize = 0x0800

// RAM is the console's 2KB work RAM.
type RAM struct {
	data [wramSize]byte
}

// NewRAM creates a zeroed RAM.
func NewRAM() *RAM {
	return &RAM{}
}

// read reads data, the address is folded into 2KB.
func (r *RAM) read(address uint16) byte {
	return r.data[address%wramSize]
}

// write writes data, the address is folded into 2KB.
func (r *RAM) write(address uint16, x byte) {
	r.data[address%wramSize] = x
}
