package nes

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidROMFormat is returned (wrapped with the reason) when a buffer is
// not a loadable iNES image.
var ErrInvalidROMFormat = errors.New("invalid iNES ROM format")

// UnsupportedMapperError is returned when a cartridge asks for a mapper that
// is not implemented.
type UnsupportedMapperError struct {
	ID byte
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("mapper %d is not supported", e.ID)
}

// InvalidOpcodeError means the instruction table has no entry for an opcode.
// With a fully populated table this can't happen.
type InvalidOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("no instruction for opcode 0x%02x at PC=0x%04x", e.Opcode, e.PC)
}
