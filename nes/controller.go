package nes

// Reference:
//   http://hp.vector.co.jp/authors/VA042397/nes/joypad.html (In Japanese)
//   https://www.nesdev.org/wiki/Standard_controller
//   https://www.nesdev.org/wiki/Controller_reading_code

type button int

// Buttons in the order the shift register reports them.
const (
	ButtonA button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

const controllerPort uint16 = 0x4016

// Controller is a standard joypad on port 1. It serves $4016 and leaves the
// rest of the I/O region to the stub, attach it with CPUBus.AttachIO.
type Controller struct {
	buttons [8]bool
	index   byte
	strobe  byte
}

func NewController() *Controller {
	return &Controller{}
}

// Set replaces the pressed buttons, indexed by button.
func (c *Controller) Set(buttons [8]bool) {
	c.buttons = buttons
}

// read shifts out one button, 1 means pressed. Official pads report 1 after
// all 8 buttons were read.
func (c *Controller) read() byte {
	ret := byte(1)
	if c.index < 8 {
		ret = 0
		if c.buttons[c.index] {
			ret = 1
		}
		c.index++
	}
	if c.strobe&1 == 1 {
		c.index = 0
	}
	return ret
}

// write writes strobe.
// - strobe bit on - controller reports only status of the button A on every read
// - strobe bit off - controller cycles through all buttons
func (c *Controller) write(data byte) {
	c.strobe = data
	if c.strobe&1 == 1 {
		c.index = 0
	}
}

func (c *Controller) ReadRegister(address uint16) byte {
	if address == controllerPort {
		return c.read()
	}
	return ioStub{}.ReadRegister(address)
}

func (c *Controller) WriteRegister(address uint16, data byte) {
	if address == controllerPort {
		c.write(data)
		return
	}
	ioStub{}.WriteRegister(address, data)
}
