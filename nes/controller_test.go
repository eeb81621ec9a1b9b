package nes

import "testing"

func TestController(t *testing.T) {
	c := NewController()
	var buttons [8]bool
	buttons[ButtonA] = true
	buttons[ButtonStart] = true
	buttons[ButtonLeft] = true
	c.Set(buttons)

	b := NewCPUBus(NewRAM(), &fakeMapper{})
	b.AttachIO(c)
	b.write(0x4016, 1)
	b.write(0x4016, 0)
	want := []byte{1, 0, 0, 1, 0, 0, 1, 0, 1, 1}
	for i, w := range want {
		if got := b.read(0x4016); got != w {
			t.Errorf("read %d: got=%d, want=%d", i, got, w)
		}
	}
	// Other registers stay on the stub.
	if got := b.read(0x4017); got != openBus {
		t.Errorf("read(0x4017): got=0x%02x, want=0x%02x", got, openBus)
	}
}

func TestControllerStrobeHeld(t *testing.T) {
	c := NewController()
	c.Set([8]bool{true})
	c.WriteRegister(0x4016, 1)
	for i := 0; i < 10; i++ {
		if got := c.ReadRegister(0x4016); got != 1 {
			t.Fatalf("read %d: got=%d, want=1", i, got)
		}
	}
}

func TestControllerReadFromProgram(t *testing.T) {
	// Strobe, then read A and B into $00/$01.
	cpu := newTestCPU(t,
		0xA9, 0x01, 0x8D, 0x16, 0x40, // LDA #1; STA $4016
		0xA9, 0x00, 0x8D, 0x16, 0x40, // LDA #0; STA $4016
		0xAD, 0x16, 0x40, 0x85, 0x00, // LDA $4016; STA $00
		0xAD, 0x16, 0x40, 0x85, 0x01, // LDA $4016; STA $01
	)
	c := NewController()
	c.Set([8]bool{false, true})
	cpu.bus.AttachIO(c)
	steps(t, cpu, 8)
	if a, b := cpu.bus.read(0x00), cpu.bus.read(0x01); a != 0 || b != 1 {
		t.Errorf("got A=%d B=%d, want A=0 B=1", a, b)
	}
}
