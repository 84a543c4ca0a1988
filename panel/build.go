package panel

import (
	"io"

	"rekindle/core"
)

// Conn builds outgoing frames into a fixed scratch buffer and writes them
// to the panel byte stream. Not safe for concurrent use; the console owns
// a single Conn and drives it from the main tick.
type Conn struct {
	w       io.Writer
	scratch [PayloadMax + 8]byte
}

// NewConn wraps a panel byte stream.
func NewConn(w io.Writer) *Conn {
	return &Conn{w: w}
}

func (c *Conn) send(n int) error {
	core.RecordEvent(core.EvtFrameTx,
		uint32(c.scratch[3]),
		uint32(c.scratch[4])<<8|uint32(c.scratch[5]))
	_, err := c.w.Write(c.scratch[:n])
	return err
}

// WriteValue writes a 16-bit value to a numeric register:
// 5A A5 05 82 AH AL VH VL
func (c *Conn) WriteValue(addr uint16, value uint16) error {
	b := &c.scratch
	b[0] = Sync1
	b[1] = Sync2
	b[2] = 0x05
	b[3] = CmdWrite
	b[4] = byte(addr >> 8)
	b[5] = byte(addr)
	b[6] = byte(value >> 8)
	b[7] = byte(value)
	return c.send(8)
}

// WriteText writes a string to a text register, terminated with 0xFFFF:
// 5A A5 len 82 AH AL ...text FF FF
// Text longer than the payload capacity is truncated.
func (c *Conn) WriteText(addr uint16, text string) error {
	max := PayloadMax - 5 // command + address + terminator
	if len(text) > max {
		text = text[:max]
	}

	b := &c.scratch
	b[0] = Sync1
	b[1] = Sync2
	b[2] = byte(len(text) + 5)
	b[3] = CmdWrite
	b[4] = byte(addr >> 8)
	b[5] = byte(addr)
	n := copy(b[6:], text)
	b[6+n] = 0xFF
	b[7+n] = 0xFF
	return c.send(8 + n)
}

// WriteColor sets the display color of a text register. The color word
// lives three registers past the text address.
func (c *Conn) WriteColor(addr uint16, color uint16) error {
	return c.WriteValue(addr+3, color)
}

// RequestValue asks the panel to report count words from a register:
// 5A A5 04 83 AH AL count
func (c *Conn) RequestValue(addr uint16, count uint8) error {
	b := &c.scratch
	b[0] = Sync1
	b[1] = Sync2
	b[2] = 0x04
	b[3] = CmdRead
	b[4] = byte(addr >> 8)
	b[5] = byte(addr)
	b[6] = count
	return c.send(7)
}

// ChangePage switches the panel to a page by its panel-native id:
// 5A A5 07 82 00 84 5A 01 PH PL
func (c *Conn) ChangePage(page uint16) error {
	b := &c.scratch
	b[0] = Sync1
	b[1] = Sync2
	b[2] = 0x07
	b[3] = CmdWrite
	b[4] = byte(RegPage >> 8)
	b[5] = byte(RegPage)
	b[6] = 0x5A
	b[7] = 0x01
	b[8] = byte(page >> 8)
	b[9] = byte(page)
	if err := c.send(10); err != nil {
		return err
	}
	core.RecordEvent(core.EvtPageChange, uint32(page), 0)
	return nil
}

// SetAudio turns the panel's touch audio on or off:
// 5A A5 07 82 00 80 5A 00 00 1A|12
func (c *Conn) SetAudio(on bool) error {
	b := &c.scratch
	b[0] = Sync1
	b[1] = Sync2
	b[2] = 0x07
	b[3] = CmdWrite
	b[4] = byte(RegAudio >> 8)
	b[5] = byte(RegAudio)
	b[6] = 0x5A
	b[7] = 0x00
	b[8] = 0x00
	if on {
		b[9] = 0x1A
	} else {
		b[9] = 0x12
	}
	return c.send(10)
}

// NotifyPowerLoss tells the panel the supply is failing:
// 5A A5 05 82 00 82 00 00
func (c *Conn) NotifyPowerLoss() error {
	return c.WriteValue(RegPowerLoss, 0x0000)
}
