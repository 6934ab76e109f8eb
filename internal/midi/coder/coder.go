// Package coder turns MIDI 1.0 byte streams into complete messages and
// converts those messages to Universal MIDI Packets.
package coder

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/umpseq/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// DefaultBufferSize is the capacity used by sequencer outputs.
const DefaultBufferSize = 32

// ErrFreed is returned by Encode after Free.
var ErrFreed = errors.New("event coder freed")

// EventCoder parses a MIDI 1.0 byte stream with running status. It holds
// at most a fixed number of bytes of one message. A SysEx longer than that
// is returned in fragments: the first starts with 0xF0, the last ends with
// 0xF7 and the ones in between carry data bytes only.
type EventCoder struct {
	buf     []byte
	status  byte // running status, 0 when none
	need    int  // data bytes still expected for the current message
	inSysEx bool
	freed   bool
}

var _ contracts.EventCoder = (*EventCoder)(nil)

// New allocates a coder holding up to size bytes.
func New(size int) (*EventCoder, error) {
	if size < 3 {
		return nil, fmt.Errorf("event coder size %d too small", size)
	}
	return &EventCoder{buf: make([]byte, 0, size)}, nil
}

// Encode feeds data to the coder and returns the messages it completes.
// Real-time bytes are returned immediately, even inside another message.
func (c *EventCoder) Encode(data []byte) ([]midi.Message, error) {
	if c.freed {
		return nil, ErrFreed
	}
	var out []midi.Message
	for _, b := range data {
		out = c.encodeByte(b, out)
	}
	return out, nil
}

func (c *EventCoder) encodeByte(b byte, out []midi.Message) []midi.Message {
	switch {
	case b >= 0xF8:
		return append(out, midi.Message{b})
	case b == 0xF7:
		if !c.inSysEx {
			return out
		}
		out = c.pushSysEx(b, out)
		c.inSysEx = false
		return append(out, c.flush())
	case b == 0xF0:
		c.buf = append(c.buf[:0], b)
		c.inSysEx = true
		c.status = 0
		c.need = 0
		return out
	case b >= 0x80:
		c.inSysEx = false
		if msg := c.startMessage(b); msg != nil {
			out = append(out, msg)
		}
		return out
	}

	// data byte
	if c.inSysEx {
		return c.pushSysEx(b, out)
	}
	if c.need == 0 {
		if c.status == 0 {
			return out
		}
		c.buf = append(c.buf[:0], c.status)
		c.need = dataLength(c.status)
	}
	c.buf = append(c.buf, b)
	c.need--
	if c.need == 0 {
		return append(out, c.flush())
	}
	return out
}

func (c *EventCoder) startMessage(status byte) midi.Message {
	c.buf = append(c.buf[:0], status)
	c.need = dataLength(status)
	switch {
	case status < 0xF0:
		c.status = status
	default:
		// system common messages cancel running status
		c.status = 0
	}
	if c.need == 0 {
		if status == 0xF4 || status == 0xF5 {
			c.buf = c.buf[:0]
			return nil
		}
		return c.flush()
	}
	return nil
}

// pushSysEx adds b to the SysEx in progress, first emitting the buffer
// as a fragment when it is full.
func (c *EventCoder) pushSysEx(b byte, out []midi.Message) []midi.Message {
	if len(c.buf) == cap(c.buf) {
		out = append(out, c.flush())
	}
	c.buf = append(c.buf, b)
	return out
}

func (c *EventCoder) flush() midi.Message {
	msg := make(midi.Message, len(c.buf))
	copy(msg, c.buf)
	c.buf = c.buf[:0]
	c.need = 0
	return msg
}

// Reset drops the partial message and the running status.
func (c *EventCoder) Reset() {
	c.buf = c.buf[:0]
	c.status = 0
	c.need = 0
	c.inSysEx = false
}

// Free releases the buffer.
func (c *EventCoder) Free() {
	c.buf = nil
	c.freed = true
}

// Size returns the capacity fixed at allocation.
func (c *EventCoder) Size() int {
	return cap(c.buf)
}

// dataLength returns how many data bytes follow a status byte.
func dataLength(status byte) int {
	switch {
	case status >= 0xF0:
		switch status {
		case 0xF1, 0xF3:
			return 1
		case 0xF2:
			return 2
		default:
			return 0
		}
	case status&0xF0 == 0xC0, status&0xF0 == 0xD0:
		return 1
	default:
		return 2
	}
}
