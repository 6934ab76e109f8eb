package coder

import (
	"fmt"

	"github.com/leandrodaf/umpseq/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

// UMP message types.
const (
	MTUtility      uint8 = 0x0
	MTSystem       uint8 = 0x1
	MTMIDI1Channel uint8 = 0x2
	MTData64       uint8 = 0x3
	MTMIDI2Channel uint8 = 0x4
	MTData128      uint8 = 0x5
	MTFlexData     uint8 = 0xD
	MTStream       uint8 = 0xF
)

const sysex7ChunkSize = 6

// SysEx7 packet status values.
const (
	sysexComplete uint8 = 0x0
	sysexStart    uint8 = 0x1
	sysexContinue uint8 = 0x2
	sysexEnd      uint8 = 0x3
)

var wordCounts = [16]int{1, 1, 1, 2, 2, 4, 1, 1, 2, 2, 2, 3, 3, 4, 4, 4}

// MessageType returns the UMP message type of a packet's first word.
func MessageType(word uint32) uint8 {
	return uint8(word >> 28)
}

// WordCount returns the size in words of a packet of message type mt.
func WordCount(mt uint8) int {
	return wordCounts[mt&0x0F]
}

// ToUMP converts a complete MIDI 1.0 message to UMP packets addressed to
// group. Channel voice messages become MIDI 1.0 channel voice packets,
// system messages become system packets and SysEx is split into 7-bit
// data packets.
func ToUMP(msg midi.Message, group uint8) ([][]uint32, error) {
	c := Converter{Group: group}
	return c.Convert(msg)
}

// Converter converts a sequence of MIDI 1.0 messages to UMP packets. It
// accepts SysEx split in fragments as returned by EventCoder and keeps
// one SysEx7 stream open from the first fragment to the last.
type Converter struct {
	Group   uint8
	inSysEx bool
}

// Reset forgets a SysEx in progress.
func (c *Converter) Reset() {
	c.inSysEx = false
}

// Convert converts msg. A message other than a real-time one arriving
// inside an unterminated SysEx first ends the SysEx7 stream.
func (c *Converter) Convert(msg midi.Message) ([][]uint32, error) {
	b := []byte(msg)
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty MIDI message", contracts.ErrInvalidPacket)
	}
	g := uint32(c.Group&0x0F) << 24
	status := b[0]

	if c.inSysEx && (status < 0x80 || status == 0xF7) {
		return c.sysex7(b, g, false)
	}

	var packets [][]uint32
	if c.inSysEx && status < 0xF8 {
		packets = append(packets, sysex7Packet(g, sysexEnd, nil))
		c.inSysEx = false
	}

	switch {
	case status < 0x80:
		return nil, fmt.Errorf("%w: missing status byte 0x%02X", contracts.ErrInvalidPacket, status)
	case status == 0xF7:
		return nil, fmt.Errorf("%w: end of SysEx without start", contracts.ErrInvalidPacket)
	case status == 0xF0:
		sysex, err := c.sysex7(b, g, true)
		if err != nil {
			return nil, err
		}
		return append(packets, sysex...), nil
	case status < 0xF0:
		if len(b) != 1+dataLength(status) {
			return nil, fmt.Errorf("%w: channel message % X has %d bytes", contracts.ErrInvalidPacket, b, len(b))
		}
		return append(packets, []uint32{uint32(MTMIDI1Channel)<<28 | g | pack3(b)}), nil
	default:
		if len(b) != 1+dataLength(status) {
			return nil, fmt.Errorf("%w: system message 0x%02X has %d bytes", contracts.ErrInvalidPacket, status, len(b))
		}
		return append(packets, []uint32{uint32(MTSystem)<<28 | g | pack3(b)}), nil
	}
}

func pack3(b []byte) uint32 {
	var w uint32
	for i := 0; i < 3; i++ {
		w <<= 8
		if i < len(b) {
			w |= uint32(b[i])
		}
	}
	return w
}

// sysex7 packs one SysEx fragment. start tells whether b begins with 0xF0;
// a trailing 0xF7 ends the stream.
func (c *Converter) sysex7(b []byte, g uint32, start bool) ([][]uint32, error) {
	payload := b
	if start {
		payload = payload[1:]
	}
	end := false
	if n := len(payload); n > 0 && payload[n-1] == 0xF7 {
		payload = payload[:n-1]
		end = true
	}
	for _, d := range payload {
		if d >= 0x80 {
			return nil, fmt.Errorf("%w: status byte 0x%02X inside SysEx", contracts.ErrInvalidPacket, d)
		}
	}

	var packets [][]uint32
	for first := true; first || len(payload) > 0; first = false {
		n := min(len(payload), sysex7ChunkSize)
		chunk := payload[:n]
		payload = payload[n:]
		last := len(payload) == 0

		var st uint8
		switch {
		case start && first && last && end:
			st = sysexComplete
		case start && first:
			st = sysexStart
		case last && end:
			st = sysexEnd
		default:
			st = sysexContinue
		}
		packets = append(packets, sysex7Packet(g, st, chunk))
	}
	c.inSysEx = !end
	return packets, nil
}

func sysex7Packet(g uint32, st uint8, chunk []byte) []uint32 {
	var data [sysex7ChunkSize]byte
	n := copy(data[:], chunk)
	w0 := uint32(MTData64)<<28 | g | uint32(st)<<20 | uint32(n)<<16 | uint32(data[0])<<8 | uint32(data[1])
	w1 := uint32(data[2])<<24 | uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5])
	return []uint32{w0, w1}
}
