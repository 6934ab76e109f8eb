package contracts

import (
	"encoding/binary"
	"fmt"
)

// Event flag bits (SNDRV_SEQ_TIME_*, SNDRV_SEQ_EVENT_*).
const (
	EventFlagTimeStampReal uint8 = 1 << 0
	EventFlagTimeModeRel   uint8 = 1 << 1
	EventFlagLengthVar     uint8 = 1 << 2
	EventFlagPriorityHigh  uint8 = 1 << 4
	EventFlagUMP           uint8 = 1 << 5
)

// Special addresses and queues.
const (
	AddressUnknown     uint8 = 253
	AddressSubscribers uint8 = 254
	AddressBroadcast   uint8 = 255
	QueueDirect        uint8 = 253
)

// UMPEventSize is the size of struct snd_seq_ump_event.
const UMPEventSize = 32

// MaxUMPWords is the capacity of the UMP payload of an event.
const MaxUMPWords = 4

// UMPEvent mirrors the kernel's struct snd_seq_ump_event. The zero value
// is a fully cleared record.
type UMPEvent struct {
	Type   uint8
	Flags  uint8
	Tag    int8
	Queue  uint8
	Time   [8]byte
	Source Address
	Dest   Address
	UMP    [MaxUMPWords]uint32
}

// SetUMP marks the event as carrying a UMP payload.
func (e *UMPEvent) SetUMP() {
	e.Flags |= EventFlagUMP
	e.Flags &^= EventFlagLengthVar
}

// SetSource sets the sending port. The kernel fills in the client number.
func (e *UMPEvent) SetSource(port uint8) {
	e.Source.Port = port
}

// SetSubscribers addresses the event to every subscriber of the source port.
func (e *UMPEvent) SetSubscribers() {
	e.Dest.Client = AddressSubscribers
	e.Dest.Port = AddressUnknown
}

// SetDirect schedules the event for immediate delivery, bypassing queues.
func (e *UMPEvent) SetDirect() {
	e.Queue = QueueDirect
}

// SetWords copies a UMP packet into the payload. The packet must hold
// between one and MaxUMPWords words.
func (e *UMPEvent) SetWords(words []uint32) error {
	if len(words) == 0 || len(words) > MaxUMPWords {
		return fmt.Errorf("%w: %d words, want 1 to %d", ErrInvalidPacket, len(words), MaxUMPWords)
	}
	copy(e.UMP[:], words)
	return nil
}

// MarshalBinary encodes the record in host byte order, as read by the kernel.
func (e *UMPEvent) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(make([]byte, 0, UMPEventSize))
}

// AppendBinary appends the encoded record to b.
func (e *UMPEvent) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, e.Type, e.Flags, byte(e.Tag), e.Queue)
	b = append(b, e.Time[:]...)
	b = append(b, e.Source.Client, e.Source.Port, e.Dest.Client, e.Dest.Port)
	for _, w := range e.UMP {
		b = binary.NativeEndian.AppendUint32(b, w)
	}
	return b, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (e *UMPEvent) UnmarshalBinary(b []byte) error {
	if len(b) != UMPEventSize {
		return fmt.Errorf("ump event: got %d bytes, want %d", len(b), UMPEventSize)
	}
	e.Type, e.Flags, e.Tag, e.Queue = b[0], b[1], int8(b[2]), b[3]
	copy(e.Time[:], b[4:12])
	e.Source = Address{Client: b[12], Port: b[13]}
	e.Dest = Address{Client: b[14], Port: b[15]}
	for i := range e.UMP {
		e.UMP[i] = binary.NativeEndian.Uint32(b[16+4*i:])
	}
	return nil
}
