package contracts

import (
	"gitlab.com/gomidi/midi/v2"
)

// PortCapability holds the SNDRV_SEQ_PORT_CAP_* bits of a port.
type PortCapability uint32

const (
	CapRead        PortCapability = 1 << 0 // Readable from this port.
	CapWrite       PortCapability = 1 << 1 // Writable to this port.
	CapSyncRead    PortCapability = 1 << 2
	CapSyncWrite   PortCapability = 1 << 3
	CapDuplex      PortCapability = 1 << 4
	CapSubsRead    PortCapability = 1 << 5 // Allows read subscription.
	CapSubsWrite   PortCapability = 1 << 6 // Allows write subscription.
	CapNoExport    PortCapability = 1 << 7
	CapInactive    PortCapability = 1 << 8
	CapUMPEndpoint PortCapability = 1 << 9 // Port is a UMP endpoint.
)

// Has reports whether every bit of want is set.
func (c PortCapability) Has(want PortCapability) bool {
	return c&want == want
}

// PortType holds the SNDRV_SEQ_PORT_TYPE_* bits of a port.
type PortType uint32

const (
	TypeSpecific    PortType = 1 << 0
	TypeMIDIGeneric PortType = 1 << 1
	TypeMIDIGM      PortType = 1 << 2
	TypeHardware    PortType = 1 << 16
	TypeSoftware    PortType = 1 << 17
	TypeSynthesizer PortType = 1 << 18
	TypePort        PortType = 1 << 19
	TypeApplication PortType = 1 << 20
)

// Subscription links a sender port to a destination port.
type Subscription struct {
	Sender Address
	Dest   Address
}

// EventCoder converts a MIDI 1.0 byte stream into complete messages.
// It has a fixed capacity chosen when it is allocated.
type EventCoder interface {
	// Encode feeds raw bytes and returns every message completed by them.
	Encode(data []byte) ([]midi.Message, error)
	// Reset drops any partially parsed message and the running status.
	Reset()
	// Free releases the coder. It must not be used afterwards.
	Free()
}

// Sequencer is the client handle of a session with the sequencer service.
// Calls are blocking and not safe for concurrent use.
type Sequencer interface {
	// ClientID returns the client number assigned to this handle.
	ClientID() (int, error)
	// SetClientName renames the client.
	SetClientName(name string) error

	// CreatePort creates a local port from info and returns its number.
	CreatePort(info PortInfo) (int, error)
	// DeletePort removes a local port.
	DeletePort(port int) error
	// SetPortName renames a local port.
	SetPortName(port int, name string) error

	// PortCount counts remote ports whose capabilities include caps.
	PortCount(caps PortCapability) (int, error)
	// ResolveTarget maps a target to a writable, subscribable remote port.
	ResolveTarget(target OutputTarget) (Address, error)

	// Subscribe connects sender to dest.
	Subscribe(sub Subscription) error
	// Unsubscribe removes a connection made by Subscribe.
	Unsubscribe(sub Subscription) error

	// EventOutputUMP appends ev to the output buffer. It returns the
	// number of bytes still pending in the buffer.
	EventOutputUMP(ev *UMPEvent) (int, error)
	// DrainOutput writes every pending event to the kernel.
	DrainOutput() error

	// NewEventCoder allocates a byte-stream coder of the given capacity.
	NewEventCoder(bufferSize int) (EventCoder, error)

	// Close releases the handle.
	Close() error
}
