package contracts

import (
	"fmt"
	"strconv"
	"strings"
)

// Address identifies a sequencer port as a (client, port) pair.
type Address struct {
	Client uint8 // Client number assigned by the sequencer.
	Port   uint8 // Port number within the client.
}

// String formats the address the way aconnect and aplaymidi print it.
func (a Address) String() string {
	return fmt.Sprintf("%d:%d", a.Client, a.Port)
}

// ParseAddress parses a "client:port" pair such as "128:0".
func ParseAddress(s string) (Address, error) {
	client, port, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Address{}, fmt.Errorf("%w: address %q must be client:port", ErrInvalidOption, s)
	}
	c, err := strconv.ParseUint(client, 10, 8)
	if err != nil {
		return Address{}, fmt.Errorf("%w: client in %q: %v", ErrInvalidOption, s, err)
	}
	p, err := strconv.ParseUint(port, 10, 8)
	if err != nil {
		return Address{}, fmt.Errorf("%w: port in %q: %v", ErrInvalidOption, s, err)
	}
	return Address{Client: uint8(c), Port: uint8(p)}, nil
}

// PortInfo describes a port known to the sequencer.
type PortInfo struct {
	Addr         Address        // Client/port numbers.
	Name         string         // Port name.
	ClientName   string         // Name of the owning client.
	Capability   PortCapability // Capability bits.
	Type         PortType       // Type bits.
	MIDIChannels int            // Channels per MIDI port.
}

// OutputTarget is an abstract description of the remote port an output
// should connect to. Addr is tried first; when it does not name a
// writable port, the first port whose name (or "client:port name"
// display name) equals PortName is used instead.
type OutputTarget struct {
	Addr        Address // Concrete client/port pair, if known.
	PortName    string  // Port name to match when Addr is not usable.
	DisplayName string  // Human readable label, used in log messages only.
}
