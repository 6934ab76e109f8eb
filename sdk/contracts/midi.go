package contracts

// API identifies the transport backing an output.
type API int

const (
	// APIUnspecified is returned when no backend is attached.
	APIUnspecified API = iota
	// APIAlsaSeqUMP is the ALSA sequencer with UMP (MIDI 2.0) events.
	APIAlsaSeqUMP
)

func (a API) String() string {
	switch a {
	case APIAlsaSeqUMP:
		return "alsa_seq_ump"
	default:
		return "unspecified"
	}
}

// OutputPort defines the operations of a MIDI 2.0 output.
type OutputPort interface {
	// CurrentAPI returns the transport in use.
	CurrentAPI() API
	// OpenPort creates the local port and connects it to target.
	OpenPort(target OutputTarget, name string) error
	// OpenVirtualPort creates a local port other clients may connect to.
	OpenVirtualPort(name string) error
	// ClosePort removes the connection made by OpenPort, if any.
	ClosePort() error
	// IsPortOpen reports whether a local port exists.
	IsPortOpen() bool
	// SetClientName renames the sequencer client.
	SetClientName(name string) error
	// SetPortName renames the local port.
	SetPortName(name string) error
	// SendUMP sends one UMP packet of 1 to 4 words.
	SendUMP(words []uint32) error
	// SendMessage sends MIDI 1.0 bytes, converted to UMP packets.
	SendMessage(msg []byte) error
	// Close releases every resource held by the output.
	Close() error
}
