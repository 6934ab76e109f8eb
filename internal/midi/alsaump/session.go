package alsaump

import (
	"github.com/leandrodaf/umpseq/internal/midi/coder"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"go.uber.org/multierr"
)

// coderBufferSize is the capacity of the MIDI 1.0 event coder.
const coderBufferSize = 32

// opener registers a new sequencer client.
type opener func(clientName string) (contracts.Sequencer, error)

// session holds the client handle and port bookkeeping shared by every
// operation of an Output.
type session struct {
	seq       contracts.Sequencer
	borrowed  bool // seq belongs to the caller and is never closed here
	encoder   contracts.EventCoder
	converter coder.Converter
	vport     int // local port number, -1 when none exists
	portName  string
	sub       *contracts.Subscription
	valid     bool
	closed    bool
}

func newSession() session {
	return session{vport: -1}
}

// acquire opens the client handle, or borrows ctx when it is set, and
// allocates the event coder. A failure leaves the session inert.
func (s *session) acquire(r reporter, ctx contracts.Sequencer, clientName string, open opener) error {
	if ctx != nil {
		s.seq = ctx
		s.borrowed = true
	} else {
		seq, err := open(clientName)
		if err != nil {
			return r.driverError("error creating ALSA sequencer client object", err)
		}
		s.seq = seq
	}

	encoder, err := s.seq.NewEventCoder(coderBufferSize)
	if err != nil {
		return r.driverError("error initializing MIDI event parser", err)
	}
	encoder.Reset()
	s.encoder = encoder

	s.valid = true
	return nil
}

// check returns the error every operation fails with on an unusable session.
func (s *session) check() error {
	switch {
	case s.closed:
		return contracts.ErrClosed
	case !s.valid:
		return contracts.ErrNotInitialized
	}
	return nil
}

// teardown releases the port, the coder and the client handle. Each step
// runs only for resources that were actually acquired.
func (s *session) teardown() error {
	var err error
	if s.vport >= 0 {
		err = multierr.Append(err, s.seq.DeletePort(s.vport))
		s.vport = -1
	}
	if s.encoder != nil {
		s.encoder.Free()
		s.encoder = nil
	}
	if s.seq != nil && !s.borrowed {
		err = multierr.Append(err, s.seq.Close())
	}
	s.seq = nil
	s.valid = false
	s.closed = true
	return err
}
