// Package alsaump implements MIDI 2.0 output through the ALSA sequencer
// using UMP events.
package alsaump

import (
	"github.com/leandrodaf/umpseq/internal/alsa/seq"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"go.uber.org/multierr"
)

// Output sends UMP packets from one local sequencer port. It is not safe
// for concurrent use; callers serialize every call.
type Output struct {
	reporter
	session
	clientName string
}

var (
	_ contracts.OutputPort = (*Output)(nil)
	_ contracts.ErrorSink  = (*Output)(nil)
)

// NewMIDIOutput opens a sequencer client, or borrows the one set with
// contracts.WithContext, and returns an output ready to open a port.
// When initialization fails the partial output is released before the
// error is returned.
func NewMIDIOutput(options *contracts.OutputOptions) (contracts.OutputPort, error) {
	out, err := newOutput(options, openSequencer)
	if err != nil {
		if out != nil {
			_ = out.Close()
		}
		return nil, err
	}
	return out, nil
}

// newOutput builds an Output. If acquiring the sequencer resources fails
// the returned Output is inert: every operation fails with
// ErrNotInitialized and Close releases what was acquired.
func newOutput(options *contracts.OutputOptions, open opener) (*Output, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	cfg := options.AlsaSeq

	o := &Output{
		reporter: reporter{
			logger:    options.Logger,
			onError:   options.OnError,
			onWarning: options.OnWarning,
		},
		session:    newSession(),
		clientName: cfg.ClientName,
	}
	o.portName = cfg.PortName

	if err := o.acquire(o.reporter, cfg.Context, cfg.ClientName, open); err != nil {
		return o, err
	}

	o.logger.Info("MIDI output created",
		o.logger.Field().String("client", cfg.ClientName),
		o.logger.Field().Bool("sharedContext", o.borrowed))
	return o, nil
}

func openSequencer(clientName string) (contracts.Sequencer, error) {
	c, err := seq.Open(clientName)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CurrentAPI returns the transport used by the output.
func (o *Output) CurrentAPI() contracts.API {
	return contracts.APIAlsaSeqUMP
}

// Close disconnects and deletes the local port, frees the event coder and
// closes the client handle unless it is borrowed. Calling Close again has
// no effect.
func (o *Output) Close() error {
	if o.closed {
		return nil
	}
	err := multierr.Append(o.ClosePort(), o.teardown())
	if err != nil {
		o.logger.Warn("MIDI output closed with errors", o.logger.Field().Error("error", err))
		return err
	}
	o.logger.Info("MIDI output closed")
	return nil
}
