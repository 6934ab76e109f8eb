package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/umpseq/internal/alsa/seq"
	"github.com/leandrodaf/umpseq/internal/midi/alsaump"
	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI output.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// outputInitializers maps OS names to corresponding MIDI output initializers.
var outputInitializers = map[string]func(*contracts.OutputOptions) (contracts.OutputPort, error){
	"linux": alsaump.NewMIDIOutput, // ALSA sequencer UMP output.
}

// NewOutput initializes a MIDI output based on the current operating system.
// Only Linux is supported, returning ErrUnsupportedOS elsewhere.
//
// opts *contracts.OutputOptions: Configuration options for the MIDI output.
//
// Returns:
//   - contracts.OutputPort: An instance of the MIDI output.
//   - error: An error if the operating system is unsupported or if initialization fails.
func NewOutput(opts *contracts.OutputOptions) (contracts.OutputPort, error) {
	if initializer, exists := outputInitializers[runtime.GOOS]; exists {
		return initializer(opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

// OpenSequencer opens a sequencer client that several outputs can share
// through contracts.WithContext. The caller closes it after every output
// using it has been closed.
func OpenSequencer(clientName string) (contracts.Sequencer, error) {
	if err := contracts.ValidateName(clientName); err != nil {
		return nil, err
	}
	c, err := seq.Open(clientName)
	if err != nil {
		return nil, err
	}
	return c, nil
}
