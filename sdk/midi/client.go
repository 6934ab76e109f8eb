package midi

import (
	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// NewMIDIOutput creates a new MIDI 2.0 output with the specified options.
// It applies default options and initializes the output.
//
// opts ...contracts.Option: A variadic list of option functions to customize the output configuration.
//
// Returns:
//   - contracts.OutputPort: An instance of the MIDI output, ready to open a port.
//   - error: An error, if any occurred during the creation of the output.
func NewMIDIOutput(opts ...contracts.Option) (contracts.OutputPort, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	output, err := NewOutput(&options)
	if err != nil {
		return nil, err
	}

	return output, nil
}
