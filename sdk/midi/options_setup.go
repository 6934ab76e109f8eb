package midi

import (
	"github.com/leandrodaf/umpseq/internal/logger"
	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// Default names registered with the sequencer.
const (
	DefaultClientName = "GO UMP Client"
	DefaultPortName   = "GO UMP Output"
)

// applyDefaultOptions sets default values for OutputOptions if not explicitly provided
// and validates the result.
//
// opts ...contracts.Option: A variadic list of option functions that can modify OutputOptions.
//
// Returns:
//   - contracts.OutputOptions: A structure containing the finalized options with defaults applied.
//   - error: An error if the options are invalid.
func applyDefaultOptions(opts ...contracts.Option) (contracts.OutputOptions, error) {
	options := &contracts.OutputOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.AlsaSeq == nil {
		options.AlsaSeq = &contracts.AlsaSeqConfig{}
	}
	if options.AlsaSeq.ClientName == "" {
		options.AlsaSeq.ClientName = DefaultClientName
	}
	if options.AlsaSeq.PortName == "" {
		options.AlsaSeq.PortName = DefaultPortName
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}

	if err := options.Validate(); err != nil {
		return contracts.OutputOptions{}, err
	}
	return *options, nil
}
