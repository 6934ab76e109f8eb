package contracts

import (
	"fmt"
	"strings"
)

// MaxNameLength is the longest client or port name the sequencer keeps.
const MaxNameLength = 63

// AlsaSeqConfig holds configuration specific to the ALSA sequencer backend.
type AlsaSeqConfig struct {
	Context    Sequencer // Externally owned handle to borrow; nil opens a new one.
	ClientName string    // Name of the sequencer client.
	PortName   string    // Default name of the local port.
}

// OutputOptions defines the configuration of a MIDI output. It merges the
// generic output settings with the backend specific ones.
type OutputOptions struct {
	Logger      Logger          // Logger for logging events and errors.
	LogLevel    LogLevel        // Level of logging to use.
	LogFilePath string          // File path for logging if file logging is enabled.
	OnError     func(err error) // Called for every fatal error, after logging.
	OnWarning   func(err error) // Called for every warning, after logging.
	AlsaSeq     *AlsaSeqConfig  // Configuration specific to the ALSA sequencer.
}

// Validate checks the options once, before any resource is acquired.
func (o *OutputOptions) Validate() error {
	if o.Logger == nil {
		return fmt.Errorf("%w: logger is required", ErrInvalidOption)
	}
	if o.AlsaSeq == nil {
		return fmt.Errorf("%w: ALSA sequencer config is required", ErrInvalidOption)
	}
	if err := validateName("client name", o.AlsaSeq.ClientName); err != nil {
		return err
	}
	return validateName("port name", o.AlsaSeq.PortName)
}

func validateName(what, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidOption, what)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %s longer than %d bytes", ErrInvalidOption, what, MaxNameLength)
	}
	return nil
}

// ValidateName checks a client or port name passed after construction.
func ValidateName(name string) error {
	return validateName("name", name)
}

// Option is a function that modifies OutputOptions.
type Option func(*OutputOptions)

// WithLogger sets the logger for the MIDI output.
func WithLogger(l Logger) Option {
	return func(opts *OutputOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI output.
func WithLogLevel(level LogLevel) Option {
	return func(opts *OutputOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile sends log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *OutputOptions) {
		opts.LogFilePath = path
	}
}

// WithErrorCallback registers a callback for fatal errors.
func WithErrorCallback(fn func(err error)) Option {
	return func(opts *OutputOptions) {
		opts.OnError = fn
	}
}

// WithWarningCallback registers a callback for warnings.
func WithWarningCallback(fn func(err error)) Option {
	return func(opts *OutputOptions) {
		opts.OnWarning = fn
	}
}

// WithAlsaSeqConfig replaces the ALSA sequencer configuration.
func WithAlsaSeqConfig(config AlsaSeqConfig) Option {
	return func(opts *OutputOptions) {
		opts.AlsaSeq = &config
	}
}

// WithContext makes the output borrow an already open sequencer handle.
// The output never closes a borrowed handle.
func WithContext(seq Sequencer) Option {
	return func(opts *OutputOptions) {
		alsaSeq(opts).Context = seq
	}
}

// WithClientName sets the sequencer client name.
func WithClientName(name string) Option {
	return func(opts *OutputOptions) {
		alsaSeq(opts).ClientName = name
	}
}

// WithPortName sets the default local port name.
func WithPortName(name string) Option {
	return func(opts *OutputOptions) {
		alsaSeq(opts).PortName = name
	}
}

func alsaSeq(opts *OutputOptions) *AlsaSeqConfig {
	if opts.AlsaSeq == nil {
		opts.AlsaSeq = &AlsaSeqConfig{}
	}
	return opts.AlsaSeq
}
