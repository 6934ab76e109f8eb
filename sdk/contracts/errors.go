package contracts

import (
	"errors"
	"fmt"
)

// Error definitions for sequencer sessions and output ports.
var (
	ErrNoDevicesFound   = errors.New("no MIDI output sinks found")
	ErrPortNotFound     = errors.New("output target not found")
	ErrSendFailed       = errors.New("error sending MIDI message to port")
	ErrInvalidPacket    = errors.New("invalid UMP packet")
	ErrNotInitialized   = errors.New("sequencer session not initialized")
	ErrClosed           = errors.New("output closed")
	ErrPortNotOpen      = errors.New("output port not open")
	ErrAlreadyConnected = errors.New("output port already connected")
	ErrInvalidOption    = errors.New("invalid option")
	ErrUnsupported      = errors.New("ALSA sequencer UMP support not available")
)

// DriverError reports a failing call into the sequencer service.
type DriverError struct {
	Op  string // Operation that failed, e.g. "create port".
	Err error  // Underlying error returned by the driver.
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("alsa seq: %s: %v", e.Op, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }

// ErrorSink receives errors raised by an output. ReportError signals a
// failure that stopped the operation raising it; ReportWarning signals a
// problem the caller may ignore.
type ErrorSink interface {
	ReportError(err error)
	ReportWarning(err error)
}
