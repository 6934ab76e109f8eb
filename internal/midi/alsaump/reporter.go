package alsaump

import (
	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// reporter logs errors and warnings and forwards them to the callbacks
// configured in the output options.
type reporter struct {
	logger    contracts.Logger
	onError   func(err error)
	onWarning func(err error)
}

var _ contracts.ErrorSink = reporter{}

// ReportError records a failure that stopped the operation raising it.
func (r reporter) ReportError(err error) {
	r.logger.Error(err.Error(), r.logger.Field().Error("error", err))
	if r.onError != nil {
		r.onError(err)
	}
}

// ReportWarning records a problem that did not stop the caller.
func (r reporter) ReportWarning(err error) {
	r.logger.Warn(err.Error(), r.logger.Field().Error("error", err))
	if r.onWarning != nil {
		r.onWarning(err)
	}
}

// driverError wraps err as a DriverError for op and reports it.
func (r reporter) driverError(op string, err error) error {
	derr := &contracts.DriverError{Op: op, Err: err}
	r.ReportError(derr)
	return derr
}
