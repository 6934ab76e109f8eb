package alsaump

import (
	"fmt"

	"github.com/leandrodaf/umpseq/sdk/contracts"
)

const (
	outputCaps   = contracts.CapRead | contracts.CapSubsRead | contracts.CapUMPEndpoint
	outputType   = contracts.TypeMIDIGeneric | contracts.TypeApplication
	sinkCaps     = contracts.CapWrite | contracts.CapSubsWrite
	midiChannels = 16
)

// createPort creates the local output port, or returns the existing one
// renamed to name when name is set. It returns -1 and the driver error on
// failure.
func (o *Output) createPort(name string) (int, error) {
	if o.vport >= 0 {
		if name != "" && name != o.portName {
			if err := o.seq.SetPortName(o.vport, name); err != nil {
				return -1, err
			}
			o.portName = name
		}
		return o.vport, nil
	}
	if name == "" {
		name = o.portName
	}
	port, err := o.seq.CreatePort(contracts.PortInfo{
		Name:         name,
		Capability:   outputCaps,
		Type:         outputType,
		MIDIChannels: midiChannels,
	})
	if err != nil {
		return -1, err
	}
	o.vport = port
	o.portName = name
	o.logger.Debug("Output port created",
		o.logger.Field().Int("port", port),
		o.logger.Field().String("name", name))
	return port, nil
}

// OpenPort creates the local port and connects it to the remote port
// described by target. A port left by OpenVirtualPort is reused and takes
// name when it is set. It fails with ErrNoDevicesFound, without creating
// anything, when no remote port can receive events.
func (o *Output) OpenPort(target contracts.OutputTarget, name string) error {
	if err := o.check(); err != nil {
		return err
	}
	if o.sub != nil {
		return contracts.ErrAlreadyConnected
	}

	n, err := o.seq.PortCount(sinkCaps)
	if err != nil {
		return o.driverError("error querying output sinks", err)
	}
	if n < 1 {
		o.ReportError(contracts.ErrNoDevicesFound)
		return contracts.ErrNoDevicesFound
	}

	sink, err := o.seq.ResolveTarget(target)
	if err != nil {
		return fmt.Errorf("resolve output target: %w", err)
	}

	if _, err := o.createPort(name); err != nil {
		return o.driverError("ALSA error creating port", err)
	}

	if err := o.createConnection(sink); err != nil {
		return err
	}

	o.logger.Info("Output port connected",
		o.logger.Field().String("port", o.portName),
		o.logger.Field().String("sink", sink.String()),
		o.logger.Field().String("target", target.DisplayName))
	return nil
}

// OpenVirtualPort creates a port without connecting it. Other clients
// discover it and subscribe to it themselves.
func (o *Output) OpenVirtualPort(name string) error {
	if err := o.check(); err != nil {
		return err
	}
	port, err := o.createPort(name)
	if err != nil {
		return o.driverError("ALSA error creating virtual port", err)
	}
	o.logger.Info("Virtual output port opened",
		o.logger.Field().Int("port", port),
		o.logger.Field().String("name", o.portName))
	return nil
}

// ClosePort removes the connection made by OpenPort. It does nothing when
// the port is not connected, including on a closed or unusable output.
func (o *Output) ClosePort() error {
	if o.sub == nil || o.seq == nil {
		return nil
	}
	sub := *o.sub
	o.sub = nil
	if err := o.seq.Unsubscribe(sub); err != nil {
		err = &contracts.DriverError{Op: "error removing port connection", Err: err}
		o.ReportWarning(err)
		return err
	}
	o.logger.Debug("Output port disconnected", o.logger.Field().String("sink", sub.Dest.String()))
	return nil
}

// IsPortOpen reports whether the local port exists.
func (o *Output) IsPortOpen() bool {
	return !o.closed && o.vport >= 0
}

// SetPortName renames the local port, or sets the name used when it is
// created.
func (o *Output) SetPortName(name string) error {
	if err := o.check(); err != nil {
		return err
	}
	if err := contracts.ValidateName(name); err != nil {
		return err
	}
	if o.vport >= 0 {
		if err := o.seq.SetPortName(o.vport, name); err != nil {
			return o.driverError("error setting port name", err)
		}
	}
	o.portName = name
	return nil
}

// SetClientName renames the sequencer client.
func (o *Output) SetClientName(name string) error {
	if err := o.check(); err != nil {
		return err
	}
	if err := contracts.ValidateName(name); err != nil {
		return err
	}
	if err := o.seq.SetClientName(name); err != nil {
		return o.driverError("error setting client name", err)
	}
	o.clientName = name
	return nil
}
