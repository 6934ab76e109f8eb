package alsaump

import (
	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// createConnection subscribes sink to the local port. The port must
// exist; on failure it is kept and removed later by Close.
func (o *Output) createConnection(sink contracts.Address) error {
	if o.vport < 0 {
		return contracts.ErrPortNotOpen
	}
	id, err := o.seq.ClientID()
	if err != nil {
		return o.driverError("error querying client id", err)
	}
	sub := contracts.Subscription{
		Sender: contracts.Address{Client: uint8(id), Port: uint8(o.vport)},
		Dest:   sink,
	}
	if err := o.seq.Subscribe(sub); err != nil {
		return o.driverError("ALSA error making port connection", err)
	}
	o.sub = &sub
	return nil
}
