package alsaump

import (
	"fmt"

	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// SendUMP sends one UMP packet of 1 to 4 words to every subscriber of the
// local port and drains the output buffer right away. A failed submission
// is reported as a warning and leaves the output usable.
func (o *Output) SendUMP(words []uint32) error {
	if err := o.check(); err != nil {
		return err
	}
	if o.vport < 0 {
		return contracts.ErrPortNotOpen
	}

	var ev contracts.UMPEvent
	ev.SetUMP()
	ev.SetSource(uint8(o.vport))
	ev.SetSubscribers()
	ev.SetDirect()
	if err := ev.SetWords(words); err != nil {
		return err
	}

	if _, err := o.seq.EventOutputUMP(&ev); err != nil {
		err = fmt.Errorf("%w: %v", contracts.ErrSendFailed, err)
		o.ReportWarning(err)
		return err
	}
	if err := o.seq.DrainOutput(); err != nil {
		err = fmt.Errorf("%w: drain output: %v", contracts.ErrSendFailed, err)
		o.ReportWarning(err)
		return err
	}
	return nil
}

// SendMessage parses MIDI 1.0 bytes with the event coder and sends each
// complete message as UMP packets on group 0. Bytes of an incomplete
// message are kept until the next call, and SysEx longer than the coder
// buffer goes out as one SysEx7 stream. Messages completed before a parse
// error are still sent.
func (o *Output) SendMessage(msg []byte) error {
	if err := o.check(); err != nil {
		return err
	}
	if o.vport < 0 {
		return contracts.ErrPortNotOpen
	}

	msgs, encErr := o.encoder.Encode(msg)
	for _, m := range msgs {
		packets, err := o.converter.Convert(m)
		if err != nil {
			return err
		}
		for _, p := range packets {
			if err := o.SendUMP(p); err != nil {
				return err
			}
		}
	}
	if encErr != nil {
		o.encoder.Reset()
		o.converter.Reset()
		return fmt.Errorf("%w: %v", contracts.ErrInvalidPacket, encErr)
	}
	return nil
}
