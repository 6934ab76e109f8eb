// Package seq is a client for the Linux ALSA sequencer that talks to
// /dev/snd/seq directly, without alsa-lib. It implements
// contracts.Sequencer for UMP (MIDI 2.0) clients.
package seq

import (
	"fmt"

	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// DevicePath is the sequencer character device.
const DevicePath = "/dev/snd/seq"

// systemClient is the kernel's own client (timer and announce ports).
const systemClient = 0

// outputBufferSize matches alsa-lib's default output buffer.
const outputBufferSize = 16384

// SinkCaps are the capabilities a remote port needs to receive from us.
const SinkCaps = contracts.CapWrite | contracts.CapSubsWrite

// countPorts counts the ports of other clients that have every bit of caps.
func countPorts(ports []contracts.PortInfo, caps contracts.PortCapability, self int) int {
	n := 0
	for _, p := range ports {
		if !eligible(p, self) {
			continue
		}
		if p.Capability.Has(caps) {
			n++
		}
	}
	return n
}

// matchTarget resolves target against ports. The exact address wins; the
// port name, alone or prefixed by "client name:", is tried next.
func matchTarget(ports []contracts.PortInfo, target contracts.OutputTarget, self int) (contracts.Address, error) {
	for _, p := range ports {
		if eligible(p, self) && p.Addr == target.Addr && p.Capability.Has(SinkCaps) {
			return p.Addr, nil
		}
	}
	if target.PortName != "" {
		for _, p := range ports {
			if !eligible(p, self) || !p.Capability.Has(SinkCaps) {
				continue
			}
			if p.Name == target.PortName || p.ClientName+":"+p.Name == target.PortName {
				return p.Addr, nil
			}
		}
	}
	label := target.DisplayName
	if label == "" {
		label = target.PortName
	}
	return contracts.Address{}, fmt.Errorf("%w: %s %q", contracts.ErrPortNotFound, target.Addr, label)
}

func eligible(p contracts.PortInfo, self int) bool {
	return int(p.Addr.Client) != systemClient && int(p.Addr.Client) != self
}
