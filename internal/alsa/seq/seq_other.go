//go:build !linux

package seq

import (
	"fmt"
	"runtime"

	"github.com/leandrodaf/umpseq/sdk/contracts"
)

// Client is unavailable outside Linux; every method fails.
type Client struct{}

var _ contracts.Sequencer = (*Client)(nil)

var errPlatform = fmt.Errorf("%w on %s", contracts.ErrUnsupported, runtime.GOOS)

// Open always fails: the ALSA sequencer only exists on Linux.
func Open(clientName string) (*Client, error) {
	return nil, errPlatform
}

func (c *Client) ClientID() (int, error) {
	return -1, errPlatform
}

func (c *Client) SetClientName(name string) error {
	return errPlatform
}

func (c *Client) CreatePort(info contracts.PortInfo) (int, error) {
	return -1, errPlatform
}

func (c *Client) DeletePort(port int) error {
	return errPlatform
}

func (c *Client) SetPortName(port int, name string) error {
	return errPlatform
}

func (c *Client) Ports() ([]contracts.PortInfo, error) {
	return nil, errPlatform
}

func (c *Client) PortCount(caps contracts.PortCapability) (int, error) {
	return 0, errPlatform
}

func (c *Client) ResolveTarget(target contracts.OutputTarget) (contracts.Address, error) {
	return contracts.Address{}, errPlatform
}

func (c *Client) Subscribe(sub contracts.Subscription) error {
	return errPlatform
}

func (c *Client) Unsubscribe(sub contracts.Subscription) error {
	return errPlatform
}

func (c *Client) EventOutputUMP(ev *contracts.UMPEvent) (int, error) {
	return 0, errPlatform
}

func (c *Client) DrainOutput() error {
	return errPlatform
}

func (c *Client) NewEventCoder(bufferSize int) (contracts.EventCoder, error) {
	return nil, errPlatform
}

func (c *Client) Close() error {
	return nil
}
