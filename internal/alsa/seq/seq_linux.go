//go:build linux

package seq

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/leandrodaf/umpseq/internal/midi/coder"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"golang.org/x/sys/unix"
)

// Client is an open sequencer client in UMP mode.
type Client struct {
	fd     int
	id     int
	obuf   []byte
	closed bool
}

var _ contracts.Sequencer = (*Client)(nil)

// Open registers a new sequencer client named clientName and switches it
// to MIDI 2.0 (UMP) mode. Kernels older than 6.5 lack UMP support and
// make Open fail with contracts.ErrUnsupported.
func Open(clientName string) (*Client, error) {
	fd, err := unix.Open(DevicePath, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ENODEV) {
			return nil, fmt.Errorf("%w: open %s: %v", contracts.ErrUnsupported, DevicePath, err)
		}
		return nil, fmt.Errorf("open %s: %w", DevicePath, err)
	}
	c := &Client{fd: fd, obuf: make([]byte, 0, outputBufferSize)}

	if err := c.init(clientName); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return c, nil
}

func (c *Client) init(clientName string) error {
	version := int32(userProtocolVersion)
	if err := ioctl(c.fd, ioctlUserPVersion, ptr(&version)); err != nil {
		return fmt.Errorf("%w: set protocol version: %v", contracts.ErrUnsupported, err)
	}

	var id int32
	if err := ioctl(c.fd, ioctlClientID, ptr(&id)); err != nil {
		return fmt.Errorf("query client id: %w", err)
	}
	c.id = int(id)

	info, err := c.clientInfo()
	if err != nil {
		return err
	}
	info.midiVersion = clientUMPMIDI20
	if clientName != "" {
		setCString(info.name[:], clientName)
	}
	if err := ioctl(c.fd, ioctlSetClientInfo, ptr(&info)); err != nil {
		return fmt.Errorf("%w: enable UMP client: %v", contracts.ErrUnsupported, err)
	}
	return nil
}

func (c *Client) clientInfo() (clientInfo, error) {
	var info clientInfo
	info.client = int32(c.id)
	if err := ioctl(c.fd, ioctlGetClientInfo, ptr(&info)); err != nil {
		return info, fmt.Errorf("get client info: %w", err)
	}
	return info, nil
}

// ClientID returns the client number assigned by the kernel.
func (c *Client) ClientID() (int, error) {
	if c.closed {
		return -1, contracts.ErrClosed
	}
	return c.id, nil
}

// SetClientName renames the client.
func (c *Client) SetClientName(name string) error {
	if c.closed {
		return contracts.ErrClosed
	}
	info, err := c.clientInfo()
	if err != nil {
		return err
	}
	setCString(info.name[:], name)
	if err := ioctl(c.fd, ioctlSetClientInfo, ptr(&info)); err != nil {
		return fmt.Errorf("set client info: %w", err)
	}
	return nil
}

// CreatePort creates a port owned by this client.
func (c *Client) CreatePort(info contracts.PortInfo) (int, error) {
	if c.closed {
		return -1, contracts.ErrClosed
	}
	var pi portInfo
	pi.addr = seqAddr{client: uint8(c.id)}
	setCString(pi.name[:], info.Name)
	pi.capability = uint32(info.Capability)
	pi.typ = uint32(info.Type)
	pi.midiChannels = int32(info.MIDIChannels)
	if err := ioctl(c.fd, ioctlCreatePort, ptr(&pi)); err != nil {
		return -1, fmt.Errorf("create port: %w", err)
	}
	return int(pi.addr.port), nil
}

// DeletePort removes a port owned by this client.
func (c *Client) DeletePort(port int) error {
	if c.closed {
		return contracts.ErrClosed
	}
	var pi portInfo
	pi.addr = seqAddr{client: uint8(c.id), port: uint8(port)}
	if err := ioctl(c.fd, ioctlDeletePort, ptr(&pi)); err != nil {
		return fmt.Errorf("delete port %d: %w", port, err)
	}
	return nil
}

// SetPortName renames a port owned by this client.
func (c *Client) SetPortName(port int, name string) error {
	if c.closed {
		return contracts.ErrClosed
	}
	var pi portInfo
	pi.addr = seqAddr{client: uint8(c.id), port: uint8(port)}
	if err := ioctl(c.fd, ioctlGetPortInfo, ptr(&pi)); err != nil {
		return fmt.Errorf("get port %d info: %w", port, err)
	}
	setCString(pi.name[:], name)
	if err := ioctl(c.fd, ioctlSetPortInfo, ptr(&pi)); err != nil {
		return fmt.Errorf("set port %d info: %w", port, err)
	}
	return nil
}

// Ports lists every port of every client.
func (c *Client) Ports() ([]contracts.PortInfo, error) {
	if c.closed {
		return nil, contracts.ErrClosed
	}
	var ports []contracts.PortInfo
	var ci clientInfo
	ci.client = -1
	for {
		if err := ioctl(c.fd, ioctlQueryNextClient, ptr(&ci)); err != nil {
			if errors.Is(err, unix.ENOENT) {
				return ports, nil
			}
			return nil, fmt.Errorf("query next client: %w", err)
		}
		clientName := cString(ci.name[:])

		var pi portInfo
		pi.addr = seqAddr{client: uint8(ci.client), port: 0xFF}
		for {
			if err := ioctl(c.fd, ioctlQueryNextPort, ptr(&pi)); err != nil {
				if errors.Is(err, unix.ENOENT) {
					break
				}
				return nil, fmt.Errorf("query next port of client %d: %w", ci.client, err)
			}
			ports = append(ports, contracts.PortInfo{
				Addr:         contracts.Address{Client: pi.addr.client, Port: pi.addr.port},
				Name:         cString(pi.name[:]),
				ClientName:   clientName,
				Capability:   contracts.PortCapability(pi.capability),
				Type:         contracts.PortType(pi.typ),
				MIDIChannels: int(pi.midiChannels),
			})
		}
	}
}

// PortCount counts ports of other clients having every bit of caps.
func (c *Client) PortCount(caps contracts.PortCapability) (int, error) {
	ports, err := c.Ports()
	if err != nil {
		return 0, err
	}
	return countPorts(ports, caps, c.id), nil
}

// ResolveTarget finds the writable, subscribable port named by target.
func (c *Client) ResolveTarget(target contracts.OutputTarget) (contracts.Address, error) {
	ports, err := c.Ports()
	if err != nil {
		return contracts.Address{}, err
	}
	return matchTarget(ports, target, c.id)
}

// Subscribe connects sub.Sender to sub.Dest.
func (c *Client) Subscribe(sub contracts.Subscription) error {
	if c.closed {
		return contracts.ErrClosed
	}
	ps := newPortSubscribe(sub)
	if err := ioctl(c.fd, ioctlSubscribePort, ptr(&ps)); err != nil {
		return fmt.Errorf("subscribe %s -> %s: %w", sub.Sender, sub.Dest, err)
	}
	return nil
}

// Unsubscribe removes the connection from sub.Sender to sub.Dest.
func (c *Client) Unsubscribe(sub contracts.Subscription) error {
	if c.closed {
		return contracts.ErrClosed
	}
	ps := newPortSubscribe(sub)
	if err := ioctl(c.fd, ioctlUnsubscribePort, ptr(&ps)); err != nil {
		return fmt.Errorf("unsubscribe %s -> %s: %w", sub.Sender, sub.Dest, err)
	}
	return nil
}

// EventOutputUMP appends ev to the output buffer, draining first when the
// buffer has no room left. It returns the number of bytes left pending.
func (c *Client) EventOutputUMP(ev *contracts.UMPEvent) (int, error) {
	if c.closed {
		return 0, contracts.ErrClosed
	}
	if len(c.obuf)+contracts.UMPEventSize > cap(c.obuf) {
		if err := c.DrainOutput(); err != nil {
			return 0, err
		}
	}
	ev.Source.Client = uint8(c.id)
	c.obuf, _ = ev.AppendBinary(c.obuf)
	return len(c.obuf), nil
}

// DrainOutput writes every pending event to the kernel.
func (c *Client) DrainOutput() error {
	if c.closed {
		return contracts.ErrClosed
	}
	pending := c.obuf
	for len(pending) > 0 {
		n, err := unix.Write(c.fd, pending)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			// pending events are dropped on error
			c.obuf = c.obuf[:0]
			return fmt.Errorf("write events: %w", err)
		}
		pending = pending[n:]
	}
	c.obuf = c.obuf[:0]
	return nil
}

// NewEventCoder allocates a MIDI 1.0 byte-stream coder.
func (c *Client) NewEventCoder(bufferSize int) (contracts.EventCoder, error) {
	ec, err := coder.New(bufferSize)
	if err != nil {
		return nil, err
	}
	return ec, nil
}

// Close releases the client. Calling Close again has no effect.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.obuf = nil
	return unix.Close(c.fd)
}

func newPortSubscribe(sub contracts.Subscription) portSubscribe {
	return portSubscribe{
		sender: seqAddr{client: sub.Sender.Client, port: sub.Sender.Port},
		dest:   seqAddr{client: sub.Dest.Client, port: sub.Dest.Port},
	}
}

func setCString(dst []byte, s string) {
	clear(dst)
	copy(dst[:len(dst)-1], s)
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
