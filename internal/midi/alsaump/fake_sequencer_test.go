package alsaump

import (
	"errors"

	"github.com/leandrodaf/umpseq/internal/logger"
	"github.com/leandrodaf/umpseq/internal/midi/coder"
	"github.com/leandrodaf/umpseq/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
)

var errDriver = errors.New("driver failure")

// fakeSequencer records every call made by an Output.
type fakeSequencer struct {
	clientID int
	sinks    int
	sink     contracts.Address
	nextPort int

	countErr     error
	resolveErr   error
	createErr    error
	subscribeErr error
	coderErr     error
	outputErr    error
	drainErr     error
	encodeErr    error

	calls      []string
	events     []contracts.UMPEvent
	subs       []contracts.Subscription
	portNames  map[int]string
	clientName string
	coderFrees int
}

var _ contracts.Sequencer = (*fakeSequencer)(nil)

func newFakeSequencer() *fakeSequencer {
	return &fakeSequencer{
		clientID:  129,
		sinks:     1,
		sink:      contracts.Address{Client: 128, Port: 0},
		portNames: map[int]string{},
	}
}

func (f *fakeSequencer) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeSequencer) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeSequencer) ClientID() (int, error) {
	f.record("ClientID")
	return f.clientID, nil
}

func (f *fakeSequencer) SetClientName(name string) error {
	f.record("SetClientName")
	f.clientName = name
	return nil
}

func (f *fakeSequencer) CreatePort(info contracts.PortInfo) (int, error) {
	f.record("CreatePort")
	if f.createErr != nil {
		return -1, f.createErr
	}
	port := f.nextPort
	f.nextPort++
	f.portNames[port] = info.Name
	return port, nil
}

func (f *fakeSequencer) DeletePort(port int) error {
	f.record("DeletePort")
	delete(f.portNames, port)
	return nil
}

func (f *fakeSequencer) SetPortName(port int, name string) error {
	f.record("SetPortName")
	f.portNames[port] = name
	return nil
}

func (f *fakeSequencer) PortCount(caps contracts.PortCapability) (int, error) {
	f.record("PortCount")
	return f.sinks, f.countErr
}

func (f *fakeSequencer) ResolveTarget(target contracts.OutputTarget) (contracts.Address, error) {
	f.record("ResolveTarget")
	if f.resolveErr != nil {
		return contracts.Address{}, f.resolveErr
	}
	return f.sink, nil
}

func (f *fakeSequencer) Subscribe(sub contracts.Subscription) error {
	f.record("Subscribe")
	if f.subscribeErr != nil {
		return f.subscribeErr
	}
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSequencer) Unsubscribe(sub contracts.Subscription) error {
	f.record("Unsubscribe")
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSequencer) EventOutputUMP(ev *contracts.UMPEvent) (int, error) {
	f.record("EventOutputUMP")
	if f.outputErr != nil {
		return 0, f.outputErr
	}
	f.events = append(f.events, *ev)
	return contracts.UMPEventSize, nil
}

func (f *fakeSequencer) DrainOutput() error {
	f.record("DrainOutput")
	return f.drainErr
}

func (f *fakeSequencer) NewEventCoder(bufferSize int) (contracts.EventCoder, error) {
	f.record("NewEventCoder")
	if f.coderErr != nil {
		return nil, f.coderErr
	}
	ec, err := coder.New(bufferSize)
	if err != nil {
		return nil, err
	}
	return &fakeCoder{EventCoder: ec, f: f}, nil
}

func (f *fakeSequencer) Close() error {
	f.record("Close")
	return nil
}

// fakeCoder counts calls to Free and fails Encode with encodeErr after
// parsing the input.
type fakeCoder struct {
	*coder.EventCoder
	f *fakeSequencer
}

func (c *fakeCoder) Encode(data []byte) ([]midi.Message, error) {
	msgs, err := c.EventCoder.Encode(data)
	if err == nil {
		err = c.f.encodeErr
	}
	return msgs, err
}

func (c *fakeCoder) Free() {
	c.f.coderFrees++
	c.EventCoder.Free()
}

// sinkRecorder collects what the output reports through its callbacks.
type sinkRecorder struct {
	errors   []error
	warnings []error
}

func testOptions(rec *sinkRecorder, opts ...contracts.Option) *contracts.OutputOptions {
	options := &contracts.OutputOptions{
		Logger: logger.NewNopLogger(),
		AlsaSeq: &contracts.AlsaSeqConfig{
			ClientName: "test client",
			PortName:   "test port",
		},
	}
	if rec != nil {
		options.OnError = func(err error) { rec.errors = append(rec.errors, err) }
		options.OnWarning = func(err error) { rec.warnings = append(rec.warnings, err) }
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func openerFor(f *fakeSequencer) opener {
	return func(string) (contracts.Sequencer, error) {
		f.record("Open")
		return f, nil
	}
}

func failingOpener(err error) opener {
	return func(string) (contracts.Sequencer, error) {
		return nil, err
	}
}
